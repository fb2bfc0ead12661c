package upload

import (
	"context"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	mock.Mock
}

// NewMockUploadService creates a new MockUploadService
func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) ListReceivedChunks(ctx context.Context, sessionID string) ([]int, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockUploadService) AcceptChunk(ctx context.Context, up domain.ChunkUpload) (*domain.ChunkReceipt, error) {
	args := m.Called(ctx, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChunkReceipt), args.Error(1)
}
