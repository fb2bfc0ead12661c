package transcode

import (
	"context"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockTranscodeService is a mock implementation of TranscodeService
type MockTranscodeService struct {
	mock.Mock
}

// NewMockTranscodeService creates a new MockTranscodeService
func NewMockTranscodeService() *MockTranscodeService {
	return &MockTranscodeService{}
}

func (m *MockTranscodeService) ProcessNext(ctx context.Context) (*domain.MediaAsset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaAsset), args.Error(1)
}

func (m *MockTranscodeService) Notify() {
	m.Called()
}
