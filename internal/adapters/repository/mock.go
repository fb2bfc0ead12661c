package repository

import (
	"context"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAssetRepository is a mock implementation of port.AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{}
}

func (m *MockAssetRepository) Create(ctx context.Context, asset domain.MediaAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaAsset), args.Error(1)
}

func (m *MockAssetRepository) ClaimOldestPending(ctx context.Context) (*domain.MediaAsset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaAsset), args.Error(1)
}

func (m *MockAssetRepository) CompleteTranscode(ctx context.Context, id uuid.UUID, displayPath, thumbPath string) error {
	args := m.Called(ctx, id, displayPath, thumbPath)
	return args.Error(0)
}

func (m *MockAssetRepository) FailTranscode(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
