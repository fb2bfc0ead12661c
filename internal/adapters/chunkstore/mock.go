package chunkstore

import (
	"context"
	"io"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockChunkStore is a mock implementation of port.ChunkStore
type MockChunkStore struct {
	mock.Mock
}

func NewMockChunkStore() *MockChunkStore {
	return &MockChunkStore{}
}

func (m *MockChunkStore) ListIndices(ctx context.Context, sessionID string) ([]int, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockChunkStore) WriteChunk(ctx context.Context, sessionID string, index int, r io.Reader) error {
	args := m.Called(ctx, sessionID, index, r)
	return args.Error(0)
}

func (m *MockChunkStore) Count(ctx context.Context, sessionID string) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

func (m *MockChunkStore) OpenChunk(ctx context.Context, sessionID string, index int) (io.ReadCloser, error) {
	args := m.Called(ctx, sessionID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockChunkStore) RemoveChunk(ctx context.Context, sessionID string, index int) error {
	args := m.Called(ctx, sessionID, index)
	return args.Error(0)
}

func (m *MockChunkStore) RemoveSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockChunkStore) PurgeSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockChunkStore) Sessions(ctx context.Context) ([]domain.SessionInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionInfo), args.Error(1)
}
