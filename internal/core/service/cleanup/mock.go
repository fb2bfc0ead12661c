package cleanup

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCleanupService is a mock implementation of CleanupService
type MockCleanupService struct {
	mock.Mock
}

// NewMockCleanupService creates a new MockCleanupService
func NewMockCleanupService() *MockCleanupService {
	return &MockCleanupService{}
}

func (m *MockCleanupService) SweepSessions(ctx context.Context, now time.Time) (int, []error) {
	args := m.Called(ctx, now)
	if args.Get(1) == nil {
		return args.Int(0), nil
	}
	return args.Int(0), args.Get(1).([]error)
}
