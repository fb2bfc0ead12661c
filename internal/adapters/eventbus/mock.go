package eventbus

import (
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockEventBus is a mock implementation of port.EventBus
type MockEventBus struct {
	mock.Mock
}

func NewMockEventBus() *MockEventBus {
	return &MockEventBus{}
}

func (m *MockEventBus) Publish(event domain.StatusChange) {
	m.Called(event)
}

func (m *MockEventBus) Subscribe() (<-chan domain.StatusChange, func()) {
	args := m.Called()
	return args.Get(0).(<-chan domain.StatusChange), args.Get(1).(func())
}
