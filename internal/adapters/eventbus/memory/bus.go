package memory

import (
	"log/slog"
	"sync"

	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"
	"github.com/ccorbett0116/kaija-gallery-sub000/internal/core/port"
)

const subscriberBuffer = 16

// Bus is an in-process publish/subscribe channel with process lifetime.
// It is created once at startup and injected wherever events are produced
// or served, never held as package-level state.
type Bus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	nextID int
	subs   map[int]chan domain.StatusChange
}

// NewBus creates an empty Bus
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger: logger,
		subs:   make(map[int]chan domain.StatusChange),
	}
}

var _ port.EventBus = (*Bus)(nil)

// Publish fans the event out to every current subscriber. Delivery is
// best-effort: a subscriber whose buffer is full is skipped rather than
// blocking the publisher.
func (b *Bus) Publish(event domain.StatusChange) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn("dropping event for slow subscriber", "subscriber", id, "asset_id", event.AssetID)
		}
	}
}

// Subscribe registers a listener. The returned cancel function removes the
// listener and closes its channel; it is safe to call more than once.
func (b *Bus) Subscribe() (<-chan domain.StatusChange, func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan domain.StatusChange, subscriberBuffer)
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// SubscriberCount reports the number of live subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
