package port

import "github.com/ccorbett0116/kaija-gallery-sub000/internal/core/domain"

// EventBus is an in-process publish/subscribe channel for status-change
// events. Delivery is best-effort to current subscribers only: there is no
// buffering across publishes and no replay for late subscribers.
type EventBus interface {
	Publish(event domain.StatusChange)
	// Subscribe registers a listener and returns its channel plus a cancel
	// function that must be called when the listener disconnects
	Subscribe() (<-chan domain.StatusChange, func())
}
