package mocks

import (
	"context"
	"sync"

	"dddkit/domain/shared"
)

// InMemoryOutbox records integration events instead of persisting them.
type InMemoryOutbox struct {
	mu     sync.Mutex
	events []shared.IntegrationEvent
}

func NewInMemoryOutbox() *InMemoryOutbox {
	return &InMemoryOutbox{}
}

func (o *InMemoryOutbox) SaveEvent(ctx context.Context, event shared.IntegrationEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	return nil
}

// Events returns a copy of the recorded events.
func (o *InMemoryOutbox) Events() []shared.IntegrationEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	events := make([]shared.IntegrationEvent, len(o.events))
	copy(events, o.events)
	return events
}

var _ shared.IntegrationEventOutbox = (*InMemoryOutbox)(nil)
