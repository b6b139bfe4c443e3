// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// CreatedEvent announces a newly produced payload (log entries,
	// freshly built catalogs).
	CreatedEvent EventType = "created"
	// UpdatedEvent announces a payload that replaced a previous one.
	UpdatedEvent EventType = "updated"
	// DroppedEvent announces a payload that was discarded.
	DroppedEvent EventType = "dropped"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}

// Listener wraps a broker subscription behind a plain receive channel.
type Listener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewListener subscribes to the broker. The subscription is cleaned up
// when the context is cancelled.
func NewListener[T any](ctx context.Context, broker *Broker[T]) *Listener[T] {
	return &Listener[T]{ctx: ctx, ch: broker.Subscribe(ctx)}
}

// Next blocks until an event arrives, the channel closes, or the context
// is cancelled. The second return is false when no more events will come.
func (l *Listener[T]) Next() (Event[T], bool) {
	select {
	case <-l.ctx.Done():
		var zero Event[T]
		return zero, false
	case event, ok := <-l.ch:
		if !ok {
			var zero Event[T]
			return zero, false
		}
		return event, true
	}
}

// Events exposes the raw subscription channel for select loops.
func (l *Listener[T]) Events() <-chan Event[T] {
	return l.ch
}
