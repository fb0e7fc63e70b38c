// Package pubsub provides a small generic publish/subscribe broker used to
// fan engine events, watcher notifications, and log lines out to the UI.
package pubsub

import (
	"context"
	"time"
)

// EventType names the kind of event being published. Packages define their
// own constants; the broker treats the value as opaque.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"
	DeletedEvent EventType = "deleted"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
