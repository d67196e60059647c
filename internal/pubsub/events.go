// Package pubsub is a small typed publish/subscribe hub used to carry
// release changes, config reloads and log lines into the Bubble Tea loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to an event's payload.
type EventType string

const (
	CreatedEvent  EventType = "created"
	UpdatedEvent  EventType = "updated"
	DeletedEvent  EventType = "deleted"
	ReloadedEvent EventType = "reloaded" // configuration re-read from disk
)

// Event is a published payload plus its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
