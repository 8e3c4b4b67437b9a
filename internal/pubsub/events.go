// Package pubsub fans typed events out to any number of subscribers without
// ever blocking the publisher.
//
// The engine publishes a Snapshot after every key, the logger publishes each
// formatted entry, and the file watcher publishes external changes. Slow
// subscribers lose events instead of stalling the producer.
package pubsub

import (
	"context"
	"time"
)

// EventType classifies a published event.
type EventType string

const (
	// CreatedEvent announces a new item, such as a log entry.
	CreatedEvent EventType = "created"
	// UpdatedEvent announces a new state of an existing item, such as the
	// editor snapshot after a key.
	UpdatedEvent EventType = "updated"
	// ModeChangedEvent is published alongside UpdatedEvent when a key
	// changed the editing mode.
	ModeChangedEvent EventType = "mode_changed"
	// ExternalChangeEvent reports that the edited file changed on disk.
	ExternalChangeEvent EventType = "external_change"
)

// Event wraps a payload with its type and publication time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
