package pubsub

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd waits for the next event on ch and returns it as a tea.Msg. The
// command yields nil once ctx is done or ch is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			return ev
		}
	}
}

// LatestCmd is ListenCmd that also drains events already queued behind the
// first one and returns only the newest.
func LatestCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	next := ListenCmd(ctx, ch)
	return func() tea.Msg {
		msg := next()
		if msg == nil {
			return nil
		}
		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return msg
				}
				msg = ev
			default:
				return msg
			}
		}
	}
}

// ForwardCmd waits for one value on a plain channel and returns it wrapped in
// an Event of type typ.
func ForwardCmd[T any](ctx context.Context, ch <-chan T, typ EventType) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case v, ok := <-ch:
			if !ok {
				return nil
			}
			return Event[T]{Type: typ, Payload: v, Timestamp: time.Now()}
		}
	}
}

// ContinuousListener keeps one subscription alive across Bubble Tea update
// cycles. Call Listen again after each received event.
type ContinuousListener[T any] struct {
	ctx      context.Context
	ch       <-chan Event[T]
	coalesce bool
}

// NewContinuousListener subscribes to broker for the lifetime of ctx. Every
// event is delivered in order.
func NewContinuousListener[T any](ctx context.Context, broker Subscriber[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{ctx: ctx, ch: broker.Subscribe(ctx)}
}

// NewLatestListener subscribes like NewContinuousListener, but each Listen
// skips to the newest queued event. Used for state snapshots, where only the
// current state matters.
func NewLatestListener[T any](ctx context.Context, broker Subscriber[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{ctx: ctx, ch: broker.Subscribe(ctx), coalesce: true}
}

// Listen returns a command for the next event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	if l.coalesce {
		return LatestCmd(l.ctx, l.ch)
	}
	return ListenCmd(l.ctx, l.ch)
}
