package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReturnsEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	broker.Publish(ExternalChangeEvent, "notes.md")

	ev, ok := ListenCmd(ctx, ch)().(Event[string])
	require.True(t, ok)
	require.Equal(t, "notes.md", ev.Payload)
	require.Equal(t, ExternalChangeEvent, ev.Type)
}

func TestListenCmd_NilWhenDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Nil(t, ListenCmd(ctx, make(chan Event[string]))())

	closed := make(chan Event[string])
	close(closed)
	require.Nil(t, ListenCmd(context.Background(), closed)())
}

func TestContinuousListener_InOrder(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := NewContinuousListener[int](ctx, broker)

	broker.Publish(CreatedEvent, 1)
	broker.Publish(UpdatedEvent, 2)
	broker.Publish(ModeChangedEvent, 3)

	for i, want := range []EventType{CreatedEvent, UpdatedEvent, ModeChangedEvent} {
		ev, ok := listener.Listen()().(Event[int])
		require.True(t, ok)
		require.Equal(t, i+1, ev.Payload)
		require.Equal(t, want, ev.Type)
	}
}

func TestLatestListener_SkipsToNewest(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := NewLatestListener[int](ctx, broker)

	for i := 1; i <= 3; i++ {
		broker.Publish(UpdatedEvent, i)
	}

	ev, ok := listener.Listen()().(Event[int])
	require.True(t, ok)
	require.Equal(t, 3, ev.Payload)

	broker.Publish(UpdatedEvent, 4)
	ev, ok = listener.Listen()().(Event[int])
	require.True(t, ok)
	require.Equal(t, 4, ev.Payload)
}

func TestLatestCmd_NilWhenClosedEmpty(t *testing.T) {
	closed := make(chan Event[int])
	close(closed)
	require.Nil(t, LatestCmd(context.Background(), closed)())
}

func TestForwardCmd_WrapsValue(t *testing.T) {
	ch := make(chan string, 1)
	ch <- "notes.md"

	ev, ok := ForwardCmd(context.Background(), ch, ExternalChangeEvent)().(Event[string])
	require.True(t, ok)
	require.Equal(t, ExternalChangeEvent, ev.Type)
	require.Equal(t, "notes.md", ev.Payload)
	require.False(t, ev.Timestamp.IsZero())

	close(ch)
	require.Nil(t, ForwardCmd(context.Background(), ch, ExternalChangeEvent)())
}
