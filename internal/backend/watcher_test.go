package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/topicwall/internal/status"
	"github.com/atomicstack/topicwall/internal/transport"
)

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		require.True(t, ok, "events closed")
		return evt
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}

func TestWatcherForwardsInPublishOrder(t *testing.T) {
	bus := transport.NewBus()
	defer bus.Close()
	w, err := NewWatcher(bus.Subscriber(), bus.Publisher())
	require.NoError(t, err)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	go func() {
		for i := 0; i < 20; i++ {
			_ = transport.Publish(bus.Publisher(), transport.TopicMessages, transport.MessageEvent{
				Topic:   "t",
				Payload: string(rune('a' + i)),
			})
		}
	}()
	for i := 0; i < 20; i++ {
		evt := nextEvent(t, w)
		require.Equal(t, KindMessage, evt.Kind)
		require.NoError(t, evt.Err)
		require.Equal(t, string(rune('a'+i)), evt.Data.(transport.MessageEvent).Payload)
	}
}

func TestWatcherDecodesStateAndReportsErrors(t *testing.T) {
	bus := transport.NewBus()
	defer bus.Close()
	w, err := NewWatcher(bus.Subscriber(), bus.Publisher())
	require.NoError(t, err)
	defer w.Stop()

	go func() {
		_ = transport.Publish(bus.Publisher(), transport.TopicState, transport.StateEvent{State: status.Connected, ClientID: "c"})
		_ = transport.Publish(bus.Publisher(), transport.TopicMessages, map[string]string{"payload": "no topic"})
	}()

	evt := nextEvent(t, w)
	require.Equal(t, KindState, evt.Kind)
	require.Equal(t, status.Connected, evt.Data.(transport.StateEvent).State)

	evt = nextEvent(t, w)
	require.Equal(t, KindMessage, evt.Kind)
	require.Error(t, evt.Err)
}

func TestWatcherResubscribePublishesRequest(t *testing.T) {
	bus := transport.NewBus()
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reqs, err := bus.Subscribe(ctx, transport.TopicSubscribe)
	require.NoError(t, err)

	w, err := NewWatcher(bus.Subscriber(), bus.Publisher())
	require.NoError(t, err)
	defer w.Stop()

	go func() { _ = w.Resubscribe("a/#") }()
	select {
	case msg := <-reqs:
		msg.Ack()
		req, err := transport.DecodeSubscribe(msg)
		require.NoError(t, err)
		require.Equal(t, "a/#", req.Value)
	case <-time.After(3 * time.Second):
		t.Fatalf("no subscribe request")
	}
}
