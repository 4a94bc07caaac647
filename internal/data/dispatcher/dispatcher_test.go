package dispatcher

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/atomicstack/topicwall/internal/backend"
	"github.com/atomicstack/topicwall/internal/render"
	"github.com/atomicstack/topicwall/internal/status"
	"github.com/atomicstack/topicwall/internal/topics"
	"github.com/atomicstack/topicwall/internal/transport"
)

func newTestDispatcher() (*Dispatcher, *topics.Collection, *status.View) {
	tree := render.NewTree()
	wall := topics.NewCollection(tree, tree.Root("messages"), topics.Alphabetical, topics.Options{})
	view := status.NewView(tree, tree.Root("status"))
	return New(wall, view), wall, view
}

func TestHandleMessageUpdatesWall(t *testing.T) {
	d, wall, _ := newTestDispatcher()
	msg := transport.MessageEvent{Topic: "a", Payload: "1", QoS: 1}

	res := d.Handle(backend.Event{Kind: backend.KindMessage, Data: msg})
	if !res.MessageApplied || !res.NewTopic {
		t.Fatalf("expected new topic applied, got %+v", res)
	}
	res = d.Handle(backend.Event{Kind: backend.KindMessage, Data: msg})
	if !res.MessageApplied || res.NewTopic {
		t.Fatalf("expected repeat update, got %+v", res)
	}
	e, ok := wall.Entry("a")
	if !ok || e.Counter() != 2 {
		t.Fatalf("expected counter 2, got %+v", e)
	}
}

func TestHandleStateUpdatesView(t *testing.T) {
	d, _, view := newTestDispatcher()
	res := d.Handle(backend.Event{Kind: backend.KindState, Data: transport.StateEvent{
		State:             status.Reconnecting,
		ReconnectAttempts: 3,
		ClientID:          "wall",
	}})
	if !res.StateChanged || res.Err != nil {
		t.Fatalf("expected state change, got %+v", res)
	}
	if view.Node().Text() != "reconnecting... (3)" {
		t.Fatalf("unexpected label %q", view.Node().Text())
	}
	if res.State.ClientID != "wall" {
		t.Fatalf("expected state echoed in result, got %+v", res.State)
	}
}

func TestHandleUnknownStateIsFatal(t *testing.T) {
	d, _, _ := newTestDispatcher()
	res := d.Handle(backend.Event{Kind: backend.KindState, Data: transport.StateEvent{State: "weird"}})
	if res.Err == nil || !errors.Is(res.Err, status.ErrUnknownState) {
		t.Fatalf("expected unknown state error, got %v", res.Err)
	}
}

func TestHandleSkipsDecodeErrors(t *testing.T) {
	d, wall, _ := newTestDispatcher()
	res := d.Handle(backend.Event{Kind: backend.KindMessage, Err: errors.New("bad json")})
	if res.MessageApplied || res.Err != nil || wall.Len() != 0 {
		t.Fatalf("expected event skipped, got %+v", res)
	}
}

func TestHandleDropsMessagesOutsideFilter(t *testing.T) {
	d, wall, _ := newTestDispatcher()
	d.SetFilter("new/#")

	res := d.Handle(backend.Event{Kind: backend.KindMessage, Data: transport.MessageEvent{Topic: "old/a", Payload: "1"}})
	if !res.Stale || res.MessageApplied || wall.Len() != 0 {
		t.Fatalf("expected old/a dropped, got %+v with %d entries", res, wall.Len())
	}
	res = d.Handle(backend.Event{Kind: backend.KindMessage, Data: transport.MessageEvent{Topic: "new/a", Payload: "1"}})
	if res.Stale || !res.MessageApplied || wall.Len() != 1 {
		t.Fatalf("expected new/a applied, got %+v", res)
	}

	d.SetFilter("")
	res = d.Handle(backend.Event{Kind: backend.KindMessage, Data: transport.MessageEvent{Topic: "old/a", Payload: "1"}})
	if !res.MessageApplied {
		t.Fatalf("expected empty filter to accept everything, got %+v", res)
	}
}
