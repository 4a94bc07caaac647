package backend

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/pkg/errors"

	"github.com/atomicstack/topicwall/internal/logging/events"
	"github.com/atomicstack/topicwall/internal/transport"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindMessage Kind = iota
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// Event conveys a decoded transport event or a decode error.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Watcher forwards bus traffic to the UI loop as Events.
type Watcher struct {
	pub message.Publisher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher subscribes to the message and state topics on sub. Requests
// for a new topic filter are published on pub.
func NewWatcher(sub message.Subscriber, pub message.Publisher) (*Watcher, error) {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		pub:    pub,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 64),
	}

	msgs, err := sub.Subscribe(ctx, transport.TopicMessages)
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "subscribe messages")
	}
	states, err := sub.Subscribe(ctx, transport.TopicState)
	if err != nil {
		cancel()
		return nil, errors.Wrap(err, "subscribe state")
	}

	w.wg.Add(2)
	go w.forward(KindMessage, msgs, func(msg *message.Message) (interface{}, error) {
		return transport.DecodeMessage(msg)
	})
	go w.forward(KindState, states, func(msg *message.Message) (interface{}, error) {
		return transport.DecodeState(msg)
	})

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Resubscribe asks the transport to switch to filter. It blocks until the
// transport has taken the request, so call it off the UI goroutine.
func (w *Watcher) Resubscribe(filter string) error {
	if w.pub == nil {
		return errors.New("watcher has no publisher")
	}
	return transport.RequestSubscribe(w.pub, filter)
}

// Stop cancels the watcher; forwarders exit once their current delivery
// completes. Use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all forwarders have exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) forward(kind Kind, in <-chan *message.Message, decode func(*message.Message) (interface{}, error)) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			data, err := decode(msg)
			if err != nil {
				events.Backend.Decode(kind.String(), err)
			}
			evt := Event{Kind: kind, Data: data, Err: err}
			select {
			case <-w.ctx.Done():
				msg.Nack()
				return
			case w.events <- evt:
				// Ack after handing off so the publisher's order is kept.
				msg.Ack()
			}
		}
	}
}
