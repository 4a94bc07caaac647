package dispatcher

import (
	"github.com/atomicstack/topicwall/internal/backend"
	"github.com/atomicstack/topicwall/internal/logging/events"
	"github.com/atomicstack/topicwall/internal/status"
	"github.com/atomicstack/topicwall/internal/topics"
	"github.com/atomicstack/topicwall/internal/transport"
)

// Result describes what a handled event changed. Err is set only for
// failures that must stop the program.
type Result struct {
	MessageApplied bool
	NewTopic       bool
	Stale          bool
	StateChanged   bool
	State          status.Event
	Err            error
}

type Dispatcher struct {
	wall   *topics.Collection
	status *status.View
	filter string
}

func New(wall *topics.Collection, view *status.View) *Dispatcher {
	return &Dispatcher{wall: wall, status: view}
}

// SetFilter sets the committed topic filter. Messages that do not match it
// were published for an earlier subscription and are dropped. An empty
// filter accepts everything.
func (d *Dispatcher) SetFilter(filter string) {
	d.filter = filter
}

func (d *Dispatcher) Filter() string { return d.filter }

// Handle applies evt. Events carrying a decode error are dropped.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindMessage:
		if msg, ok := evt.Data.(transport.MessageEvent); ok {
			if d.filter != "" && !transport.MatchTopic(d.filter, msg.Topic) {
				events.Topic.Stale(msg.Topic, d.filter)
				res.Stale = true
				return res
			}
			_, seen := d.wall.Entry(msg.Topic)
			d.wall.Update(msg.Topic, msg.Payload, msg.Retained, msg.QoS)
			res.MessageApplied = true
			res.NewTopic = !seen
		}
	case backend.KindState:
		if st, ok := evt.Data.(transport.StateEvent); ok {
			if err := d.status.Apply(st); err != nil {
				res.Err = err
				return res
			}
			res.StateChanged = true
			res.State = st
		}
	}
	return res
}
