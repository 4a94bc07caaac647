package topics

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/topicwall/internal/logging/events"
	"github.com/atomicstack/topicwall/internal/render"
)

// NullPayload is displayed in place of an empty payload.
const NullPayload = "NULL"

// Node kinds and classes that make up an entry view.
const (
	KindEntry   = "entry"
	KindHeader  = "header"
	KindTitle   = "title"
	KindMark    = "mark"
	KindPayload = "payload"

	ClassCounter = "counter"
	ClassRetain  = "retain"
	ClassQoS     = "qos"
	ClassSystem  = "sys"

	AttrQoS = "qos"
)

// Options carries the display configuration entries are built with.
type Options struct {
	ShowCounter bool
}

// Entry is the per-topic state and its view.
type Entry struct {
	key      string
	counter  int
	isNew    bool
	retained bool
	qos      int
	payload  string
	system   bool

	r           render.Renderer
	root        *render.Node
	counterMark *render.Node
	retainMark  *render.Node
	qosMark     *render.Node
	payloadNode *render.Node
}

func newEntry(r render.Renderer, key string, opts Options) *Entry {
	e := &Entry{key: key, isNew: true, r: r}
	e.root = r.Create(KindEntry, key)
	header := r.Create(KindHeader, "")
	r.Append(e.root, header)
	r.Append(header, r.Create(KindTitle, key))

	if opts.ShowCounter {
		e.counterMark = mark(r, ClassCounter, "0")
		r.Append(header, e.counterMark)
	}
	e.retainMark = mark(r, ClassRetain, "R")
	r.Append(header, e.retainMark)
	e.qosMark = mark(r, ClassQoS, "QoS")
	r.Append(header, e.qosMark)

	e.payloadNode = r.Create(KindPayload, "")
	r.Append(e.root, e.payloadNode)
	return e
}

func mark(r render.Renderer, class, text string) *render.Node {
	n := r.Create(KindMark, text)
	r.ToggleClass(n, class, true)
	return n
}

func (e *Entry) Key() string               { return e.key }
func (e *Entry) Counter() int              { return e.counter }
func (e *Entry) IsNew() bool               { return e.isNew }
func (e *Entry) Retained() bool            { return e.retained }
func (e *Entry) QoS() int                  { return e.qos }
func (e *Entry) Payload() string           { return e.payload }
func (e *Entry) IsSystemPayload() bool     { return e.system }
func (e *Entry) Node() *render.Node        { return e.root }
func (e *Entry) PayloadNode() *render.Node { return e.payloadNode }

// ApplyUpdate folds one delivered message into the entry and its view.
func (e *Entry) ApplyUpdate(payload string, retained bool, qos int) {
	e.counter++
	e.SetRetained(retained)

	if e.counterMark != nil {
		e.r.SetText(e.counterMark, strconv.Itoa(e.counter))
	}

	e.qos = qos
	if qos == 0 {
		e.r.ToggleClass(e.qosMark, render.ClassHidden, true)
	} else {
		// Out-of-range levels are shown literally rather than rejected.
		e.r.ToggleClass(e.qosMark, render.ClassHidden, false)
		e.r.SetText(e.qosMark, fmt.Sprintf("QoS %d", qos))
		e.r.SetAttr(e.qosMark, AttrQoS, strconv.Itoa(qos))
	}

	if payload == "" {
		payload = NullPayload
		e.SetSystemPayload(true)
	} else {
		e.SetSystemPayload(false)
	}
	e.payload = payload
	e.r.SetText(e.payloadNode, payload)

	e.Highlight(e.isNew)
	e.isNew = false

	events.Topic.Update(e.key, e.counter, e.retained, qos)
}

// SetRetained records the retained flag and shows or hides its marker.
func (e *Entry) SetRetained(retained bool) {
	e.retained = retained
	e.r.ToggleClass(e.retainMark, render.ClassHidden, !retained)
}

// SetSystemPayload tags the payload as placeholder text.
func (e *Entry) SetSystemPayload(system bool) {
	e.system = system
	e.r.ToggleClass(e.payloadNode, ClassSystem, system)
}

// Highlight flashes the whole row when line is set, otherwise only the
// payload.
func (e *Entry) Highlight(line bool) {
	target := e.payloadNode
	if line {
		target = e.root
	}
	e.r.Animate(target, render.Highlight())
}
