// Package notify manages transient toast notifications rendered into the
// "toast" root of the view tree.
package notify

import (
	"time"

	"github.com/atomicstack/topicwall/internal/logging/events"
	"github.com/atomicstack/topicwall/internal/render"
)

// Kind is the severity tag of a notification; it doubles as its style class.
type Kind string

const (
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// AutoDismissDelay is how long a non-persistent notification stays up.
const AutoDismissDelay = 5 * time.Second

const (
	NodeKind        = "toast"
	ClassPersistent = "persistent"
)

type lifecycle int

const (
	stateVisible lifecycle = iota
	stateLeaving
	stateRemoved
)

// Notification is a single notice. Its fields are owned by the Manager.
type Notification struct {
	id         int
	message    string
	kind       Kind
	persistent bool
	node       *render.Node
	task       Task
	state      lifecycle
}

func (n *Notification) ID() int            { return n.id }
func (n *Notification) Message() string    { return n.message }
func (n *Notification) Kind() Kind         { return n.kind }
func (n *Notification) Persistent() bool   { return n.persistent }
func (n *Notification) Node() *render.Node { return n.node }

// Dismissed reports whether dismissal has started (explicitly or by timer).
func (n *Notification) Dismissed() bool { return n.state != stateVisible }

// Removed reports whether the view has been taken out of the tree.
func (n *Notification) Removed() bool { return n.state == stateRemoved }

// Manager creates and dismisses notifications.
type Manager struct {
	r      render.Renderer
	root   *render.Node
	sched  Scheduler
	nextID int
	live   []*Notification
}

// NewManager returns a manager appending notification views under root.
func NewManager(r render.Renderer, root *render.Node, sched Scheduler) *Manager {
	return &Manager{r: r, root: root, sched: sched}
}

// Create shows a notification. Unless persistent it is dismissed
// automatically after AutoDismissDelay.
func (m *Manager) Create(message string, kind Kind, persistent bool) *Notification {
	if kind == "" {
		kind = KindInfo
	}
	m.nextID++
	n := &Notification{id: m.nextID, message: message, kind: kind, persistent: persistent}
	n.node = m.r.Create(NodeKind, message)
	m.r.ToggleClass(n.node, string(kind), true)
	if persistent {
		m.r.ToggleClass(n.node, ClassPersistent, true)
	}
	m.r.Append(m.root, n.node)
	m.r.Animate(n.node, render.FadeIn())
	m.live = append(m.live, n)
	events.Notice.Create(n.id, string(kind), message, persistent)

	if !persistent && m.sched != nil {
		n.task = m.sched.Schedule(AutoDismissDelay, func() {
			m.dismiss(n, events.NoticeReasonExpired)
		})
	}
	return n
}

// Info creates a non-persistent info notification.
func (m *Manager) Info(message string) *Notification {
	return m.Create(message, KindInfo, false)
}

// Dismiss plays the exit transition and then removes the view. Calls after
// the first, or after the timer fired, do nothing.
func (m *Manager) Dismiss(n *Notification) {
	m.dismiss(n, events.NoticeReasonExplicit)
}

// SetMessage rewrites the text of a notification that is still on screen.
func (m *Manager) SetMessage(n *Notification, message string) {
	if n == nil || n.state == stateRemoved {
		return
	}
	n.message = message
	m.r.SetText(n.node, message)
	events.Notice.Message(n.id, message)
}

// Visible returns notifications that have not been dismissed, oldest first.
func (m *Manager) Visible() []*Notification {
	out := make([]*Notification, 0, len(m.live))
	for _, n := range m.live {
		if n.state == stateVisible {
			out = append(out, n)
		}
	}
	return out
}

func (m *Manager) dismiss(n *Notification, reason events.NoticeReason) {
	if n == nil || n.state != stateVisible {
		return
	}
	n.state = stateLeaving
	if n.task != nil {
		n.task.Cancel()
	}
	events.Notice.Dismiss(n.id, reason)
	m.r.Animate(n.node, render.SlideUp(func() { m.remove(n) }))
}

func (m *Manager) remove(n *Notification) {
	if n.state == stateRemoved {
		return
	}
	n.state = stateRemoved
	m.r.Remove(n.node)
	for i, live := range m.live {
		if live == n {
			m.live = append(m.live[:i], m.live[i+1:]...)
			break
		}
	}
	events.Notice.Removed(n.id)
}
