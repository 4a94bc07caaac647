package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/topicwall/internal/backend"
	"github.com/atomicstack/topicwall/internal/data/dispatcher"
	"github.com/atomicstack/topicwall/internal/notify"
	"github.com/atomicstack/topicwall/internal/render"
	"github.com/atomicstack/topicwall/internal/status"
	"github.com/atomicstack/topicwall/internal/theme"
	"github.com/atomicstack/topicwall/internal/toolbar"
	"github.com/atomicstack/topicwall/internal/topics"
)

// Tree roots.
const (
	rootMessages = "messages"
	rootToast    = "toast"
	rootStatus   = "status"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Resubscriber forwards a new topic filter to the transport. Implementations
// may block; the model calls it from a command.
type Resubscriber interface {
	Resubscribe(filter string) error
}

// Options configures a Model.
type Options struct {
	Width        int
	Height       int
	ShowFooter   bool
	ShowCounter  bool
	Policy       topics.Policy
	URI          string
	DefaultTopic string
	Backend      *backend.Watcher
	Resubscriber Resubscriber
	// Clock overrides time.Now for animations and notification timers.
	Clock func() time.Time
}

// Model implements the Bubble Tea model for the message wall.
type Model struct {
	tree       *render.Tree
	wall       *topics.Collection
	notices    *notify.Manager
	sched      *notify.TickScheduler
	status     *status.View
	toolbar    *toolbar.CommandInput
	dispatcher *dispatcher.Dispatcher

	find    textinput.Model
	finding bool

	backend      *backend.Watcher
	resubscriber Resubscriber
	connNotice   *notify.Notification
	fatal        error

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	title       string

	now     func() time.Time
	tick    func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	ticking bool
	pending []tea.Cmd

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the wall, status footer, notification area and topic input.
func NewModel(opts Options) *Model {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	tree := render.NewTree(render.WithClock(now))
	sched := notify.NewTickScheduler(now)
	wall := topics.NewCollection(tree, tree.Root(rootMessages), opts.Policy, topics.Options{ShowCounter: opts.ShowCounter})
	view := status.NewView(tree, tree.Root(rootStatus))
	view.SetEndpoint(opts.URI)

	m := &Model{
		tree:         tree,
		wall:         wall,
		sched:        sched,
		notices:      notify.NewManager(tree, tree.Root(rootToast), sched),
		status:       view,
		dispatcher:   dispatcher.New(wall, view),
		backend:      opts.Backend,
		resubscriber: opts.Resubscriber,
		showFooter:   opts.ShowFooter,
		now:          now,
		tick:         tea.Tick,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	m.toolbar = toolbar.New(toolbar.Options{URI: opts.URI, DefaultTopic: opts.DefaultTopic, Width: m.width})
	m.toolbar.Styled(*styles.FilterPrompt, *styles.Filter)
	m.toolbar.OnTopicChanged(func(ch toolbar.Change) {
		m.topicChanged(ch.Value)
	})
	m.title = m.toolbar.Title()
	m.dispatcher.SetFilter(m.toolbar.Value())

	find := textinput.New()
	find.Prompt = "/"
	find.Placeholder = "find topic"
	find.Cursor.SetMode(cursor.CursorStatic)
	if styles.FilterPrompt != nil {
		find.PromptStyle = *styles.FilterPrompt
	}
	if styles.Filter != nil {
		find.TextStyle = *styles.Filter
	}
	m.find = find

	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.title)}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(resubscribeErrMsg{}): m.handleResubscribeErrMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate collects commands queued by observers and keeps the frame
// tick alive while anything is animating or waiting on a timer.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(m.pending) > 0 {
		cmds = append(cmds, m.pending...)
		m.pending = nil
	}
	if cmd := m.ensureTicking(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Err returns the error that stopped the program, if any.
func (m *Model) Err() error {
	return m.fatal
}

// Topic returns the committed topic filter.
func (m *Model) Topic() string {
	return m.toolbar.Value()
}

// Title returns the current terminal title.
func (m *Model) Title() string {
	return m.title
}
