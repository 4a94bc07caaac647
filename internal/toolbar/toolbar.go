// Package toolbar implements the topic input: a single text field whose
// committed value drives the subscription.
package toolbar

import (
	"net/url"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/topicwall/internal/logging/events"
	"github.com/atomicstack/topicwall/internal/observer"
)

const (
	// EventTopicChanged is the observer channel carrying committed topics.
	EventTopicChanged = "topicChanged"
	// FallbackTopic is used when neither the endpoint nor config name one.
	FallbackTopic = "/#"

	baseTitle = "MQTT Wall"
)

// Change is the payload emitted on EventTopicChanged.
type Change struct {
	Event string `json:"event"`
	Value string `json:"value"`
}

// Options configures the initial value.
type Options struct {
	// URI is the endpoint URI; its fragment wins over DefaultTopic.
	URI          string
	DefaultTopic string
	Width        int
}

// CommandInput is the topic edit controller.
type CommandInput struct {
	field         textinput.Model
	committed     string
	pendingRevert bool
	subject       *observer.Subject[Change]
}

// InitialValue resolves the starting topic: URI fragment, then the default
// topic, then FallbackTopic.
func InitialValue(uri, defaultTopic string) string {
	if uri != "" {
		if u, err := url.Parse(uri); err == nil && u.Fragment != "" {
			return u.Fragment
		}
	}
	if defaultTopic != "" {
		return defaultTopic
	}
	return FallbackTopic
}

// New returns an unfocused input showing the initial topic. Construction
// does not emit.
func New(opts Options) *CommandInput {
	field := textinput.New()
	field.Prompt = "topic: "
	field.Placeholder = FallbackTopic
	field.Cursor.SetMode(cursor.CursorStatic)
	if opts.Width > 0 {
		field.Width = opts.Width
	}
	c := &CommandInput{
		field:     field,
		committed: InitialValue(opts.URI, opts.DefaultTopic),
		subject:   observer.New[Change](),
	}
	c.field.SetValue(c.committed)
	return c
}

// OnTopicChanged subscribes fn to committed topic changes.
func (c *CommandInput) OnTopicChanged(fn func(Change)) observer.Subscription {
	return c.subject.On(EventTopicChanged, fn)
}

// Value returns the committed topic.
func (c *CommandInput) Value() string { return c.committed }

// Draft returns the text currently in the field.
func (c *CommandInput) Draft() string { return c.field.Value() }

func (c *CommandInput) Focused() bool { return c.field.Focused() }

// Focus starts an edit session.
func (c *CommandInput) Focus() tea.Cmd {
	c.pendingRevert = false
	events.Toolbar.Focus(c.committed)
	cmd := c.field.Focus()
	c.field.CursorEnd()
	return cmd
}

// Escape abandons the edit session and restores the committed value.
func (c *CommandInput) Escape() {
	c.pendingRevert = true
	c.Blur()
}

// Enter ends the edit session, committing the field if it changed.
func (c *CommandInput) Enter() {
	c.Blur()
}

// Blur ends the edit session.
func (c *CommandInput) Blur() {
	if !c.field.Focused() {
		return
	}
	c.field.Blur()
	if c.pendingRevert {
		c.field.SetValue(c.committed)
		events.Toolbar.Revert(c.committed, events.ToolbarReasonEscape)
		return
	}
	value := c.field.Value()
	if value == c.committed {
		events.Toolbar.Revert(value, events.ToolbarReasonUnchanged)
		return
	}
	c.committed = value
	events.Toolbar.Commit(value)
	c.emit(value)
}

// SetValue replaces the committed topic and always emits.
func (c *CommandInput) SetValue(v string) {
	c.committed = v
	c.field.SetValue(v)
	events.Toolbar.Set(v)
	c.emit(v)
}

// Update routes key input while focused. Enter and Escape end the session.
func (c *CommandInput) Update(msg tea.Msg) tea.Cmd {
	if !c.field.Focused() {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			c.Enter()
			return nil
		case tea.KeyEsc:
			c.Escape()
			return nil
		}
	}
	var cmd tea.Cmd
	c.field, cmd = c.field.Update(msg)
	return cmd
}

// View renders the field.
func (c *CommandInput) View() string { return c.field.View() }

// Styled applies prompt and text styles to the field.
func (c *CommandInput) Styled(prompt, text lipgloss.Style) {
	c.field.PromptStyle = prompt
	c.field.TextStyle = text
}

// SetWidth resizes the field.
func (c *CommandInput) SetWidth(w int) {
	if w > 0 {
		c.field.Width = w
	}
}

// Title is the terminal title for the committed topic.
func (c *CommandInput) Title() string { return Title(c.committed) }

// Title formats the window title for topic.
func Title(topic string) string {
	if topic == "" {
		return baseTitle
	}
	return baseTitle + " for " + topic
}

func (c *CommandInput) emit(v string) {
	c.subject.Emit(EventTopicChanged, Change{Event: EventTopicChanged, Value: v})
}
