package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/topicwall/internal/logging/events"
	"github.com/atomicstack/topicwall/internal/toolbar"
	"github.com/atomicstack/topicwall/internal/topics"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	if m.toolbar.Focused() {
		return m.toolbar.Update(keyMsg)
	}
	if m.finding {
		return m.handleFindKey(keyMsg)
	}
	switch keyMsg.String() {
	case "q":
		return tea.Quit
	case "t", "tab":
		return m.toolbar.Focus()
	case "/":
		return m.openFind()
	case "s":
		m.toggleSort()
	case "c":
		m.clearWall()
	case "esc":
		m.closeFind()
	}
	return nil
}

// topicChanged runs when the topic input commits or is set programmatically.
func (m *Model) topicChanged(topic string) {
	m.dispatcher.SetFilter(topic)
	m.wall.Reset()
	m.closeFind()
	m.title = toolbar.Title(topic)
	m.notices.Info(fmt.Sprintf("Subscribed to %s", topic))
	m.pending = append(m.pending, tea.SetWindowTitle(m.title))
	if cmd := m.resubscribeCmd(topic); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) resubscribeCmd(topic string) tea.Cmd {
	r := m.resubscriber
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		if err := r.Resubscribe(topic); err != nil {
			return resubscribeErrMsg{topic: topic, err: err}
		}
		return nil
	}
}

// SetTopic replaces the topic as if it had been set programmatically.
func (m *Model) SetTopic(topic string) {
	m.toolbar.SetValue(topic)
}

func (m *Model) toggleSort() {
	next := topics.Alphabetical
	if m.wall.Policy() == topics.Alphabetical {
		next = topics.Chronological
	}
	m.wall.SetPolicy(next)
	m.notices.Info(fmt.Sprintf("New topics are added %sly", next))
}

func (m *Model) clearWall() {
	events.UI.Clear(m.wall.Len())
	m.wall.Reset()
}

func (m *Model) openFind() tea.Cmd {
	m.finding = true
	m.find.SetValue("")
	events.Filter.Open()
	return m.find.Focus()
}

func (m *Model) closeFind() {
	if !m.finding && m.find.Value() == "" {
		return
	}
	m.finding = false
	m.find.Blur()
	m.find.SetValue("")
	events.Filter.Cleared()
}

func (m *Model) handleFindKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeFind()
		return nil
	case tea.KeyEnter:
		// Keep the query applied but stop editing it.
		m.finding = false
		m.find.Blur()
		return nil
	}
	before := m.find.Value()
	var cmd tea.Cmd
	m.find, cmd = m.find.Update(msg)
	if query := m.find.Value(); query != before {
		events.Filter.Change(query, len(m.wall.Match(query)))
	}
	return cmd
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	sizeMsg, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = sizeMsg.Width
		m.toolbar.SetWidth(sizeMsg.Width - toolbarPromptWidth)
	}
	if !m.fixedHeight {
		m.height = sizeMsg.Height
	}
	events.UI.Resize(m.width, m.height)
	return nil
}
