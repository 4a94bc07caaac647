package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/topicwall/internal/backend"
	"github.com/atomicstack/topicwall/internal/logging"
	"github.com/atomicstack/topicwall/internal/logging/events"
	"github.com/atomicstack/topicwall/internal/notify"
	"github.com/atomicstack/topicwall/internal/status"
)

const connectionLost = "Connection lost"

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

type resubscribeErrMsg struct {
	topic string
	err   error
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.fatal != nil {
		return cmd
	}
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	events.Backend.Done()
	return nil
}

func (m *Model) handleResubscribeErrMsg(msg tea.Msg) tea.Cmd {
	errMsg, ok := msg.(resubscribeErrMsg)
	if !ok {
		return nil
	}
	logging.Error(errMsg.err)
	m.notices.Create(fmt.Sprintf("Could not subscribe to %s", errMsg.topic), notify.KindError, false)
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if evt.Err != nil {
		logging.Error(evt.Err)
		return nil
	}
	res := m.dispatcher.Handle(evt)
	if res.Err != nil {
		m.fatal = res.Err
		events.App.Fatal(res.Err)
		logging.Error(res.Err)
		return tea.Quit
	}
	if res.StateChanged {
		m.noteConnection(res.State)
	}
	return nil
}

// noteConnection keeps a single persistent notice up while the connection
// is down.
func (m *Model) noteConnection(evt status.Event) {
	live := m.connNotice != nil && !m.connNotice.Dismissed()
	switch evt.State {
	case status.Error:
		text := connectionLost
		if evt.ReconnectAttempts > 1 {
			text = fmt.Sprintf("%s (%d)", connectionLost, evt.ReconnectAttempts)
		}
		if live {
			m.notices.SetMessage(m.connNotice, text)
			return
		}
		m.connNotice = m.notices.Create(text, notify.KindError, true)
	case status.Reconnecting:
		if live {
			m.notices.SetMessage(m.connNotice, fmt.Sprintf("%s, reconnecting (%d)", connectionLost, evt.ReconnectAttempts))
		}
	case status.Connected:
		if live {
			m.notices.Dismiss(m.connNotice)
		}
		m.connNotice = nil
	}
}
