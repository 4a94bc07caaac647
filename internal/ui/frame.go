package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameInterval paces animations and notification timers.
const frameInterval = 100 * time.Millisecond

type frameMsg struct {
	at time.Time
}

func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || m.tick == nil {
		return nil
	}
	if !m.tree.Animating() && m.sched.Pending() == 0 {
		return nil
	}
	m.ticking = true
	return m.tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

func (m *Model) handleFrameMsg(msg tea.Msg) tea.Cmd {
	frame, ok := msg.(frameMsg)
	if !ok {
		return nil
	}
	m.ticking = false
	at := frame.at
	if at.IsZero() {
		at = m.now()
	}
	m.sched.Advance(at)
	m.tree.Tick(at)
	return nil
}
