package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header       *lipgloss.Style
	Topic        *lipgloss.Style
	Payload      *lipgloss.Style
	SysPayload   *lipgloss.Style
	Counter      *lipgloss.Style
	Retain       *lipgloss.Style
	QoS          *lipgloss.Style
	Highlight    *lipgloss.Style
	Empty        *lipgloss.Style
	ToastInfo    *lipgloss.Style
	ToastWarning *lipgloss.Style
	ToastError   *lipgloss.Style
	Connecting   *lipgloss.Style
	Connected    *lipgloss.Style
	Fail         *lipgloss.Style
	StatusMeta   *lipgloss.Style
	Footer       *lipgloss.Style
	Filter       *lipgloss.Style
	FilterPrompt *lipgloss.Style
	Cursor       *lipgloss.Style
	Error        *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Topic: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Payload: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	SysPayload: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Counter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("245")).Padding(0, 1),
	),
	Retain: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("178")).Padding(0, 1),
	),
	QoS: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")).Padding(0, 1),
	),
	Highlight: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	ToastInfo: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("24")).Padding(0, 1),
	),
	ToastWarning: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1),
	),
	ToastError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("160")).Bold(true).Padding(0, 1),
	),
	Connecting: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Connected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Fail: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	StatusMeta: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Class returns the style bound to a view class, or nil for unknown classes.
func (s *Styles) Class(name string) *lipgloss.Style {
	switch name {
	case "info":
		return s.ToastInfo
	case "warning":
		return s.ToastWarning
	case "error":
		return s.ToastError
	case "connecting":
		return s.Connecting
	case "connected":
		return s.Connected
	case "fail":
		return s.Fail
	case "counter":
		return s.Counter
	case "retain":
		return s.Retain
	case "qos":
		return s.QoS
	case "sys":
		return s.SysPayload
	default:
		return nil
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
