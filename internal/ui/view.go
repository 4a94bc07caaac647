package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/topicwall/internal/notify"
	"github.com/atomicstack/topicwall/internal/render"
	"github.com/atomicstack/topicwall/internal/status"
	"github.com/atomicstack/topicwall/internal/topics"
)

const (
	toolbarPromptWidth = 8
	highlightThreshold = 0.05
	footerHelp         = "t topic  / find  s sort  c clear  q quit"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	top := []styledLine{
		{text: m.title, style: styles.Header},
		{text: m.toolbar.View(), raw: true},
		{},
	}

	bottom := make([]styledLine, 0, 8)
	for _, n := range m.tree.Root(rootToast).Children() {
		if line, ok := toastLine(n); ok {
			bottom = append(bottom, line)
		}
	}
	if m.finding || m.find.Value() != "" {
		bottom = append(bottom, styledLine{text: m.find.View(), raw: true})
	}
	bottom = append(bottom, styledLine{})
	bottom = append(bottom, m.statusLine())
	if m.showFooter {
		bottom = append(bottom, styledLine{text: footerHelp, style: styles.Footer})
	}

	wall := m.wallLines()
	if m.height > 0 {
		wall = limitHeight(wall, m.height-len(top)-len(bottom), m.width)
	}

	lines := make([]styledLine, 0, len(top)+len(wall)+len(bottom))
	lines = append(lines, top...)
	lines = append(lines, wall...)
	lines = append(lines, bottom...)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// wallLines renders each visible entry as a header line and a payload line.
func (m *Model) wallLines() []styledLine {
	rows := m.tree.Root(rootMessages).Children()
	var keep map[string]bool
	if query := m.find.Value(); query != "" {
		keep = make(map[string]bool)
		for _, key := range m.wall.Match(query) {
			keep[key] = true
		}
	}

	lines := make([]styledLine, 0, len(rows)*2)
	for _, row := range rows {
		header := row.Child(topics.KindHeader)
		payload := row.Child(topics.KindPayload)
		if header == nil || payload == nil {
			continue
		}
		if keep != nil && !keep[row.Text()] {
			continue
		}
		rowBg, rowLit := highlightColor(row)
		payloadBg, payloadLit := highlightColor(payload)
		if rowLit {
			payloadBg, payloadLit = rowBg, true
		}
		lines = append(lines,
			styledLine{text: headerText(header, rowBg, rowLit), raw: true},
			styledLine{text: payloadText(payload, payloadBg, payloadLit), raw: true},
		)
	}
	if len(lines) == 0 {
		msg := fmt.Sprintf("(waiting for messages on %s)", m.toolbar.Value())
		if query := m.find.Value(); query != "" && len(rows) > 0 {
			msg = fmt.Sprintf("No topics match %q", query)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Empty})
	}
	return lines
}

func highlightColor(n *render.Node) (string, bool) {
	state, ok := n.Animation()
	if !ok || state.Effect != render.EffectHighlight || state.Level < highlightThreshold {
		return "", false
	}
	return state.Color, true
}

func lit(style *lipgloss.Style, bg string, on bool) lipgloss.Style {
	s := lipgloss.NewStyle()
	if style != nil {
		s = *style
	}
	if on {
		s = s.Background(lipgloss.Color(bg))
		if styles.Highlight != nil {
			s = s.Foreground(styles.Highlight.GetForeground())
		}
	}
	return s
}

func headerText(header *render.Node, bg string, on bool) string {
	parts := make([]string, 0, 4)
	for _, n := range header.Children() {
		if n.Hidden() {
			continue
		}
		switch n.Kind() {
		case topics.KindTitle:
			parts = append(parts, lit(styles.Topic, bg, on).Render(n.Text()))
		case topics.KindMark:
			parts = append(parts, lit(markStyle(n), bg, on).Render(n.Text()))
		}
	}
	return strings.Join(parts, " ")
}

func markStyle(n *render.Node) *lipgloss.Style {
	for _, class := range []string{topics.ClassCounter, topics.ClassRetain, topics.ClassQoS} {
		if n.HasClass(class) {
			return styles.Class(class)
		}
	}
	return nil
}

func payloadText(payload *render.Node, bg string, on bool) string {
	style := styles.Payload
	if payload.HasClass(topics.ClassSystem) {
		style = styles.SysPayload
	}
	return "  " + lit(style, bg, on).Render(payload.Text())
}

// toastLine renders a notification; it collapses once its exit transition
// is past halfway.
func toastLine(n *render.Node) (styledLine, bool) {
	style := styles.ToastInfo
	for _, kind := range []notify.Kind{notify.KindError, notify.KindWarning, notify.KindInfo} {
		if n.HasClass(string(kind)) {
			style = styles.Class(string(kind))
			break
		}
	}
	state, animating := n.Animation()
	if animating {
		switch state.Effect {
		case render.EffectSlideUp:
			if state.Level < 0.5 {
				return styledLine{}, false
			}
			faint := style.Faint(true)
			style = &faint
		case render.EffectFadeIn:
			if state.Level < 0.5 {
				faint := style.Faint(true)
				style = &faint
			}
		}
	}
	return styledLine{text: n.Text(), style: style}, true
}

func (m *Model) statusLine() styledLine {
	root := m.tree.Root(rootStatus)
	stateNode := root.Child(status.KindState)
	parts := make([]string, 0, 3)
	if stateNode != nil && stateNode.Text() != "" {
		style := lipgloss.NewStyle()
		for _, class := range []string{status.ClassConnecting, status.ClassConnected, status.ClassFail} {
			if stateNode.HasClass(class) {
				style = *styles.Class(class)
				break
			}
		}
		parts = append(parts, style.Render("● "+stateNode.Text()))
	}
	for _, kind := range []string{status.KindClient, status.KindHost} {
		if n := root.Child(kind); n != nil && n.Text() != "" {
			parts = append(parts, styles.StatusMeta.Render(n.Text()))
		}
	}
	return styledLine{text: strings.Join(parts, "  "), raw: true}
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 {
		return nil
	}
	if len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
