package toolbar

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type recorder struct {
	values []string
}

func newRecorded(opts Options) (*CommandInput, *recorder) {
	c := New(opts)
	rec := &recorder{}
	c.OnTopicChanged(func(ch Change) {
		if ch.Event != EventTopicChanged {
			panic("unexpected event " + ch.Event)
		}
		rec.values = append(rec.values, ch.Value)
	})
	return c, rec
}

func typeText(c *CommandInput, s string) {
	for _, r := range s {
		c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func clearField(c *CommandInput) {
	for range []rune(c.Draft()) {
		c.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
}

func TestInitialValueResolution(t *testing.T) {
	cases := []struct {
		uri, def, want string
	}{
		{"ws://broker:9001/mqtt#sensors/+", "home/#", "sensors/+"},
		{"ws://broker:9001/mqtt", "home/#", "home/#"},
		{"", "", FallbackTopic},
		{"ws://broker/#", "", FallbackTopic},
		{"::bad::", "x", "x"},
	}
	for _, tc := range cases {
		if got := InitialValue(tc.uri, tc.def); got != tc.want {
			t.Fatalf("InitialValue(%q, %q): expected %q, got %q", tc.uri, tc.def, tc.want, got)
		}
	}
}

func TestConstructionDoesNotEmit(t *testing.T) {
	c, rec := newRecorded(Options{DefaultTopic: "a/b"})
	if c.Value() != "a/b" || c.Draft() != "a/b" {
		t.Fatalf("expected a/b committed and displayed, got %q/%q", c.Value(), c.Draft())
	}
	if len(rec.values) != 0 {
		t.Fatalf("expected no events, got %v", rec.values)
	}
}

func TestSetValueAlwaysEmits(t *testing.T) {
	c, rec := newRecorded(Options{})
	c.SetValue("x")
	c.SetValue("x")
	if len(rec.values) != 2 || rec.values[0] != "x" || rec.values[1] != "x" {
		t.Fatalf("expected two x events, got %v", rec.values)
	}
	if c.Draft() != "x" {
		t.Fatalf("expected field to show x, got %q", c.Draft())
	}
}

func TestBlurUnchangedEmitsNothing(t *testing.T) {
	c, rec := newRecorded(Options{DefaultTopic: "t"})
	c.Focus()
	c.Enter()
	if len(rec.values) != 0 {
		t.Fatalf("expected no events, got %v", rec.values)
	}
	if c.Focused() {
		t.Fatalf("expected input blurred after enter")
	}
}

func TestEnterCommitsChange(t *testing.T) {
	c, rec := newRecorded(Options{DefaultTopic: "old"})
	c.Focus()
	clearField(c)
	typeText(c, "new/#")
	c.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if c.Value() != "new/#" {
		t.Fatalf("expected committed new/#, got %q", c.Value())
	}
	if len(rec.values) != 1 || rec.values[0] != "new/#" {
		t.Fatalf("expected one new/# event, got %v", rec.values)
	}
	if c.Title() != "MQTT Wall for new/#" {
		t.Fatalf("unexpected title %q", c.Title())
	}
}

func TestEscapeRevertsWithoutEmitting(t *testing.T) {
	c, rec := newRecorded(Options{DefaultTopic: "keep"})
	c.Focus()
	typeText(c, "/more")
	c.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if c.Draft() != "keep" || c.Value() != "keep" {
		t.Fatalf("expected revert to keep, got draft %q value %q", c.Draft(), c.Value())
	}
	if len(rec.values) != 0 {
		t.Fatalf("expected no events, got %v", rec.values)
	}
}

func TestFocusClearsPendingRevert(t *testing.T) {
	c, rec := newRecorded(Options{DefaultTopic: "a"})
	c.Focus()
	c.Escape()

	c.Focus()
	typeText(c, "b")
	c.Blur()
	if len(rec.values) != 1 || rec.values[0] != "ab" {
		t.Fatalf("expected commit of ab after refocus, got %v", rec.values)
	}
}

func TestBlurWhenNotFocusedIsNoop(t *testing.T) {
	c, rec := newRecorded(Options{})
	c.Blur()
	c.Enter()
	if len(rec.values) != 0 {
		t.Fatalf("expected no events, got %v", rec.values)
	}
}

func TestTitle(t *testing.T) {
	if Title("") != "MQTT Wall" {
		t.Fatalf("expected bare title, got %q", Title(""))
	}
	if Title("a/#") != "MQTT Wall for a/#" {
		t.Fatalf("unexpected title %q", Title("a/#"))
	}
}
