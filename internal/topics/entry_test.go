package topics

import (
	"testing"

	"github.com/atomicstack/topicwall/internal/render"
)

func findMark(e *Entry, class string) *render.Node {
	for _, n := range e.Node().Child(KindHeader).Children() {
		if n.Kind() == KindMark && n.HasClass(class) {
			return n
		}
	}
	return nil
}

func newTestEntry(opts Options) (*Entry, *render.Tree) {
	tree := render.NewTree()
	c := NewCollection(tree, tree.Root("messages"), Chronological, opts)
	c.Update("t", "first", false, 0)
	e, _ := c.Entry("t")
	return e, tree
}

func TestCounterTracksUpdates(t *testing.T) {
	tree := render.NewTree()
	c := NewCollection(tree, tree.Root("messages"), Chronological, Options{ShowCounter: true})
	for k := 1; k <= 5; k++ {
		c.Update("t", "p", false, 0)
		e, _ := c.Entry("t")
		if e.Counter() != k {
			t.Fatalf("expected counter %d, got %d", k, e.Counter())
		}
	}
	e, _ := c.Entry("t")
	if got := findMark(e, ClassCounter).Text(); got != "5" {
		t.Fatalf("expected counter mark 5, got %q", got)
	}
}

func TestCounterMarkOnlyWhenConfigured(t *testing.T) {
	e, _ := newTestEntry(Options{})
	if findMark(e, ClassCounter) != nil {
		t.Fatalf("expected no counter mark without ShowCounter")
	}
}

func TestQoSIndicator(t *testing.T) {
	e, _ := newTestEntry(Options{})
	qos := findMark(e, ClassQoS)

	if !qos.Hidden() {
		t.Fatalf("expected qos 0 to hide indicator")
	}
	for _, level := range []int{1, 2} {
		e.ApplyUpdate("p", false, level)
		want := map[int]string{1: "QoS 1", 2: "QoS 2"}[level]
		if qos.Hidden() {
			t.Fatalf("expected qos %d indicator visible", level)
		}
		if qos.Text() != want {
			t.Fatalf("expected %q, got %q", want, qos.Text())
		}
		if v, _ := qos.Attr(AttrQoS); v != want[4:] {
			t.Fatalf("expected qos attr %q, got %q", want[4:], v)
		}
	}
	e.ApplyUpdate("p", false, 0)
	if !qos.Hidden() {
		t.Fatalf("expected indicator hidden again for qos 0")
	}
}

func TestQoSOutOfRangeShownLiterally(t *testing.T) {
	e, _ := newTestEntry(Options{})
	e.ApplyUpdate("p", false, 7)
	if got := findMark(e, ClassQoS).Text(); got != "QoS 7" {
		t.Fatalf("expected literal QoS 7, got %q", got)
	}
}

func TestRetainedMarker(t *testing.T) {
	e, _ := newTestEntry(Options{})
	retain := findMark(e, ClassRetain)
	if !retain.Hidden() || e.Retained() {
		t.Fatalf("expected retain marker hidden for non-retained update")
	}
	e.ApplyUpdate("p", true, 0)
	if retain.Hidden() || !e.Retained() {
		t.Fatalf("expected retain marker visible")
	}
}

func TestEmptyPayloadBecomesNull(t *testing.T) {
	e, _ := newTestEntry(Options{})
	e.ApplyUpdate("", false, 0)
	if e.PayloadNode().Text() != NullPayload || !e.IsSystemPayload() {
		t.Fatalf("expected NULL system payload, got %q sys=%v", e.PayloadNode().Text(), e.IsSystemPayload())
	}
	if !e.PayloadNode().HasClass(ClassSystem) {
		t.Fatalf("expected sys class on payload")
	}

	e.ApplyUpdate("21.5", false, 0)
	if e.PayloadNode().Text() != "21.5" || e.IsSystemPayload() {
		t.Fatalf("expected verbatim payload, got %q sys=%v", e.PayloadNode().Text(), e.IsSystemPayload())
	}
	if e.PayloadNode().HasClass(ClassSystem) {
		t.Fatalf("expected sys class cleared")
	}
}

func TestFirstUpdateHighlightsRowThenPayload(t *testing.T) {
	tree := render.NewTree()
	c := NewCollection(tree, tree.Root("messages"), Chronological, Options{})
	c.Update("t", "one", false, 0)
	e, _ := c.Entry("t")

	if e.IsNew() {
		t.Fatalf("expected isNew cleared after first update")
	}
	if state, ok := e.Node().Animation(); !ok || state.Effect != render.EffectHighlight {
		t.Fatalf("expected full-row highlight on first update")
	}
	if _, ok := e.PayloadNode().Animation(); ok {
		t.Fatalf("expected no payload highlight on first update")
	}

	for i := 0; i < 3; i++ {
		c.Update("t", "again", false, 0)
		if state, ok := e.PayloadNode().Animation(); !ok || state.Effect != render.EffectHighlight {
			t.Fatalf("expected payload highlight on update %d", i+2)
		}
		if e.IsNew() {
			t.Fatalf("expected isNew to stay false")
		}
	}
}
