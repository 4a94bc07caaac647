package render

import "time"

// Tree is the in-memory Renderer backing the terminal view.
type Tree struct {
	roots  map[string]*Node
	active []*Node
	now    func() time.Time
}

// Option configures a Tree.
type Option func(*Tree)

// WithClock overrides the time source used to start animations.
func WithClock(now func() time.Time) Option {
	return func(t *Tree) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTree returns an empty tree.
func NewTree(opts ...Option) *Tree {
	t := &Tree{roots: make(map[string]*Node), now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var _ Renderer = (*Tree)(nil)

// Root returns the named top-level container, creating it on first use.
func (t *Tree) Root(name string) *Node {
	if r, ok := t.roots[name]; ok {
		return r
	}
	r := newNode("root", name)
	t.roots[name] = r
	return r
}

func (t *Tree) Create(kind, text string) *Node {
	return newNode(kind, text)
}

func (t *Tree) Append(parent, n *Node) {
	if parent == nil || n == nil || parent == n {
		return
	}
	n.detach()
	n.parent = parent
	parent.children = append(parent.children, n)
}

func (t *Tree) Prepend(parent, n *Node) {
	if parent == nil || n == nil || parent == n {
		return
	}
	n.detach()
	n.parent = parent
	parent.children = append([]*Node{n}, parent.children...)
}

// InsertAfter places n immediately after ref among ref's siblings. A detached
// ref leaves n untouched.
func (t *Tree) InsertAfter(ref, n *Node) {
	if ref == nil || n == nil || ref == n || ref.parent == nil {
		return
	}
	n.detach()
	p := ref.parent
	idx := ref.Index()
	p.children = append(p.children, nil)
	copy(p.children[idx+2:], p.children[idx+1:])
	p.children[idx+1] = n
	n.parent = p
}

// Remove detaches the node and stops any animation in its subtree.
func (t *Tree) Remove(n *Node) {
	if n == nil {
		return
	}
	n.detach()
	n.walk(func(c *Node) {
		if c.anim != nil {
			c.anim = nil
			t.dropActive(c)
		}
	})
}

func (t *Tree) SetText(n *Node, text string) {
	if n == nil {
		return
	}
	n.text = text
}

func (t *Tree) ToggleClass(n *Node, class string, on bool) {
	if n == nil || class == "" {
		return
	}
	if on {
		n.classes[class] = struct{}{}
		return
	}
	delete(n.classes, class)
}

func (t *Tree) SetAttr(n *Node, key, value string) {
	if n == nil || key == "" {
		return
	}
	n.attrs[key] = value
}

// Animate starts anim on n, stopping any animation already running there.
func (t *Tree) Animate(n *Node, anim Animation) {
	if n == nil {
		return
	}
	if n.anim == nil {
		t.active = append(t.active, n)
	}
	n.anim = newAnimation(anim, t.now())
}

// Tick advances every in-flight animation to now, runs completion callbacks
// and reports whether any animation is still running.
func (t *Tree) Tick(now time.Time) bool {
	var done []func()
	remaining := t.active[:0]
	for _, n := range t.active {
		if n.anim == nil {
			continue
		}
		if n.anim.step(now) {
			if n.anim.OnDone != nil {
				done = append(done, n.anim.OnDone)
			}
			n.anim = nil
			continue
		}
		remaining = append(remaining, n)
	}
	for i := len(remaining); i < len(t.active); i++ {
		t.active[i] = nil
	}
	t.active = remaining
	for _, fn := range done {
		fn()
	}
	return len(t.active) > 0
}

// Animating reports whether any animation is in flight.
func (t *Tree) Animating() bool {
	return len(t.active) > 0
}

func (t *Tree) dropActive(n *Node) {
	for i, c := range t.active {
		if c == n {
			t.active = append(t.active[:i], t.active[i+1:]...)
			return
		}
	}
}
