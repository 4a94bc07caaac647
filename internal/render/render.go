// Package render provides the abstract view capability used by the wall
// components and an in-memory node tree implementing it. Components mutate
// nodes through the Renderer interface only; the Bubble Tea view walks the
// Tree to draw the current frame.
package render

// Renderer is the set of view operations available to components.
// Implementations are not safe for concurrent use; all calls happen on the
// UI goroutine.
type Renderer interface {
	Create(kind, text string) *Node
	Append(parent, n *Node)
	Prepend(parent, n *Node)
	InsertAfter(ref, n *Node)
	Remove(n *Node)
	SetText(n *Node, text string)
	ToggleClass(n *Node, class string, on bool)
	SetAttr(n *Node, key, value string)
	Animate(n *Node, anim Animation)
}

// ClassHidden hides a node (and its subtree) from the drawn output.
const ClassHidden = "hidden"

// Node is a single view element. Fields are only mutated through a Renderer.
type Node struct {
	kind     string
	text     string
	classes  map[string]struct{}
	attrs    map[string]string
	parent   *Node
	children []*Node
	anim     *animation
}

func newNode(kind, text string) *Node {
	return &Node{
		kind:    kind,
		text:    text,
		classes: make(map[string]struct{}),
		attrs:   make(map[string]string),
	}
}

func (n *Node) Kind() string { return n.kind }
func (n *Node) Text() string { return n.text }
func (n *Node) Parent() *Node { return n.parent }

// HasClass reports whether the class is set on the node.
func (n *Node) HasClass(class string) bool {
	_, ok := n.classes[class]
	return ok
}

// Hidden reports whether the node carries the hidden class.
func (n *Node) Hidden() bool {
	return n.HasClass(ClassHidden)
}

// Attr returns the metadata value stored under key.
func (n *Node) Attr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Children returns a copy of the node's children in display order.
func (n *Node) Children() []*Node {
	dup := make([]*Node, len(n.children))
	copy(dup, n.children)
	return dup
}

// Child returns the first direct child with the given kind.
func (n *Node) Child(kind string) *Node {
	for _, c := range n.children {
		if c.kind == kind {
			return c
		}
	}
	return nil
}

// Index returns the position of the node among its siblings, or -1.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}
