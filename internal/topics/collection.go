// Package topics holds the keyed, ordered registry of topic entries shown on
// the wall. A Collection has a single writer (the UI goroutine) and positions
// each entry view exactly once, when the topic is first seen.
package topics

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"

	"github.com/atomicstack/topicwall/internal/logging/events"
	"github.com/atomicstack/topicwall/internal/render"
)

// Policy decides where a newly seen topic is inserted.
type Policy int

const (
	Alphabetical Policy = iota
	Chronological
)

func (p Policy) String() string {
	switch p {
	case Alphabetical:
		return "alphabetical"
	case Chronological:
		return "chronological"
	default:
		return "unknown"
	}
}

// ParsePolicy accepts the names produced by Policy.String.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "alphabetical", "alpha":
		return Alphabetical, nil
	case "chronological", "chrono":
		return Chronological, nil
	default:
		return Alphabetical, errors.Errorf("unknown sort policy %q", name)
	}
}

// Collection owns the entries and their presentation order.
type Collection struct {
	r       render.Renderer
	parent  *render.Node
	opts    Options
	policy  Policy
	order   []string
	entries map[string]*Entry
}

// NewCollection returns an empty collection rendering entries under parent.
func NewCollection(r render.Renderer, parent *render.Node, policy Policy, opts Options) *Collection {
	c := &Collection{r: r, parent: parent, opts: opts, policy: policy}
	c.Reset()
	return c
}

// Reset drops every entry and removes their views.
func (c *Collection) Reset() {
	for _, key := range c.order {
		if e := c.entries[key]; e != nil {
			c.r.Remove(e.root)
		}
	}
	if n := len(c.order); n > 0 {
		events.Topic.Reset(n)
	}
	c.order = nil
	c.entries = make(map[string]*Entry)
}

// Update routes a delivered message to its entry, creating and positioning
// the entry on first sighting.
func (c *Collection) Update(key, payload string, retained bool, qos int) {
	e, ok := c.entries[key]
	if !ok {
		e = newEntry(c.r, key, c.opts)
		c.insert(e)
		c.entries[key] = e
	}
	e.ApplyUpdate(payload, retained, qos)
}

func (c *Collection) insert(e *Entry) {
	switch c.policy {
	case Chronological:
		c.insertChronologically(e)
	default:
		c.insertAlphabetically(e)
	}
	events.Topic.Create(e.key, c.policy.String(), c.indexOf(e.key))
}

func (c *Collection) insertChronologically(e *Entry) {
	c.order = append(c.order, e.key)
	c.r.Append(c.parent, e.root)
}

func (c *Collection) insertAlphabetically(e *Entry) {
	if len(c.order) == 0 {
		c.insertChronologically(e)
		return
	}

	sorted := make([]string, len(c.order), len(c.order)+1)
	copy(sorted, c.order)
	sorted = append(sorted, e.key)
	sort.Strings(sorted)
	n := sort.SearchStrings(sorted, e.key)

	if n == 0 {
		c.order = append([]string{e.key}, c.order...)
		c.r.Prepend(c.parent, e.root)
		return
	}

	prev := sorted[n-1]
	at := c.indexOf(prev) + 1
	c.order = append(c.order, "")
	copy(c.order[at+1:], c.order[at:])
	c.order[at] = e.key
	c.r.InsertAfter(c.entries[prev].root, e.root)
}

func (c *Collection) indexOf(key string) int {
	for i, k := range c.order {
		if k == key {
			return i
		}
	}
	return -1
}

// SetPolicy changes the policy used for future insertions. Entries already
// on the wall keep their positions.
func (c *Collection) SetPolicy(p Policy) {
	if p == c.policy {
		return
	}
	events.Topic.Policy(c.policy.String(), p.String())
	c.policy = p
}

func (c *Collection) Policy() Policy { return c.policy }
func (c *Collection) Len() int       { return len(c.order) }

// Keys returns topics in presentation order.
func (c *Collection) Keys() []string {
	return append([]string(nil), c.order...)
}

// Entry returns the entry for key, if it has been seen.
func (c *Collection) Entry(key string) (*Entry, bool) {
	e, ok := c.entries[key]
	return e, ok
}

// Match returns the topics, in presentation order, that fuzzily match query.
// An empty query matches everything.
func (c *Collection) Match(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.Keys()
	}
	out := make([]string, 0, len(c.order))
	for _, key := range c.order {
		if fuzzy.MatchFold(query, key) {
			out = append(out, key)
		}
	}
	return out
}
