package patchset

import (
	"sort"

	"github.com/vk/regraft/node"
)

// LengthKey is the derived-length property of sequence targets. Writing it
// adjusts the pending length instead of recording a field.
const LengthKey = "length"

// Cache stores the pending writes of one update call, keyed by the
// identity of the target node.
type Cache struct {
	entries map[*node.Node]*Patch
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[*node.Node]*Patch)}
}

// Get returns the patch recorded for n, if any.
func (c *Cache) Get(n *node.Node) (*Patch, bool) {
	p, ok := c.entries[n]
	return p, ok
}

// Ensure returns the patch for n, creating an empty one if none exists.
func (c *Cache) Ensure(n *node.Node) *Patch {
	if p, ok := c.entries[n]; ok {
		return p
	}
	p := &Patch{values: make(map[string]*node.Node)}
	c.entries[n] = p
	return p
}

// Set records a pending value for one property of a mapping target,
// overwriting any earlier write to the same property.
func (c *Cache) Set(target *node.Node, key string, value *node.Node) {
	c.Ensure(target).values[key] = value
}

// Len returns the number of nodes that carry at least one pending write.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Patch is the set of pending writes against a single node.
type Patch struct {
	values map[string]*node.Node

	// coerce marks the patch for re-materialization as an ordered
	// sequence by the merge engine.
	coerce bool

	// length is the pending sequence length; meaningful only when hasLen
	// is set.
	length int
	hasLen bool
}

// Value returns the pending node for key, if one was written.
func (p *Patch) Value(key string) (*node.Node, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the sorted property names with pending writes.
func (p *Patch) Keys() []string {
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Coerce reports whether the patched result must be materialized as a
// sequence.
func (p *Patch) Coerce() bool {
	return p.coerce
}

// EffectiveLen returns the sequence length the patch implies: the pending
// length if one was recorded, else the original length.
func (p *Patch) EffectiveLen(origLen int) int {
	if p.hasLen {
		return p.length
	}
	return origLen
}
