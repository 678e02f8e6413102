// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Vladyslav Kazantsev

package regraft

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/vk/regraft/internal/patchset"
	"github.com/vk/regraft/node"
)

// RawNodeKey is the reserved marker property. Reading it through a view
// yields the wrapped *node.Node itself (the escape hatch Unwrap exposes
// directly); writing it is rejected with ErrProtectedName. It must not be
// used as a data field name.
const RawNodeKey = "__regraft_node__"

// protectedNames is the fixed set of reserved marker names guarded at the
// write site.
var protectedNames = map[string]struct{}{
	RawNodeKey: {},
}

// BoundMethod is a method read from a view, bound so that the view is its
// receiver: any writes the method performs are recorded in the view's
// write cache, not applied to the underlying node.
type BoundMethod func(args ...any) (any, error)

// View is the mutable-looking wrapper handed to a mutator. Reads descend
// into the wrapped node's graph; writes are redirected into the update
// call's write cache, so the wrapped node is never modified.
//
// Views are ephemeral: they are valid only for the duration of the mutator
// call they were created in. Several views may transiently wrap the same
// node; they observe the same pending writes.
type View struct {
	cache  *patchset.Cache
	target *node.Node
}

// Unwrap returns the node the view wraps. This is the escape hatch for
// re-parenting a live subtree elsewhere in the same update without leaving
// it wrapped; Write performs the same unwrapping automatically when it is
// handed a *View.
func (v *View) Unwrap() *node.Node {
	return v.target
}

// Kind returns the kind of the wrapped node.
func (v *View) Kind() node.Kind {
	return v.target.Kind()
}

// Read returns the value at key, observing pending writes first
// (read-your-writes). Scalar slots are returned verbatim, composite slots
// are wrapped in a new View sharing this view's write cache, and methods
// are returned as a BoundMethod whose receiver is this view. A missing key
// yields nil. Reading RawNodeKey yields the wrapped *node.Node.
func (v *View) Read(key string) any {
	if key == RawNodeKey {
		return v.target
	}
	if fn, ok := v.target.Callable(key); ok {
		return v.bind(fn)
	}
	if p, ok := v.cache.Get(v.target); ok {
		if pv, ok := p.Value(key); ok {
			return v.materialize(pv)
		}
	}
	if v.target.Kind() == node.KindSequence {
		if key == patchset.LengthKey {
			return v.Len()
		}
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 {
			return nil
		}
		orig, ok := v.target.Elem(i)
		if !ok {
			// Within the effective length but never written: a hole.
			return nil
		}
		return v.materialize(orig)
	}
	f, ok := v.target.Field(key)
	if !ok {
		return nil
	}
	return v.materialize(f)
}

// Write records a pending value for key in the write cache. The value may
// be a *node.Node, another *View (unwrapped to its node, so a persisted
// graph never contains a view), or any other Go value, which is boxed as
// an opaque scalar. Writes to methods and to reserved marker names fail;
// writes to sequence targets go through the length-invariant maintenance
// of the write cache.
func (v *View) Write(key string, value any) error {
	if _, ok := v.target.Callable(key); ok {
		return fmt.Errorf("%w: %q", ErrWriteToMethod, key)
	}
	if _, ok := protectedNames[key]; ok {
		return fmt.Errorf("%w: %q", ErrProtectedName, key)
	}
	n := toNode(value)
	if v.target.Kind() == node.KindSequence {
		return v.cache.SetSequence(v.target, v.target.Len(), key, n)
	}
	v.cache.Set(v.target, key, n)
	return nil
}

// Keys enumerates the view's effective keys: the union of the wrapped
// node's own keys and the keys with pending writes, so writes made earlier
// in the same mutator are visible immediately. Sequence views enumerate
// their effective indices as decimal strings; the derived length property
// is not enumerated.
func (v *View) Keys() []string {
	if v.target.Kind() == node.KindSequence {
		n := v.Len()
		keys := make([]string, n)
		for i := range keys {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	}
	names := v.target.FieldNames()
	p, ok := v.cache.Get(v.target)
	if !ok {
		return names
	}
	set := make(map[string]struct{}, len(names))
	for _, k := range names {
		set[k] = struct{}{}
	}
	for _, k := range p.Keys() {
		if _, dup := set[k]; !dup {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// Has reports whether key is one of the view's effective keys.
func (v *View) Has(key string) bool {
	if v.target.Kind() == node.KindSequence {
		i, err := strconv.Atoi(key)
		return err == nil && i >= 0 && i < v.Len()
	}
	if _, ok := v.target.Field(key); ok {
		return true
	}
	if p, ok := v.cache.Get(v.target); ok {
		if _, ok := p.Value(key); ok {
			return true
		}
	}
	return false
}

// Len returns the effective length of a sequence view (pending length if
// set, else the wrapped node's length), or the number of effective keys
// for a mapping view.
func (v *View) Len() int {
	if v.target.Kind() == node.KindSequence {
		if p, ok := v.cache.Get(v.target); ok {
			return p.EffectiveLen(v.target.Len())
		}
		return v.target.Len()
	}
	return len(v.Keys())
}

// Child returns the view at key if the slot holds a composite node, and
// nil otherwise.
func (v *View) Child(key string) *View {
	c, _ := v.Read(key).(*View)
	return c
}

// Index reads the i-th element of a sequence view.
func (v *View) Index(i int) any {
	return v.Read(strconv.Itoa(i))
}

// SetIndex writes the i-th element of a sequence view, growing the
// effective length to i+1 when i lands past the end.
func (v *View) SetIndex(i int, value any) error {
	return v.Write(strconv.Itoa(i), value)
}

// SetLength sets a sequence view's pending length. Shrinking drops the
// trailing elements; growing fills with nil-scalar holes.
func (v *View) SetLength(n int) error {
	return v.Write(patchset.LengthKey, n)
}

// Append writes value at the current effective length of a sequence view.
func (v *View) Append(value any) error {
	return v.SetIndex(v.Len(), value)
}

// materialize converts a slot's node into what Read hands back: the bare
// value for scalars, a bound method for callables, a sub-view otherwise.
func (v *View) materialize(n *node.Node) any {
	switch n.Kind() {
	case node.KindScalar:
		return n.Value()
	case node.KindCallable:
		return v.bind(func(recv node.Receiver, args ...any) (any, error) {
			return n.Invoke(recv, args...)
		})
	default:
		return &View{cache: v.cache, target: n}
	}
}

func (v *View) bind(fn node.Callable) BoundMethod {
	return func(args ...any) (any, error) {
		return fn(v, args...)
	}
}

// toNode normalizes a written value for storage in the write cache: views
// are unwrapped to their underlying node, nodes pass through, and anything
// else is boxed as an opaque scalar.
func toNode(value any) *node.Node {
	switch x := value.(type) {
	case *View:
		return x.target
	case *node.Node:
		return x
	default:
		return node.Scalar(x)
	}
}
