// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Vladyslav Kazantsev

package rebuild

import (
	"context"
	"errors"
	"strconv"

	"github.com/vk/regraft/internal/ctxlog"
	"github.com/vk/regraft/internal/patchset"
	"github.com/vk/regraft/node"
)

// ErrCycleDetected is returned when the source graph contains a reference
// cycle. Cycles are unsupported input; failing fast is preferable to
// exhausting the call stack.
var ErrCycleDetected = errors.New("regraft: cycle detected in source graph")

// Rebuild merges the pending writes in cache into a new graph rooted at a
// replacement for root. The original graph is never modified. If nothing
// reachable from root carries a pending write, root itself is returned.
func Rebuild(ctx context.Context, root *node.Node, cache *patchset.Cache) (*node.Node, error) {
	m := &merger{
		cache:   cache,
		memo:    make(map[*node.Node]*node.Node),
		onStack: make(map[*node.Node]struct{}),
	}
	out, err := m.rebuild(root)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("graph rebuilt",
		"patched_nodes", cache.Len(),
		"visited", m.visited,
		"replaced", m.replaced,
	)
	return out, nil
}

type merger struct {
	cache *patchset.Cache

	// memo maps each visited original node to its rebuilt counterpart,
	// guaranteeing at most one rebuilt node per shared original.
	memo map[*node.Node]*node.Node

	// onStack holds the nodes of the current rebuild path for cycle
	// detection.
	onStack map[*node.Node]struct{}

	visited  int
	replaced int
}

func (m *merger) rebuild(n *node.Node) (*node.Node, error) {
	// Leaves have no child slots and patches never target them directly;
	// they are always reused.
	if !n.Kind().Composite() {
		return n, nil
	}
	if r, ok := m.memo[n]; ok {
		return r, nil
	}
	if _, ok := m.onStack[n]; ok {
		return nil, ErrCycleDetected
	}
	m.onStack[n] = struct{}{}
	defer delete(m.onStack, n)
	m.visited++

	patch, _ := m.cache.Get(n)
	var result *node.Node
	var err error
	if n.Kind() == node.KindSequence {
		result, err = m.rebuildSequence(n, patch)
	} else {
		result, err = m.rebuildMapping(n, patch)
	}
	if err != nil {
		return nil, err
	}
	if result != n {
		m.replaced++
	}
	m.memo[n] = result
	return result, nil
}

func (m *merger) rebuildMapping(n *node.Node, patch *patchset.Patch) (*node.Node, error) {
	changed := false
	names := n.FieldNames()
	if patch != nil {
		names = mergeKeys(names, patch.Keys())
	}

	fields := make(map[string]*node.Node, len(names))
	for _, name := range names {
		orig, hasOrig := n.Field(name)
		slot := orig
		if patch != nil {
			if pv, ok := patch.Value(name); ok {
				slot = pv
			}
		}
		// Freshly assigned subtrees may carry patches of their own, so
		// patched-in slots are rebuilt too.
		rb, err := m.rebuild(slot)
		if err != nil {
			return nil, err
		}
		if !hasOrig || rb != orig {
			changed = true
		}
		fields[name] = rb
	}
	if !changed {
		return n, nil
	}
	return node.DeriveMapping(n, fields), nil
}

func (m *merger) rebuildSequence(n *node.Node, patch *patchset.Patch) (*node.Node, error) {
	origLen := n.Len()
	effLen := origLen
	if patch != nil && patch.Coerce() {
		effLen = patch.EffectiveLen(origLen)
	}
	changed := effLen != origLen

	elems := make([]*node.Node, effLen)
	for i := range elems {
		orig, hasOrig := n.Elem(i)
		slot := orig
		if patch != nil {
			if pv, ok := patch.Value(strconv.Itoa(i)); ok {
				slot = pv
			}
		}
		if slot == nil {
			// Grown past both the original elements and the written
			// indices: fill the hole.
			elems[i] = node.Null()
			changed = true
			continue
		}
		rb, err := m.rebuild(slot)
		if err != nil {
			return nil, err
		}
		if !hasOrig || rb != orig {
			changed = true
		}
		elems[i] = rb
	}
	if !changed {
		return n, nil
	}
	return node.DeriveSequence(n, elems), nil
}

// mergeKeys unions two sorted key slices, preserving order and dropping
// duplicates.
func mergeKeys(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
