// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Vladyslav Kazantsev

package regraft

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vk/regraft/internal/ctxlog"
	"github.com/vk/regraft/internal/patchset"
	"github.com/vk/regraft/internal/rebuild"
	"github.com/vk/regraft/node"
)

// Apply runs mutator against a staging view of original and returns the
// merged result: a new root in which every node the mutator touched, and
// every ancestor of a touched node, is a fresh node, while every untouched
// subtree is reused by reference from original. If the mutator performed
// no effective write, original itself is returned.
//
// original is never modified, whether the call succeeds or fails. If the
// mutator returns an error, no merge runs and the error is returned; the
// caller never sees a partially merged graph.
func Apply(original *node.Node, mutator func(v *View) error) (*node.Node, error) {
	return ApplyContext(context.Background(), original, mutator)
}

// ApplyContext is Apply with a caller-supplied context, used to carry a
// *slog.Logger (see internal ctxlog conventions); the engine logs at debug
// level only. The mutator runs synchronously to completion before the
// merge begins; there is no cancellation point.
func ApplyContext(ctx context.Context, original *node.Node, mutator func(v *View) error) (*node.Node, error) {
	if original == nil || !original.Kind().Composite() {
		return nil, ErrNotComposite
	}
	cache := patchset.New()
	v := &View{cache: cache, target: original}
	if err := mutator(v); err != nil {
		return nil, fmt.Errorf("regraft: mutator: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("merging pending writes", "patched_nodes", cache.Len())
	return rebuild.Rebuild(ctx, original, cache)
}

// Push is a ready-made sequence method: invoked through a view, it appends
// its arguments by reading the receiver's effective length and writing the
// following indices, all through the write cache. Attach it with
// node.WithMethod:
//
//	seq := node.Sequence(elems...).WithMethod("push", regraft.Push)
//
// Inside a mutator, v.Read("push") then yields a BoundMethod whose writes
// are staged like any other.
var Push = node.NewCallable(func(recv node.Receiver, args ...any) (any, error) {
	length, ok := recv.Read(patchset.LengthKey).(int)
	if !ok {
		return nil, fmt.Errorf("regraft: push: receiver is not a sequence")
	}
	for _, a := range args {
		if err := recv.Write(strconv.Itoa(length), a); err != nil {
			return nil, err
		}
		length++
	}
	return length, nil
})
