// Package regraft applies updates to immutable, possibly shared (DAG-shaped)
// data graphs with copy-on-write semantics and maximal structural sharing.
//
// # Why regraft exists
//
// Code that diffs, memoizes, or re-renders derived state wants cheap change
// detection: "did anything under this subtree change?" answered by a single
// pointer comparison. Hand-writing recursive copy-and-patch logic for every
// update is tedious and easy to get wrong, especially when subtrees are
// shared by several parents. regraft lets the caller write an ordinary
// imperative mutator against a mutable-looking view and turns it into a
// correct persistent update:
//
//	next, err := regraft.Apply(root, func(v *regraft.View) error {
//	    return v.Child("user").Write("name", "ada")
//	})
//	// next.Field("user") is a fresh node; every untouched sibling of
//	// "user" is the same *node.Node as in root.
//
// # How it works
//
// Apply wraps the root in a View bound to a fresh, identity-keyed write
// cache. Reads through the view descend into the original graph; writes
// are recorded in the cache and never touch the original nodes. When the
// mutator returns, a memoized merge pass rebuilds only the patched nodes
// and their ancestors, reusing every untouched subtree by reference. Two
// parents that shared a child in the input share the rebuilt child in the
// output.
//
// The original graph is never modified, so it may be read concurrently by
// any number of Apply calls. Each call owns its private write cache; the
// view handed to one mutator must not escape that mutator.
//
// Trees and DAGs are supported; reference cycles are rejected with
// ErrCycleDetected.
package regraft
