// Package rebuild is the merge engine: it consumes an original graph root
// plus the pending writes of one update call and produces a new root in
// which every patched node and its ancestors are fresh nodes, while every
// untouched subtree is the original node, reused by reference.
//
// The rebuild is memoized by original-node identity, which guarantees a
// single rebuilt node per shared original and keeps traversal linear in
// the number of reachable nodes. Nodes currently on the rebuild stack are
// tracked so a reference cycle in the input fails fast with
// ErrCycleDetected instead of recursing without bound.
package rebuild
