// Package node defines the immutable value model the rest of the library
// operates over. Every value reachable from a graph root is a *Node tagged
// with exactly one Kind: Scalar (opaque leaf), Sequence (ordered,
// integer-indexed), Mapping (named fields), or Callable (a method attached
// to a composite node).
//
// Nodes are immutable after construction and may be shared freely: a node
// can be referenced by any number of parents, forming a DAG. Pointer
// identity is node identity, and the update machinery relies on it for
// aliasing detection and structural sharing. Reference cycles are not
// supported.
package node
