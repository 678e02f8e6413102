// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Vladyslav Kazantsev

package node

import (
	"fmt"
	"sort"
)

// Receiver is the calling convention for Callable nodes. When a method is
// invoked through a staging view, the view itself (not the raw node) is
// passed as the receiver, so that any writes the method performs are
// recorded rather than applied in place.
type Receiver interface {
	// Read returns the value at key: a Go scalar for scalar slots, a view
	// for composite slots, or nil if the key is absent.
	Read(key string) any
	// Write records a pending value for key.
	Write(key string, value any) error
}

// Callable is the implementation of a method node. Methods receive the
// staging view they were read from as their receiver.
type Callable func(recv Receiver, args ...any) (any, error)

// Node is a single immutable value in a data graph. The zero value is not
// usable; construct nodes with Scalar, Sequence, Mapping or NewCallable.
type Node struct {
	kind    Kind
	scalar  any
	fields  map[string]*Node
	elems   []*Node
	fn      Callable
	methods map[string]*Node
}

// Scalar returns a leaf node holding an opaque value. The value is never
// inspected or copied; callers are expected to treat it as immutable.
func Scalar(v any) *Node {
	return &Node{kind: KindScalar, scalar: v}
}

// Null returns a scalar node holding nil. It is the hole value used when a
// sequence grows past its previously written indices.
func Null() *Node {
	return Scalar(nil)
}

// Mapping returns a composite node with the given named fields. The map is
// copied, so the caller may reuse or mutate it afterwards.
func Mapping(fields map[string]*Node) *Node {
	f := make(map[string]*Node, len(fields))
	for k, v := range fields {
		f[k] = v
	}
	return &Node{kind: KindMapping, fields: f}
}

// Sequence returns a composite node with the given ordered elements.
func Sequence(elems ...*Node) *Node {
	e := make([]*Node, len(elems))
	copy(e, elems)
	return &Node{kind: KindSequence, elems: e}
}

// NewCallable returns a method node wrapping fn.
func NewCallable(fn Callable) *Node {
	return &Node{kind: KindCallable, fn: fn}
}

// WithMethod returns a copy of a composite node with the given method
// attached under name. The original node is left untouched. It panics if n
// is not composite or m is not a callable node; attaching methods is a
// construction-time programmer action, not a data operation.
func (n *Node) WithMethod(name string, m *Node) *Node {
	if !n.kind.Composite() {
		panic(fmt.Sprintf("node: WithMethod on %s node", n.kind))
	}
	if m == nil || m.kind != KindCallable {
		panic("node: WithMethod requires a callable node")
	}
	out := &Node{kind: n.kind, fields: n.fields, elems: n.elems}
	out.methods = make(map[string]*Node, len(n.methods)+1)
	for k, v := range n.methods {
		out.methods[k] = v
	}
	out.methods[name] = m
	return out
}

// Kind returns the node's variant tag.
func (n *Node) Kind() Kind {
	return n.kind
}

// Value returns the payload of a scalar node, or nil for other kinds.
func (n *Node) Value() any {
	if n.kind != KindScalar {
		return nil
	}
	return n.scalar
}

// Field returns the named child of a mapping node.
func (n *Node) Field(name string) (*Node, bool) {
	c, ok := n.fields[name]
	return c, ok
}

// FieldNames returns the sorted field names of a mapping node. Method
// names are not included; methods are behavior, not data.
func (n *Node) FieldNames() []string {
	names := make([]string, 0, len(n.fields))
	for name := range n.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Elem returns the i-th element of a sequence node.
func (n *Node) Elem(i int) (*Node, bool) {
	if i < 0 || i >= len(n.elems) {
		return nil, false
	}
	return n.elems[i], true
}

// Len returns the element count of a sequence node, or 0 for other kinds.
func (n *Node) Len() int {
	return len(n.elems)
}

// Callable resolves name to a method implementation on this node. It
// checks attached methods first, then mapping fields that hold callable
// nodes.
func (n *Node) Callable(name string) (Callable, bool) {
	if m, ok := n.methods[name]; ok {
		return m.fn, true
	}
	if f, ok := n.fields[name]; ok && f.kind == KindCallable {
		return f.fn, true
	}
	return nil, false
}

// Invoke calls a callable node with the given receiver and arguments.
func (n *Node) Invoke(recv Receiver, args ...any) (any, error) {
	if n.kind != KindCallable {
		return nil, fmt.Errorf("node: invoke on %s node", n.kind)
	}
	return n.fn(recv, args...)
}

// DeriveMapping builds the replacement for a mapping node: a fresh node
// with the given fields that keeps proto's attached methods. The fields
// map is taken over, not copied; the caller must not modify it afterwards.
// Used by the merge engine when a mapping or one of its descendants was
// patched.
func DeriveMapping(proto *Node, fields map[string]*Node) *Node {
	return &Node{kind: KindMapping, fields: fields, methods: proto.methods}
}

// DeriveSequence is DeriveMapping's counterpart for sequence nodes.
func DeriveSequence(proto *Node, elems []*Node) *Node {
	return &Node{kind: KindSequence, elems: elems, methods: proto.methods}
}
