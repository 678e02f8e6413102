package node

// Kind identifies which variant of the closed node taxonomy a Node belongs
// to. Every consumer switches on this tag instead of probing values
// dynamically.
type Kind uint8

const (
	// KindScalar is an opaque leaf value.
	KindScalar Kind = iota
	// KindSequence is an ordered, integer-indexed collection.
	KindSequence
	// KindMapping is a collection of named fields.
	KindMapping
	// KindCallable is a method attached to a Mapping or Sequence node.
	KindCallable
)

// Composite reports whether nodes of this kind have child slots.
func (k Kind) Composite() bool {
	return k == KindSequence || k == KindMapping
}

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindCallable:
		return "callable"
	default:
		return "unknown"
	}
}
