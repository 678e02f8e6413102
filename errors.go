package regraft

import (
	"errors"

	"github.com/vk/regraft/internal/patchset"
	"github.com/vk/regraft/internal/rebuild"
)

var (
	// ErrWriteToMethod is returned when a mutator assigns to a property
	// that resolves to a method; methods are not assignable.
	ErrWriteToMethod = errors.New("regraft: cannot assign to a method")

	// ErrProtectedName is returned when a mutator assigns to one of the
	// reserved marker names.
	ErrProtectedName = errors.New("regraft: assignment to reserved property name")

	// ErrNotComposite is returned by Apply when the root is not a mapping
	// or sequence node.
	ErrNotComposite = errors.New("regraft: root must be a mapping or sequence")

	// ErrSequenceKey is returned when a sequence node is written under a
	// key that is neither a non-negative integer index nor "length".
	ErrSequenceKey = patchset.ErrSequenceKey

	// ErrCycleDetected is returned when the source graph contains a
	// reference cycle.
	ErrCycleDetected = rebuild.ErrCycleDetected
)
