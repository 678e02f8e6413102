package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalar(t *testing.T) {
	n := Scalar(42)
	assert.Equal(t, KindScalar, n.Kind())
	assert.Equal(t, 42, n.Value())
	assert.False(t, n.Kind().Composite())

	assert.Nil(t, Null().Value())
	assert.Equal(t, KindScalar, Null().Kind())
}

func TestMapping(t *testing.T) {
	child := Scalar("x")
	src := map[string]*Node{"a": child}
	n := Mapping(src)

	require.Equal(t, KindMapping, n.Kind())
	assert.True(t, n.Kind().Composite())

	got, ok := n.Field("a")
	require.True(t, ok)
	assert.Same(t, child, got)

	_, ok = n.Field("missing")
	assert.False(t, ok)

	// The constructor copies its input; later mutation of the source map
	// must not leak into the node.
	src["b"] = Scalar("y")
	_, ok = n.Field("b")
	assert.False(t, ok)

	assert.Equal(t, []string{"a"}, n.FieldNames())
}

func TestSequence(t *testing.T) {
	a, b := Scalar(1), Scalar(2)
	n := Sequence(a, b)

	require.Equal(t, KindSequence, n.Kind())
	assert.Equal(t, 2, n.Len())

	got, ok := n.Elem(1)
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = n.Elem(2)
	assert.False(t, ok)
	_, ok = n.Elem(-1)
	assert.False(t, ok)
}

func TestCallableLookup(t *testing.T) {
	fn := Callable(func(recv Receiver, args ...any) (any, error) {
		return "called", nil
	})

	t.Run("attached method", func(t *testing.T) {
		base := Sequence(Scalar(1))
		seq := base.WithMethod("push", NewCallable(fn))

		got, ok := seq.Callable("push")
		require.True(t, ok)
		out, err := got(nil)
		require.NoError(t, err)
		assert.Equal(t, "called", out)

		// WithMethod derives a copy; the base node is untouched.
		_, ok = base.Callable("push")
		assert.False(t, ok)
	})

	t.Run("callable-kind field", func(t *testing.T) {
		m := Mapping(map[string]*Node{"greet": NewCallable(fn)})
		_, ok := m.Callable("greet")
		assert.True(t, ok)
		// The field is data-visible too, tagged as callable.
		f, ok := m.Field("greet")
		require.True(t, ok)
		assert.Equal(t, KindCallable, f.Kind())
	})

	t.Run("invoke on wrong kind", func(t *testing.T) {
		_, err := Scalar(1).Invoke(nil)
		assert.Error(t, err)
	})
}

func TestWithMethodPanics(t *testing.T) {
	assert.Panics(t, func() {
		Scalar(1).WithMethod("m", NewCallable(func(Receiver, ...any) (any, error) { return nil, nil }))
	})
	assert.Panics(t, func() {
		Mapping(nil).WithMethod("m", Scalar(1))
	})
}

func TestDeriveCarriesMethods(t *testing.T) {
	fn := NewCallable(func(Receiver, ...any) (any, error) { return nil, nil })

	m := Mapping(map[string]*Node{"x": Scalar(1)}).WithMethod("bump", fn)
	dm := DeriveMapping(m, map[string]*Node{"x": Scalar(2)})
	_, ok := dm.Callable("bump")
	assert.True(t, ok)

	s := Sequence(Scalar(1)).WithMethod("push", fn)
	ds := DeriveSequence(s, []*Node{Scalar(1), Scalar(2)})
	_, ok = ds.Callable("push")
	assert.True(t, ok)
	assert.Equal(t, 2, ds.Len())
}
