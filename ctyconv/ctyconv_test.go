package ctyconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/regraft/node"
)

func TestFromValue(t *testing.T) {
	t.Run("primitives", func(t *testing.T) {
		n, err := FromValue(cty.StringVal("hello"))
		require.NoError(t, err)
		assert.Equal(t, "hello", n.Value())

		n, err = FromValue(cty.NumberIntVal(42))
		require.NoError(t, err)
		assert.Equal(t, int64(42), n.Value())

		n, err = FromValue(cty.NumberFloatVal(1.5))
		require.NoError(t, err)
		assert.Equal(t, 1.5, n.Value())

		n, err = FromValue(cty.True)
		require.NoError(t, err)
		assert.Equal(t, true, n.Value())

		n, err = FromValue(cty.NullVal(cty.String))
		require.NoError(t, err)
		assert.Nil(t, n.Value())
	})

	t.Run("object", func(t *testing.T) {
		n, err := FromValue(cty.ObjectVal(map[string]cty.Value{
			"name":  cty.StringVal("demo"),
			"count": cty.NumberIntVal(3),
		}))
		require.NoError(t, err)
		require.Equal(t, node.KindMapping, n.Kind())
		assert.Equal(t, []string{"count", "name"}, n.FieldNames())
		name, _ := n.Field("name")
		assert.Equal(t, "demo", name.Value())
	})

	t.Run("collections become sequences", func(t *testing.T) {
		for name, v := range map[string]cty.Value{
			"tuple": cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.NumberIntVal(1)}),
			"list":  cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
			"set":   cty.SetVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
		} {
			t.Run(name, func(t *testing.T) {
				n, err := FromValue(v)
				require.NoError(t, err)
				assert.Equal(t, node.KindSequence, n.Kind())
				assert.Equal(t, 2, n.Len())
			})
		}
	})

	t.Run("map becomes mapping", func(t *testing.T) {
		n, err := FromValue(cty.MapVal(map[string]cty.Value{"k": cty.StringVal("v")}))
		require.NoError(t, err)
		require.Equal(t, node.KindMapping, n.Kind())
		k, ok := n.Field("k")
		require.True(t, ok)
		assert.Equal(t, "v", k.Value())
	})

	t.Run("unknown rejected", func(t *testing.T) {
		_, err := FromValue(cty.UnknownVal(cty.String))
		assert.Error(t, err)
	})
}

func TestToValueRoundTrip(t *testing.T) {
	in := cty.ObjectVal(map[string]cty.Value{
		"name":    cty.StringVal("demo"),
		"retries": cty.NumberIntVal(3),
		"ratio":   cty.NumberFloatVal(0.5),
		"enabled": cty.True,
		"tags":    cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
		"nested": cty.ObjectVal(map[string]cty.Value{
			"hole": cty.NullVal(cty.String),
		}),
	})

	n, err := FromValue(in)
	require.NoError(t, err)
	out, err := ToValue(n)
	require.NoError(t, err)

	// Null loses its concrete element type on the way through (scalars are
	// opaque), so compare field by field where typing survives.
	assert.True(t, out.GetAttr("name").RawEquals(cty.StringVal("demo")))
	assert.True(t, out.GetAttr("retries").RawEquals(cty.NumberIntVal(3)))
	assert.True(t, out.GetAttr("ratio").RawEquals(cty.NumberFloatVal(0.5)))
	assert.True(t, out.GetAttr("enabled").RawEquals(cty.True))
	assert.True(t, out.GetAttr("tags").RawEquals(cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")})))
	assert.True(t, out.GetAttr("nested").GetAttr("hole").IsNull())
}

func TestToValueSkipsBehavior(t *testing.T) {
	fn := node.NewCallable(func(node.Receiver, ...any) (any, error) { return nil, nil })
	n := node.Mapping(map[string]*node.Node{
		"x":     node.Scalar(1),
		"greet": fn,
	}).WithMethod("bump", fn)

	out, err := ToValue(n)
	require.NoError(t, err)
	assert.True(t, out.RawEquals(cty.ObjectVal(map[string]cty.Value{
		"x": cty.NumberIntVal(1),
	})))
}

func TestToValueErrors(t *testing.T) {
	_, err := ToValue(node.Scalar(struct{}{}))
	assert.Error(t, err)

	fn := node.NewCallable(func(node.Receiver, ...any) (any, error) { return nil, nil })
	_, err = ToValue(fn)
	assert.Error(t, err)
}

func TestToValueEmptyComposites(t *testing.T) {
	out, err := ToValue(node.Mapping(nil))
	require.NoError(t, err)
	assert.True(t, out.RawEquals(cty.EmptyObjectVal))

	out, err = ToValue(node.Sequence())
	require.NoError(t, err)
	assert.True(t, out.RawEquals(cty.EmptyTupleVal))
}
