package ctyconv

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/regraft/node"
)

// FromValue converts a cty value into a node graph. Objects and maps
// become mapping nodes, tuples, lists and sets become sequence nodes, and
// primitives become scalar nodes holding native Go payloads (string, bool,
// int64 or float64). Null values of any type become nil scalars. Unknown
// values and capsule types are rejected.
func FromValue(v cty.Value) (*node.Node, error) {
	if v.IsNull() {
		return node.Null(), nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("ctyconv: unknown value of type %s", v.Type().FriendlyName())
	}

	t := v.Type()
	switch {
	case t.Equals(cty.String):
		return node.Scalar(v.AsString()), nil
	case t.Equals(cty.Bool):
		return node.Scalar(v.True()), nil
	case t.Equals(cty.Number):
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return node.Scalar(i), nil
		}
		f, _ := bf.Float64()
		return node.Scalar(f), nil
	case t.IsObjectType():
		fields := make(map[string]*node.Node, len(t.AttributeTypes()))
		for name := range t.AttributeTypes() {
			child, err := FromValue(v.GetAttr(name))
			if err != nil {
				return nil, fmt.Errorf("ctyconv: attribute %q: %w", name, err)
			}
			fields[name] = child
		}
		return node.Mapping(fields), nil
	case t.IsMapType():
		fields := make(map[string]*node.Node, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			child, err := FromValue(ev)
			if err != nil {
				return nil, fmt.Errorf("ctyconv: key %q: %w", k.AsString(), err)
			}
			fields[k.AsString()] = child
		}
		return node.Mapping(fields), nil
	case t.IsTupleType(), t.IsListType(), t.IsSetType():
		elems := make([]*node.Node, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			child, err := FromValue(ev)
			if err != nil {
				return nil, fmt.Errorf("ctyconv: element %d: %w", len(elems), err)
			}
			elems = append(elems, child)
		}
		return node.Sequence(elems...), nil
	default:
		return nil, fmt.Errorf("ctyconv: unsupported type %s", t.FriendlyName())
	}
}

// ToValue converts a node graph back into a cty value. Mappings become
// objects, sequences become tuples, and scalars must hold one of the
// payload types FromValue produces (or a cty.Value, passed through).
// Callable-kind slots and attached methods are behavior, not data, and are
// skipped.
func ToValue(n *node.Node) (cty.Value, error) {
	switch n.Kind() {
	case node.KindScalar:
		return scalarValue(n.Value())
	case node.KindMapping:
		attrs := make(map[string]cty.Value)
		for _, name := range n.FieldNames() {
			child, _ := n.Field(name)
			if child.Kind() == node.KindCallable {
				continue
			}
			cv, err := ToValue(child)
			if err != nil {
				return cty.NilVal, fmt.Errorf("ctyconv: field %q: %w", name, err)
			}
			attrs[name] = cv
		}
		if len(attrs) == 0 {
			return cty.EmptyObjectVal, nil
		}
		return cty.ObjectVal(attrs), nil
	case node.KindSequence:
		elems := make([]cty.Value, 0, n.Len())
		for i := 0; i < n.Len(); i++ {
			child, _ := n.Elem(i)
			cv, err := ToValue(child)
			if err != nil {
				return cty.NilVal, fmt.Errorf("ctyconv: element %d: %w", i, err)
			}
			elems = append(elems, cv)
		}
		if len(elems) == 0 {
			return cty.EmptyTupleVal, nil
		}
		return cty.TupleVal(elems), nil
	default:
		return cty.NilVal, fmt.Errorf("ctyconv: cannot convert %s node", n.Kind())
	}
}

func scalarValue(v any) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return x, nil
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	default:
		return cty.NilVal, fmt.Errorf("ctyconv: unsupported scalar payload %T", v)
	}
}
