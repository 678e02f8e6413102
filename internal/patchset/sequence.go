package patchset

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vk/regraft/node"
)

// ErrSequenceKey is returned when a sequence target is written under a key
// that is neither a non-negative integer index nor the length property.
var ErrSequenceKey = errors.New("regraft: sequence accepts only index or length writes")

// SetSequence records a pending write against a sequence target while
// keeping the derived length consistent:
//
//   - an integer index write grows the effective length to index+1 when it
//     lands past the end;
//   - a length write below the effective length truncates, discarding the
//     pending entries for the dropped indices; a larger length grows the
//     sequence with holes;
//   - anything else is an ErrSequenceKey violation.
//
// origLen is the target's unpatched element count.
func (c *Cache) SetSequence(target *node.Node, origLen int, key string, value *node.Node) error {
	p := c.Ensure(target)
	p.coerce = true

	if key == LengthKey {
		newLen, ok := intScalar(value)
		if !ok || newLen < 0 {
			return fmt.Errorf("%w: length must be a non-negative integer", ErrSequenceKey)
		}
		if eff := p.EffectiveLen(origLen); newLen < eff {
			for i := newLen; i < eff; i++ {
				delete(p.values, strconv.Itoa(i))
			}
		}
		p.length, p.hasLen = newLen, true
		return nil
	}

	i, err := strconv.Atoi(key)
	if err != nil || i < 0 {
		return fmt.Errorf("%w: key %q", ErrSequenceKey, key)
	}
	// Canonical index form, so "05" and "5" land in the same slot.
	p.values[strconv.Itoa(i)] = value
	if i+1 > p.EffectiveLen(origLen) {
		p.length, p.hasLen = i+1, true
	}
	return nil
}

// intScalar extracts an integer from a scalar node, accepting the integer
// widths a caller would plausibly hand to a length write.
func intScalar(n *node.Node) (int, bool) {
	if n.Kind() != node.KindScalar {
		return 0, false
	}
	switch v := n.Value().(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint:
		return int(v), true
	case float64:
		if v == float64(int(v)) {
			return int(v), true
		}
	}
	return 0, false
}
