package filter

import (
	"strings"

	"github.com/roach88/spanfilter/internal/value"
)

// Evaluate reports whether doc satisfies e. A nil expression matches every
// document.
//
// Leaf paths are split on "." and resolved member by member; a member that
// holds an array fans out over its elements. A null leaf holds when no
// non-null value is found. Any other leaf holds when at least one resolved
// value (or, for an array, one of its elements) satisfies the comparison.
func Evaluate(e Expression, doc value.Value) bool {
	switch node := e.(type) {
	case nil:
		return true
	case *Leaf:
		return evalLeaf(node, doc)
	case *And:
		for _, c := range node.Children {
			if !Evaluate(c, doc) {
				return false
			}
		}
		return true
	case *Or:
		for _, c := range node.Children {
			if Evaluate(c, doc) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func evalLeaf(l *Leaf, doc value.Value) bool {
	found := Resolve(doc, l.Path)

	if l.IsNull() {
		for _, v := range found {
			if !value.IsNull(v) {
				return false
			}
		}
		return true
	}

	for _, v := range found {
		if satisfies(v, l.Op, l.Value) {
			return true
		}
		if arr, ok := v.(value.Array); ok {
			for _, elem := range arr {
				if satisfies(elem, l.Op, l.Value) {
					return true
				}
			}
		}
	}
	return false
}

// satisfies reports whether "stored op want" holds.
func satisfies(stored value.Value, op Operator, want value.Value) bool {
	if value.IsNull(stored) {
		return false
	}
	if op == Equal {
		return value.Equal(stored, want)
	}
	c, ok := value.Compare(stored, want)
	if !ok {
		return false
	}
	switch op {
	case LessThan:
		return c < 0
	case LessThanOrEqual:
		return c <= 0
	case GreaterThan:
		return c > 0
	case GreaterThanOrEqual:
		return c >= 0
	default:
		return false
	}
}

// Resolve returns every value reachable from doc along a dotted path.
// Arrays met before the last segment fan out over their elements; members
// that do not exist contribute nothing.
func Resolve(doc value.Value, path string) []value.Value {
	current := []value.Value{doc}
	for _, seg := range strings.Split(path, ".") {
		var next []value.Value
		for _, node := range current {
			next = appendMember(next, node, seg)
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

func appendMember(out []value.Value, node value.Value, name string) []value.Value {
	if arr, ok := node.(value.Array); ok {
		for _, elem := range arr {
			out = appendMember(out, elem, name)
		}
		return out
	}
	if v, ok := value.Lookup(node, name); ok {
		out = append(out, v)
	}
	return out
}
