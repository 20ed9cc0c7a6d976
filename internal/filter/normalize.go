package filter

import (
	"strings"

	"github.com/roach88/spanfilter/internal/value"
)

// NormalizeStrings returns a copy of e in which string values of leaves at
// path are lower cased. Other leaves are shared with e.
func NormalizeStrings(e Expression, path string) Expression {
	switch node := e.(type) {
	case *Leaf:
		s, ok := node.Value.(value.String)
		if !ok || node.Path != path {
			return node
		}
		return &Leaf{Path: node.Path, Op: node.Op, Value: value.String(strings.ToLower(string(s)))}
	case *And:
		return &And{Children: normalizeChildren(node.Children, path)}
	case *Or:
		return &Or{Children: normalizeChildren(node.Children, path)}
	default:
		return e
	}
}

func normalizeChildren(children []Expression, path string) []Expression {
	out := make([]Expression, len(children))
	for i, c := range children {
		out[i] = NormalizeStrings(c, path)
	}
	return out
}
