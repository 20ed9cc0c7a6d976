package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/spanfilter/internal/filter"
)

// evaluateAssertion checks one assertion against the built filter.
// Returns an empty string when it holds.
func evaluateAssertion(a Assertion, expr filter.Expression) string {
	switch a.Type {
	case AssertLeafCount:
		if n := len(filter.Leaves(expr)); n != a.Count {
			return fmt.Sprintf("expected %d leaves, got %d", a.Count, n)
		}
	case AssertHasPath:
		if !hasPath(expr, a.Path) {
			return fmt.Sprintf("no leaf uses path %q", a.Path)
		}
	case AssertLacksPath:
		if hasPath(expr, a.Path) {
			return fmt.Sprintf("a leaf uses path %q", a.Path)
		}
	case AssertValid:
		if res := filter.Validate(expr); !res.Valid {
			return "invalid filter: " + strings.Join(res.Problems, "; ")
		}
	default:
		return fmt.Sprintf("unknown assertion type %q", a.Type)
	}
	return ""
}

func hasPath(expr filter.Expression, path string) bool {
	for _, l := range filter.Leaves(expr) {
		if l.Path == path {
			return true
		}
	}
	return false
}
