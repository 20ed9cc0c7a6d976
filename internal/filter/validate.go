package filter

import (
	"fmt"

	"github.com/roach88/spanfilter/internal/value"
)

// ValidationResult lists structural problems found in a tree.
type ValidationResult struct {
	// Valid is true when Problems is empty.
	Valid bool

	Problems []string
}

// Validate checks the shape invariants the constructors guarantee:
//  1. composites have at least two children and no nil children
//  2. null leaves use Equal
//  3. leaves have a non-empty path and a defined operator
//  4. ordering operators are not applied to bools or containers
//
// A nil expression is valid. Validate is a pure function.
func Validate(e Expression) ValidationResult {
	v := &validator{problems: []string{}}
	if e != nil {
		v.validate(e, "$")
	}
	return ValidationResult{
		Valid:    len(v.problems) == 0,
		Problems: v.problems,
	}
}

type validator struct {
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) validate(e Expression, at string) {
	switch node := e.(type) {
	case *Leaf:
		v.validateLeaf(node, at)
	case *And:
		v.validateChildren("AND", node.Children, at)
	case *Or:
		v.validateChildren("OR", node.Children, at)
	case nil:
		v.addProblem("%s: nil expression", at)
	default:
		v.addProblem("%s: unknown expression type %T", at, e)
	}
}

func (v *validator) validateChildren(kind string, children []Expression, at string) {
	if len(children) < 2 {
		v.addProblem("%s: %s with %d children", at, kind, len(children))
	}
	for i, c := range children {
		v.validate(c, fmt.Sprintf("%s.%s[%d]", at, kind, i))
	}
}

func (v *validator) validateLeaf(l *Leaf, at string) {
	if l.Path == "" {
		v.addProblem("%s: leaf with empty path", at)
	}
	if !l.Op.Valid() {
		v.addProblem("%s: leaf %q has invalid operator %s", at, l.Path, l.Op)
		return
	}
	if l.IsNull() {
		if l.Op != Equal {
			v.addProblem("%s: null leaf %q uses %s", at, l.Path, l.Op)
		}
		return
	}
	if l.Op == Equal {
		return
	}
	switch l.Value.(type) {
	case value.Bool, *value.Map, *value.Record:
		v.addProblem("%s: leaf %q orders a %s value", at, l.Path, l.Value.Kind())
	}
}
