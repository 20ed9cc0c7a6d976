package filter

import (
	"slices"

	"github.com/roach88/spanfilter/internal/value"
)

// Null returns a leaf that holds when path is absent or null.
func Null(path string) *Leaf {
	return &Leaf{Path: path, Op: Equal, Value: value.Null{}}
}

// Compare returns a leaf comparing the stored value at path with v.
// A null v always produces the Equal form.
func Compare(path string, op Operator, v value.Value) *Leaf {
	if value.IsNull(v) {
		return Null(path)
	}
	return &Leaf{Path: path, Op: op, Value: v}
}

func Eq(path string, v value.Value) *Leaf  { return Compare(path, Equal, v) }
func Lt(path string, v value.Value) *Leaf  { return Compare(path, LessThan, v) }
func Lte(path string, v value.Value) *Leaf { return Compare(path, LessThanOrEqual, v) }
func Gt(path string, v value.Value) *Leaf  { return Compare(path, GreaterThan, v) }
func Gte(path string, v value.Value) *Leaf { return Compare(path, GreaterThanOrEqual, v) }

// Or builds a disjunction. Nil children are dropped; no children yields nil
// and a single child is returned as is. Nested disjunctions are kept.
func Or(children ...Expression) Expression {
	kept := make([]Expression, 0, len(children))
	for _, c := range children {
		if c != nil {
			kept = append(kept, c)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return &Or{Children: kept}
	}
}

// And folds its operands left to right with AndUnique.
func And(children ...Expression) Expression {
	var acc Expression
	for _, c := range children {
		acc = AndUnique(acc, c)
	}
	return acc
}

// AndUnique conjoins a and b.
//
// Conjunction operands are spliced into a flat clause list. Before each
// operand's clauses are appended, clauses already collected that share a
// PrimaryPath with any of them are removed. A nil operand is the identity,
// and a single surviving clause is returned unwrapped.
func AndUnique(a, b Expression) Expression {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	var clauses []Expression
	clauses = appendUnique(clauses, a)
	clauses = appendUnique(clauses, b)

	if len(clauses) == 1 {
		return clauses[0]
	}
	return &And{Children: clauses}
}

func appendUnique(clauses []Expression, e Expression) []Expression {
	incoming := conjuncts(e)

	paths := make(map[string]struct{}, len(incoming))
	for _, c := range incoming {
		paths[PrimaryPath(c)] = struct{}{}
	}
	clauses = slices.DeleteFunc(clauses, func(c Expression) bool {
		_, dup := paths[PrimaryPath(c)]
		return dup
	})
	return append(clauses, incoming...)
}

// conjuncts returns the top-level clauses of e.
func conjuncts(e Expression) []Expression {
	if and, ok := e.(*And); ok {
		return slices.Clone(and.Children)
	}
	return []Expression{e}
}

// PrimaryPath identifies the field an expression constrains: a leaf's path,
// or the primary path of a composite's first child. Empty for nil or an
// empty composite.
func PrimaryPath(e Expression) string {
	switch node := e.(type) {
	case *Leaf:
		return node.Path
	case *And:
		if len(node.Children) > 0 {
			return PrimaryPath(node.Children[0])
		}
	case *Or:
		if len(node.Children) > 0 {
			return PrimaryPath(node.Children[0])
		}
	}
	return ""
}

// Leaves returns the leaves of e in depth-first order.
func Leaves(e Expression) []*Leaf {
	var out []*Leaf
	var walk func(Expression)
	walk = func(e Expression) {
		switch node := e.(type) {
		case *Leaf:
			out = append(out, node)
		case *And:
			for _, c := range node.Children {
				walk(c)
			}
		case *Or:
			for _, c := range node.Children {
				walk(c)
			}
		}
	}
	walk(e)
	return out
}
