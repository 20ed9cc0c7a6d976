package builder

import (
	"github.com/roach88/spanfilter/internal/filter"
	"github.com/roach88/spanfilter/internal/value"
)

// Stored operator names as they appear under "<path>.operator".
const (
	StoredGreaterThanEqual = "GreaterThanEqual"
	StoredGreaterThan      = "GreaterThan"
	StoredEqual            = "Equal"
	StoredLessThan         = "LessThan"
	StoredLessThanEqual    = "LessThanEqual"
)

// endpoint holds the sibling paths of one endpoint-encoded field.
type endpoint struct {
	op       string // <path>.operator
	typed    string // <path>.value.<tag>
	opArr    string // <path>.values.operator
	typedArr string // <path>.values.value.<tag>
}

func endpointAt(path, tag string) endpoint {
	return endpoint{
		op:       path + ".operator",
		typed:    path + ".value." + tag,
		opArr:    path + ".values.operator",
		typedArr: path + ".values.value." + tag,
	}
}

// storedIs tests the stored operator name at opPath.
func storedIs(opPath, stored string) *filter.Leaf {
	return filter.Eq(opPath, value.String(stored))
}

// fiveBranches is the disjunction over every stored operator, each paired
// with the relation the stored bound must have to v:
//
//	GreaterThanEqual  stored <= v
//	GreaterThan       stored <  v
//	Equal             stored == v
//	LessThan          stored >  v
//	LessThanEqual     stored >= v
func fiveBranches(opPath, typedPath string, v value.Value) filter.Expression {
	return filter.Or(
		filter.And(storedIs(opPath, StoredGreaterThanEqual), filter.Lte(typedPath, v)),
		filter.And(storedIs(opPath, StoredGreaterThan), filter.Lt(typedPath, v)),
		filter.And(storedIs(opPath, StoredEqual), filter.Eq(typedPath, v)),
		filter.And(storedIs(opPath, StoredLessThan), filter.Gt(typedPath, v)),
		filter.And(storedIs(opPath, StoredLessThanEqual), filter.Gte(typedPath, v)),
	)
}

// equalBranch is the only branch allowed for unordered values.
func equalBranch(opPath, typedPath string, v value.Value) filter.Expression {
	return filter.And(storedIs(opPath, StoredEqual), filter.Eq(typedPath, v))
}
