package builder

import (
	"github.com/roach88/spanfilter/internal/filter"
	"github.com/roach88/spanfilter/internal/value"
)

// Simple builds the filter for one flattened field.
//
// A null value yields the null leaf alone. Otherwise the result is the
// null leaf OR the endpoint branches on the plain path OR the same branches
// on the array sibling. Bools and opaque values only get the Equal branch;
// ordered values get all five.
func Simple(path string, v value.Value) filter.Expression {
	null := filter.Null(path)
	if value.IsNull(v) {
		return null
	}

	tag := value.TypeTag(v)
	e := endpointAt(path, tag)

	if !value.IsOrdered(tag) {
		return filter.Or(
			null,
			equalBranch(e.op, e.typed, v),
			equalBranch(e.opArr, e.typedArr, v),
		)
	}
	return filter.Or(
		null,
		fiveBranches(e.op, e.typed, v),
		fiveBranches(e.opArr, e.typedArr, v),
	)
}
