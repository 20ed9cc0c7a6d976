package builder

import (
	"github.com/roach88/spanfilter/internal/filter"
	"github.com/roach88/spanfilter/internal/value"
)

// Between builds the filter for a value that must lie inside an interval
// stored as two endpoints, fromPath and toPath.
//
// The from side accepts a missing bound or a lower bound at or below v; the
// to side accepts a missing bound or an upper bound at or above v. Both
// sides must hold.
func Between(fromPath, toPath string, v value.Value) filter.Expression {
	tag := value.TypeTag(v)
	from := endpointAt(fromPath, tag)
	to := endpointAt(toPath, tag)

	fromSide := filter.Or(
		filter.Null(fromPath),
		filter.And(storedIs(from.op, StoredGreaterThanEqual), filter.Lte(from.typed, v)),
		filter.And(storedIs(from.op, StoredGreaterThan), filter.Lt(from.typed, v)),
		filter.And(storedIs(from.op, StoredEqual), filter.Eq(from.typed, v)),
	)

	toSide := filter.Or(
		filter.Null(toPath),
		filter.And(storedIs(to.op, StoredEqual), filter.Eq(to.typed, v)),
		filter.And(storedIs(to.op, StoredLessThan), filter.Gt(to.typed, v)),
		filter.And(storedIs(to.op, StoredLessThanEqual), filter.Gte(to.typed, v)),
	)

	return filter.And(fromSide, toSide)
}
