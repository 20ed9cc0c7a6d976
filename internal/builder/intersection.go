package builder

import (
	"github.com/roach88/spanfilter/internal/filter"
	"github.com/roach88/spanfilter/internal/flatten"
	"github.com/roach88/spanfilter/internal/value"
)

// Intersection builds the filter for a query interval [from, to] that must
// overlap the interval stored under from.Path and to.Path.
//
// The result is a disjunction of three clauses: the from-side branches, the
// to-side branches and a direct overlap clause. A null bound is open; with
// both bounds null there is no constraint and nil is returned. Each bound's
// typed paths use its own type tag, so a null bound is tagged "object".
func Intersection(from, to flatten.PathValue) filter.Expression {
	fv, tv := from.Value, to.Value
	fromNull, toNull := value.IsNull(fv), value.IsNull(tv)

	if fromNull && toNull {
		return nil
	}

	f := endpointAt(from.Path, value.TypeTag(fv))
	t := endpointAt(to.Path, value.TypeTag(tv))

	switch {
	case toNull:
		return filter.Or(
			filter.Or(
				filter.And(storedIs(f.op, StoredGreaterThanEqual), filter.Lte(f.typed, fv), filter.Eq(t.typed, fv)),
				filter.And(storedIs(f.op, StoredGreaterThan), filter.Lt(f.typed, fv), filter.Eq(t.typed, fv)),
				filter.And(storedIs(f.op, StoredEqual), filter.Eq(f.typed, fv)),
				filter.And(storedIs(f.op, StoredLessThan), filter.Gt(f.typed, fv)),
				filter.And(storedIs(f.op, StoredLessThanEqual), filter.Gte(f.typed, fv)),
			),
			filter.And(filter.Null(to.Path), filter.Lte(f.typed, fv)),
			filter.And(filter.Gte(f.typed, fv), filter.Null(to.Path)),
		)

	case fromNull:
		return filter.Or(
			filter.And(filter.Null(from.Path), filter.Gte(t.typed, tv)),
			filter.Or(
				filter.And(storedIs(t.op, StoredGreaterThanEqual), filter.Lte(t.typed, tv)),
				filter.And(storedIs(t.op, StoredGreaterThan), filter.Lt(t.typed, tv)),
				filter.And(storedIs(t.op, StoredEqual), filter.Eq(t.typed, tv)),
				filter.And(storedIs(t.op, StoredLessThan), filter.Gt(t.typed, tv), filter.Eq(f.typed, tv)),
				filter.And(storedIs(t.op, StoredLessThanEqual), filter.Gte(t.typed, tv), filter.Eq(f.typed, tv)),
			),
			filter.And(filter.Null(from.Path), filter.Lte(t.typed, tv)),
		)

	default:
		return filter.Or(
			filter.Or(
				filter.And(storedIs(f.op, StoredGreaterThanEqual), filter.Lte(f.typed, fv), filter.Gte(t.typed, fv)),
				filter.And(storedIs(f.op, StoredGreaterThan), filter.Lt(f.typed, fv), filter.Gte(t.typed, fv)),
				filter.And(storedIs(f.op, StoredEqual), filter.Eq(f.typed, fv)),
				filter.And(storedIs(f.op, StoredLessThan), filter.Gt(f.typed, fv)),
				filter.And(storedIs(f.op, StoredLessThanEqual), filter.Gte(f.typed, fv)),
			),
			filter.Or(
				filter.And(storedIs(t.op, StoredGreaterThanEqual), filter.Lte(t.typed, tv)),
				filter.And(storedIs(t.op, StoredGreaterThan), filter.Lt(t.typed, tv)),
				filter.And(storedIs(t.op, StoredEqual), filter.Eq(t.typed, tv)),
				filter.And(storedIs(t.op, StoredLessThan), filter.Gt(t.typed, tv), filter.Lte(f.typed, tv)),
				filter.And(storedIs(t.op, StoredLessThanEqual), filter.Gte(t.typed, tv), filter.Lte(f.typed, tv)),
			),
			filter.And(filter.Gte(f.typed, fv), filter.Lte(t.typed, tv)),
		)
	}
}
