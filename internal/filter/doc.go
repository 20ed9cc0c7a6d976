// Package filter defines the boolean filter-expression trees produced by the
// builder and consumed by search backends.
//
// # Expression Types
//
// Expression is a sealed interface with three variants:
//   - *Leaf: a single comparison "stored value at Path <Op> Value"
//   - *And: every child must hold
//   - *Or: at least one child must hold
//
// A Leaf whose Value is null always uses Equal and reads "Path is absent or
// null". Trees are immutable once built; combinators return new trees.
//
// # Construction
//
// The smart constructors keep trees normalized: Or drops nil operands and
// never returns an empty or single-child disjunction, And folds its operands
// with AndUnique. A nil Expression means "no constraint".
//
// # Combination
//
// AndUnique conjoins two expressions and removes clauses made redundant by
// the incoming one. Two clauses are duplicates when their primary paths
// (PrimaryPath) are equal:
//
//	a := filter.Eq("name.value.string", value.String("x"))
//	b := filter.Eq("name.value.string", value.String("y"))
//	filter.AndUnique(a, b) // == b
//
// This is intentionally coarse: two different constraints on the same path
// collapse to the later one.
//
// # Consumers
//
// Evaluate decides whether a stored document satisfies a tree, Format
// renders it for humans and MarshalJSON/Fingerprint give it a canonical,
// content-addressed form. The querysql package compiles trees to SQLite.
package filter
