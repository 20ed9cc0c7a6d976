// Package builder turns a request value graph into a filter expression.
//
// The search backend stores every filterable field either as null, as a
// scalar, or as an endpoint-encoded record
//
//	{"operator": "GreaterThanEqual", "value": {"int": 10}}
//
// meaning "the stored data covers every value v with 10 <= v". Arrays of
// such records live under "values". A request field therefore cannot be
// compared to the stored value directly: each stored operator implies a
// different relation between the stored bound and the query value.
//
// # Rules
//
// Simple turns one (path, value) pair into a disjunction over the stored
// shapes. Between tests one value against an interval stored under two
// sibling paths. Intersection tests whether a query interval overlaps a
// stored one. Build runs the span rules declared in the request, then the
// simple rule for every remaining pair, and AND-merges the results with
// filter.AndUnique.
//
// # Errors
//
// A span with an unrecognized kind aborts Build with a *ConfigurationError.
// Spans naming fields that are absent from the request are skipped.
package builder
