// Package harness runs YAML filter scenarios end to end.
//
// A scenario names a request, an optional set of stored documents and the
// ids the built filter must match:
//
//	name: price_point
//	description: a single price matches every stored range containing it
//	request:
//	  price: 15
//	documents:
//	  d1: {price: {operator: GreaterThanEqual, value: {int: 10}}}
//	  d2: {price: {operator: LessThan, value: {int: 10}}}
//	expect_match: [d1]
//
// Run builds the filter with internal/builder, evaluates it in memory
// against every document and, unless skip_store is set, runs the same
// filter through an in-memory SQLite store. Both result sets must agree.
//
// RunWithGolden additionally snapshots the rendered filter with goldie.
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
