// Package value provides the value-node sum type that requests are expressed in
// before they are flattened into filter paths.
//
// A request is a tree of Value nodes:
//   - containers: *Map (ordered keys), *Record (ordered fields), Array
//   - terminals: String, Bool, Int, Double, DateTime, DateTimeOffset, Opaque
//   - Null
//
// Value is a sealed interface; only types in this package implement it, so
// consumers can switch exhaustively. Containers preserve insertion order,
// which keeps flattening and filter construction deterministic.
//
// Requests reach this package through one of the decoders (DecodeJSON,
// DecodeYAML, FromCUE), through From for plain Go values, or by implementing
// Recorder on a request type. No runtime reflection is involved.
package value
