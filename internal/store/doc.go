// Package store provides SQLite-backed storage for JSON documents that
// filter expressions are run against.
//
// Documents are written as canonical JSON (sorted keys, NFC strings) so
// identical content always produces identical rows and content hashes.
//
// # Deterministic Query Results
//
// Every multi-row query orders by id ASC COLLATE BINARY, so Find returns
// the same ids in the same order as evaluating the filter in memory over
// the documents sorted by id.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Filters are compiled to WHERE clauses by internal/querysql.
package store
