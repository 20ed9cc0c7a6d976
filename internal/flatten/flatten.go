// Package flatten turns a request value graph into an ordered list of
// (path, value) pairs.
//
// Member names are joined to their parent with "." below the base path and
// with "-" at every deeper level, so {a: {b: 1}} flattens to "a-b" and, with
// base path "conditions", to "conditions.a-b". Array elements reuse the
// array's path.
package flatten

import (
	"fmt"
	"slices"

	"github.com/roach88/spanfilter/internal/naming"
	"github.com/roach88/spanfilter/internal/value"
)

// DefaultReservedKey names the member that carries span declarations.
const DefaultReservedKey = "Spans"

const (
	topSeparator    = "."
	nestedSeparator = "-"
)

// PathValue is one flattened leaf of a request.
type PathValue struct {
	Path  string
	Value value.Value
}

func (p PathValue) String() string {
	return fmt.Sprintf("{%s, %s}", p.Path, value.Format(p.Value))
}

// Options configures a walk. The zero value camelizes member names and
// reserves "Spans".
type Options struct {
	// Casing maps member names to path segments. Defaults to naming.Camelize.
	Casing naming.Func

	// ReservedKey is skipped in maps and records. Defaults to "Spans".
	ReservedKey string

	// Terminals lists record type names that are never decomposed.
	// Strings and timestamps are always terminal.
	Terminals []string
}

func (o Options) withDefaults() Options {
	if o.Casing == nil {
		o.Casing = naming.Camelize
	}
	if o.ReservedKey == "" {
		o.ReservedKey = DefaultReservedKey
	}
	return o
}

// Flatten walks v and returns its leaves in member order.
//
// A member whose own walk yields nothing is emitted as a leaf unless it is a
// map: nulls, scalars, empty arrays and field-less records all become
// pairs, while empty maps disappear. Scalars and null at the root yield
// nothing.
func Flatten(v value.Value, basePath string, opts Options) []PathValue {
	w := walker{opts: opts.withDefaults()}
	return w.walk(v, basePath, topSeparator)
}

type walker struct {
	opts Options
}

func (w *walker) walk(v value.Value, base, sep string) []PathValue {
	if value.IsNull(v) || w.isTerminal(v) {
		return nil
	}

	prefix := base
	if base != "" {
		prefix += sep
	}

	var out []PathValue
	switch node := v.(type) {
	case *value.Map:
		for _, e := range node.Entries() {
			if e.Key == w.opts.ReservedKey {
				continue
			}
			out = w.member(out, prefix+w.opts.Casing(e.Key), e.Value)
		}
	case *value.Record:
		for _, f := range node.Fields {
			if f.Name == w.opts.ReservedKey {
				continue
			}
			out = w.member(out, prefix+w.opts.Casing(f.Name), f.Value)
		}
	case value.Array:
		for _, elem := range node {
			out = w.member(out, base, elem)
		}
	}
	return out
}

// member appends the leaves of child, or child itself when it has none.
// Elements of a root-level array have no path and are never emitted.
func (w *walker) member(out []PathValue, path string, child value.Value) []PathValue {
	nested := w.walk(child, path, nestedSeparator)
	if len(nested) > 0 {
		return append(out, nested...)
	}
	if _, isMap := child.(*value.Map); isMap || path == "" {
		return out
	}
	if child == nil {
		child = value.Null{}
	}
	return append(out, PathValue{Path: path, Value: child})
}

func (w *walker) isTerminal(v value.Value) bool {
	switch node := v.(type) {
	case value.String, value.DateTime, value.DateTimeOffset:
		return true
	case *value.Record:
		return slices.Contains(w.opts.Terminals, node.Type)
	default:
		return false
	}
}
