package builder

import (
	"io"
	"log/slog"

	"github.com/roach88/spanfilter/internal/filter"
	"github.com/roach88/spanfilter/internal/flatten"
	"github.com/roach88/spanfilter/internal/naming"
	"github.com/roach88/spanfilter/internal/span"
	"github.com/roach88/spanfilter/internal/value"
)

// Options configures a Builder. The zero value camelizes member names,
// reserves "Spans" and uses no base path.
type Options struct {
	// BasePath prefixes every generated path, e.g. "conditions".
	BasePath string

	// Casing maps member names to path segments. Defaults to naming.Camelize.
	Casing naming.Func

	// ReservedKey names the span declaration member. Defaults to "Spans".
	ReservedKey string

	// Terminals lists record type names that are never decomposed.
	Terminals []string

	// NormalizePaths lists leaf paths whose string values are lower cased
	// after the filter is built.
	NormalizePaths []string

	// Logger receives debug output about skipped spans. Defaults to a
	// discarding logger.
	Logger *slog.Logger
}

// Builder converts requests to filters. It holds no state between calls
// and is safe for concurrent use.
type Builder struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Builder.
func New(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.ReservedKey == "" {
		opts.ReservedKey = span.DefaultKey
	}
	return &Builder{opts: opts, logger: logger}
}

// Build is a convenience for New(opts).Build(request).
func Build(request value.Value, opts Options) (filter.Expression, error) {
	return New(opts).Build(request)
}

// Build converts request into a filter expression. A nil expression means
// the request constrains nothing.
//
// Declared spans are applied first, in order. An Intersection span claims
// its two pairs so they get no simple filter; a Between span leaves its
// property's pair in place. Every remaining pair then gets a simple filter.
// All results are merged with filter.AndUnique.
func (b *Builder) Build(request value.Value) (filter.Expression, error) {
	pairs := flatten.Flatten(request, b.opts.BasePath, flatten.Options{
		Casing:      b.opts.Casing,
		ReservedKey: b.opts.ReservedKey,
		Terminals:   b.opts.Terminals,
	})

	prefix := b.opts.BasePath
	if prefix != "" {
		prefix += "."
	}

	var result filter.Expression

	spans, _ := span.Resolve(request, b.opts.ReservedKey)
	for i, d := range spans {
		switch d.Kind {
		case span.Intersection:
			fromIdx := indexOf(pairs, prefix+d.From)
			toIdx := indexOf(pairs, prefix+d.To)
			if fromIdx < 0 || toIdx < 0 {
				b.logger.Debug("intersection span skipped: bound not in request",
					"span", i,
					"from", d.From,
					"to", d.To)
				continue
			}
			from, to := pairs[fromIdx], pairs[toIdx]
			pairs = removeAt(pairs, fromIdx, toIdx)
			result = filter.AndUnique(result, Intersection(from, to))

		case span.Between:
			path := prefix + d.Property
			idx := indexOf(pairs, path)
			if idx < 0 || value.IsNull(pairs[idx].Value) {
				b.logger.Debug("between span skipped: property has no value",
					"span", i,
					"property", d.Property)
				continue
			}
			result = filter.AndUnique(result, Between(path+"/"+d.From, path+"/"+d.To, pairs[idx].Value))

		default:
			return nil, NewSpanTypeError(i, d)
		}
	}

	for _, pv := range pairs {
		result = filter.AndUnique(result, Simple(pv.Path, pv.Value))
	}

	for _, path := range b.opts.NormalizePaths {
		result = filter.NormalizeStrings(result, path)
	}

	b.logger.Debug("filter built",
		"pairs", len(pairs),
		"spans", len(spans),
		"leaves", len(filter.Leaves(result)))

	return result, nil
}

// indexOf returns the index of the first pair at path, or -1.
func indexOf(pairs []flatten.PathValue, path string) int {
	for i, pv := range pairs {
		if pv.Path == path {
			return i
		}
	}
	return -1
}

// removeAt returns pairs without the entries at i and j (which may be equal).
func removeAt(pairs []flatten.PathValue, i, j int) []flatten.PathValue {
	out := make([]flatten.PathValue, 0, len(pairs))
	for k, pv := range pairs {
		if k != i && k != j {
			out = append(out, pv)
		}
	}
	return out
}
