package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/spanfilter/internal/builder"
	"github.com/roach88/spanfilter/internal/filter"
	"github.com/roach88/spanfilter/internal/naming"
	"github.com/roach88/spanfilter/internal/store"
	"github.com/roach88/spanfilter/internal/value"
)

// Harness executes scenarios.
type Harness struct {
	logger *slog.Logger
}

// New creates a Harness that logs to logger. A nil logger discards output.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// document is one decoded scenario document.
type document struct {
	id  string
	doc value.Value
}

// Run executes a scenario with a discarding logger.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(context.Background(), scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Decode the request and documents
//  2. Build the filter
//  3. Check expect_error, or evaluate every document in memory
//  4. Cross-check the matches against an in-memory SQLite store
//  5. Check expect_match and assertions
//
// The returned error reports problems running the scenario (bad YAML
// values, store failures); scenario failures are recorded in the Result.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	opts := value.DecodeOptions{ParseTimes: true}

	request, err := value.FromYAML(&scenario.Request, opts)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: request: %w", scenario.Name, err)
	}
	docs, err := decodeDocuments(&scenario.Documents, opts)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	casing, ok := naming.Lookup(scenario.Casing)
	if !ok {
		return nil, fmt.Errorf("scenario %s: unknown casing %q", scenario.Name, scenario.Casing)
	}

	result := NewResult()

	expr, err := builder.Build(request, builder.Options{
		BasePath:       scenario.BasePath,
		Casing:         casing,
		Terminals:      scenario.Terminals,
		NormalizePaths: scenario.Normalize,
		Logger:         h.logger,
	})
	if scenario.ExpectError != "" {
		switch {
		case err == nil:
			result.AddError(fmt.Sprintf("expected error containing %q, build succeeded", scenario.ExpectError))
		case !strings.Contains(err.Error(), scenario.ExpectError):
			result.AddError(fmt.Sprintf("expected error containing %q, got %q", scenario.ExpectError, err.Error()))
		}
		result.BuildErr = err
		return result, nil
	}
	if err != nil {
		result.BuildErr = err
		result.AddError(fmt.Sprintf("build failed: %v", err))
		return result, nil
	}
	result.Filter = expr

	h.logger.Debug("scenario filter built",
		"scenario", scenario.Name,
		"leaves", len(filter.Leaves(expr)))

	for _, d := range docs {
		if filter.Evaluate(expr, d.doc) {
			result.Matches = append(result.Matches, d.id)
		}
	}

	if !scenario.SkipStore && len(docs) > 0 {
		matches, err := storeMatches(ctx, docs, expr)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		result.StoreMatches = matches
		if !slices.Equal(matches, result.Matches) {
			result.AddError(fmt.Sprintf("store matched %v, evaluator matched %v", matches, result.Matches))
		}
	}

	if scenario.ExpectMatch != nil {
		want := slices.Clone(scenario.ExpectMatch)
		slices.Sort(want)
		if !slices.Equal(want, result.Matches) {
			result.AddError(fmt.Sprintf("expected matches %v, got %v", want, result.Matches))
		}
	}

	for i, a := range scenario.Assertions {
		if msg := evaluateAssertion(a, expr); msg != "" {
			result.AddError(fmt.Sprintf("assertions[%d] (%s): %s", i, a.Type, msg))
		}
	}

	return result, nil
}

// decodeDocuments converts the documents mapping, sorted by id.
func decodeDocuments(node *yaml.Node, opts value.DecodeOptions) ([]document, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("documents must be a mapping")
	}

	docs := make([]document, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		id := node.Content[i].Value
		doc, err := value.FromYAML(node.Content[i+1], opts)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", id, err)
		}
		docs = append(docs, document{id: id, doc: doc})
	}

	slices.SortFunc(docs, func(a, b document) int { return strings.Compare(a.id, b.id) })
	return docs, nil
}

// storeMatches loads docs into a fresh in-memory store and runs expr.
func storeMatches(ctx context.Context, docs []document, expr filter.Expression) ([]string, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	for _, d := range docs {
		if err := st.Put(ctx, d.id, d.doc); err != nil {
			return nil, err
		}
	}
	return st.Find(ctx, expr)
}
