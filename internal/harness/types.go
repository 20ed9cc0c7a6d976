package harness

import "github.com/roach88/spanfilter/internal/filter"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	Pass bool

	// Filter is the built filter. Nil when the build failed or when the
	// request constrains nothing.
	Filter filter.Expression

	// BuildErr is the build error, if any.
	BuildErr error

	// Matches lists, in id order, the documents the in-memory evaluator
	// accepted.
	Matches []string

	// StoreMatches lists, in id order, the documents the SQLite store
	// returned. Nil when the store check was skipped.
	StoreMatches []string

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Matches: []string{},
		Errors:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
