package builder

import (
	"errors"
	"fmt"

	"github.com/roach88/spanfilter/internal/span"
)

// ConfigurationError reports a request whose span declarations cannot be
// turned into a filter. It is deterministic: retrying the same request
// fails the same way.
type ConfigurationError struct {
	// Code identifies the error category.
	Code ConfigurationErrorCode

	// Message is a human-readable description.
	Message string

	// SpanIndex is the position of the offending span in the request.
	SpanIndex int

	// Span is the declaration as it was read.
	Span span.Definition
}

// ConfigurationErrorCode categorizes configuration errors.
type ConfigurationErrorCode string

const (
	// ErrCodeSpanTypeUnspecified indicates a span kind that is neither
	// Between nor Intersection.
	ErrCodeSpanTypeUnspecified ConfigurationErrorCode = "SPAN_TYPE_UNSPECIFIED"
)

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s (span=%d)", e.Code, e.Message, e.SpanIndex)
}

// Unwrap exposes the span sentinel so errors.Is(err, span.ErrUnspecifiedKind)
// holds.
func (e *ConfigurationError) Unwrap() error {
	if e.Code == ErrCodeSpanTypeUnspecified {
		return span.ErrUnspecifiedKind
	}
	return nil
}

// IsConfigurationError returns true if err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// NewSpanTypeError creates a ConfigurationError for a span of unknown kind.
func NewSpanTypeError(index int, d span.Definition) *ConfigurationError {
	return &ConfigurationError{
		Code:      ErrCodeSpanTypeUnspecified,
		Message:   span.ErrUnspecifiedKind.Error(),
		SpanIndex: index,
		Span:      d,
	}
}
