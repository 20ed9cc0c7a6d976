package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/spanfilter/internal/value"
)

// Error codes for CLI responses.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeUnsupported = "E008" // Unsupported input format
	ErrCodeDecode      = "E009" // Input could not be decoded
	ErrCodeSpanType    = "E201" // Span of unknown kind
	ErrCodeStore       = "E301" // Database error
)

// LoadError represents an error that occurred while loading an input file.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadValue reads and decodes a JSON, YAML or CUE file, chosen by
// extension. "-" reads JSON from stdin.
func LoadValue(path string, stdin io.Reader) (value.Value, error) {
	opts := value.DecodeOptions{ParseTimes: true}

	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeGeneric, Path: path, Message: "read stdin", Err: err}
		}
		v, err := value.DecodeJSON(data, opts)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeDecode, Path: path, Message: "decode", Err: err}
		}
		return v, nil
	}

	var decode func([]byte, value.DecodeOptions) (value.Value, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decode = value.DecodeJSON
	case ".yaml", ".yml":
		decode = value.DecodeYAML
	case ".cue":
		decode = value.DecodeCUE
	default:
		return nil, &LoadError{Code: ErrCodeUnsupported, Path: path, Message: "unsupported extension (want .json, .yaml, .yml or .cue)"}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "file not found"}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Path: path, Message: "read", Err: err}
	}

	v, err := decode(data, opts)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Path: path, Message: "decode", Err: err}
	}
	return v, nil
}
