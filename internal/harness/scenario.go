package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/spanfilter/internal/naming"
)

// Scenario defines a filter scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// BasePath prefixes every generated filter path.
	BasePath string `yaml:"base_path,omitempty"`

	// Casing selects the path segment convention (see naming.Lookup).
	Casing string `yaml:"casing,omitempty"`

	// Normalize lists leaf paths whose string values are lower cased.
	Normalize []string `yaml:"normalize,omitempty"`

	// Terminals lists record type names that are never decomposed.
	Terminals []string `yaml:"terminals,omitempty"`

	// Request is the request mapping. Kept as a node so member order
	// survives decoding.
	Request yaml.Node `yaml:"request"`

	// Documents maps document ids to stored documents.
	Documents yaml.Node `yaml:"documents,omitempty"`

	// ExpectMatch lists the ids the filter must match, in any order.
	// Required when documents are given.
	ExpectMatch []string `yaml:"expect_match,omitempty"`

	// ExpectError, when set, requires the build to fail with an error
	// whose message contains it.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions validate the shape of the built filter.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// SkipStore disables the SQLite cross-check.
	SkipStore bool `yaml:"skip_store,omitempty"`
}

// Assertion validates the built filter.
type Assertion struct {
	// Type specifies the assertion type:
	// - "leaf_count": the filter has exactly Count leaves
	// - "has_path": some leaf uses Path
	// - "lacks_path": no leaf uses Path
	// - "valid": the filter passes filter.Validate
	Type string `yaml:"type"`

	// Path is the leaf path (used by has_path and lacks_path).
	Path string `yaml:"path,omitempty"`

	// Count is the expected number of leaves (used by leaf_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertLeafCount = "leaf_count"
	AssertHasPath   = "has_path"
	AssertLacksPath = "lacks_path"
	AssertValid     = "valid"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "expect_matches:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Request.Kind != yaml.MappingNode {
		return fmt.Errorf("request is required and must be a mapping")
	}

	if _, ok := naming.Lookup(s.Casing); !ok {
		return fmt.Errorf("unknown casing %q", s.Casing)
	}

	hasDocs := s.Documents.Kind != 0
	if hasDocs && s.Documents.Kind != yaml.MappingNode {
		return fmt.Errorf("documents must be a mapping of id to document")
	}

	if s.ExpectError != "" {
		if len(s.ExpectMatch) > 0 {
			return fmt.Errorf("expect_error and expect_match are mutually exclusive")
		}
	} else if hasDocs && s.ExpectMatch == nil {
		return fmt.Errorf("expect_match is required when documents are given (use [] for none)")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertHasPath, AssertLacksPath:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for %s", index, a.Type)
		}
	case AssertLeafCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for leaf_count", index)
		}
	case AssertValid:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
