// Package span reads the span declarations attached to a request.
//
// A span marks request fields as an interval instead of independent
// scalars. A Between span names one property whose value must fall inside
// an interval stored under two sibling paths; an Intersection span names two
// fields holding the bounds of a query interval that must overlap a stored
// one.
package span

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/spanfilter/internal/value"
)

// DefaultKey is the request member holding span declarations.
const DefaultKey = "Spans"

// Kind selects how a span is turned into a filter.
type Kind uint8

const (
	Unspecified Kind = iota
	Between
	Intersection
)

func (k Kind) String() string {
	switch k {
	case Between:
		return "Between"
	case Intersection:
		return "Intersection"
	default:
		return "Unspecified"
	}
}

// Parse maps a kind name to a Kind, ignoring case. Unknown names are
// Unspecified.
func Parse(name string) Kind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "between":
		return Between
	case "intersection":
		return Intersection
	default:
		return Unspecified
	}
}

// Definition is one declared span.
//
// For Between, Property names the constrained field and From/To name the
// stored endpoints beneath it ("<property>/<from>"). For Intersection,
// From and To are the flattened paths of the two bound fields.
type Definition struct {
	Kind     Kind
	Property string
	From     string
	To       string
}

func (d Definition) String() string {
	if d.Kind == Between {
		return fmt.Sprintf("Between(%s: %s..%s)", d.Property, d.From, d.To)
	}
	return fmt.Sprintf("%s(%s..%s)", d.Kind, d.From, d.To)
}

var (
	ErrUnspecifiedKind = errors.New("span type must be specified")
	ErrMissingField    = errors.New("span field missing")
)

// Validate reports whether d names every field its kind needs.
func (d Definition) Validate() error {
	switch d.Kind {
	case Between:
		if d.Property == "" {
			return fmt.Errorf("%w: property", ErrMissingField)
		}
		fallthrough
	case Intersection:
		if d.From == "" {
			return fmt.Errorf("%w: from", ErrMissingField)
		}
		if d.To == "" {
			return fmt.Errorf("%w: to", ErrMissingField)
		}
		return nil
	default:
		return ErrUnspecifiedKind
	}
}

// Resolve extracts the span declarations stored under key (DefaultKey when
// empty). The boolean is false when the member is absent, null or not an
// array. Elements that are not maps or records are dropped.
func Resolve(request value.Value, key string) ([]Definition, bool) {
	if key == "" {
		key = DefaultKey
	}
	raw, ok := value.Lookup(request, key)
	if !ok {
		return nil, false
	}
	list, ok := raw.(value.Array)
	if !ok {
		return nil, false
	}

	spans := make([]Definition, 0, len(list))
	for _, elem := range list {
		if d, ok := Decode(elem); ok {
			spans = append(spans, d)
		}
	}
	return spans, true
}

// Decode reads one declaration from a map or record. Member names are
// matched case-insensitively; the kind is read from "type" or "kind".
func Decode(v value.Value) (Definition, bool) {
	var members []value.Entry
	switch node := v.(type) {
	case *value.Map:
		members = node.Entries()
	case *value.Record:
		for _, f := range node.Fields {
			members = append(members, value.Entry{Key: f.Name, Value: f.Value})
		}
	default:
		return Definition{}, false
	}

	var d Definition
	for _, m := range members {
		s, _ := m.Value.(value.String)
		switch strings.ToLower(m.Key) {
		case "type", "kind":
			d.Kind = Parse(string(s))
		case "property":
			d.Property = string(s)
		case "from":
			d.From = string(s)
		case "to":
			d.To = string(s)
		}
	}
	return d, true
}
