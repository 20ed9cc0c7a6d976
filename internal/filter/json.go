package filter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/spanfilter/internal/value"
)

// DomainFilter prefixes filter fingerprints. The version suffix allows the
// encoding to change without colliding with old fingerprints.
const DomainFilter = "spanfilter/filter/v1"

// MarshalJSON encodes e as canonical JSON:
//
//	{"and":[...]}  {"or":[...]}  {"op":"LessThan","path":"a.value.int","value":3}
//
// Keys are sorted and strings NFC normalized, so equal trees always encode
// to identical bytes. A nil expression encodes as null.
func MarshalJSON(e Expression) ([]byte, error) {
	doc, err := toValue(e)
	if err != nil {
		return nil, err
	}
	return value.MarshalCanonical(doc)
}

func (l *Leaf) MarshalJSON() ([]byte, error) { return MarshalJSON(l) }
func (a *And) MarshalJSON() ([]byte, error)  { return MarshalJSON(a) }
func (o *Or) MarshalJSON() ([]byte, error)   { return MarshalJSON(o) }

func toValue(e Expression) (value.Value, error) {
	switch node := e.(type) {
	case nil:
		return value.Null{}, nil
	case *Leaf:
		v := node.Value
		if v == nil {
			v = value.Null{}
		}
		return value.NewMap(
			value.E("path", value.String(node.Path)),
			value.E("op", value.String(node.Op.String())),
			value.E("value", v),
		), nil
	case *And:
		children, err := childValues(node.Children)
		if err != nil {
			return nil, fmt.Errorf("and: %w", err)
		}
		return value.NewMap(value.E("and", children)), nil
	case *Or:
		children, err := childValues(node.Children)
		if err != nil {
			return nil, fmt.Errorf("or: %w", err)
		}
		return value.NewMap(value.E("or", children)), nil
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", e)
	}
}

func childValues(children []Expression) (value.Array, error) {
	out := make(value.Array, len(children))
	for i, c := range children {
		v, err := toValue(c)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Fingerprint returns a content-addressed identifier for e.
// Format: hex(SHA256(DomainFilter + 0x00 + canonical JSON)).
func Fingerprint(e Expression) (string, error) {
	canonical, err := MarshalJSON(e)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(DomainFilter))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFingerprint(e Expression) string {
	fp, err := Fingerprint(e)
	if err != nil {
		panic(err)
	}
	return fp
}
