package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"time"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// DecodeOptions controls how decoders map source scalars onto Values.
type DecodeOptions struct {
	// ParseTimes turns RFC 3339 strings into DateTimeOffset (with zone) or
	// DateTime (without zone). Off by default: strings stay strings.
	ParseTimes bool
}

// DecodeJSON decodes a JSON document, keeping object keys in document order.
// Integers become Int, other numbers Double.
func DecodeJSON(data []byte, opts DecodeOptions) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec, opts)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	// Reject trailing data
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode json: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder, opts DecodeOptions) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := &Map{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				elem, err := decodeJSONValue(dec, opts)
				if err != nil {
					return nil, fmt.Errorf("object[%q]: %w", key, err)
				}
				m.Set(key, elem)
			}
			if _, err := dec.Token(); err != nil { // closing brace
				return nil, err
			}
			return m, nil
		case '[':
			arr := Array{}
			for dec.More() {
				elem, err := decodeJSONValue(dec, opts)
				if err != nil {
					return nil, fmt.Errorf("array[%d]: %w", len(arr), err)
				}
				arr = append(arr, elem)
			}
			if _, err := dec.Token(); err != nil { // closing bracket
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return From(t)
	case string:
		return decodeString(t, opts), nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

// decodeString applies DecodeOptions.ParseTimes to a source string.
func decodeString(s string, opts DecodeOptions) Value {
	if !opts.ParseTimes || len(s) < 19 || s[4] != '-' || s[10] != 'T' {
		return String(s)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateTimeOffset{t}
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
		return DateTime{t}
	}
	return String(s)
}

// MarshalCanonical produces canonical JSON for a Value.
//
// Object keys are sorted by UTF-16 code units, strings are NFC normalized
// and HTML characters are not escaped. Timestamps and opaque values are
// written as strings; records are written as objects (the type name is
// dropped). NaN and infinities are rejected.
func MarshalCanonical(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case nil, Null:
		buf.WriteString("null")
	case String:
		return writeCanonicalString(buf, string(val))
	case Bool:
		buf.WriteString(strconv.FormatBool(bool(val)))
	case Int:
		buf.WriteString(strconv.FormatInt(int64(val), 10))
	case Double:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("non-finite number %v", f)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case DateTime, DateTimeOffset, Opaque:
		return writeCanonicalString(buf, Text(val))
	case Array:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case *Map:
		return writeCanonicalEntries(buf, val.Entries())
	case *Record:
		entries := make([]Entry, len(val.Fields))
		for i, f := range val.Fields {
			entries[i] = Entry{Key: f.Name, Value: f.Value}
		}
		return writeCanonicalEntries(buf, entries)
	default:
		return fmt.Errorf("unsupported value type: %T", v)
	}
	return nil
}

func writeCanonicalEntries(buf *bytes.Buffer, entries []Entry) error {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return compareKeysUTF16(a.Key, b.Key)
	})

	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(buf, e.Key); err != nil {
			return fmt.Errorf("key %q: %w", e.Key, err)
		}
		buf.WriteByte(':')
		if err := writeCanonical(buf, e.Value); err != nil {
			return fmt.Errorf("value for key %q: %w", e.Key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeCanonicalString writes an NFC-normalized JSON string without HTML escaping.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
	return nil
}

// compareKeysUTF16 orders strings by UTF-16 code units (RFC 8785).
// Go's default string comparison uses UTF-8 which produces a different order.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
