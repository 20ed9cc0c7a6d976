package value

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

// Equal reports whether two values are equal.
//
// Int and Double compare numerically, timestamps compare as instants, and
// a String compares equal to a timestamp or Opaque value with the same text.
// Maps and records compare member by member in order.
func Equal(a, b Value) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}

	switch x := a.(type) {
	case Array:
		y, ok := b.(Array)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Map:
		y, ok := b.(*Map)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, e := range x.Entries() {
			other, found := y.Get(e.Key)
			if !found || !Equal(e.Value, other) {
				return false
			}
		}
		return true
	case *Record:
		y, ok := b.(*Record)
		if !ok || x.Type != y.Type || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Name != y.Fields[i].Name || !Equal(x.Fields[i].Value, y.Fields[i].Value) {
				return false
			}
		}
		return true
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	}

	if _, ok := a.(Opaque); ok {
		return Text(a) == Text(b)
	}
	if _, ok := b.(Opaque); ok {
		return Text(a) == Text(b)
	}

	c, ok := Compare(a, b)
	return ok && c == 0
}

// Compare orders two scalar values. The boolean result is false when the
// values have no defined order (different families, bools, containers).
func Compare(a, b Value) (int, bool) {
	// Int pairs stay exact above 2^53.
	if x, ok := a.(Int); ok {
		if y, ok := b.(Int); ok {
			return cmp.Compare(x, y), true
		}
	}
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return cmp.Compare(x, y), true
		}
		return 0, false
	}

	// Stored timestamps usually arrive as strings.
	x, xok := instant(a)
	y, yok := instant(b)
	if s, ok := a.(String); ok && yok {
		t, err := parseTime(string(s))
		x, xok = t, err == nil
	}
	if s, ok := b.(String); ok && xok {
		t, err := parseTime(string(s))
		y, yok = t, err == nil
	}
	if xok && yok {
		return x.Compare(y), true
	}

	if x, ok := a.(String); ok {
		if y, ok := b.(String); ok {
			return strings.Compare(string(x), string(y)), true
		}
	}
	return 0, false
}

func number(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Double:
		return float64(n), true
	default:
		return 0, false
	}
}

func instant(v Value) (time.Time, bool) {
	switch t := v.(type) {
	case DateTime:
		return t.Time, true
	case DateTimeOffset:
		return t.Time, true
	default:
		return time.Time{}, false
	}
}

// parseTime accepts RFC 3339 timestamps with or without a zone designator.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05.999999999", s)
}

// Text renders a scalar the way it appears inside a stored document.
func Text(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return ""
	case String:
		return string(val)
	case DateTime:
		return val.Format("2006-01-02T15:04:05.999999999")
	case DateTimeOffset:
		return val.Format(time.RFC3339Nano)
	case Opaque:
		if s, ok := val.V.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprint(val.V)
	default:
		return Format(v)
	}
}
