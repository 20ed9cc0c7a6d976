package value

import (
	"time"
)

// Kind identifies the variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindBool
	KindInt
	KindDouble
	KindDateTime
	KindDateTimeOffset
	KindOpaque
	KindArray
	KindMap
	KindRecord
)

var kindNames = [...]string{
	KindNull:           "null",
	KindString:         "string",
	KindBool:           "bool",
	KindInt:            "int",
	KindDouble:         "double",
	KindDateTime:       "dateTime",
	KindDateTimeOffset: "dateTimeOffset",
	KindOpaque:         "opaque",
	KindArray:          "array",
	KindMap:            "map",
	KindRecord:         "record",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a sealed interface representing a request node.
type Value interface {
	Kind() Kind
	value() // Sealed - only types in this package implement it
}

// Null is an absent or explicit null value.
type Null struct{}

func (Null) Kind() Kind { return KindNull }
func (Null) value()     {}

// String is a string scalar. Strings are terminal and never decomposed.
type String string

func (String) Kind() Kind { return KindString }
func (String) value()     {}

// Bool is a boolean scalar.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) value()     {}

// Int is an integer scalar.
type Int int64

func (Int) Kind() Kind { return KindInt }
func (Int) value()     {}

// Double is a floating point scalar.
type Double float64

func (Double) Kind() Kind { return KindDouble }
func (Double) value()     {}

// DateTime is a timestamp without a meaningful zone offset.
type DateTime struct{ time.Time }

func (DateTime) Kind() Kind { return KindDateTime }
func (DateTime) value()     {}

// DateTimeOffset is a timestamp carrying an explicit zone offset.
type DateTimeOffset struct{ time.Time }

func (DateTimeOffset) Kind() Kind { return KindDateTimeOffset }
func (DateTimeOffset) value()     {}

// Opaque wraps a Go value with no visible structure, such as a uuid.UUID.
// It is always a leaf and is compared by its textual form.
type Opaque struct {
	V any
}

func (Opaque) Kind() Kind { return KindOpaque }
func (Opaque) value()     {}

// Array is an ordered sequence of values.
type Array []Value

func (Array) Kind() Kind { return KindArray }
func (Array) value()     {}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   string
	Value Value
}

// Map is a keyed container that remembers insertion order.
// The zero value is an empty map ready for use.
type Map struct {
	entries []Entry
	index   map[string]int
}

func (*Map) Kind() Kind { return KindMap }
func (*Map) value()     {}

// NewMap creates a Map from entries in order. A repeated key replaces the
// earlier value but keeps its original position.
func NewMap(entries ...Entry) *Map {
	m := &Map{}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// E is a shorthand for Entry.
// Example: NewMap(E("name", String("Alice")), E("age", Int(30)))
func E(key string, v Value) Entry {
	return Entry{Key: key, Value: v}
}

// Set adds or replaces a key. Decoders use it while building a map;
// callers must not mutate a map after handing it to the walker.
func (m *Map) Set(key string, v Value) {
	if v == nil {
		v = Null{}
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil || m.index == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].Value, true
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	keys := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns a copy of the entries in insertion order.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Field is one named member of a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is a struct-like value: a named type with fields in declaration order.
//
// Unlike a Map, a Record with no fields is still a value of its own and is
// emitted as a leaf by the walker.
type Record struct {
	Type   string
	Fields []Field
}

func (*Record) Kind() Kind { return KindRecord }
func (*Record) value()     {}

// NewRecord creates a Record of the given type name.
func NewRecord(typeName string, fields ...Field) *Record {
	return &Record{Type: typeName, Fields: fields}
}

// F is a shorthand for Field.
func F(name string, v Value) Field {
	if v == nil {
		v = Null{}
	}
	return Field{Name: name, Value: v}
}

// Get returns the first field with the given name.
func (r *Record) Get(name string) (Value, bool) {
	if r == nil {
		return nil, false
	}
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Recorder is implemented by request types that describe themselves as a
// Record. The field list is written by hand (or generated) per type.
type Recorder interface {
	Record() *Record
}

// IsNull reports whether v is nil or Null.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// Lookup returns a member of a Map or Record by name.
func Lookup(v Value, name string) (Value, bool) {
	switch node := v.(type) {
	case *Map:
		return node.Get(name)
	case *Record:
		return node.Get(name)
	default:
		return nil, false
	}
}
