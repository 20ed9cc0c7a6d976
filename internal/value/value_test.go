package value

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	// Compile-time check via assignment
	var _ Value = Null{}
	var _ Value = String("a")
	var _ Value = Bool(true)
	var _ Value = Int(1)
	var _ Value = Double(1.5)
	var _ Value = DateTime{time.Now()}
	var _ Value = DateTimeOffset{time.Now()}
	var _ Value = Opaque{V: uuid.Nil}
	var _ Value = Array{Int(1)}
	var _ Value = NewMap()
	var _ Value = NewRecord("Target")
}

func TestMap_PreservesInsertionOrder(t *testing.T) {
	m := NewMap(E("zebra", Int(1)), E("apple", Int(2)), E("mango", Int(3)))

	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestMap_SetReplacesInPlace(t *testing.T) {
	m := NewMap(E("a", Int(1)), E("b", Int(2)))
	m.Set("a", Int(10))

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, Int(10), got)
}

func TestMap_NilValueBecomesNull(t *testing.T) {
	m := NewMap(E("a", nil))

	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, Null{}, got)
}

func TestMap_ZeroValue(t *testing.T) {
	var m Map
	_, ok := m.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, m.Keys())
}

func TestRecord_Get(t *testing.T) {
	r := NewRecord("Target", F("Name", String("t1")), F("Id", Int(7)))

	got, ok := r.Get("Id")
	require.True(t, ok)
	assert.Equal(t, Int(7), got)

	_, ok = r.Get("Missing")
	assert.False(t, ok)
}

func TestLookup(t *testing.T) {
	m := NewMap(E("Spans", Array{}))
	r := NewRecord("Req", F("Spans", Array{}))

	_, ok := Lookup(m, "Spans")
	assert.True(t, ok)
	_, ok = Lookup(r, "Spans")
	assert.True(t, ok)
	_, ok = Lookup(String("x"), "Spans")
	assert.False(t, ok)
}

func TestTypeTag(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", String("a"), "string"},
		{"bool", Bool(true), "bool"},
		{"int", Int(1), "int"},
		{"double", Double(1.5), "double"},
		{"dateTime", DateTime{ts}, "dateTime"},
		{"dateTimeOffset", DateTimeOffset{ts}, "dateTimeOffset"},
		{"opaque", Opaque{V: uuid.Nil}, "object"},
		{"null", Null{}, "object"},
		{"nil", nil, "object"},
		{"record", NewRecord("Empty"), "object"},
		{"int array", Array{Int(1), String("x")}, "values.int"},
		{"empty array", Array{}, "values.object"},
		{"nested array", Array{Array{Bool(true)}}, "values.values.bool"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TypeTag(tc.v))
		})
	}
}

func TestIsOrdered(t *testing.T) {
	assert.False(t, IsOrdered(TagBool))
	assert.False(t, IsOrdered(TagObject))
	assert.True(t, IsOrdered(TagInt))
	assert.True(t, IsOrdered("values.object"))
}

func TestCompare(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	tests := []struct {
		name   string
		a, b   Value
		want   int
		wantOK bool
	}{
		{"int less", Int(1), Int(2), -1, true},
		{"int vs double", Int(2), Double(2.0), 0, true},
		{"double greater", Double(2.5), Int(2), 1, true},
		{"strings", String("b"), String("a"), 1, true},
		{"times", DateTimeOffset{early}, DateTimeOffset{late}, -1, true},
		{"stored string vs time", String("2024-01-01T01:00:00Z"), DateTimeOffset{early}, 1, true},
		{"time vs stored string", DateTime{early}, String("2024-01-01T00:00:00"), 0, true},
		{"ints above 2^53", Int(1<<53 + 1), Int(1 << 53), 1, true},
		{"ints above 2^53 equal", Int(1<<53 + 1), Int(1<<53 + 1), 0, true},
		{"string vs int", String("1"), Int(1), 0, false},
		{"bools", Bool(true), Bool(false), 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Compare(tc.a, tc.b)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	assert.True(t, Equal(Null{}, nil))
	assert.False(t, Equal(Null{}, String("")))
	assert.True(t, Equal(Bool(true), Bool(true)))
	assert.False(t, Equal(Bool(true), String("true")))
	assert.True(t, Equal(Int(3), Double(3)))
	assert.True(t, Equal(Opaque{V: id}, String(id.String())))
	assert.True(t, Equal(Array{Int(1), String("a")}, Array{Int(1), String("a")}))
	assert.False(t, Equal(Array{Int(1)}, Array{Int(1), Int(2)}))
	assert.True(t, Equal(NewMap(E("a", Int(1))), NewMap(E("a", Int(1)))))
	assert.False(t, Equal(NewMap(E("a", Int(1))), NewMap(E("b", Int(1)))))
	assert.True(t, Equal(NewRecord("T", F("x", Int(1))), NewRecord("T", F("x", Int(1)))))
	assert.False(t, Equal(NewRecord("T"), NewRecord("U")))
}

func TestFormat(t *testing.T) {
	v := NewMap(
		E("name", String("Alice")),
		E("tags", Array{Int(1), Double(2.5)}),
		E("target", NewRecord("Target", F("ok", Bool(true)), F("none", Null{}))),
	)

	assert.Equal(t, `{name: "Alice", tags: [1, 2.5], target: Target{ok: true, none: null}}`, Format(v))
}

func TestFrom(t *testing.T) {
	id := uuid.New()
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	v, err := From(map[string]any{
		"b":    []any{1, "x", nil},
		"a":    true,
		"id":   id,
		"when": ts,
		"f":    float32(1.5),
	})
	require.NoError(t, err)

	m, ok := v.(*Map)
	require.True(t, ok)
	// Go maps are unordered; keys are sorted
	assert.Equal(t, []string{"a", "b", "f", "id", "when"}, m.Keys())

	b, _ := m.Get("b")
	assert.Equal(t, Array{Int(1), String("x"), Null{}}, b)
	got, _ := m.Get("id")
	assert.Equal(t, Opaque{V: id}, got)
	got, _ = m.Get("when")
	assert.Equal(t, DateTimeOffset{ts}, got)
	got, _ = m.Get("f")
	assert.Equal(t, Double(1.5), got)
}

type targetRequest struct {
	Name string
}

func (r targetRequest) Record() *Record {
	return NewRecord("Target", F("Name", String(r.Name)))
}

func TestFrom_Recorder(t *testing.T) {
	v, err := From(targetRequest{Name: "t1"})
	require.NoError(t, err)
	assert.Equal(t, NewRecord("Target", F("Name", String("t1"))), v)
}

func TestFrom_UnsignedOverflow(t *testing.T) {
	v, err := From(uint64(math.MaxInt64))
	require.NoError(t, err)
	assert.Equal(t, Int(math.MaxInt64), v)

	_, err = From(uint64(math.MaxInt64) + 1)
	assert.Error(t, err)
}

func TestEqual_LargeInts(t *testing.T) {
	assert.False(t, Equal(Int(1<<53+1), Int(1<<53)))
	assert.True(t, Equal(Int(1<<53), Double(1<<53)))
}

func TestFrom_Unsupported(t *testing.T) {
	_, err := From(struct{}{})
	assert.Error(t, err)
	assert.Panics(t, func() { MustFrom(make(chan int)) })
}
