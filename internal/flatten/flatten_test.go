package flatten

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spanfilter/internal/naming"
	"github.com/roach88/spanfilter/internal/value"
)

func target(name string, id uuid.UUID) *value.Record {
	return value.NewRecord("Target",
		value.F("Name", value.String(name)),
		value.F("Id", value.Opaque{V: id}),
	)
}

func paths(pvs []PathValue) []string {
	out := make([]string, len(pvs))
	for i, pv := range pvs {
		out[i] = pv.Path
	}
	return out
}

func TestFlatten_NestedRecordsWithArray(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()
	request := value.NewRecord("Request",
		value.F("ParentField1", value.NewRecord("Parent",
			value.F("ChildField3", value.Array{target("t1", id1), target("t2", id2)}),
		)),
	)

	got := Flatten(request, "", Options{})

	want := []PathValue{
		{Path: "parentField1-childField3-name", Value: value.String("t1")},
		{Path: "parentField1-childField3-id", Value: value.Opaque{V: id1}},
		{Path: "parentField1-childField3-name", Value: value.String("t2")},
		{Path: "parentField1-childField3-id", Value: value.Opaque{V: id2}},
	}
	assert.Equal(t, want, got)
}

func TestFlatten_BasePathUsesDot(t *testing.T) {
	request := value.NewMap(
		value.E("ParentField1", value.NewMap(
			value.E("ChildField1", value.String("Child1_1")),
			value.E("ChildField2", value.NewMap(value.E("ChildField2_1", value.String("Child2_1")))),
		)),
	)

	got := Flatten(request, "conditions", Options{})

	assert.Equal(t, []string{
		"conditions.parentField1-childField1",
		"conditions.parentField1-childField2-childField21",
	}, paths(got))
}

func TestFlatten_PreservesInsertionOrder(t *testing.T) {
	request := value.NewMap(
		value.E("zeta", value.Int(1)),
		value.E("alpha", value.Bool(true)),
		value.E("mid", value.Double(2.5)),
	)

	got := Flatten(request, "", Options{})

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, paths(got))
	assert.Equal(t, value.Bool(true), got[1].Value)
}

func TestFlatten_SkipsReservedKey(t *testing.T) {
	request := value.NewMap(
		value.E("Spans", value.Array{value.NewMap(value.E("type", value.String("Between")))}),
		value.E("Name", value.String("Alice")),
	)

	got := Flatten(request, "", Options{})

	require.Len(t, got, 1)
	assert.Equal(t, "name", got[0].Path)
}

func TestFlatten_CustomReservedKeyAndCasing(t *testing.T) {
	request := value.NewMap(
		value.E("Ranges", value.Array{}),
		value.E("Spans", value.String("kept")),
		value.E("First_Name", value.String("Alice")),
	)

	got := Flatten(request, "", Options{ReservedKey: "Ranges", Casing: naming.Identity})

	assert.Equal(t, []string{"Spans", "First_Name"}, paths(got))
}

func TestFlatten_LeafRules(t *testing.T) {
	request := value.NewMap(
		value.E("missing", value.Null{}),
		value.E("emptyMap", value.NewMap()),
		value.E("emptyList", value.Array{}),
		value.E("emptyRecord", value.NewRecord("Marker")),
		value.E("nestedNull", value.NewMap(value.E("inner", value.Null{}))),
	)

	got := Flatten(request, "", Options{})

	want := []PathValue{
		{Path: "missing", Value: value.Null{}},
		{Path: "emptyList", Value: value.Array{}},
		{Path: "emptyRecord", Value: value.NewRecord("Marker")},
		{Path: "nestedNull-inner", Value: value.Null{}},
	}
	assert.Equal(t, want, got)
}

func TestFlatten_ScalarArrayRepeatsPath(t *testing.T) {
	request := value.NewMap(value.E("ids", value.Array{value.Int(1), value.Int(2), value.String("x")}))

	got := Flatten(request, "", Options{})

	assert.Equal(t, []PathValue{
		{Path: "ids", Value: value.Int(1)},
		{Path: "ids", Value: value.Int(2)},
		{Path: "ids", Value: value.String("x")},
	}, got)
}

func TestFlatten_ArrayOfMaps(t *testing.T) {
	request := value.NewMap(value.E("items", value.Array{
		value.NewMap(value.E("sku", value.String("a"))),
		value.NewMap(),
		value.NewMap(value.E("sku", value.String("b"))),
	}))

	got := Flatten(request, "", Options{})

	assert.Equal(t, []string{"items-sku", "items-sku"}, paths(got))
}

func TestFlatten_Terminals(t *testing.T) {
	money := value.NewRecord("Money", value.F("Amount", value.Int(5)), value.F("Currency", value.String("EUR")))
	request := value.NewMap(value.E("price", money))

	decomposed := Flatten(request, "", Options{})
	assert.Equal(t, []string{"price-amount", "price-currency"}, paths(decomposed))

	kept := Flatten(request, "", Options{Terminals: []string{"Money"}})
	require.Len(t, kept, 1)
	assert.Equal(t, PathValue{Path: "price", Value: money}, kept[0])
}

func TestFlatten_TimestampsAreTerminal(t *testing.T) {
	ts, err := value.DecodeJSON([]byte(`{"at": "2024-01-02T03:04:05Z"}`), value.DecodeOptions{ParseTimes: true})
	require.NoError(t, err)

	got := Flatten(ts, "", Options{})

	require.Len(t, got, 1)
	assert.IsType(t, value.DateTimeOffset{}, got[0].Value)
}

func TestFlatten_RootScalarsYieldNothing(t *testing.T) {
	assert.Empty(t, Flatten(value.String("x"), "", Options{}))
	assert.Empty(t, Flatten(value.Int(1), "base", Options{}))
	assert.Empty(t, Flatten(value.Null{}, "", Options{}))
	assert.Empty(t, Flatten(nil, "", Options{}))
	assert.Empty(t, Flatten(value.Array{value.Int(1)}, "", Options{}))
}

func TestFlatten_RootArrayOfMaps(t *testing.T) {
	got := Flatten(value.Array{value.NewMap(value.E("A", value.Int(1)))}, "", Options{})

	assert.Equal(t, []string{"a"}, paths(got))
}

func TestPathValue_String(t *testing.T) {
	pv := PathValue{Path: "name", Value: value.String("Alice")}
	assert.Equal(t, `{name, "Alice"}`, pv.String())
}
