package querysql

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spanfilter/internal/filter"
	"github.com/roach88/spanfilter/internal/value"
)

func TestCompile_Nil(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.Compile(nil)
	require.NoError(t, err)
	assert.Equal(t, "1 = 1", sql)
	assert.Empty(t, params)
}

func TestCompile_NullLeaf(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.Compile(filter.Null("name"))
	require.NoError(t, err)

	assert.Equal(t, "COALESCE(json_type(doc, ?), 'null') = 'null'", sql)
	assert.Equal(t, []any{`$."name"`}, params)
}

func TestCompile_StringLeaf(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.Compile(filter.Eq("name.operator", value.String("Equal")))
	require.NoError(t, err)

	assert.Equal(t, "(json_type(doc, ?) IN ('text') AND json_extract(doc, ?) = ?)", sql)
	assert.Equal(t, []any{`$."name"."operator"`, `$."name"."operator"`, "Equal"}, params)

	// Value NOT in SQL
	assert.NotContains(t, sql, "Equal")
}

func TestCompile_Operators(t *testing.T) {
	tests := []struct {
		op   filter.Operator
		want string
	}{
		{filter.Equal, "="},
		{filter.LessThan, "<"},
		{filter.LessThanOrEqual, "<="},
		{filter.GreaterThan, ">"},
		{filter.GreaterThanOrEqual, ">="},
	}

	for _, tc := range tests {
		t.Run(tc.op.String(), func(t *testing.T) {
			sql, _, err := NewSQLCompiler().Compile(filter.Compare("age", tc.op, value.Int(5)))
			require.NoError(t, err)
			assert.Contains(t, sql, "json_extract(doc, ?) "+tc.want+" ?")
		})
	}
}

func TestCompile_ParamTypes(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name      string
		v         value.Value
		wantTypes string
		wantParam any
	}{
		{"int", value.Int(7), "IN ('integer', 'real')", int64(7)},
		{"double", value.Double(1.5), "IN ('integer', 'real')", 1.5},
		{"bool", value.Bool(true), "IN ('true', 'false')", true},
		{"string", value.String("x"), "IN ('text')", "x"},
		{"dateTimeOffset", value.DateTimeOffset{Time: ts}, "IN ('text')", "2024-01-02T03:04:05Z"},
		{"dateTime", value.DateTime{Time: ts}, "IN ('text')", "2024-01-02T03:04:05"},
		{"opaque", value.Opaque{V: id}, "IN ('text')", id.String()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sql, params, err := NewSQLCompiler().Compile(filter.Eq("f", tc.v))
			require.NoError(t, err)
			assert.Contains(t, sql, tc.wantTypes)
			require.Len(t, params, 3)
			assert.Equal(t, tc.wantParam, params[2])
		})
	}
}

func TestCompile_UnsupportedValue(t *testing.T) {
	compiler := NewSQLCompiler()

	_, _, err := compiler.Compile(filter.Eq("tags", value.Array{value.Int(1)}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `leaf "tags"`)

	_, _, err = compiler.Compile(filter.Eq("m", value.NewMap()))
	assert.Error(t, err)
}

func TestCompile_InvalidOperator(t *testing.T) {
	_, _, err := NewSQLCompiler().Compile(&filter.Leaf{Path: "a", Op: filter.Operator(99), Value: value.Int(1)})
	assert.Error(t, err)
}

func TestCompile_RejectsQuotedSegment(t *testing.T) {
	_, _, err := NewSQLCompiler().Compile(filter.Null(`na"me`))
	assert.Error(t, err)
}

func TestCompile_Junctions(t *testing.T) {
	expr := filter.Or(
		filter.Null("a"),
		filter.And(filter.Eq("b", value.Int(1)), filter.Eq("c", value.Bool(false))),
	)

	sql, params, err := NewSQLCompiler().Compile(expr)
	require.NoError(t, err)

	want := "(COALESCE(json_type(doc, ?), 'null') = 'null' OR " +
		"((json_type(doc, ?) IN ('integer', 'real') AND json_extract(doc, ?) = ?) AND " +
		"(json_type(doc, ?) IN ('true', 'false') AND json_extract(doc, ?) = ?)))"
	assert.Equal(t, want, sql)
	assert.Equal(t, []any{
		`$."a"`,
		`$."b"`, `$."b"`, int64(1),
		`$."c"`, `$."c"`, false,
	}, params)
}

func TestCompile_EmptyJunctions(t *testing.T) {
	sql, _, err := NewSQLCompiler().Compile(&filter.And{})
	require.NoError(t, err)
	assert.Equal(t, "1 = 1", sql)

	sql, _, err = NewSQLCompiler().Compile(&filter.Or{})
	require.NoError(t, err)
	assert.Equal(t, "1 = 0", sql)
}

func TestCompile_ArrayFanOut(t *testing.T) {
	sql, params, err := NewSQLCompiler().Compile(filter.Gte("price.values.value.int", value.Int(10)))
	require.NoError(t, err)

	want := "EXISTS (SELECT 1 FROM json_each(doc, ?) AS j1 WHERE " +
		"(json_type(j1.value, ?) IN ('integer', 'real') AND json_extract(j1.value, ?) >= ?))"
	assert.Equal(t, want, sql)
	assert.Equal(t, []any{`$."price"."values"`, `$."value"."int"`, `$."value"."int"`, int64(10)}, params)
}

func TestCompile_ArrayFanOutNull(t *testing.T) {
	sql, params, err := NewSQLCompiler().Compile(filter.Null("price.values.operator"))
	require.NoError(t, err)

	want := "NOT EXISTS (SELECT 1 FROM json_each(doc, ?) AS j1 WHERE " +
		"NOT COALESCE(json_type(j1.value, ?), 'null') = 'null')"
	assert.Equal(t, want, sql)
	assert.Equal(t, []any{`$."price"."values"`, `$."operator"`}, params)
}

func TestCompile_TrailingValuesSegmentIsPlain(t *testing.T) {
	sql, _, err := NewSQLCompiler().Compile(filter.Null("tags.values"))
	require.NoError(t, err)
	assert.NotContains(t, sql, "json_each")
}

func TestCompile_AliasesAreUnique(t *testing.T) {
	expr := filter.Or(
		filter.Eq("a.values.operator", value.String("Equal")),
		filter.Eq("b.values.operator", value.String("Equal")),
	)

	sql, _, err := NewSQLCompiler().Compile(expr)
	require.NoError(t, err)
	assert.Contains(t, sql, "AS j1")
	assert.Contains(t, sql, "AS j2")
}

func TestCompile_CustomColumn(t *testing.T) {
	compiler := &SQLCompiler{Column: "documents.doc"}

	sql, _, err := compiler.Compile(filter.Null("a"))
	require.NoError(t, err)
	assert.Equal(t, "COALESCE(json_type(documents.doc, ?), 'null') = 'null'", sql)
}

func TestCompile_Deterministic(t *testing.T) {
	expr := filter.Or(
		filter.Null("a.values.operator"),
		filter.And(filter.Gt("a.values.value.int", value.Int(1)), filter.Eq("b", value.String("x"))),
	)

	sql1, params1, err := NewSQLCompiler().Compile(expr)
	require.NoError(t, err)
	sql2, params2, err := NewSQLCompiler().Compile(expr)
	require.NoError(t, err)

	assert.Equal(t, sql1, sql2)
	assert.Equal(t, params1, params2)
}
