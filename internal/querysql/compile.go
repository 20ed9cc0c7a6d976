// Package querysql compiles filter expressions to parameterized SQLite
// WHERE clauses over a JSON document column.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/spanfilter/internal/filter"
	"github.com/roach88/spanfilter/internal/value"
)

// DefaultColumn is the JSON document column used when Compiler.Column is empty.
const DefaultColumn = "doc"

// ArraySegment is the path segment under which the backend stores arrays of
// endpoint-encoded values. A leaf path continuing past it is matched against
// every array element.
const ArraySegment = "values"

// SQLCompiler compiles filter expressions to SQL for SQLite's JSON functions.
//
// CRITICAL: All values and JSON paths are parameterized (never interpolated).
//
// Leaf semantics follow filter.Evaluate:
//   - a null leaf holds when the path is absent or JSON null
//   - a comparison only holds between compatible JSON types (numbers with
//     numbers, text with text, booleans with booleans)
//   - a "values" segment followed by further segments fans out over the
//     array with json_each and holds when any element matches
//
// Timestamps are compared as text, so stored timestamps must use the same
// RFC 3339 layout and zone as the query value.
type SQLCompiler struct {
	// Column is the JSON document column. Defaults to "doc".
	Column string
}

// NewSQLCompiler creates a new SQLCompiler for the default column.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{Column: DefaultColumn}
}

// Compile converts an expression to a WHERE clause fragment.
// Returns (sql, params, error). A nil expression compiles to "1 = 1".
func (c *SQLCompiler) Compile(e filter.Expression) (string, []any, error) {
	column := c.Column
	if column == "" {
		column = DefaultColumn
	}
	st := &state{}
	sql, err := st.compile(column, e)
	if err != nil {
		return "", nil, err
	}
	return sql, st.params, nil
}

// state accumulates parameters in placeholder order.
type state struct {
	params []any
	alias  int
}

func (st *state) bind(v any) string {
	st.params = append(st.params, v)
	return "?"
}

func (st *state) nextAlias() string {
	st.alias++
	return fmt.Sprintf("j%d", st.alias)
}

func (st *state) compile(doc string, e filter.Expression) (string, error) {
	switch node := e.(type) {
	case nil:
		return "1 = 1", nil // Always true
	case *filter.Leaf:
		segs := strings.Split(node.Path, ".")
		return st.compileLeaf(doc, segs, node)
	case *filter.And:
		return st.compileJunction(doc, node.Children, " AND ", "1 = 1")
	case *filter.Or:
		return st.compileJunction(doc, node.Children, " OR ", "1 = 0")
	default:
		return "", fmt.Errorf("unsupported expression type: %T", e)
	}
}

func (st *state) compileJunction(doc string, children []filter.Expression, sep, empty string) (string, error) {
	if len(children) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(children))
	for _, child := range children {
		sql, err := st.compile(doc, child)
		if err != nil {
			return "", err
		}
		parts = append(parts, sql)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

// compileLeaf renders one leaf against doc, which is a column or a json_each
// alias value. segs is the remaining dotted path.
func (st *state) compileLeaf(doc string, segs []string, leaf *filter.Leaf) (string, error) {
	// Fan out at the first "values" segment that is not the last segment
	for i, seg := range segs[:len(segs)-1] {
		if seg != ArraySegment {
			continue
		}
		arrayPath, err := jsonPath(segs[:i+1])
		if err != nil {
			return "", err
		}
		alias := st.nextAlias()
		from := fmt.Sprintf("json_each(%s, %s) AS %s", doc, st.bind(arrayPath), alias)

		if leaf.IsNull() {
			inner, err := st.compileLeaf(alias+".value", segs[i+1:], leaf)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("NOT EXISTS (SELECT 1 FROM %s WHERE NOT %s)", from, inner), nil
		}

		inner, err := st.compileLeaf(alias+".value", segs[i+1:], leaf)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("EXISTS (SELECT 1 FROM %s WHERE %s)", from, inner), nil
	}

	path, err := jsonPath(segs)
	if err != nil {
		return "", err
	}

	if leaf.IsNull() {
		return fmt.Sprintf("COALESCE(json_type(%s, %s), 'null') = 'null'", doc, st.bind(path)), nil
	}

	types, param, err := paramFor(leaf.Value)
	if err != nil {
		return "", fmt.Errorf("leaf %q: %w", leaf.Path, err)
	}
	op, err := sqlOperator(leaf.Op)
	if err != nil {
		return "", fmt.Errorf("leaf %q: %w", leaf.Path, err)
	}

	typeCheck := fmt.Sprintf("json_type(%s, %s) IN (%s)", doc, st.bind(path), types)
	compare := fmt.Sprintf("json_extract(%s, %s) %s %s", doc, st.bind(path), op, st.bind(param))
	return "(" + typeCheck + " AND " + compare + ")", nil
}

// jsonPath quotes every segment: ["price/min", "value"] → $."price/min"."value".
func jsonPath(segs []string) (string, error) {
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range segs {
		if strings.ContainsAny(seg, `"\`) {
			return "", fmt.Errorf("path segment %q cannot be quoted", seg)
		}
		b.WriteString(`."`)
		b.WriteString(seg)
		b.WriteByte('"')
	}
	return b.String(), nil
}

func sqlOperator(op filter.Operator) (string, error) {
	switch op {
	case filter.Equal:
		return "=", nil
	case filter.LessThan:
		return "<", nil
	case filter.LessThanOrEqual:
		return "<=", nil
	case filter.GreaterThan:
		return ">", nil
	case filter.GreaterThanOrEqual:
		return ">=", nil
	default:
		return "", fmt.Errorf("unsupported operator %s", op)
	}
}

// paramFor converts a leaf value to a SQL parameter and the JSON types it
// may be compared with.
func paramFor(v value.Value) (string, any, error) {
	switch val := v.(type) {
	case value.Int:
		return "'integer', 'real'", int64(val), nil
	case value.Double:
		return "'integer', 'real'", float64(val), nil
	case value.Bool:
		return "'true', 'false'", bool(val), nil
	case value.String:
		return "'text'", string(val), nil
	case value.DateTime, value.DateTimeOffset, value.Opaque:
		return "'text'", value.Text(val), nil
	default:
		return "", nil, fmt.Errorf("%s value cannot be used as SQL parameter", v.Kind())
	}
}
