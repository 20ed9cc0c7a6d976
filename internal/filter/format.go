package filter

import (
	"strings"

	"github.com/roach88/spanfilter/internal/value"
)

// Format renders e as indented text, one node per line:
//
//	OR
//	  name == null
//	  AND
//	    name.operator == "Equal"
//	    name.value.bool == true
//
// A nil expression renders as "TRUE".
func Format(e Expression) string {
	if e == nil {
		return "TRUE\n"
	}
	var b strings.Builder
	writeNode(&b, e, 0)
	return b.String()
}

func writeNode(b *strings.Builder, e Expression, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	switch node := e.(type) {
	case *Leaf:
		b.WriteString(node.Path)
		b.WriteByte(' ')
		b.WriteString(node.Op.Symbol())
		b.WriteByte(' ')
		b.WriteString(value.Format(node.Value))
		b.WriteByte('\n')
	case *And:
		b.WriteString("AND\n")
		for _, c := range node.Children {
			writeNode(b, c, depth+1)
		}
	case *Or:
		b.WriteString("OR\n")
		for _, c := range node.Children {
			writeNode(b, c, depth+1)
		}
	default:
		b.WriteString("?\n")
	}
}

// String renders e on a single line, e.g. (a == 1 AND (b == null OR b > 2)).
func String(e Expression) string {
	switch node := e.(type) {
	case nil:
		return "TRUE"
	case *Leaf:
		return node.Path + " " + node.Op.Symbol() + " " + value.Format(node.Value)
	case *And:
		return join(node.Children, " AND ")
	case *Or:
		return join(node.Children, " OR ")
	default:
		return "?"
	}
}

func join(children []Expression, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = String(c)
	}
	return "(" + strings.Join(parts, sep) + ")"
}
