package filter

import (
	"fmt"
	"strings"

	"github.com/roach88/spanfilter/internal/value"
)

// Expression is a node of a filter tree.
//
// This is a sealed interface - only *Leaf, *And and *Or implement it, so
// backends can switch over it exhaustively.
type Expression interface {
	expressionNode() // Marker method - seals interface to this package
}

// Operator is the comparison applied by a Leaf.
type Operator uint8

const (
	Equal Operator = iota
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

var operatorNames = [...]string{
	Equal:              "Equal",
	LessThan:           "LessThan",
	LessThanOrEqual:    "LessThanOrEqual",
	GreaterThan:        "GreaterThan",
	GreaterThanOrEqual: "GreaterThanOrEqual",
}

var operatorSymbols = [...]string{
	Equal:              "==",
	LessThan:           "<",
	LessThanOrEqual:    "<=",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
}

func (o Operator) String() string {
	if int(o) < len(operatorNames) {
		return operatorNames[o]
	}
	return fmt.Sprintf("Operator(%d)", o)
}

// Symbol returns the infix form used by Format, e.g. "<=".
func (o Operator) Symbol() string {
	if int(o) < len(operatorSymbols) {
		return operatorSymbols[o]
	}
	return "?"
}

// Valid reports whether o is one of the five defined operators.
func (o Operator) Valid() bool {
	return int(o) < len(operatorNames)
}

// ParseOperator accepts an operator name ("LessThan") or symbol ("<").
// Names are matched case-insensitively.
func ParseOperator(s string) (Operator, error) {
	for i, name := range operatorNames {
		if strings.EqualFold(s, name) || s == operatorSymbols[i] {
			return Operator(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// Leaf compares the stored value at Path against Value.
//
// Example:
//
//	Leaf{Path: "age.value.int", Op: LessThanOrEqual, Value: value.Int(30)}
//
// holds when the document's age.value.int is at most 30.
type Leaf struct {
	Path  string
	Op    Operator
	Value value.Value
}

func (*Leaf) expressionNode() {}

// IsNull reports whether the leaf tests for absence.
func (l *Leaf) IsNull() bool {
	return value.IsNull(l.Value)
}

// And holds when every child holds.
type And struct {
	Children []Expression
}

func (*And) expressionNode() {}

// Or holds when at least one child holds.
type Or struct {
	Children []Expression
}

func (*Or) expressionNode() {}
