package token

import (
	"fmt"
)

const (
	// Arithmetic Operators

	Sum = "+"
	Sub = "-"
	Mul = "*"
	Div = "/"

	// Logical Operators

	LogicalAnd = "and"
	LogicalOr  = "or"
	LogicalNot = "not"

	// Comparison Operators

	LessThan         = "<"
	LessThanEqual    = "<="
	Equal            = "=="
	GreaterThanEqual = ">="
	GreaterThan      = ">"
	NotEqual         = "!="

	// reserved type names

	Bool  = "bool"
	Int   = "int"
	Float = "float"
	Void  = "void"
	Array = "array"

	// literals

	True  = "true"
	False = "false"
)

type Type string

// Position of a node within its source document.
// Row and Col are 1-based, the zero Position is unknown.
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// IsKnown reports whether the Position was set.
func (p Position) IsKnown() bool {
	return p.Row > 0
}

var (
	ArithmeticOperators = []Type{Sum, Sub, Mul, Div}
	LogicalOperators    = []Type{LogicalAnd, LogicalOr}
	ComparisonOperators = []Type{
		LessThan,
		LessThanEqual,
		Equal,
		GreaterThanEqual,
		GreaterThan,
		NotEqual,
	}
)
