package ast

import (
	"fmt"
	"strings"

	"github.com/hummuswins/Crux-Compiler/pkg/slices"
	"github.com/hummuswins/Crux-Compiler/token"
)

type Expression interface {
	Node
	// Type is available after the type checking pass,
	// before that it returns nil.
	Type() Type
	SetType(Type)
	aExpression()
}

type expression struct {
	node
	T Type
}

func (e *expression) Type() Type     { return e.T }
func (e *expression) SetType(t Type) { e.T = t }
func (*expression) aExpression()     {}

// ExpressionList holds the arguments of a Call.
type ExpressionList struct {
	node
	Expressions []Expression
}

func (l *ExpressionList) String() string {
	strs := slices.Map(l.Expressions, func(e Expression) string {
		return e.String()
	})
	return strings.Join(strs, " ")
}

// AddressOf = address of Symbol
type AddressOf struct {
	expression
	Symbol *Symbol
}

func (a *AddressOf) String() string {
	return fmt.Sprintf("(addr %s)", a.Symbol.Name)
}

// Arithmetic = Left (+|-|*|/) Right
type Arithmetic struct {
	expression
	Operator    token.Type
	Left, Right Expression
}

func (a *Arithmetic) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Operator, a.Left, a.Right)
}

// Logical = Left (and|or) Right, both sides are always evaluated.
type Logical struct {
	expression
	Operator    token.Type
	Left, Right Expression
}

func (l *Logical) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Operator, l.Left, l.Right)
}

// LogicalNot = not Expression
type LogicalNot struct {
	expression
	Expression Expression
}

func (n *LogicalNot) String() string {
	return fmt.Sprintf("(not %s)", n.Expression)
}

// Comparison = Left (<|<=|==|>=|>|!=) Right
type Comparison struct {
	expression
	Operator    token.Type
	Left, Right Expression
}

func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Operator, c.Left, c.Right)
}

// Dereference loads the value stored at the address Expression.
type Dereference struct {
	expression
	Expression Expression
}

func (d *Dereference) String() string {
	return fmt.Sprintf("(deref %s)", d.Expression)
}

// Index computes the address of Base[Amount].
type Index struct {
	expression
	Base   Expression
	Amount Expression
}

func (i *Index) String() string {
	return fmt.Sprintf("(index %s %s)", i.Base, i.Amount)
}

// Call is an expression which may also be used as a statement.
type Call struct {
	expression
	Function  *Symbol
	Arguments *ExpressionList
}

func (c *Call) aStatement() {}

func (c *Call) String() string {
	if c.Arguments == nil || len(c.Arguments.Expressions) == 0 {
		return fmt.Sprintf("(call %s)", c.Function.Name)
	}
	return fmt.Sprintf("(call %s %s)", c.Function.Name, c.Arguments)
}
