package ast

import (
	"fmt"
	"strings"
)

type Declaration interface {
	Node
	// Prevent external implementation
	aDeclaration()
}

type declaration struct{}

func (declaration) aDeclaration() {}

// VariableDeclaration declares a scalar. Inside a function body it is
// also a Statement.
type VariableDeclaration struct {
	statement
	declaration
	Symbol *Symbol
}

func (d *VariableDeclaration) Name() string {
	return d.Symbol.Name
}

func (d *VariableDeclaration) String() string {
	return fmt.Sprintf("(var %s %s)", d.Symbol.Name, d.Symbol.T)
}

// ArrayDeclaration declares an array, the Symbol's type is an array type.
type ArrayDeclaration struct {
	statement
	declaration
	Symbol *Symbol
}

func (d *ArrayDeclaration) Name() string {
	return d.Symbol.Name
}

func (d *ArrayDeclaration) String() string {
	return fmt.Sprintf("(var %s %s)", d.Symbol.Name, d.Symbol.T)
}

// FunctionDefinition is only valid at the top level of a program.
// The Symbol holds the function's signature.
type FunctionDefinition struct {
	node
	declaration
	Symbol     *Symbol
	Parameters []*Symbol
	Result     Type
	Body       *StatementList
}

func (d *FunctionDefinition) Name() string {
	return d.Symbol.Name
}

func (d *FunctionDefinition) String() string {
	params := make([]string, len(d.Parameters))
	for i, p := range d.Parameters {
		params[i] = fmt.Sprintf("(%s)", p)
	}

	sb := &strings.Builder{}
	sb.WriteString(fmt.Sprintf("(func %s (%s) %s", d.Name(), strings.Join(params, " "), d.Result))
	for _, stmt := range d.Body.Statements {
		sb.WriteString("\n  ")
		sb.WriteString(stmt.String())
	}
	sb.WriteString(")")

	return sb.String()
}
