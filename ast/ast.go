package ast

import (
	"fmt"
	"strings"

	"github.com/hummuswins/Crux-Compiler/token"
)

type Node interface {
	// Position returns the position of the first token
	// of the Node.
	Position() token.Position
	String() string

	// prevent external implementations
	aNode()
}

type node struct {
	p token.Position
}

func (n *node) SetPosition(p token.Position) { n.p = p }
func (n *node) Position() token.Position     { return n.p }
func (*node) aNode()                         {}

// DeclarationList is the root of a program and contains
// all global variables, arrays and function definitions.
type DeclarationList struct {
	node
	Declarations []Declaration
}

func (dl *DeclarationList) String() string {
	str := make([]string, len(dl.Declarations))
	for i, d := range dl.Declarations {
		str[i] = d.(fmt.Stringer).String()
	}
	return fmt.Sprintf("(program\n%s)", strings.Join(str, "\n"))
}

// Error is produced by earlier passes in place of a construct which
// could not be understood. It can appear wherever a declaration,
// statement or expression is expected and is never translatable.
type Error struct {
	expression
	Message string
}

func (e *Error) aStatement()   {}
func (e *Error) aDeclaration() {}

func (e *Error) String() string {
	return fmt.Sprintf("(error %q)", e.Message)
}
