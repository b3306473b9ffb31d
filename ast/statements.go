package ast

import (
	"fmt"
	"strings"

	"github.com/hummuswins/Crux-Compiler/pkg/slices"
)

type Statement interface {
	Node
	// Prevent external implementation
	aStatement()
}

type statement struct{ node }

func (statement) aStatement() {}

// StatementList is a block of statements.
type StatementList struct {
	node
	Statements []Statement
}

func (b *StatementList) String() string {
	strs := slices.Map(b.Statements, func(s Statement) string {
		return s.String()
	})
	if len(strs) == 0 {
		return "(block)"
	}
	return fmt.Sprintf("(block %s)", strings.Join(strs, " "))
}

// Assignment stores Source at the address computed by Destination.
type Assignment struct {
	statement
	Destination Expression
	Source      Expression
}

func (a *Assignment) String() string {
	return fmt.Sprintf("(assign %s %s)", a.Destination, a.Source)
}

type IfElseBranch struct {
	statement
	Condition Expression
	Then      *StatementList
	Else      *StatementList
}

func (i *IfElseBranch) String() string {
	if i.Else == nil {
		return fmt.Sprintf("(if %s %s (block))", i.Condition, i.Then)
	}
	return fmt.Sprintf("(if %s %s %s)", i.Condition, i.Then, i.Else)
}

type WhileLoop struct {
	statement
	Condition Expression
	Body      *StatementList
}

func (w *WhileLoop) String() string {
	return fmt.Sprintf("(while %s %s)", w.Condition, w.Body)
}

// Return leaves the enclosing function. Argument is nil
// for functions returning void.
type Return struct {
	statement
	Argument Expression
}

func (r *Return) String() string {
	if r.Argument == nil {
		return "(return)"
	}
	return fmt.Sprintf("(return %s)", r.Argument)
}
