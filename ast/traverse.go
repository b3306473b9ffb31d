package ast

import "fmt"

// This is inspired by the go implementation of AST traversal.
// https://go.dev/src/go/ast/walk.go

type Visitor interface {
	Visit(node Node) Visitor
}

func Inspect(root Node, f func(Node) bool) {
	Walk(root, inspector(f))
}

type inspector func(Node) bool

func (v inspector) Visit(node Node) Visitor {
	if v(node) {
		return v
	}
	return nil
}

func Walk(root Node, v Visitor) {
	walker{v: v}.walk(root)
}

type walker struct {
	v Visitor
}

func (w walker) walk(n Node) {
	if n == nil {
		panic("walk received nil node")
	}

	w.v = w.v.Visit(n)
	if w.v == nil {
		return
	}

	switch node := n.(type) {
	case *DeclarationList:
		for _, d := range node.Declarations {
			w.walk(d)
		}

	// Declarations

	case *VariableDeclaration: // leaf

	case *ArrayDeclaration: // leaf

	case *FunctionDefinition:
		w.walk(node.Body)

	// Statements

	case *StatementList:
		for _, stmt := range node.Statements {
			w.walk(stmt)
		}

	case *Assignment:
		w.walk(node.Source)
		w.walk(node.Destination)

	case *IfElseBranch:
		w.walk(node.Condition)
		w.walk(node.Then)
		if node.Else != nil {
			w.walk(node.Else)
		}

	case *WhileLoop:
		w.walk(node.Condition)
		w.walk(node.Body)

	case *Return:
		if node.Argument != nil {
			w.walk(node.Argument)
		}

	// Expressions

	case *ExpressionList:
		for _, e := range node.Expressions {
			w.walk(e)
		}

	case *LiteralBool, *LiteralInt, *LiteralFloat: // leaf

	case *AddressOf: // leaf

	case *Arithmetic:
		w.walk(node.Left)
		w.walk(node.Right)

	case *Logical:
		w.walk(node.Left)
		w.walk(node.Right)

	case *LogicalNot:
		w.walk(node.Expression)

	case *Comparison:
		w.walk(node.Left)
		w.walk(node.Right)

	case *Dereference:
		w.walk(node.Expression)

	case *Index:
		w.walk(node.Base)
		w.walk(node.Amount)

	case *Call:
		if node.Arguments != nil {
			w.walk(node.Arguments)
		}

	case *Error: // leaf

	default:
		panic(fmt.Errorf("unhandled node type in walker: %T", node))
	}

	w.v.Visit(nil)
}
