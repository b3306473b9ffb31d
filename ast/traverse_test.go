package ast

import (
	"fmt"
	"testing"

	"github.com/hummuswins/Crux-Compiler/token"
	"github.com/nalgeon/be"
)

func TestInspect_Order(t *testing.T) {
	x := NewSymbol("x", nil)
	root := &DeclarationList{
		Declarations: []Declaration{
			&VariableDeclaration{Symbol: x},
			&FunctionDefinition{
				Symbol: NewSymbol("main", nil),
				Body: &StatementList{
					Statements: []Statement{
						&Assignment{
							Destination: &AddressOf{Symbol: x},
							Source: &Arithmetic{
								Operator: token.Sum,
								Left:     &LiteralInt{Value: 1},
								Right:    &LiteralInt{Value: 2},
							},
						},
					},
				},
			},
		},
	}

	var visited []string
	Inspect(root, func(n Node) bool {
		if n == nil {
			visited = append(visited, "<")
			return true
		}
		visited = append(visited, fmt.Sprintf("%T", n))
		return true
	})

	expected := []string{
		"*ast.DeclarationList",
		"*ast.VariableDeclaration", "<",
		"*ast.FunctionDefinition",
		"*ast.StatementList",
		"*ast.Assignment",
		"*ast.Arithmetic",
		"*ast.LiteralInt", "<",
		"*ast.LiteralInt", "<",
		"<",
		"*ast.AddressOf", "<",
		"<",
		"<",
		"<",
		"<",
	}
	be.Equal(t, visited, expected)
}

func TestInspect_SkipChildren(t *testing.T) {
	root := &Arithmetic{
		Operator: token.Mul,
		Left:     &LiteralInt{Value: 1},
		Right:    &LiteralInt{Value: 2},
	}

	count := 0
	Inspect(root, func(n Node) bool {
		if n != nil {
			count++
		}
		return false
	})
	be.Equal(t, count, 1)
}

func TestString(t *testing.T) {
	cases := []struct {
		node     Node
		expected string
	}{
		{&LiteralBool{Value: true}, "(bool true)"},
		{&LiteralInt{Value: -3}, "(int -3)"},
		{&LiteralFloat{Value: 2}, "(float 2.0)"},
		{&LiteralFloat{Value: 1.5}, "(float 1.5)"},
		{&LogicalNot{Expression: &LiteralBool{}}, "(not (bool false))"},
		{
			&Comparison{Operator: token.LessThanEqual, Left: &LiteralInt{Value: 1}, Right: &LiteralInt{Value: 2}},
			"(<= (int 1) (int 2))",
		},
		{
			&Call{Function: NewSymbol("println", nil), Arguments: &ExpressionList{}},
			"(call println)",
		},
		{&Return{}, "(return)"},
		{&Error{Message: "bad"}, `(error "bad")`},
	}
	for _, tc := range cases {
		t.Run(tc.expected, func(t *testing.T) {
			be.Equal(t, tc.node.String(), tc.expected)
		})
	}
}
