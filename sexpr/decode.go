package sexpr

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/hummuswins/Crux-Compiler/ast"
	"github.com/hummuswins/Crux-Compiler/symbols"
	"github.com/hummuswins/Crux-Compiler/token"
	"github.com/hummuswins/Crux-Compiler/types"
)

// ErrDecode matches every error returned by Decode which
// is caused by a malformed document.
var ErrDecode = errors.New("decode error")

// Decode reads a Crux program written as an s-expression document
// and builds its AST. Every name is resolved to the [*ast.Symbol]
// of its declaration, the built-in functions are pre-declared.
// Expression types are left for [types.Analyze].
//
//	(program
//	  (var count int)
//	  (func main () void
//	    (call printInt (deref (addr count)))))
func Decode(src string) (*ast.DeclarationList, error) {
	root, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return DecodeNode(root)
}

// DecodeNode builds the AST of an already parsed document.
func DecodeNode(root *Node) (*ast.DeclarationList, error) {
	d := &decoder{scope: symbols.NewGlobal(types.BuiltIns()...)}
	return d.program(root)
}

type decoder struct {
	scope *symbols.Scope
}

type positioned interface {
	SetPosition(token.Position)
}

func at[T positioned](n *Node, v T) T {
	v.SetPosition(n.Pos)
	return v
}

func fail(n *Node, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", n.Pos, ErrDecode, fmt.Sprintf(format, args...))
}

// resolved wraps symbol errors with the position of the reference.
func resolved(n *Node, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", n.Pos, err)
}

func (d *decoder) open() func() {
	outer := d.scope
	d.scope = outer.Open()
	return func() { d.scope = outer }
}

func expectArgs(n *Node, count int) ([]*Node, error) {
	if n.Type != NodeList || len(n.Args()) != count {
		return nil, fail(n, "'%s' expects %d operands", n.Head(), count)
	}
	return n.Args(), nil
}

func (d *decoder) program(n *Node) (*ast.DeclarationList, error) {
	if n.Head() != "program" {
		return nil, fail(n, "expected (program ...)")
	}

	list := at(n, &ast.DeclarationList{})
	for _, item := range n.Args() {
		decl, err := d.declaration(item)
		if err != nil {
			return nil, err
		}
		list.Declarations = append(list.Declarations, decl)
	}
	return list, nil
}

func (d *decoder) declaration(n *Node) (ast.Declaration, error) {
	switch n.Head() {
	case "var":
		return d.variable(n)
	case "func":
		return d.function(n)
	case "error":
		return d.errorNode(n)
	default:
		return nil, fail(n, "expected declaration, got %s", n)
	}
}

// variable decodes both scalar and array declarations.
func (d *decoder) variable(n *Node) (ast.Declaration, error) {
	args, err := expectArgs(n, 2)
	if err != nil {
		return nil, err
	}
	name, err := identifier(args[0])
	if err != nil {
		return nil, err
	}
	t, err := typeOf(args[1])
	if err != nil {
		return nil, err
	}

	sym := ast.NewSymbol(name, t)
	if err := d.scope.Declare(sym); err != nil {
		return nil, resolved(args[0], err)
	}

	if _, ok := t.(types.Array); ok {
		return at(n, &ast.ArrayDeclaration{Symbol: sym}), nil
	}
	return at(n, &ast.VariableDeclaration{Symbol: sym}), nil
}

func (d *decoder) function(n *Node) (*ast.FunctionDefinition, error) {
	args := n.Args()
	if len(args) < 3 {
		return nil, fail(n, "expected (func name (params...) result body...)")
	}
	name, err := identifier(args[0])
	if err != nil {
		return nil, err
	}
	if args[1].Type != NodeList {
		return nil, fail(args[1], "expected parameter list")
	}
	result, err := typeOf(args[2])
	if err != nil {
		return nil, err
	}

	var params []*ast.Symbol
	for _, p := range args[1].Items {
		if p.Type != NodeList || len(p.Items) != 2 {
			return nil, fail(p, "expected (name type) parameter")
		}
		pname, err := identifier(p.Items[0])
		if err != nil {
			return nil, err
		}
		pt, err := typeOf(p.Items[1])
		if err != nil {
			return nil, err
		}
		params = append(params, ast.NewSymbol(pname, pt))
	}

	paramTypes := make([]ast.Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type()
	}
	sym := ast.NewSymbol(name, types.NewFunction(result, paramTypes...))
	// declared before the body so recursive calls resolve
	if err := d.scope.Declare(sym); err != nil {
		return nil, resolved(args[0], err)
	}

	defer d.open()()
	for i, p := range params {
		if err := d.scope.Declare(p); err != nil {
			return nil, resolved(args[1].Items[i], err)
		}
	}

	body, err := d.statements(n, args[3:])
	if err != nil {
		return nil, err
	}

	return at(n, &ast.FunctionDefinition{
		Symbol:     sym,
		Parameters: params,
		Result:     result,
		Body:       body,
	}), nil
}

func (d *decoder) statements(owner *Node, items []*Node) (*ast.StatementList, error) {
	list := at(owner, &ast.StatementList{})
	for _, item := range items {
		stmt, err := d.statement(item)
		if err != nil {
			return nil, err
		}
		list.Statements = append(list.Statements, stmt)
	}
	return list, nil
}

// block decodes (block stmts...) within a new scope.
func (d *decoder) block(n *Node) (*ast.StatementList, error) {
	if n.Head() != "block" {
		return nil, fail(n, "expected (block ...)")
	}
	defer d.open()()
	return d.statements(n, n.Args())
}

func (d *decoder) statement(n *Node) (ast.Statement, error) {
	switch n.Head() {
	case "var":
		decl, err := d.variable(n)
		if err != nil {
			return nil, err
		}
		return decl.(ast.Statement), nil

	case "assign":
		args, err := expectArgs(n, 2)
		if err != nil {
			return nil, err
		}
		dst, err := d.expression(args[0])
		if err != nil {
			return nil, err
		}
		src, err := d.expression(args[1])
		if err != nil {
			return nil, err
		}
		return at(n, &ast.Assignment{Destination: dst, Source: src}), nil

	case "call":
		return d.call(n)

	case "if":
		args := n.Args()
		if len(args) != 2 && len(args) != 3 {
			return nil, fail(n, "expected (if cond (block ...) [(block ...)])")
		}
		cond, err := d.expression(args[0])
		if err != nil {
			return nil, err
		}
		then, err := d.block(args[1])
		if err != nil {
			return nil, err
		}
		branch := at(n, &ast.IfElseBranch{Condition: cond, Then: then})
		if len(args) == 3 {
			if branch.Else, err = d.block(args[2]); err != nil {
				return nil, err
			}
		}
		return branch, nil

	case "while":
		args, err := expectArgs(n, 2)
		if err != nil {
			return nil, err
		}
		cond, err := d.expression(args[0])
		if err != nil {
			return nil, err
		}
		body, err := d.block(args[1])
		if err != nil {
			return nil, err
		}
		return at(n, &ast.WhileLoop{Condition: cond, Body: body}), nil

	case "return":
		switch len(n.Args()) {
		case 0:
			return at(n, &ast.Return{}), nil
		case 1:
			arg, err := d.expression(n.Args()[0])
			if err != nil {
				return nil, err
			}
			return at(n, &ast.Return{Argument: arg}), nil
		default:
			return nil, fail(n, "expected (return [value])")
		}

	case "error":
		return d.errorNode(n)

	default:
		return nil, fail(n, "expected statement, got %s", n)
	}
}

func (d *decoder) call(n *Node) (*ast.Call, error) {
	args := n.Args()
	if len(args) == 0 {
		return nil, fail(n, "expected (call name args...)")
	}
	name, err := identifier(args[0])
	if err != nil {
		return nil, err
	}
	fn, err := d.scope.Resolve(name)
	if err != nil {
		return nil, resolved(args[0], err)
	}

	list := at(n, &ast.ExpressionList{})
	for _, a := range args[1:] {
		e, err := d.expression(a)
		if err != nil {
			return nil, err
		}
		list.Expressions = append(list.Expressions, e)
	}
	return at(n, &ast.Call{Function: fn, Arguments: list}), nil
}

func (d *decoder) errorNode(n *Node) (*ast.Error, error) {
	args, err := expectArgs(n, 1)
	if err != nil || args[0].Type != NodeString {
		return nil, fail(n, "expected (error \"message\")")
	}
	return at(n, &ast.Error{Message: args[0].Text}), nil
}

func (d *decoder) expression(n *Node) (ast.Expression, error) {
	head := n.Head()
	op := token.Type(head)

	switch {
	case head == "bool":
		args, err := expectArgs(n, 1)
		if err != nil {
			return nil, err
		}
		switch args[0].Text {
		case token.True:
			return at(n, &ast.LiteralBool{Value: true}), nil
		case token.False:
			return at(n, &ast.LiteralBool{Value: false}), nil
		}
		return nil, fail(args[0], "invalid bool literal '%s'", args[0].Text)

	case head == "int":
		args, err := expectArgs(n, 1)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseInt(args[0].Text, 10, 32)
		if err != nil || args[0].Type != NodeNumber {
			return nil, fail(args[0], "invalid int literal '%s'", args[0].Text)
		}
		return at(n, &ast.LiteralInt{Value: int32(v)}), nil

	case head == "float":
		args, err := expectArgs(n, 1)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(args[0].Text, 32)
		if err != nil || args[0].Type != NodeNumber {
			return nil, fail(args[0], "invalid float literal '%s'", args[0].Text)
		}
		return at(n, &ast.LiteralFloat{Value: float32(v)}), nil

	case head == "addr":
		args, err := expectArgs(n, 1)
		if err != nil {
			return nil, err
		}
		name, err := identifier(args[0])
		if err != nil {
			return nil, err
		}
		sym, err := d.scope.Resolve(name)
		if err != nil {
			return nil, resolved(args[0], err)
		}
		return at(n, &ast.AddressOf{Symbol: sym}), nil

	case head == "deref":
		args, err := expectArgs(n, 1)
		if err != nil {
			return nil, err
		}
		e, err := d.expression(args[0])
		if err != nil {
			return nil, err
		}
		return at(n, &ast.Dereference{Expression: e}), nil

	case head == "index":
		l, r, err := d.operands(n)
		if err != nil {
			return nil, err
		}
		return at(n, &ast.Index{Base: l, Amount: r}), nil

	case head == token.LogicalNot:
		args, err := expectArgs(n, 1)
		if err != nil {
			return nil, err
		}
		e, err := d.expression(args[0])
		if err != nil {
			return nil, err
		}
		return at(n, &ast.LogicalNot{Expression: e}), nil

	case slices.Contains(token.ArithmeticOperators, op):
		l, r, err := d.operands(n)
		if err != nil {
			return nil, err
		}
		return at(n, &ast.Arithmetic{Operator: op, Left: l, Right: r}), nil

	case slices.Contains(token.LogicalOperators, op):
		l, r, err := d.operands(n)
		if err != nil {
			return nil, err
		}
		return at(n, &ast.Logical{Operator: op, Left: l, Right: r}), nil

	case slices.Contains(token.ComparisonOperators, op):
		l, r, err := d.operands(n)
		if err != nil {
			return nil, err
		}
		return at(n, &ast.Comparison{Operator: op, Left: l, Right: r}), nil

	case head == "call":
		return d.call(n)

	case head == "error":
		return d.errorNode(n)

	default:
		return nil, fail(n, "expected expression, got %s", n)
	}
}

func (d *decoder) operands(n *Node) (ast.Expression, ast.Expression, error) {
	args, err := expectArgs(n, 2)
	if err != nil {
		return nil, nil, err
	}
	l, err := d.expression(args[0])
	if err != nil {
		return nil, nil, err
	}
	r, err := d.expression(args[1])
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func identifier(n *Node) (string, error) {
	if n.Type != NodeSymbol {
		return "", fail(n, "expected identifier, got %s", n)
	}
	return n.Text, nil
}

func typeOf(n *Node) (ast.Type, error) {
	if n.Type == NodeSymbol {
		switch n.Text {
		case token.Bool:
			return types.NewBool(), nil
		case token.Int:
			return types.NewInt(), nil
		case token.Float:
			return types.NewFloat(), nil
		case token.Void:
			return types.NewVoid(), nil
		}
		return nil, fail(n, "unknown type '%s'", n.Text)
	}

	if n.Head() != token.Array {
		return nil, fail(n, "expected type, got %s", n)
	}
	args, err := expectArgs(n, 2)
	if err != nil {
		return nil, err
	}
	elem, err := typeOf(args[0])
	if err != nil {
		return nil, err
	}
	length, err := strconv.Atoi(args[1].Text)
	if err != nil || args[1].Type != NodeNumber {
		return nil, fail(args[1], "invalid array extent '%s'", args[1].Text)
	}
	return types.NewArray(length, elem), nil
}
