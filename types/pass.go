package types

import (
	"io"

	"github.com/hummuswins/Crux-Compiler/ast"
	"github.com/hummuswins/Crux-Compiler/pkg/ext"
)

type AnalyzeOption func(*Options)

func WithTraversalTrace(out io.Writer) AnalyzeOption {
	return func(o *Options) { o.tracer = newTracer(out) }
}

type Options struct {
	tracer trace
}

func NewOptions() *Options {
	return &Options{
		tracer: dummyTracer{},
	}
}

func (opt *Options) Apply(options ...AnalyzeOption) *Options {
	for _, o := range options {
		o(opt)
	}
	return opt
}

// Analyze type related semantics. If no error is returned every expression
// in the program is annotated with its type (Type() does not return nil).
//
// Symbols must already be resolved and carry their declared types.
func Analyze(root *ast.DeclarationList, opts ...AnalyzeOption) error {
	options := NewOptions().Apply(opts...)

	c := &checker{}
	var err error

	// Types are checked post-traversal as the type information of
	// child nodes is only available once they have been visited.
	ast.Inspect(root, func(n ast.Node) bool {
		if n == nil {
			n = c.pop()
			if err == nil {
				err = at(n, c.check(n))
			}
			options.tracer.post(n)
			return true
		}
		if err != nil {
			return false
		}

		options.tracer.pre(n)
		c.push(n)

		return true
	})

	return err
}

type checker struct {
	stack     ext.Stack[ast.Node]
	functions ext.Stack[*ast.FunctionDefinition]
}

func (c *checker) push(n ast.Node) {
	c.stack.Push(n)
	if f, ok := n.(*ast.FunctionDefinition); ok {
		c.functions.Push(f)
	}
}

func (c *checker) pop() ast.Node {
	n := c.stack.Pop()
	if _, ok := n.(*ast.FunctionDefinition); ok {
		c.functions.Pop()
	}
	return n
}

func (c *checker) check(n ast.Node) error {
	switch node := n.(type) {
	case *ast.DeclarationList, *ast.StatementList, *ast.ExpressionList:
		return nil

	case *ast.Error:
		return newTypeError(node.Message)

	// Declarations

	case *ast.VariableDeclaration:
		if !IsScalar(node.Symbol.Type()) {
			return newTypeErrorF("variable '%s' must be bool, int or float", node.Name()).
				WithActual(node.Symbol.Type())
		}
		return nil

	case *ast.ArrayDeclaration:
		arr, ok := node.Symbol.Type().(Array)
		if !ok {
			return newTypeErrorF("array '%s' must have an array type", node.Name()).
				WithActual(node.Symbol.Type())
		}
		return checkArray(node.Name(), arr)

	case *ast.FunctionDefinition:
		return checkSignature(node)

	// Statements

	case *ast.Assignment:
		return checkAssignment(node)

	case *ast.IfElseBranch:
		return checkCondition("if", node.Condition)

	case *ast.WhileLoop:
		return checkCondition("while", node.Condition)

	case *ast.Return:
		return c.checkReturn(node)

	// Expressions

	case *ast.LiteralBool:
		node.SetType(NewBool())
	case *ast.LiteralInt:
		node.SetType(NewInt())
	case *ast.LiteralFloat:
		node.SetType(NewFloat())

	case *ast.AddressOf:
		if _, ok := node.Symbol.Type().(Function); ok {
			return newTypeErrorF("cannot take the address of function '%s'", node.Symbol.Name)
		}
		node.SetType(NewAddress(node.Symbol.Type()))

	case *ast.Dereference:
		t := node.Expression.Type()
		if !IsAddress(t) || !IsScalar(t.Underlying()) {
			return newTypeError("cannot dereference").WithActual(t)
		}
		node.SetType(t.Underlying())

	case *ast.Index:
		return checkIndex(node)

	case *ast.Arithmetic:
		l, r := node.Left.Type(), node.Right.Type()
		if !l.Equals(r) || !(IsFloat(l) || l.Equals(NewInt())) {
			return newTypeErrorF("invalid operands for '%s'", node.Operator).
				WithExpect(l).WithActual(r)
		}
		node.SetType(l)

	case *ast.Logical:
		l, r := node.Left.Type(), node.Right.Type()
		if !l.Equals(NewBool()) || !r.Equals(NewBool()) {
			return newTypeErrorF("invalid operands for '%s'", node.Operator).
				WithExpect(NewBool()).WithActual(notBool(l, r))
		}
		node.SetType(NewBool())

	case *ast.LogicalNot:
		if t := node.Expression.Type(); !t.Equals(NewBool()) {
			return newTypeError("invalid operand for 'not'").WithExpect(NewBool()).WithActual(t)
		}
		node.SetType(NewBool())

	case *ast.Comparison:
		l, r := node.Left.Type(), node.Right.Type()
		if !l.Equals(r) || !(IsFloat(l) || l.Equals(NewInt())) {
			return newTypeErrorF("invalid operands for '%s'", node.Operator).
				WithExpect(l).WithActual(r)
		}
		node.SetType(NewBool())

	case *ast.Call:
		return checkCall(node)

	default:
		return newTypeErrorF("unexpected node %T", n)
	}

	return nil
}

func checkArray(name string, arr Array) error {
	if arr.Length < 0 {
		return newTypeErrorF("array '%s' has negative extent %d", name, arr.Length)
	}
	if inner, ok := arr.Element.(Array); ok {
		return checkArray(name, inner)
	}
	if !IsScalar(arr.Element) {
		return newTypeErrorF("array '%s' has invalid element type", name).WithActual(arr.Element)
	}
	return nil
}

func checkSignature(f *ast.FunctionDefinition) error {
	sig, ok := f.Symbol.Type().(Function)
	if !ok {
		return newTypeErrorF("function '%s' has no signature", f.Name())
	}
	if len(sig.Params) != len(f.Parameters) {
		return newTypeErrorF("function '%s' signature does not match its parameters", f.Name())
	}
	for i, p := range f.Parameters {
		if !IsScalar(p.Type()) {
			return newTypeErrorF("parameter '%s' of '%s' must be bool, int or float", p.Name, f.Name()).
				WithActual(p.Type())
		}
		if !sig.Params[i].Equals(p.Type()) {
			return newTypeErrorF("parameter '%s' of '%s'", p.Name, f.Name()).
				WithExpect(sig.Params[i]).WithActual(p.Type())
		}
	}
	if !IsScalar(sig.Result) && !IsVoid(sig.Result) {
		return newTypeErrorF("function '%s' has invalid result type", f.Name()).WithActual(sig.Result)
	}
	return nil
}

func checkAssignment(a *ast.Assignment) error {
	dst, src := a.Destination.Type(), a.Source.Type()
	if !IsAddress(dst) {
		return newTypeError("cannot assign to a non-address").WithActual(dst)
	}
	if !IsScalar(dst.Underlying()) {
		return newTypeError("cannot assign to a location of this type").WithActual(dst.Underlying())
	}
	if !dst.Underlying().Equals(src) {
		return newTypeError("invalid assignment").WithExpect(dst.Underlying()).WithActual(src)
	}
	return nil
}

func checkCondition(kind string, cond ast.Expression) error {
	if t := cond.Type(); !t.Equals(NewBool()) {
		return newTypeErrorF("%s condition must be bool", kind).WithActual(t)
	}
	return nil
}

func (c *checker) checkReturn(r *ast.Return) error {
	if c.functions.Empty() {
		return newTypeError("return outside of function")
	}
	sig, ok := c.functions.Top().Symbol.Type().(Function)
	if !ok {
		return newTypeError("return inside function without signature")
	}

	if r.Argument == nil {
		if !IsVoid(sig.Result) {
			return newTypeError("missing return value").WithExpect(sig.Result)
		}
		return nil
	}
	if !sig.Result.Equals(r.Argument.Type()) {
		return newTypeError("invalid return value").WithExpect(sig.Result).WithActual(r.Argument.Type())
	}
	return nil
}

func checkIndex(node *ast.Index) error {
	base := node.Base.Type()
	if !IsAddress(base) {
		return newTypeError("cannot index a non-address").WithActual(base)
	}
	arr, ok := base.Underlying().(Array)
	if !ok {
		return newTypeError("cannot index a non-array").WithActual(base.Underlying())
	}
	if t := node.Amount.Type(); !t.Equals(NewInt()) {
		return newTypeError("index must be int").WithActual(t)
	}
	node.SetType(NewAddress(arr.Element))
	return nil
}

func checkCall(call *ast.Call) error {
	sig, ok := call.Function.Type().(Function)
	if !ok {
		return newTypeErrorF("cannot call non-function '%s'", call.Function.Name).
			WithActual(call.Function.Type())
	}

	args := call.Arguments.Expressions
	if len(args) != len(sig.Params) {
		return newTypeErrorF(
			"'%s' expects %d arguments, got %d",
			call.Function.Name, len(sig.Params), len(args),
		)
	}
	for i, arg := range args {
		if !sig.Params[i].Equals(arg.Type()) {
			return newTypeErrorF("argument %d of '%s'", i, call.Function.Name).
				WithExpect(sig.Params[i]).WithActual(arg.Type())
		}
	}

	call.SetType(sig.Result)
	return nil
}

func notBool(l, r ast.Type) ast.Type {
	if !l.Equals(NewBool()) {
		return l
	}
	return r
}
