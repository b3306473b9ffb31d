package mips

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/hummuswins/Crux-Compiler/ast"
	"github.com/hummuswins/Crux-Compiler/token"
	"github.com/hummuswins/Crux-Compiler/types"
)

// Generate translates a type checked program into MIPS assembly.
// On failure no Program is returned.
func Generate(root *ast.DeclarationList, opts ...GeneratorOptions) (*Program, error) {
	g := NewGenerator(opts...)
	if err := g.Generate(root); err != nil {
		return nil, err
	}
	return g.Program(), nil
}

type Generator struct {
	entry    string
	runtime  bool
	comments bool
	oracle   TypeOracle
	tracer   trace

	program *Program
	global  *GlobalFrame
	records []*ActivationRecord
	report  []string
}

func NewGenerator(opts ...GeneratorOptions) *Generator {
	g := &Generator{
		entry:   "main",
		runtime: true,
		oracle:  annotations{},
		tracer:  dummyTracer{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// context is passed down the traversal. A function definition
// hands a new context to its body, the caller's context is
// untouched.
type context struct {
	frame    Frame
	function *ActivationRecord
}

// Generate translates root into a fresh Program. Translation stops at
// the first error, which is also added to the ErrorReport.
func (g *Generator) Generate(root *ast.DeclarationList) error {
	g.program = NewProgram(g.entry)
	g.program.runtime = g.runtime
	g.global = NewGlobalFrame()
	g.records = nil

	g.tracer.frame("push", g.global)
	err := g.visit(context{frame: g.global}, root)
	g.tracer.frame("pop", g.global)

	if err != nil {
		g.program = nil
		g.report = append(g.report, err.Error())
	}
	return err
}

// Program returns the result of the last call to Generate,
// nil if it failed.
func (g *Generator) Program() *Program {
	return g.program
}

// Frames returns the global frame and the record of every
// translated function, in program order.
func (g *Generator) Frames() (*GlobalFrame, []*ActivationRecord) {
	return g.global, g.records
}

func (g *Generator) HasError() bool {
	return len(g.report) > 0
}

func (g *Generator) ErrorReport() string {
	return strings.Join(g.report, "\n")
}

func (g *Generator) comment(prefix string, n ast.Node) {
	if !g.comments {
		return
	}
	name := strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
	if n.Position().IsKnown() {
		g.program.AppendInstruction(fmt.Sprintf("# %s %s %s", prefix, name, n.Position()))
	} else {
		g.program.AppendInstruction(fmt.Sprintf("# %s %s", prefix, name))
	}
}

func (g *Generator) visit(ctx context, n ast.Node) error {
	g.tracer.pre(n)
	g.comment("begin", n)

	if err := g.translate(ctx, n); err != nil {
		return atNode(n, err)
	}

	g.comment("end", n)
	g.tracer.post(n)
	return nil
}

func (g *Generator) typeOf(e ast.Expression) (ast.Type, error) {
	t := g.oracle.TypeOf(e)
	if t == nil {
		return nil, newInternalErrorF("expression %s has no type", e)
	}
	return t, nil
}

// translate emits the code for a single node. Every expression leaves
// exactly one value on the stack, statements and declarations leave
// the stack as they found it.
func (g *Generator) translate(ctx context, n ast.Node) error {
	p := g.program

	switch node := n.(type) {
	case *ast.Error:
		return codegenError{class: classErrorNode, msg: fmt.Sprintf("cannot compile a %s", node)}

	// Lists

	case *ast.DeclarationList:
		for _, decl := range node.Declarations {
			if err := g.visit(ctx, decl); err != nil {
				return err
			}
		}

	case *ast.StatementList:
		for _, stmt := range node.Statements {
			if err := g.visit(ctx, stmt); err != nil {
				return err
			}
			if call, ok := stmt.(*ast.Call); ok {
				if err := g.drain(call); err != nil {
					return err
				}
			}
		}

	case *ast.ExpressionList:
		for _, expr := range node.Expressions {
			if err := g.visit(ctx, expr); err != nil {
				return err
			}
		}

	// Declarations

	case *ast.VariableDeclaration:
		return ctx.frame.Add(p, node)

	case *ast.ArrayDeclaration:
		return ctx.frame.Add(p, node)

	case *ast.FunctionDefinition:
		return g.function(ctx, node)

	// Statements

	case *ast.Assignment:
		return g.assignment(ctx, node)

	case *ast.IfElseBranch:
		then, elseLabel, end := p.NewLabel(), p.NewLabel(), p.NewLabel()
		if err := g.condition(ctx, node.Condition, elseLabel); err != nil {
			return err
		}
		p.label(then)
		if err := g.visit(ctx, node.Then); err != nil {
			return err
		}
		p.emit("j", end)
		p.label(elseLabel)
		if node.Else != nil {
			if err := g.visit(ctx, node.Else); err != nil {
				return err
			}
		}
		p.label(end)

	case *ast.WhileLoop:
		top, end := p.NewLabel(), p.NewLabel()
		p.label(top)
		if err := g.condition(ctx, node.Condition, end); err != nil {
			return err
		}
		if err := g.visit(ctx, node.Body); err != nil {
			return err
		}
		p.emit("j", top)
		p.label(end)

	case *ast.Return:
		return g.returnStatement(ctx, node)

	// Expressions

	case *ast.LiteralBool:
		value := 0
		if node.Value {
			value = 1
		}
		p.emit("li", t0, value)
		p.PushInt(t0)

	case *ast.LiteralInt:
		p.emit("li", t0, node.Value)
		p.PushInt(t0)

	case *ast.LiteralFloat:
		p.emit("li.s", f0, ast.FormatFloat(node.Value))
		p.PushFloat(f0)

	case *ast.AddressOf:
		if _, err := ctx.frame.Resolve(p, t0, node.Symbol); err != nil {
			return err
		}
		p.PushInt(t0)

	case *ast.Dereference:
		return g.dereference(ctx, node)

	case *ast.Index:
		return g.index(ctx, node)

	case *ast.Arithmetic:
		return g.arithmetic(ctx, node)

	case *ast.Logical:
		if err := g.operands(ctx, node.Left, node.Right); err != nil {
			return err
		}
		p.PopInt(t0)
		p.PopInt(t1)
		switch node.Operator {
		case token.LogicalAnd:
			p.emit("and", t2, t0, t1)
		case token.LogicalOr:
			p.emit("or", t2, t0, t1)
		default:
			return newInternalErrorF("unknown logical operator '%s'", node.Operator)
		}
		p.PushInt(t2)

	case *ast.LogicalNot:
		if err := g.visit(ctx, node.Expression); err != nil {
			return err
		}
		p.PopInt(t0)
		p.emit("sltiu", t1, t0, 1)
		p.PushInt(t1)

	case *ast.Comparison:
		return g.comparison(ctx, node)

	case *ast.Call:
		return g.call(ctx, node)

	default:
		return newInternalErrorF("unexpected node %T", n)
	}

	return nil
}

func (g *Generator) function(ctx context, fn *ast.FunctionDefinition) error {
	if ctx.function != nil {
		return newInternalErrorF("function '%s' defined inside '%s'", fn.Name(), ctx.function.Name())
	}

	ar, err := NewActivationRecord(fn, ctx.frame)
	if err != nil {
		return err
	}
	g.tracer.frame("push", ar)

	p := g.program
	pos := p.label(functionLabel(fn.Name(), g.entry))

	if err := g.visit(context{frame: ar, function: ar}, fn.Body); err != nil {
		return err
	}

	// the size of the frame is only known once the body is translated
	p.InsertPrologue(pos+1, ar.StackSize())
	p.label(epilogueLabel(fn.Name()))
	if fn.Name() == g.entry {
		p.appendTeardown(ar.StackSize())
		p.AppendExitSequence()
	} else {
		p.AppendEpilogue(ar.StackSize())
	}

	g.records = append(g.records, ar)
	g.tracer.frame("pop", ar)
	return nil
}

// operands evaluates right before left, the left value ends up on top.
func (g *Generator) operands(ctx context, left, right ast.Expression) error {
	if err := g.visit(ctx, right); err != nil {
		return err
	}
	return g.visit(ctx, left)
}

// condition evaluates cond and branches to target if it is false.
func (g *Generator) condition(ctx context, cond ast.Expression, target string) error {
	if err := g.visit(ctx, cond); err != nil {
		return err
	}
	g.program.PopInt(t0)
	g.program.emit("beqz", t0, target)
	return nil
}

// drain discards the value a call used as a statement left on the stack.
func (g *Generator) drain(call *ast.Call) error {
	t, err := g.typeOf(call)
	if err != nil {
		return err
	}
	switch {
	case types.IsFloat(t):
		g.program.PopFloat(f0)
	case types.IsIntegerClass(t):
		g.program.PopInt(t0)
	}
	return nil
}

func (g *Generator) arithmetic(ctx context, node *ast.Arithmetic) error {
	if err := g.operands(ctx, node.Left, node.Right); err != nil {
		return err
	}
	t, err := g.typeOf(node)
	if err != nil {
		return err
	}

	p := g.program
	switch {
	case types.IsFloat(t):
		op, ok := map[token.Type]string{
			token.Sum: "add.s",
			token.Sub: "sub.s",
			token.Mul: "mul.s",
			token.Div: "div.s",
		}[node.Operator]
		if !ok {
			return newInternalErrorF("unknown arithmetic operator '%s'", node.Operator)
		}
		p.PopFloat(f0)
		p.PopFloat(f1)
		p.emit(op, f0, f0, f1)
		p.PushFloat(f0)

	case t.Equals(types.NewInt()):
		p.PopInt(t0)
		p.PopInt(t1)
		switch node.Operator {
		case token.Sum:
			p.emit("addu", t0, t0, t1)
		case token.Sub:
			p.emit("subu", t0, t0, t1)
		case token.Mul:
			p.emit("mult", t0, t1)
			p.emit("mflo", t0)
		case token.Div:
			p.emit("div", t0, t1)
			p.emit("mflo", t0)
		default:
			return newInternalErrorF("unknown arithmetic operator '%s'", node.Operator)
		}
		p.PushInt(t0)

	default:
		return newInternalErrorF("arithmetic on %s", t)
	}
	return nil
}

func (g *Generator) comparison(ctx context, node *ast.Comparison) error {
	if err := g.operands(ctx, node.Left, node.Right); err != nil {
		return err
	}
	t, err := g.typeOf(node.Left)
	if err != nil {
		return err
	}

	p := g.program
	switch {
	case types.IsIntegerClass(t):
		p.PopInt(t0)
		p.PopInt(t1)
		// t2 = left < right, t3 = left == right
		p.emit("slt", t2, t0, t1)
		p.emit("xor", t3, t0, t1)
		p.emit("sltiu", t3, t3, 1)

		switch node.Operator {
		case token.LessThan:
			p.emit("move", t4, t2)
		case token.LessThanEqual:
			p.emit("or", t4, t2, t3)
		case token.Equal:
			p.emit("move", t4, t3)
		case token.GreaterThanEqual:
			p.emit("sltiu", t4, t2, 1)
		case token.GreaterThan:
			p.emit("or", t4, t2, t3)
			p.emit("sltiu", t4, t4, 1)
		case token.NotEqual:
			p.emit("sltiu", t4, t3, 1)
		default:
			return newInternalErrorF("unknown comparison operator '%s'", node.Operator)
		}
		p.PushInt(t4)

	case types.IsFloat(t):
		p.PopFloat(f0)
		p.PopFloat(f1)

		// The FPU only compares for eq, lt and le: greater-than swaps
		// the operands, not-equal branches on the inverted flag.
		branch := "bc1f"
		switch node.Operator {
		case token.LessThan:
			p.emit("c.lt.s", f0, f1)
		case token.LessThanEqual:
			p.emit("c.le.s", f0, f1)
		case token.Equal:
			p.emit("c.eq.s", f0, f1)
		case token.GreaterThanEqual:
			p.emit("c.le.s", f1, f0)
		case token.GreaterThan:
			p.emit("c.lt.s", f1, f0)
		case token.NotEqual:
			p.emit("c.eq.s", f0, f1)
			branch = "bc1t"
		default:
			return newInternalErrorF("unknown comparison operator '%s'", node.Operator)
		}

		falseLabel, end := p.NewLabel(), p.NewLabel()
		p.emit(branch, falseLabel)
		p.emit("li", t0, 1)
		p.emit("j", end)
		p.label(falseLabel)
		p.emit("li", t0, 0)
		p.label(end)
		p.PushInt(t0)

	default:
		return newInternalErrorF("comparison of %s", t)
	}
	return nil
}

func (g *Generator) dereference(ctx context, node *ast.Dereference) error {
	if err := g.visit(ctx, node.Expression); err != nil {
		return err
	}
	t, err := g.typeOf(node)
	if err != nil {
		return err
	}

	p := g.program
	p.PopInt(t0)
	switch {
	case types.IsFloat(t):
		p.emit("lwc1", f0, offset(0, t0))
		p.PushFloat(f0)
	case types.IsIntegerClass(t):
		p.emit("lw", t1, offset(0, t0))
		p.PushInt(t1)
	default:
		return newInternalErrorF("cannot load a value of type %s", t)
	}
	return nil
}

// index computes base + amount * size(element).
func (g *Generator) index(ctx context, node *ast.Index) error {
	if err := g.operands(ctx, node.Base, node.Amount); err != nil {
		return err
	}
	t, err := g.typeOf(node)
	if err != nil {
		return err
	}
	size, err := SizeOf(t.Underlying())
	if err != nil {
		return err
	}

	p := g.program
	p.PopInt(t0)
	p.PopInt(t1)
	if size > 0 && size&(size-1) == 0 {
		p.emit("sll", t1, t1, bits.TrailingZeros(uint(size)))
	} else {
		p.emit("li", t2, size)
		p.emit("mult", t1, t2)
		p.emit("mflo", t1)
	}
	p.emit("addu", t0, t0, t1)
	p.PushInt(t0)
	return nil
}

func (g *Generator) assignment(ctx context, node *ast.Assignment) error {
	if err := g.visit(ctx, node.Source); err != nil {
		return err
	}
	if err := g.visit(ctx, node.Destination); err != nil {
		return err
	}
	t, err := g.typeOf(node.Source)
	if err != nil {
		return err
	}

	p := g.program
	p.PopInt(t1)
	switch {
	case types.IsFloat(t):
		p.PopFloat(f0)
		p.emit("swc1", f0, offset(0, t1))
	case types.IsIntegerClass(t):
		p.PopInt(t0)
		p.emit("sw", t0, offset(0, t1))
	default:
		return newInternalErrorF("cannot store a value of type %s", t)
	}
	return nil
}

// call pushes the arguments left to right, jumps to the callee and
// replaces the arguments by the returned value.
func (g *Generator) call(ctx context, node *ast.Call) error {
	sig, ok := node.Function.Type().(types.Function)
	if !ok {
		return newInternalErrorF("'%s' is not a function", node.Function.Name)
	}
	if node.Arguments != nil {
		if err := g.visit(ctx, node.Arguments); err != nil {
			return err
		}
	}
	argBytes, err := SizeOf(sig.Params)
	if err != nil {
		return err
	}

	p := g.program
	p.emit("jal", functionLabel(node.Function.Name, g.entry))
	if argBytes > 0 {
		p.emit("addiu", sp, sp, argBytes)
	}
	switch {
	case types.IsFloat(sig.Result):
		p.PushFloat(f0)
	case types.IsIntegerClass(sig.Result):
		p.PushInt(v0)
	}
	return nil
}

func (g *Generator) returnStatement(ctx context, node *ast.Return) error {
	if ctx.function == nil {
		return newInternalErrorF("return outside of function")
	}

	if node.Argument != nil {
		if err := g.visit(ctx, node.Argument); err != nil {
			return err
		}
		t, err := g.typeOf(node.Argument)
		if err != nil {
			return err
		}
		switch {
		case types.IsFloat(t):
			g.program.PopFloat(f0)
		case types.IsIntegerClass(t):
			g.program.PopInt(v0)
		default:
			return newInternalErrorF("cannot return a value of type %s", t)
		}
	}

	g.program.emit("j", epilogueLabel(ctx.function.Name()))
	return nil
}
