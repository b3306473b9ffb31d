package mips

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hummuswins/Crux-Compiler/ast"
	"github.com/hummuswins/Crux-Compiler/types"
	"github.com/nalgeon/be"
)

func newFunc(name string, params ...*ast.Symbol) *ast.FunctionDefinition {
	paramTypes := make([]ast.Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type()
	}
	return &ast.FunctionDefinition{
		Symbol:     ast.NewSymbol(name, types.NewFunction(types.NewVoid(), paramTypes...)),
		Parameters: params,
		Result:     types.NewVoid(),
		Body:       &ast.StatementList{},
	}
}

func newVar(name string, t ast.Type) ast.Declaration {
	sym := ast.NewSymbol(name, t)
	if _, ok := t.(types.Array); ok {
		return &ast.ArrayDeclaration{Symbol: sym}
	}
	return &ast.VariableDeclaration{Symbol: sym}
}

func symbolOf(decl ast.Declaration) *ast.Symbol {
	sym, _ := declaredSymbol(decl)
	return sym
}

func TestActivationRecord_Arguments(t *testing.T) {
	a := ast.NewSymbol("a", types.NewInt())
	b := ast.NewSymbol("b", types.NewFloat())

	ar, err := NewActivationRecord(newFunc("f", a, b), NewGlobalFrame())
	be.Err(t, err, nil)

	p := NewProgram("main")
	slot, err := ar.Resolve(p, t0, b)
	be.Err(t, err, nil)
	be.Equal(t, slot.Kind, SlotArgument)
	be.Equal(t, slot.Offset, 0)

	slot, err = ar.Resolve(p, t1, a)
	be.Err(t, err, nil)
	be.Equal(t, slot.Offset, 4)

	be.Equal(t, norm(p.Instructions()), []string{
		"la $t0, 0($fp)",
		"la $t1, 4($fp)",
	})
	be.Equal(t, ar.StackSize(), 0)
}

func TestActivationRecord_Locals(t *testing.T) {
	x := newVar("x", types.NewInt())
	y := newVar("y", types.NewFloat())
	arr := newVar("arr", types.NewArray(5, types.NewInt()))

	ar, err := NewActivationRecord(newFunc("f"), NewGlobalFrame())
	be.Err(t, err, nil)

	p := NewProgram("main")
	for _, decl := range []ast.Declaration{x, y, arr} {
		be.Err(t, ar.Add(p, decl), nil)
	}
	be.Equal(t, len(p.Instructions()), 0)
	be.Equal(t, ar.StackSize(), 28)

	offsets := map[string]int{}
	for _, slot := range ar.Slots() {
		offsets[slot.Symbol.Name] = slot.Offset
	}
	be.Equal(t, offsets, map[string]int{"x": 0, "y": 4, "arr": 8})

	for _, decl := range []ast.Declaration{x, y, arr} {
		_, err := ar.Resolve(p, t0, symbolOf(decl))
		be.Err(t, err, nil)
	}
	be.Equal(t, norm(p.Instructions()), []string{
		"la $t0, -12($fp)",
		"la $t0, -16($fp)",
		"la $t0, -36($fp)",
	})
}

func TestActivationRecord_ResolutionOrder(t *testing.T) {
	global := newVar("v", types.NewInt())
	param := ast.NewSymbol("v", types.NewInt())
	local := newVar("v", types.NewInt())

	p := NewProgram("main")
	g := NewGlobalFrame()
	be.Err(t, g.Add(p, global), nil)

	ar, err := NewActivationRecord(newFunc("f", param), g)
	be.Err(t, err, nil)
	be.Err(t, ar.Add(p, local), nil)

	slot, err := ar.Resolve(p, t0, symbolOf(local))
	be.Err(t, err, nil)
	be.Equal(t, slot.Kind, SlotLocal)

	slot, err = ar.Resolve(p, t0, param)
	be.Err(t, err, nil)
	be.Equal(t, slot.Kind, SlotArgument)

	slot, err = ar.Resolve(p, t0, symbolOf(global))
	be.Err(t, err, nil)
	be.Equal(t, slot.Kind, SlotGlobal)
	be.Equal(t, slot.Label, "cruxdata.v")

	be.Equal(t, norm(p.Instructions()), []string{
		"la $t0, -12($fp)",
		"la $t0, 0($fp)",
		"la $t0, cruxdata.v",
	})
}

func TestActivationRecord_Errors(t *testing.T) {
	param := ast.NewSymbol("a", types.NewInt())
	p := NewProgram("main")

	outer, err := NewActivationRecord(newFunc("outer", param), NewGlobalFrame())
	be.Err(t, err, nil)
	inner, err := NewActivationRecord(newFunc("inner"), outer)
	be.Err(t, err, nil)

	t.Run("not found", func(t *testing.T) {
		_, err := inner.Resolve(p, t0, ast.NewSymbol("a", types.NewInt()))
		be.True(t, errors.Is(err, ErrInternal))
		be.Err(t, err, "symbol 'a' not found")
	})

	t.Run("enclosing frame", func(t *testing.T) {
		_, err := inner.Resolve(p, t0, param)
		be.True(t, errors.Is(err, ErrInternal))
		be.Err(t, err, "enclosing function frame")
	})

	t.Run("parameter as local", func(t *testing.T) {
		err := outer.Add(p, &ast.VariableDeclaration{Symbol: param})
		be.Err(t, err, "already a parameter")
	})

	t.Run("local twice", func(t *testing.T) {
		x := newVar("x", types.NewInt())
		be.Err(t, inner.Add(p, x), nil)
		be.Err(t, inner.Add(p, x), "already a local")
	})

	t.Run("function is not storage", func(t *testing.T) {
		err := inner.Add(p, newFunc("g"))
		be.True(t, errors.Is(err, ErrInternal))
	})

	t.Run("no size", func(t *testing.T) {
		err := inner.Add(p, newVar("fn", types.NewFunction(types.NewVoid())))
		be.True(t, errors.Is(err, ErrNoSize))
	})

	be.Equal(t, len(p.Instructions()), 0)
}

func TestGlobalFrame(t *testing.T) {
	p := NewProgram("main")
	g := NewGlobalFrame()

	x := newVar("x", types.NewBool())
	arr := newVar("arr", types.NewArray(10, types.NewFloat()))
	be.Err(t, g.Add(p, x), nil)
	be.Err(t, g.Add(p, arr), nil)
	be.Err(t, g.Add(p, x), "declared twice")

	be.Equal(t, p.Data(), []string{
		"cruxdata.x:\t\t.space\t4",
		"cruxdata.arr:\t\t.space\t40",
	})
	be.Equal(t, g.StackSize(), 0)
	be.True(t, g.Parent() == nil)

	_, err := g.Resolve(p, t0, ast.NewSymbol("x", types.NewBool()))
	be.True(t, errors.Is(err, ErrInternal))
}

func TestWriteLayout(t *testing.T) {
	p := NewProgram("main")
	g := NewGlobalFrame()
	be.Err(t, g.Add(p, newVar("count", types.NewInt())), nil)

	a := ast.NewSymbol("a", types.NewInt())
	b := ast.NewSymbol("b", types.NewFloat())
	ar, err := NewActivationRecord(newFunc("f", a, b), g)
	be.Err(t, err, nil)
	be.Err(t, ar.Add(p, newVar("buf", types.NewArray(3, types.NewInt()))), nil)

	out := &bytes.Buffer{}
	be.Err(t, WriteLayout(out, g, []*ActivationRecord{ar}), nil)
	be.Equal(t, out.String(), `global
  count cruxdata.count 4
func f stack=12
  a argument 4 4
  b argument 0 4
  buf local 0 12
`)
}
