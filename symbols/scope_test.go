package symbols

import (
	"errors"
	"testing"

	"github.com/hummuswins/Crux-Compiler/ast"
	"github.com/nalgeon/be"
)

func TestScope_Get(t *testing.T) {
	foo := ast.NewSymbol("foo", nil)
	bar := ast.NewSymbol("bar", nil)

	// root <- parent <- child
	//			 |			|
	//			foo		   bar
	root := NewGlobal()
	parent := root.Open()
	be.Err(t, parent.Declare(foo), nil)
	child := parent.Open()
	be.Err(t, child.Declare(bar), nil)

	scope, sym := child.Get("foo")
	be.Equal(t, scope, parent)
	be.Equal(t, sym, foo)

	scope, sym = child.Get("bar")
	be.Equal(t, scope, child)
	be.Equal(t, sym, bar)

	scope, sym = root.Get("foo")
	be.True(t, scope == nil)
	be.True(t, sym == nil)
}

func TestScope_Shadowing(t *testing.T) {
	global := ast.NewSymbol("x", nil)
	local := ast.NewSymbol("x", nil)

	root := NewGlobal(global)
	fn := root.Open()
	be.Err(t, fn.Declare(local), nil)

	sym, err := fn.Resolve("x")
	be.Err(t, err, nil)
	be.Equal(t, sym, local)

	sym, err = root.Resolve("x")
	be.Err(t, err, nil)
	be.Equal(t, sym, global)
}

func TestScope_Redeclare(t *testing.T) {
	s := NewGlobal()
	be.Err(t, s.Declare(ast.NewSymbol("a", nil)), nil)

	err := s.Declare(ast.NewSymbol("a", nil))
	be.True(t, errors.Is(err, ErrSymbol))
	be.Err(t, err, "redeclared")
}

func TestScope_Undeclared(t *testing.T) {
	_, err := NewGlobal().Open().Resolve("missing")
	be.True(t, errors.Is(err, ErrSymbol))
	be.Err(t, err, "undeclared name 'missing'")
}

func TestScope_AllSymbols(t *testing.T) {
	a, b, c := ast.NewSymbol("a", nil), ast.NewSymbol("b", nil), ast.NewSymbol("c", nil)

	root := NewGlobal(b, a)
	child := root.Open()
	be.Err(t, child.Declare(c), nil)

	be.Equal(t, root.Symbols(), []*ast.Symbol{a, b})
	be.Equal(t, root.AllSymbols(), []*ast.Symbol{a, b, c})
	be.Equal(t, child.Depth(), 1)
	be.True(t, IsGlobal(root))
	be.True(t, !IsGlobal(child))
}

func TestScope_MustGet(t *testing.T) {
	defer func() {
		be.True(t, recover() != nil)
	}()
	NewGlobal().MustGet("nope")
}
