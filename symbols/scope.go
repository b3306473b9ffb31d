package symbols

import (
	"fmt"
	"sort"

	"github.com/hummuswins/Crux-Compiler/ast"
)

// IsGlobal reports whether the supplied Scope
// is the outermost Scope.
func IsGlobal(scope *Scope) bool {
	return scope.parent == nil
}

// Scope maps names to the [*ast.Symbol] declared within it.
// Scopes form a tree: the global Scope holds the built-ins and every
// function and global variable, each function body opens a child Scope
// for its parameters and each nested block opens another.
type Scope struct {
	depth    int
	parent   *Scope
	children []*Scope
	symbols  map[string]*ast.Symbol
}

// NewGlobal creates the outermost Scope with the supplied
// symbols (usually the built-in functions) pre-declared.
func NewGlobal(predeclared ...*ast.Symbol) *Scope {
	s := newScope(nil)
	for _, sym := range predeclared {
		s.symbols[sym.Name] = sym
	}
	return s
}

func newScope(parent *Scope) *Scope {
	s := new(Scope)
	s.symbols = make(map[string]*ast.Symbol)
	s.parent = parent

	if parent != nil {
		s.depth = parent.depth + 1
		parent.children = append(parent.children, s)
	}

	return s
}

// Open returns a new child Scope of s.
func (s *Scope) Open() *Scope {
	return newScope(s)
}

// Parent returns the enclosing Scope, nil for the global Scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Depth is 0 for the global Scope and increases by one per nesting level.
func (s *Scope) Depth() int {
	return s.depth
}

// Declare registers sym in s. Declaring a name twice within the same
// Scope is an error, shadowing a name of an enclosing Scope is not.
func (s *Scope) Declare(sym *ast.Symbol) error {
	if existing := s.lookup(sym.Name); existing != nil {
		return newSymbolErrorF("'%s' redeclared in this scope", sym.Name)
	}
	s.symbols[sym.Name] = sym
	return nil
}

// Get returns the [*ast.Symbol] with the supplied name together with the
// Scope declaring it. If the name is not declared in the current Scope or
// any of its ancestors, nil is returned for both.
func (s *Scope) Get(name string) (*Scope, *ast.Symbol) {
	return s.lookupClimb(name)
}

// Resolve wraps Get and reports an undeclared name as an error.
func (s *Scope) Resolve(name string) (*ast.Symbol, error) {
	if _, sym := s.Get(name); sym != nil {
		return sym, nil
	}
	return nil, newSymbolErrorF("undeclared name '%s'", name)
}

// MustGet wraps Get and panics if no [*ast.Symbol] is found.
func (s *Scope) MustGet(name string) (*Scope, *ast.Symbol) {
	if scope, sym := s.Get(name); sym != nil {
		return scope, sym
	}
	panic(fmt.Errorf("missing symbol %s", name))
}

// Symbols retrieves all symbols of the current Scope ordered by name.
func (s *Scope) Symbols() []*ast.Symbol {
	syms := make([]*ast.Symbol, 0, len(s.symbols))
	for _, sym := range s.symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name < syms[j].Name })
	return syms
}

// AllSymbols retrieves the symbols of the current Scope and
// all of its children, depth first.
func (s *Scope) AllSymbols() []*ast.Symbol {
	syms := s.Symbols()
	for _, child := range s.children {
		syms = append(syms, child.AllSymbols()...)
	}
	return syms
}

func (s *Scope) lookup(name string) *ast.Symbol {
	return s.symbols[name]
}

// lookupClimb checks if the supplied name is declared in the current Scope
// or any of its ancestors.
func (s *Scope) lookupClimb(name string) (*Scope, *ast.Symbol) {
	for current := s; current != nil; current = current.parent {
		if sym := current.lookup(name); sym != nil {
			return current, sym
		}
	}
	return nil, nil
}
