package ast

import "fmt"

// Symbol is a declared name together with its resolved Type.
// Symbols are compared by identity, two distinct declarations
// may share the same Name in different scopes.
type Symbol struct {
	Name string
	T    Type
}

func NewSymbol(name string, t Type) *Symbol {
	return &Symbol{Name: name, T: t}
}

func (s *Symbol) Type() Type {
	return s.T
}

func (s *Symbol) String() string {
	if s.T == nil {
		return s.Name
	}
	return fmt.Sprintf("%s %s", s.Name, s.T)
}
