package ast

// Type represents a type within Crux.
// All types must implement the Type interface.
type Type interface {
	// String provides a string representation of a type.
	String() string

	// Equals must return true if the supplied Type
	// matches the callee. Additionally, equality
	// requires having the same Underlying Type.
	// Other constraints can be imposed by the
	// specific Type.
	Equals(Type) bool

	// Underlying returns the wrapped Type.
	// E.g. the address of an int would return int as its underlying type.
	// If there is no underlying Type the Type itself
	// must be returned.
	Underlying() Type
}
