package types

import (
	"fmt"
	"strings"

	"github.com/hummuswins/Crux-Compiler/ast"
	ext "github.com/hummuswins/Crux-Compiler/pkg/slices"
)

type Bool struct{}

func NewBool() Bool {
	return Bool{}
}

func (b Bool) String() string {
	return "bool"
}

func (b Bool) Equals(some ast.Type) bool {
	_, ok := some.(Bool)
	return ok
}

func (b Bool) Underlying() ast.Type {
	return b
}

type Int struct{}

func NewInt() Int {
	return Int{}
}

func (i Int) String() string {
	return "int"
}

func (i Int) Equals(some ast.Type) bool {
	_, ok := some.(Int)
	return ok
}

func (i Int) Underlying() ast.Type {
	return i
}

type Float struct{}

func NewFloat() Float {
	return Float{}
}

func (f Float) String() string {
	return "float"
}

func (f Float) Equals(some ast.Type) bool {
	_, ok := some.(Float)
	return ok
}

func (f Float) Underlying() ast.Type {
	return f
}

// Void is an [ast.Type] which represents the absence of a type.
type Void struct{}

func NewVoid() Void {
	return Void{}
}

func (v Void) String() string {
	return "void"
}

func (v Void) Equals(some ast.Type) bool {
	_, ok := some.(Void)
	return ok
}

func (v Void) Underlying() ast.Type {
	return v
}

// Array is a fixed size sequence of Element.
type Array struct {
	Element ast.Type
	Length  int
}

func NewArray(length int, elem ast.Type) Array {
	return Array{Element: elem, Length: length}
}

func (a Array) String() string {
	return fmt.Sprintf("(array %s %d)", a.Element, a.Length)
}

func (a Array) Equals(some ast.Type) bool {
	other, ok := some.(Array)
	if !ok {
		return false
	}
	if a.Length != other.Length {
		return false
	}
	return other.Element.Equals(a.Element)
}

func (a Array) Underlying() ast.Type {
	return a
}

// TypeList is the list of parameter types of a function.
type TypeList []ast.Type

func NewTypeList(ts ...ast.Type) TypeList {
	return append(TypeList{}, ts...)
}

func (l TypeList) String() string {
	str := ext.Map(l, func(t ast.Type) string { return t.String() })
	return fmt.Sprintf("(%s)", strings.Join(str, " "))
}

func (l TypeList) Equals(some ast.Type) bool {
	other, ok := some.(TypeList)
	if !ok || len(other) != len(l) {
		return false
	}
	for i := range l {
		if !l[i].Equals(other[i]) {
			return false
		}
	}
	return true
}

func (l TypeList) Underlying() ast.Type {
	return l
}

type Function struct {
	Params TypeList
	Result ast.Type
}

func NewFunction(res ast.Type, params ...ast.Type) Function {
	return Function{Params: NewTypeList(params...), Result: res}
}

func (f Function) String() string {
	return fmt.Sprintf("(func %s %s)", f.Params, f.Result)
}

func (f Function) Equals(some ast.Type) bool {
	other, ok := some.(Function)
	if !ok {
		return false
	}
	return f.Params.Equals(other.Params) && f.Result.Equals(other.Result)
}

func (f Function) Underlying() ast.Type {
	return f
}

// Address is the type of a memory location holding a value of
// the underlying type. It is produced by taking the address of a
// symbol or by indexing into an array.
type Address struct {
	to ast.Type
}

func NewAddress(to ast.Type) Address {
	return Address{to: to}
}

func (t Address) String() string {
	return fmt.Sprintf("(addr %s)", t.to)
}

func (t Address) Equals(some ast.Type) bool {
	other, ok := some.(Address)
	if !ok {
		return false
	}
	return other.to.Equals(t.to)
}

func (t Address) Underlying() ast.Type {
	return t.to
}

func IsAddress(t ast.Type) bool {
	_, ok := t.(Address)
	return ok
}

// IsScalar reports whether values of t fit into a single word
// and can be loaded, stored and passed around directly.
func IsScalar(t ast.Type) bool {
	switch t.(type) {
	case Bool, Int, Float:
		return true
	default:
		return false
	}
}

// IsIntegerClass reports whether values of t live in integer
// registers: booleans, integers and addresses.
func IsIntegerClass(t ast.Type) bool {
	switch t.(type) {
	case Bool, Int, Address:
		return true
	default:
		return false
	}
}

func IsFloat(t ast.Type) bool {
	_, ok := t.(Float)
	return ok
}

func IsVoid(t ast.Type) bool {
	_, ok := t.(Void)
	return ok
}
