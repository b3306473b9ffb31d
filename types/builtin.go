package types

import "github.com/hummuswins/Crux-Compiler/ast"

// BuiltIns returns fresh symbols for the functions every Crux
// program can call without declaring them. The implementations
// are supplied by the runtime of the code generator.
func BuiltIns() []*ast.Symbol {
	return []*ast.Symbol{
		ast.NewSymbol("readInt", NewFunction(NewInt())),
		ast.NewSymbol("readFloat", NewFunction(NewFloat())),
		ast.NewSymbol("printBool", NewFunction(NewVoid(), NewBool())),
		ast.NewSymbol("printInt", NewFunction(NewVoid(), NewInt())),
		ast.NewSymbol("printFloat", NewFunction(NewVoid(), NewFloat())),
		ast.NewSymbol("println", NewFunction(NewVoid())),
	}
}
