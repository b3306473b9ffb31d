package mips

import (
	"io"

	"github.com/hummuswins/Crux-Compiler/ast"
)

type GeneratorOptions func(*Generator)

// WithEntryPoint sets the function which is left unmangled and
// terminates the program when it returns. Defaults to main.
func WithEntryPoint(name string) GeneratorOptions {
	return func(g *Generator) {
		g.entry = name
	}
}

// WithTrace writes every translated node and frame change to out.
func WithTrace(out io.Writer) GeneratorOptions {
	return func(g *Generator) {
		g.tracer = newTracer(out)
	}
}

// WithComments interleaves "# begin" and "# end" comments for every
// node with the emitted instructions.
func WithComments() GeneratorOptions {
	return func(g *Generator) {
		g.comments = true
	}
}

// WithOracle replaces the source of expression types.
func WithOracle(oracle TypeOracle) GeneratorOptions {
	return func(g *Generator) {
		g.oracle = oracle
	}
}

// WithRuntime controls whether the built-in routines and their
// strings are part of the rendered Program.
func WithRuntime(enabled bool) GeneratorOptions {
	return func(g *Generator) {
		g.runtime = enabled
	}
}

// TypeOracle maps an expression to its resolved type.
type TypeOracle interface {
	TypeOf(ast.Expression) ast.Type
}

// annotations reads the types stored on the nodes by types.Analyze.
type annotations struct{}

func (annotations) TypeOf(e ast.Expression) ast.Type {
	return e.Type()
}
