package types

import (
	"fmt"
	"io"
	"strings"

	"github.com/hummuswins/Crux-Compiler/ast"
)

type trace interface {
	pre(ast.Node)
	post(ast.Node)
}

type tracer struct {
	indent int
	out    io.Writer
}

func newTracer(out io.Writer) *tracer {
	return &tracer{out: out}
}

func (t *tracer) pre(node ast.Node) {
	t.indent += 1
	_, _ = fmt.Fprintf(t.out, "%s> %T\n", strings.Repeat(" ", t.indent), node)
}

// post reports the annotated type of expressions.
func (t *tracer) post(node ast.Node) {
	if expr, ok := node.(ast.Expression); ok && expr.Type() != nil {
		_, _ = fmt.Fprintf(t.out, "%s< %T : %s\n", strings.Repeat(" ", t.indent), node, expr.Type())
	} else {
		_, _ = fmt.Fprintf(t.out, "%s< %T\n", strings.Repeat(" ", t.indent), node)
	}
	t.indent -= 1
}

type dummyTracer struct{}

func (d dummyTracer) pre(node ast.Node) {}

func (d dummyTracer) post(node ast.Node) {}
