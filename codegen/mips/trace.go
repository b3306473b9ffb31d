package mips

import (
	"fmt"
	"io"
	"strings"

	"github.com/hummuswins/Crux-Compiler/ast"
)

type trace interface {
	pre(ast.Node)
	post(ast.Node)
	frame(event string, f Frame)
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

func (t *tracer) post(node ast.Node) {
	_, _ = fmt.Fprintf(t.out, "%s< %T\n", strings.Repeat(" ", t.indent), node)
	t.indent -= 1
}

func (t *tracer) frame(event string, f Frame) {
	name := "global"
	if ar, ok := f.(*ActivationRecord); ok {
		name = ar.Name()
	}
	_, _ = fmt.Fprintf(t.out, "%s# frame %s %s size=%d\n", strings.Repeat(" ", t.indent), event, name, f.StackSize())
}

type dummyTracer struct{}

func (d dummyTracer) pre(ast.Node) {}

func (d dummyTracer) post(ast.Node) {}

func (d dummyTracer) frame(string, Frame) {}
