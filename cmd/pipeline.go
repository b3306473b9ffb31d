package cmd

import (
	"io"

	"github.com/hummuswins/Crux-Compiler/ast"
	"github.com/hummuswins/Crux-Compiler/codegen/mips"
	"github.com/hummuswins/Crux-Compiler/pkg/ext"
	"github.com/hummuswins/Crux-Compiler/semantics"
	"github.com/hummuswins/Crux-Compiler/sexpr"
	"github.com/hummuswins/Crux-Compiler/types"
)

type pipeline struct {
	entry string
	trace io.Writer // type analysis trace, nil if disabled
}

// decode reads and decodes the program at path.
func decode(path string) (*ast.DeclarationList, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return sexpr.Decode(string(src))
}

// check decodes the program and runs the analysis passes.
func (p pipeline) check(path string) (*ast.DeclarationList, error) {
	prog, err := decode(path)
	if err != nil {
		return nil, err
	}

	var opts []types.AnalyzeOption
	if p.trace != nil {
		opts = append(opts, types.WithTraversalTrace(p.trace))
	}

	var analyzeErr error
	err = ext.CatchPanic(func() {
		if analyzeErr = types.Analyze(prog, opts...); analyzeErr != nil {
			return
		}
		analyzeErr = semantics.Analyze(prog, semantics.WithEntryPoint(p.entry))
	})
	if err != nil {
		return nil, err
	}
	if analyzeErr != nil {
		return nil, analyzeErr
	}
	return prog, nil
}

// compile runs every pass and returns the generator holding the
// translated program and its frames.
func (p pipeline) compile(path string, opts ...mips.GeneratorOptions) (*mips.Generator, error) {
	prog, err := p.check(path)
	if err != nil {
		return nil, err
	}

	g := mips.NewGenerator(append(opts, mips.WithEntryPoint(p.entry))...)
	var genErr error
	err = ext.CatchPanic(func() {
		genErr = g.Generate(prog)
	})
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return nil, genErr
	}
	return g, nil
}
