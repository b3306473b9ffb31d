package semantics

import (
	"github.com/hummuswins/Crux-Compiler/ast"
	"github.com/hummuswins/Crux-Compiler/types"
)

type Option func(*options)

// WithEntryPoint changes the name of the function the program
// starts in, "main" by default.
func WithEntryPoint(name string) Option {
	return func(o *options) { o.entry = name }
}

type options struct {
	entry string
}

// Analyze ensures that the program adheres to the following rules:
//   - the entry function is present, has no parameters and returns void
//   - the entry function is not called from within the program
//   - all non-void functions have at least one return
func Analyze(root *ast.DeclarationList, opts ...Option) error {
	o := &options{entry: "main"}
	for _, opt := range opts {
		opt(o)
	}

	// TODO: warn about call statements which ignore a non-void result

	if err := ensureEntry(root, o.entry); err != nil {
		return err
	}

	for _, decl := range root.Declarations {
		fn, ok := decl.(*ast.FunctionDefinition)
		if !ok {
			continue
		}
		if err := ensureEntryNotCalled(fn, o.entry); err != nil {
			return err
		}
		if err := ensureReturn(fn); err != nil {
			return err
		}
	}
	return nil
}

func ensureEntry(root *ast.DeclarationList, entry string) error {
	for _, decl := range root.Declarations {
		fn, ok := decl.(*ast.FunctionDefinition)
		if !ok || fn.Name() != entry {
			continue
		}
		if len(fn.Parameters) > 0 {
			return at(fn, newSemanticErrorF("function '%s' must not have parameters", entry))
		}
		if !types.IsVoid(fn.Result) {
			return at(fn, newSemanticErrorF("function '%s' must return void", entry))
		}
		return nil
	}
	return newSemanticErrorF("missing %s function", entry)
}

func ensureEntryNotCalled(fn *ast.FunctionDefinition, entry string) error {
	var err error
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		if call, ok := n.(*ast.Call); ok && call.Function.Name == entry {
			err = at(call, newSemanticErrorF("cannot call %s function", entry))
		}
		return true
	})
	return err
}

func ensureReturn(fn *ast.FunctionDefinition) error {
	if types.IsVoid(fn.Result) {
		return nil
	}

	found := false
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		if _, ok := n.(*ast.Return); ok {
			found = true
		}
		return !found
	})
	if !found {
		return at(fn, newSemanticErrorF("missing return statement in '%s'", fn.Name()))
	}
	return nil
}
