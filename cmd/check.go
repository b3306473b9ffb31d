package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hummuswins/Crux-Compiler/ast"
	"github.com/hummuswins/Crux-Compiler/pkg/slices"
	"github.com/spf13/cobra"
)

var (
	checkFlagTrace bool
	checkFlagEntry string
)

func newCheckCommand() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check [source_file]",
		Short: "Output of type and semantic analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}

	checkCmd.PersistentFlags().BoolVar(&checkFlagTrace, "trace", false, "enable trace information output")
	checkCmd.PersistentFlags().StringVar(&checkFlagEntry, "entry", "main", "name of the entry function")

	return checkCmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	p := pipeline{entry: checkFlagEntry}
	if checkFlagTrace {
		p.trace = os.Stdout
	}

	prog, err := p.check(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "+ %[1]s + %[1]s + %[1]s +\n", strings.Repeat("-", 16))
	fmt.Fprintf(out, "| %16s | %16s | %16s |\n", "name", "kind", "type")
	fmt.Fprintf(out, "+ %[1]s + %[1]s + %[1]s +\n", strings.Repeat("-", 16))

	for _, decl := range prog.Declarations {
		name, kind, t := describe(decl)
		fmt.Fprintf(out, "| %16s | %16s | %16s |\n", name, kind, t)
	}

	functions := slices.Filter(prog.Declarations, func(d ast.Declaration) bool {
		_, ok := d.(*ast.FunctionDefinition)
		return ok
	})
	fmt.Fprintf(out, "+ %[1]s + %[1]s + %[1]s +\n", strings.Repeat("-", 16))
	fmt.Fprintf(out, "%d declarations, %d functions\n", len(prog.Declarations), len(functions))

	return nil
}

func describe(decl ast.Declaration) (name, kind string, t ast.Type) {
	switch d := decl.(type) {
	case *ast.VariableDeclaration:
		return d.Name(), "variable", d.Symbol.Type()
	case *ast.ArrayDeclaration:
		return d.Name(), "array", d.Symbol.Type()
	case *ast.FunctionDefinition:
		return d.Name(), "function", d.Symbol.Type()
	default:
		return "?", fmt.Sprintf("%T", decl), nil
	}
}
