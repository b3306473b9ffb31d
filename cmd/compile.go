package cmd

import (
	"fmt"
	"os"

	"github.com/hummuswins/Crux-Compiler/codegen/mips"
	"github.com/spf13/cobra"
)

var (
	compileFlagOut         string
	compileFlagEntry       string
	compileFlagAnnotate    bool
	compileFlagTrace       bool
	compileFlagFingerprint bool
	compileFlagNoRuntime   bool
)

func newCompileCommand() *cobra.Command {
	compileCmd := &cobra.Command{
		Use:   "compile [source_file]",
		Short: "Compile a Crux program to MIPS assembly",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompiler,
	}
	flags := compileCmd.PersistentFlags()
	flags.StringVarP(&compileFlagOut, "out", "o", "", "output file, stdout if empty")
	flags.StringVar(&compileFlagEntry, "entry", "main", "name of the entry function")
	flags.BoolVar(&compileFlagAnnotate, "annotate", false, "interleave the AST as comments")
	flags.BoolVar(&compileFlagTrace, "trace", false, "trace the translation to stderr")
	flags.BoolVar(&compileFlagFingerprint, "fingerprint", false, "print the fingerprint of the output to stderr")
	flags.BoolVar(&compileFlagNoRuntime, "no-runtime", false, "omit the built-in runtime routines")
	return compileCmd
}

func runCompiler(cmd *cobra.Command, args []string) error {
	opts := []mips.GeneratorOptions{mips.WithRuntime(!compileFlagNoRuntime)}
	if compileFlagAnnotate {
		opts = append(opts, mips.WithComments())
	}
	if compileFlagTrace {
		opts = append(opts, mips.WithTrace(os.Stderr))
	}

	g, err := pipeline{entry: compileFlagEntry}.compile(args[0], opts...)
	if err != nil {
		return err
	}
	program := g.Program()

	out := cmd.OutOrStdout()
	if compileFlagOut != "" {
		f, err := os.Create(compileFlagOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if _, err := program.WriteTo(out); err != nil {
		return err
	}
	if compileFlagFingerprint {
		fmt.Fprintf(os.Stderr, "%016x\n", program.Fingerprint())
	}
	return nil
}
