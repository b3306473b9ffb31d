package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "crux",
	Short: "The Crux compiler MIPS back end",
	Long: `crux translates type checked Crux programs, written as
s-expression documents, into MIPS assembly for SPIM/MARS.`,
}

func Exec() {
	rootCmd.AddCommand(newASTCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFramesCommand())
	rootCmd.AddCommand(newCompileCommand())

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError highlights the prefix when w is a terminal.
func printError(w io.Writer, err error) {
	prefix := "error:"
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		prefix = "\033[1;31merror:\033[0m"
	}
	_, _ = fmt.Fprintln(w, prefix, err)
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("'%s' is a directory, please provide a file", path)
	}
	return f, nil
}
