package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newASTCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ast [source_file]",
		Short: "Print the decoded program",
		Args:  cobra.ExactArgs(1),
		RunE:  runAST,
	}
}

func runAST(cmd *cobra.Command, args []string) error {
	prog, err := decode(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), prog)
	return err
}
