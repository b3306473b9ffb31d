package cmd

import (
	"github.com/hummuswins/Crux-Compiler/codegen/mips"
	"github.com/spf13/cobra"
)

var framesFlagEntry string

func newFramesCommand() *cobra.Command {
	framesCmd := &cobra.Command{
		Use:   "frames [source_file]",
		Short: "Show the storage layout of globals and activation records",
		Args:  cobra.ExactArgs(1),
		RunE:  runFrames,
	}
	framesCmd.PersistentFlags().StringVar(&framesFlagEntry, "entry", "main", "name of the entry function")
	return framesCmd
}

func runFrames(cmd *cobra.Command, args []string) error {
	g, err := pipeline{entry: framesFlagEntry}.compile(args[0])
	if err != nil {
		return err
	}
	global, records := g.Frames()
	return mips.WriteLayout(cmd.OutOrStdout(), global, records)
}
