package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var indent int

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the syntax tree of a file as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipeline.ParseFile(args[0])
			if err != nil {
				return a.report(cmd, res)
			}

			level := a.cfg.Output.Indent
			if cmd.Flags().Changed("indent") {
				level = indent
			}
			if level < 0 {
				return fmt.Errorf("indent must not be negative, got %d", level)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.JSON(level))
			return nil
		},
	}

	cmd.Flags().IntVar(&indent, "indent", 0, "starting indentation level (overrides output.indent)")
	return cmd
}
