package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Report syntax errors in one or more files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				res, err := a.pipeline.ParseFile(path)
				if err != nil {
					failed++
					a.report(cmd, res)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok %s (%d statements)\n", path, len(res.Program.Statements))
			}

			if failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d files failed\n", failed, len(args))
				return errReported
			}
			return nil
		},
	}
}
