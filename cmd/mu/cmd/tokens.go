package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipeline.TokenizeFile(args[0])
			if err != nil {
				return a.report(cmd, res)
			}

			out := cmd.OutOrStdout()
			for _, tok := range res.Tokens {
				fmt.Fprintf(out, "%d:%d\t%s\t%q\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Text)
			}
			return nil
		},
	}
}
