package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCompDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "compdb",
		Aliases: []string{"compile-commands"},
		Short:   "Write compile_commands.json for editor tooling",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.app.CompileDB(cmd.Context(), c.buildOptions())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
