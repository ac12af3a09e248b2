package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the project in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			check, _ := cmd.Flags().GetBool("check")
			showIncludes, _ := cmd.Flags().GetBool("show-includes")

			opts := c.buildOptions()
			opts.ShowIncludes = showIncludes

			res, err := c.app.Build(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if check && res.Rebuilt {
				return &ExitError{Code: checkStaleCode}
			}
			return nil
		},
	}

	cmd.Flags().Bool("check", false, "Exit with status 2 if anything had to be rebuilt")
	cmd.Flags().Bool("show-includes", false, "Print the headers each translation unit includes")

	return cmd
}
