package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/schemamap"
	"github.com/erraggy/schemamap/internal/cliutil"
)

func newVersionCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if verbose {
				cliutil.Writef(cmd.OutOrStdout(), "schemamap\n%s\n", schemamap.BuildInfo())
				return
			}
			cliutil.Writef(cmd.OutOrStdout(), "schemamap %s\n", schemamap.Version())
		},
	}
	cmd.Flags().BoolVar(&verbose, "build-info", false, "include commit, build time and Go version")
	return cmd
}
