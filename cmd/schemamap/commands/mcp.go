package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/schemamap/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long: `Run a Model Context Protocol server over stdio exposing the compile,
json_schema and xml_schema tools. Defaults are read from SCHEMAMAP_*
environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
