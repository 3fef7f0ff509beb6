// Package commands provides the cobra commands of the schemamap CLI.
package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/erraggy/schemamap/logging"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	Verbose bool
}

// NewRootCmd builds the schemamap command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "schemamap",
		Short: "Compile JSON Schema into object mappers and generate JSON/XML schemas from them",
		Long: `schemamap compiles JSON Schema documents into a type graph and renders Go
mapper descriptors for it. It also generates a normalized JSON Schema or a set
of XML Schema (XSD) documents, one per XML namespace, from the same types.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&g.Verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newCompileCmd(g),
		newJSONSchemaCmd(g),
		newXSDCmd(g),
		newMCPCmd(),
		newVersionCmd(),
	)
	return root
}

// logger returns a debug-level slog logger on w when verbose is set, and a
// no-op logger otherwise.
func (g *globalFlags) logger(w io.Writer) logging.Logger {
	if !g.Verbose {
		return logging.NopLogger{}
	}
	return logging.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}
