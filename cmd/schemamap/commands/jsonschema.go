package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/schemamap/adapter"
	"github.com/erraggy/schemamap/internal/cliutil"
	"github.com/erraggy/schemamap/jsongen"
)

// JSONSchemaFlags contains flags for the jsonschema command
type JSONSchemaFlags struct {
	compileFlags
	ID          string
	Title       string
	Description string
	Format      string
	Pretty      bool
}

func newJSONSchemaCmd(g *globalFlags) *cobra.Command {
	flags := &JSONSchemaFlags{}
	cmd := &cobra.Command{
		Use:   "jsonschema [flags] <schema>...",
		Short: "Regenerate a normalized JSON Schema from compiled types",
		Long: `Compile JSON Schema documents, then generate a draft 2020-12 JSON Schema for
the root type with every object type under $defs.`,
		Example: `  schemamap jsonschema --pretty person.json
  schemamap jsonschema --format yaml --title Person person.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSONSchema(cmd, g, flags, args)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&flags.ID, "id", "", "$id of the generated schema")
	cmd.Flags().StringVar(&flags.Title, "title", "", "title of the generated schema")
	cmd.Flags().StringVar(&flags.Description, "description", "", "description of the generated schema")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", "json", "output format (json, yaml)")
	cmd.Flags().BoolVar(&flags.Pretty, "pretty", false, "indent JSON output")
	return cmd
}

func runJSONSchema(cmd *cobra.Command, g *globalFlags, flags *JSONSchemaFlags, args []string) error {
	a, err := adapter.ForFormat(flags.Format)
	if err != nil {
		return err
	}
	project, err := flags.project()
	if err != nil {
		return err
	}
	result, err := flags.compile(cmd, args, project, g.logger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	root, err := result.RootMapper()
	if err != nil {
		return err
	}

	var opts []jsongen.SchemaOption
	if flags.ID != "" {
		opts = append(opts, jsongen.WithID(flags.ID))
	}
	if flags.Title != "" {
		opts = append(opts, jsongen.WithTitle(flags.Title))
	}
	if flags.Description != "" {
		opts = append(opts, jsongen.WithDescription(flags.Description))
	}
	out, err := jsongen.New().Render(root, a, adapter.DumpOptions{Pretty: flags.Pretty}, opts...)
	if err != nil {
		return err
	}
	cliutil.Writef(cmd.OutOrStdout(), "%s\n", out)
	return nil
}
