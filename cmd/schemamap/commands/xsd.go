package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/erraggy/schemamap/adapter"
	"github.com/erraggy/schemamap/internal/cliutil"
	"github.com/erraggy/schemamap/logging"
	"github.com/erraggy/schemamap/mapping"
	"github.com/erraggy/schemamap/xmlgen"
)

// XSDFlags contains flags for the xsd command
type XSDFlags struct {
	compileFlags
	Mapper      string
	BaseName    string
	Output      string
	Pretty      bool
	Declaration bool
}

func newXSDCmd(g *globalFlags) *cobra.Command {
	flags := &XSDFlags{}
	cmd := &cobra.Command{
		Use:   "xsd [flags] [<schema>...]",
		Short: "Generate XML Schema documents, one per XML namespace",
		Long: `Generate XML Schema (XSD) documents from compiled JSON Schema types, or from
mapper descriptors declared in a project file (--config with --mapper). Mapper
descriptors are the way to assign XML namespaces; elements in a namespace other
than their owner's are referenced through xs:import.`,
		Example: `  schemamap xsd --pretty person.json
  schemamap xsd --config schemamap.yaml --mapper Person -o ./xsd --base-name person`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runXSD(cmd, g, flags, args)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&flags.Mapper, "mapper", "m", "", "root mapper declared in the project file")
	cmd.Flags().StringVar(&flags.BaseName, "base-name", xmlgen.DefaultSchemaName, "file name prefix of the generated documents")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output directory (default: print to stdout)")
	cmd.Flags().BoolVar(&flags.Pretty, "pretty", false, "indent nested elements")
	cmd.Flags().BoolVar(&flags.Declaration, "declaration", false, "prepend an XML declaration")
	return cmd
}

func runXSD(cmd *cobra.Command, g *globalFlags, flags *XSDFlags, args []string) error {
	logger := g.logger(cmd.ErrOrStderr())
	root, err := xsdRoot(cmd, flags, args, logger)
	if err != nil {
		return err
	}

	files, err := xmlgen.New(xmlgen.WithLogger(logger)).Render(root, flags.BaseName,
		adapter.XMLOptions{Pretty: flags.Pretty, Declaration: flags.Declaration})
	if err != nil {
		return err
	}

	if flags.Output == "" {
		names := make([]string, 0, len(files))
		for name := range files {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			cliutil.Writef(cmd.OutOrStdout(), "<!-- File: %s -->\n%s\n", name, files[name])
		}
		return nil
	}
	if err := RejectSymlinkOutput(flags.Output); err != nil {
		return err
	}
	written, err := cliutil.WriteFileSet(flags.Output, files)
	if err != nil {
		return err
	}
	cliutil.Writef(cmd.ErrOrStderr(), "Wrote %d file(s) to %s\n", len(written), flags.Output)
	return nil
}

func xsdRoot(cmd *cobra.Command, flags *XSDFlags, args []string, logger logging.Logger) (*mapping.Mapper, error) {
	project, err := flags.project()
	if err != nil {
		return nil, err
	}
	if flags.Mapper != "" {
		if project == nil {
			return nil, fmt.Errorf("--mapper requires --config")
		}
		if len(args) > 0 {
			return nil, fmt.Errorf("--mapper generates from the project file; schema arguments are not allowed")
		}
		mappers, err := project.BuildMappers()
		if err != nil {
			return nil, err
		}
		m, ok := mappers[flags.Mapper]
		if !ok {
			return nil, fmt.Errorf("mapper %q is not declared in %s", flags.Mapper, project.Path())
		}
		return m, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("requires at least one schema, or --config with --mapper")
	}
	result, err := flags.compile(cmd, args, project, logger)
	if err != nil {
		return nil, err
	}
	return result.RootMapper()
}
