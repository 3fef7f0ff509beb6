package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erraggy/schemamap/emitter"
	"github.com/erraggy/schemamap/internal/cliutil"
	"github.com/erraggy/schemamap/internal/severity"
)

// CompileFlags contains flags for the compile command
type CompileFlags struct {
	compileFlags
	Output      string
	PackageName string
	ModulePath  string
	DumpGraph   bool
	MinSeverity string
}

func newCompileCmd(g *globalFlags) *cobra.Command {
	flags := &CompileFlags{}
	cmd := &cobra.Command{
		Use:   "compile [flags] <schema>...",
		Short: "Compile JSON Schema documents into Go mapper source",
		Long: `Compile JSON Schema documents into Go mapper source. The first schema is the
root; the others only supply $ref targets and are matched by their $id. Use
- to read a schema from stdin.`,
		Example: `  schemamap compile person.json
  schemamap compile -o ./models --package models person.json common.json
  schemamap compile --namespace-mapping https://example.com/common.json=common --module-path example.com/app -o ./gen person.json common.json
  schemamap compile --dump-graph person.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, g, flags, args)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output directory (default: print to stdout)")
	cmd.Flags().StringVarP(&flags.PackageName, "package", "p", "", "Go package name for types without a namespace mapping (default: models)")
	cmd.Flags().StringVar(&flags.ModulePath, "module-path", "", "Go module path, required when types span several packages")
	cmd.Flags().BoolVar(&flags.DumpGraph, "dump-graph", false, "print the compiled type graph instead of source")
	cmd.Flags().StringVar(&flags.MinSeverity, "min-severity", "warning", "lowest issue severity to report (info, warning, error)")
	return cmd
}

func runCompile(cmd *cobra.Command, g *globalFlags, flags *CompileFlags, args []string) error {
	minSeverity, ok := severity.Parse(flags.MinSeverity)
	if !ok {
		return fmt.Errorf("invalid min-severity %q: must be one of info, warning, error", flags.MinSeverity)
	}
	logger := g.logger(cmd.ErrOrStderr())

	project, err := flags.project()
	if err != nil {
		return err
	}
	result, err := flags.compile(cmd, args, project, logger)
	if err != nil {
		return err
	}
	cliutil.WriteIssues(cmd.ErrOrStderr(), result.Issues, minSeverity)

	if flags.DumpGraph {
		result.Dump(cmd.OutOrStdout())
		return nil
	}

	opts := []emitter.Option{emitter.WithLogger(logger)}
	if project != nil {
		opts = append(opts, project.EmitterOptions()...)
	}
	if flags.PackageName != "" {
		opts = append(opts, emitter.WithPackageName(flags.PackageName))
	}
	if flags.ModulePath != "" {
		opts = append(opts, emitter.WithModulePath(flags.ModulePath))
	}
	rendered, err := emitter.Render(result.Types, opts...)
	if err != nil {
		return err
	}
	cliutil.WriteIssues(cmd.ErrOrStderr(), rendered.Issues, minSeverity)

	if flags.Output == "" {
		for _, f := range rendered.Files {
			cliutil.Writef(cmd.OutOrStdout(), "// File: %s\n%s\n", f.Name, f.Content)
		}
		return nil
	}
	if err := RejectSymlinkOutput(flags.Output); err != nil {
		return err
	}
	if err := rendered.WriteFiles(flags.Output); err != nil {
		return err
	}
	cliutil.Writef(cmd.ErrOrStderr(), "Wrote %d file(s) for %d type(s) to %s\n", len(rendered.Files), len(result.Types), flags.Output)
	return nil
}
