package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erraggy/schemamap/compiler"
	"github.com/erraggy/schemamap/internal/config"
	"github.com/erraggy/schemamap/logging"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// compileFlags are the compiler flags shared by compile, jsonschema and xsd.
type compileFlags struct {
	RootName         string
	NamespaceMapping []string
	ConfigPath       string
	NoDedup          bool
}

func (f *compileFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.RootName, "root-name", "", "name of the root type (default: taken from the schema)")
	cmd.Flags().StringArrayVar(&f.NamespaceMapping, "namespace-mapping", nil, "map a schema $id to a Go package path, as id=pkg (repeatable)")
	cmd.Flags().StringVarP(&f.ConfigPath, "config", "c", "", "path to a schemamap.yaml project file")
	cmd.Flags().BoolVar(&f.NoDedup, "no-dedup", false, "disable structural deduplication of identical object schemas")
}

// project loads the project file, or returns nil when none was given.
func (f *compileFlags) project() (*config.File, error) {
	if f.ConfigPath == "" {
		return nil, nil
	}
	return config.Load(f.ConfigPath)
}

// options merges project file settings with flags. Flags win.
func (f *compileFlags) options(project *config.File, logger logging.Logger) ([]compiler.Option, error) {
	var opts []compiler.Option
	if project != nil {
		opts = append(opts, project.CompileOptions()...)
	}
	if f.RootName != "" {
		opts = append(opts, compiler.WithRootName(f.RootName))
	}
	if len(f.NamespaceMapping) > 0 {
		mapping, err := ParseNamespaceMapping(f.NamespaceMapping)
		if err != nil {
			return nil, err
		}
		opts = append(opts, compiler.WithNamespaceMapping(mapping))
	}
	if f.NoDedup {
		opts = append(opts, compiler.WithDedup(false))
	}
	return append(opts, compiler.WithLogger(logger)), nil
}

// compile reads the schema files and compiles them.
func (f *compileFlags) compile(cmd *cobra.Command, paths []string, project *config.File, logger logging.Logger) (*compiler.Result, error) {
	docs, err := ReadSchemas(cmd.InOrStdin(), paths)
	if err != nil {
		return nil, err
	}
	opts, err := f.options(project, logger)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(docs, opts...)
}

// ParseNamespaceMapping parses id=pkg pairs. The split is on the last '='
// so ids may contain '='.
func ParseNamespaceMapping(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		i := strings.LastIndex(pair, "=")
		if i <= 0 || i == len(pair)-1 {
			return nil, fmt.Errorf("invalid namespace mapping %q: expected id=package", pair)
		}
		out[pair[:i]] = pair[i+1:]
	}
	return out, nil
}

// ReadSchemas reads every path, with StdinFilePath reading from stdin once.
func ReadSchemas(stdin io.Reader, paths []string) ([][]byte, error) {
	docs := make([][]byte, 0, len(paths))
	usedStdin := false
	for _, path := range paths {
		if path == StdinFilePath {
			if usedStdin {
				return nil, fmt.Errorf("stdin can only be read once")
			}
			usedStdin = true
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			docs = append(docs, data)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading schema: %w", err)
		}
		docs = append(docs, data)
	}
	return docs, nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an error if so.
// This prevents symlink attacks where a symlink could redirect output to an unintended location.
func RejectSymlinkOutput(path string) error {
	info, err := os.Lstat(filepath.Clean(path))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", path)
	}
	return nil
}
