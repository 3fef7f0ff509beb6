package mcpserver

import (
	"context"
	"fmt"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemamap/compiler"
	"github.com/erraggy/schemamap/emitter"
	"github.com/erraggy/schemamap/internal/issues"
)

type compileInput struct {
	Schemas          []schemaInput     `json:"schemas"                     jsonschema:"JSON Schema documents; the first is the root"`
	RootName         string            `json:"root_name,omitempty"         jsonschema:"Name of the root type (default: taken from the schema)"`
	NamespaceMapping map[string]string `json:"namespace_mapping,omitempty" jsonschema:"Maps schema $id values to Go package paths"`
	NoDedup          bool              `json:"no_dedup,omitempty"          jsonschema:"Disable structural deduplication of identical object schemas"`
	PackageName      string            `json:"package_name,omitempty"      jsonschema:"Go package name for generated code (default: SCHEMAMAP_PACKAGE or models)"`
	ModulePath       string            `json:"module_path,omitempty"       jsonschema:"Go module path, required when namespace_mapping places types in several packages"`
	OutputDir        string            `json:"output_dir,omitempty"        jsonschema:"Directory to write generated files to; content is returned inline when empty"`
	Offset           int               `json:"offset,omitempty"            jsonschema:"Skip this many compiled types in the listing"`
	Limit            int               `json:"limit,omitempty"             jsonschema:"Maximum compiled types to list (default: SCHEMAMAP_TYPE_LIMIT)"`
}

type typeSummary struct {
	Name       string `json:"name"`
	Pointer    string `json:"pointer"`
	Package    string `json:"package"`
	Properties int    `json:"properties"`
}

type issueSummary struct {
	Severity string `json:"severity"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
}

type compiledFile struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
}

type compileOutput struct {
	Root      string         `json:"root"`
	TypeCount int            `json:"type_count"`
	Types     []typeSummary  `json:"types,omitempty"`
	Issues    []issueSummary `json:"issues,omitempty"`
	OutputDir string         `json:"output_dir,omitempty"`
	Files     []compiledFile `json:"files"`
}

func handleCompile(ctx context.Context, _ *mcp.CallToolRequest, input compileInput) (*mcp.CallToolResult, compileOutput, error) {
	result, err := compileSchemas(ctx, input.Schemas, compileSettings{
		RootName:         input.RootName,
		NamespaceMapping: input.NamespaceMapping,
		NoDedup:          input.NoDedup,
	})
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}

	pkg := input.PackageName
	if pkg == "" {
		pkg = cfg.Package
	}
	opts := []emitter.Option{emitter.WithPackageName(pkg)}
	if input.ModulePath != "" {
		opts = append(opts, emitter.WithModulePath(input.ModulePath))
	}
	rendered, err := emitter.Render(result.Types, opts...)
	if err != nil {
		return errResult(err), compileOutput{}, nil
	}
	if input.OutputDir != "" {
		if err := rendered.WriteFiles(input.OutputDir); err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), compileOutput{}, nil
		}
	}

	output := compileOutput{
		Root:      result.Root.Name(),
		TypeCount: len(result.Types),
		Types:     summarizeTypes(paginate(result.Types, input.Offset, input.Limit)),
		Issues:    summarizeIssues(slices.Concat(result.Issues, rendered.Issues)),
		OutputDir: input.OutputDir,
	}
	output.Files = makeSlice[compiledFile](len(rendered.Files))
	for _, f := range rendered.Files {
		file := compiledFile{Name: f.Name, Size: len(f.Content)}
		if input.OutputDir == "" {
			file.Content = string(f.Content)
		}
		output.Files = append(output.Files, file)
	}
	return nil, output, nil
}

func summarizeTypes(types []*compiler.ComplexType) []typeSummary {
	out := makeSlice[typeSummary](len(types))
	for _, t := range types {
		out = append(out, typeSummary{
			Name:       t.Name(),
			Pointer:    t.Pointer,
			Package:    t.Package(),
			Properties: len(t.Properties),
		})
	}
	return out
}

func summarizeIssues(list []issues.Issue) []issueSummary {
	out := makeSlice[issueSummary](len(list))
	for _, i := range list {
		out = append(out, issueSummary{Severity: i.Severity.String(), Path: i.Path, Message: i.Message})
	}
	return out
}
