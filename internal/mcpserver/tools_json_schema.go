package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemamap/adapter"
	"github.com/erraggy/schemamap/jsongen"
)

type jsonSchemaInput struct {
	Schemas          []schemaInput     `json:"schemas"                     jsonschema:"JSON Schema documents; the first is the root"`
	RootName         string            `json:"root_name,omitempty"         jsonschema:"Name of the root type (default: taken from the schema)"`
	NamespaceMapping map[string]string `json:"namespace_mapping,omitempty" jsonschema:"Maps schema $id values to Go package paths"`
	ID               string            `json:"id,omitempty"                jsonschema:"$id of the generated schema"`
	Title            string            `json:"title,omitempty"             jsonschema:"title of the generated schema"`
	Description      string            `json:"description,omitempty"       jsonschema:"description of the generated schema"`
	Format           string            `json:"format,omitempty"            jsonschema:"Output format: json (default) or yaml"`
	Pretty           *bool             `json:"pretty,omitempty"            jsonschema:"Indent the output (default: SCHEMAMAP_PRETTY)"`
}

type jsonSchemaOutput struct {
	Root        string `json:"root"`
	Format      string `json:"format"`
	Definitions int    `json:"definitions"`
	Schema      string `json:"schema"`
}

func handleJSONSchema(ctx context.Context, _ *mcp.CallToolRequest, input jsonSchemaInput) (*mcp.CallToolResult, jsonSchemaOutput, error) {
	format := input.Format
	if format == "" {
		format = "json"
	}
	a, err := adapter.ForFormat(format)
	if err != nil {
		return errResult(err), jsonSchemaOutput{}, nil
	}

	result, err := compileSchemas(ctx, input.Schemas, compileSettings{
		RootName:         input.RootName,
		NamespaceMapping: input.NamespaceMapping,
	})
	if err != nil {
		return errResult(err), jsonSchemaOutput{}, nil
	}
	root, err := result.RootMapper()
	if err != nil {
		return errResult(err), jsonSchemaOutput{}, nil
	}

	var opts []jsongen.SchemaOption
	if input.ID != "" {
		opts = append(opts, jsongen.WithID(input.ID))
	}
	if input.Title != "" {
		opts = append(opts, jsongen.WithTitle(input.Title))
	}
	if input.Description != "" {
		opts = append(opts, jsongen.WithDescription(input.Description))
	}
	out, err := jsongen.New().Render(root, a, adapter.DumpOptions{Pretty: boolOr(input.Pretty, cfg.Pretty)}, opts...)
	if err != nil {
		return errResult(err), jsonSchemaOutput{}, nil
	}

	return nil, jsonSchemaOutput{
		Root:        root.Name(),
		Format:      a.Name(),
		Definitions: len(result.Types),
		Schema:      string(out),
	}, nil
}
