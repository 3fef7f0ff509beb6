package mcpserver

import (
	"context"
	"fmt"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/schemamap/adapter"
	"github.com/erraggy/schemamap/internal/config"
	"github.com/erraggy/schemamap/mapping"
	"github.com/erraggy/schemamap/xmlgen"
)

type xmlSchemaInput struct {
	Schemas     []schemaInput `json:"schemas,omitempty"     jsonschema:"JSON Schema documents to compile; the first is the root"`
	RootName    string        `json:"root_name,omitempty"   jsonschema:"Name of the root type when compiling schemas"`
	Project     string        `json:"project,omitempty"     jsonschema:"Inline YAML project file declaring mappers (alternative to schemas)"`
	Mapper      string        `json:"mapper,omitempty"      jsonschema:"Root mapper name in the project file"`
	BaseName    string        `json:"base_name,omitempty"   jsonschema:"File name prefix (default: schema)"`
	Pretty      *bool         `json:"pretty,omitempty"      jsonschema:"Indent the output (default: SCHEMAMAP_PRETTY)"`
	Declaration bool          `json:"declaration,omitempty" jsonschema:"Prepend an XML declaration"`
}

type xsdFile struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
	Content   string `json:"content"`
}

type xmlSchemaOutput struct {
	Root  string    `json:"root"`
	Files []xsdFile `json:"files"`
}

func handleXMLSchema(ctx context.Context, _ *mcp.CallToolRequest, input xmlSchemaInput) (*mcp.CallToolResult, xmlSchemaOutput, error) {
	root, err := xmlRoot(ctx, input)
	if err != nil {
		return errResult(err), xmlSchemaOutput{}, nil
	}

	docs, err := xmlgen.New().Generate(root, input.BaseName)
	if err != nil {
		return errResult(err), xmlSchemaOutput{}, nil
	}
	opts := adapter.XMLOptions{Pretty: boolOr(input.Pretty, cfg.Pretty), Declaration: input.Declaration}
	output := xmlSchemaOutput{Root: root.Name(), Files: makeSlice[xsdFile](len(docs))}
	for _, d := range docs {
		data, err := adapter.XML{}.Dump(d.XML(), opts)
		if err != nil {
			return errResult(err), xmlSchemaOutput{}, nil
		}
		output.Files = append(output.Files, xsdFile{Name: d.Name, Namespace: d.TargetNamespace, Content: string(data)})
	}
	return nil, output, nil
}

// xmlRoot returns the root mapper from either the project file or the
// compiled schemas.
func xmlRoot(ctx context.Context, input xmlSchemaInput) (*mapping.Mapper, error) {
	switch {
	case input.Project != "" && len(input.Schemas) > 0:
		return nil, fmt.Errorf("provide either project or schemas, not both")
	case input.Project != "":
		if input.Mapper == "" {
			return nil, fmt.Errorf("mapper is required with project")
		}
		if int64(len(input.Project)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("project size %d bytes exceeds maximum %d bytes", len(input.Project), cfg.MaxInlineSize)
		}
		f, err := config.Parse([]byte(input.Project))
		if err != nil {
			return nil, err
		}
		mappers, err := f.BuildMappers()
		if err != nil {
			return nil, err
		}
		m, ok := mappers[input.Mapper]
		if !ok {
			names := make([]string, 0, len(mappers))
			for name := range mappers {
				names = append(names, name)
			}
			slices.Sort(names)
			return nil, fmt.Errorf("mapper %q not declared; declared: %v", input.Mapper, names)
		}
		return m, nil
	default:
		result, err := compileSchemas(ctx, input.Schemas, compileSettings{RootName: input.RootName})
		if err != nil {
			return nil, err
		}
		return result.RootMapper()
	}
}
