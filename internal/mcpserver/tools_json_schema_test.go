package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemamap/internal/testutil"
)

func TestJSONSchemaTool(t *testing.T) {
	pretty := false
	_, output, err := handleJSONSchema(context.Background(), &mcp.CallToolRequest{}, jsonSchemaInput{
		Schemas:  []schemaInput{{Content: testutil.PersonSchema}},
		RootName: "Person",
		Title:    "People",
		Pretty:   &pretty,
	})
	require.NoError(t, err)

	assert.Equal(t, "Person", output.Root)
	assert.Equal(t, "json", output.Format)
	assert.Equal(t, 2, output.Definitions)
	assert.Contains(t, output.Schema, `"title":"People"`)
	assert.Contains(t, output.Schema, `"$ref":"#/$defs/Person"`)
}

func TestJSONSchemaTool_YAML(t *testing.T) {
	_, output, err := handleJSONSchema(context.Background(), &mcp.CallToolRequest{}, jsonSchemaInput{
		Schemas:  []schemaInput{{Content: testutil.PersonSchema}},
		RootName: "Person",
		Format:   "yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, "yaml", output.Format)
	assert.Contains(t, output.Schema, "$defs:")
}

func TestJSONSchemaTool_BadFormat(t *testing.T) {
	res, _, err := handleJSONSchema(context.Background(), &mcp.CallToolRequest{}, jsonSchemaInput{
		Schemas: []schemaInput{{Content: testutil.PersonSchema}},
		Format:  "toml",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}
