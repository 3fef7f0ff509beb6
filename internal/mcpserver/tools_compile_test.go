package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemamap/internal/testutil"
)

func TestCompileTool_Inline(t *testing.T) {
	input := compileInput{
		Schemas:     []schemaInput{{Content: testutil.PersonSchema}},
		RootName:    "Person",
		PackageName: "people",
	}
	res, output, err := handleCompile(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, res)

	assert.Equal(t, "Person", output.Root)
	assert.Equal(t, 2, output.TypeCount)
	require.Len(t, output.Types, 2)
	assert.Equal(t, "Address", output.Types[0].Name)
	assert.Equal(t, "Person", output.Types[1].Name)
	require.Len(t, output.Files, 2)
	for _, f := range output.Files {
		assert.NotEmpty(t, f.Content)
		assert.Contains(t, f.Content, "package people")
	}
}

func TestCompileTool_Pagination(t *testing.T) {
	input := compileInput{
		Schemas:  []schemaInput{{Content: testutil.PersonSchema}},
		RootName: "Person",
		Offset:   1,
		Limit:    1,
	}
	_, output, err := handleCompile(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Equal(t, 2, output.TypeCount)
	require.Len(t, output.Types, 1)
	assert.Equal(t, "Person", output.Types[0].Name)
}

func TestCompileTool_OutputDir(t *testing.T) {
	dir := t.TempDir()
	input := compileInput{
		Schemas:   []schemaInput{{Content: testutil.PersonSchema}},
		RootName:  "Person",
		OutputDir: dir,
	}
	_, output, err := handleCompile(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotEmpty(t, output.Files)
	for _, f := range output.Files {
		assert.Empty(t, f.Content)
		info, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(f.Name)))
		require.NoError(t, statErr)
		assert.Equal(t, int64(f.Size), info.Size())
	}
}

func TestCompileTool_Issues(t *testing.T) {
	schema := `{"type":"object","properties":{"tags":{"type":"array","items":{"type":"string"},"default":["a"]}}}`
	_, output, err := handleCompile(context.Background(), &mcp.CallToolRequest{}, compileInput{
		Schemas: []schemaInput{{Content: schema}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, output.Issues)
	assert.Equal(t, "warning", output.Issues[0].Severity)
}

func TestCompileTool_Error(t *testing.T) {
	res, _, err := handleCompile(context.Background(), &mcp.CallToolRequest{}, compileInput{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}
