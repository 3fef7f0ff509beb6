package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemamap/internal/testutil"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCompile_Stdout(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.PersonSchema)

	out, _, err := run(t, "", "compile", "--root-name", "Person", "--package", "people", path)
	require.NoError(t, err)
	assert.Contains(t, out, "// File: person.go")
	assert.Contains(t, out, "// File: address.go")
	assert.Contains(t, out, "package people")
	assert.Contains(t, out, `mapping.NewMapper("Person")`)
}

func TestCompile_Stdin(t *testing.T) {
	out, _, err := run(t, testutil.PersonSchema, "compile", "--root-name", "Person", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "package models")
}

func TestCompile_OutputDir(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.PersonSchema)
	dir := t.TempDir()

	_, stderr, err := run(t, "", "compile", "--root-name", "Person", "-o", dir, path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote 2 file(s) for 2 type(s)")
	_, err = os.Stat(filepath.Join(dir, "person.go"))
	assert.NoError(t, err)
}

func TestCompile_DumpGraph(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.PersonSchema)

	out, _, err := run(t, "", "compile", "--root-name", "Person", "--dump-graph", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Person")
	assert.NotContains(t, out, "package models")
}

func TestCompile_Issues(t *testing.T) {
	path := testutil.WriteTempJSON(t, `{"type":"object","properties":{"tags":{"type":"array","items":{"type":"string"},"default":["a"]}}}`)

	_, stderr, err := run(t, "", "compile", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "default dropped on collection")
}

func TestCompile_Verbose(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.PersonSchema)

	_, stderr, err := run(t, "", "compile", "-v", "--root-name", "Person", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
}

func TestCompile_Errors(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.PersonSchema)
	tests := []struct {
		name string
		args []string
	}{
		{"no schemas", []string{"compile"}},
		{"missing file", []string{"compile", filepath.Join(t.TempDir(), "missing.json")}},
		{"bad severity", []string{"compile", "--min-severity", "loud", path}},
		{"bad namespace mapping", []string{"compile", "--namespace-mapping", "nopackage", path}},
		{"missing config", []string{"compile", "--config", filepath.Join(t.TempDir(), "missing.yaml"), path}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			require.Error(t, err)
		})
	}
}

func TestJSONSchema(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.PersonSchema)

	out, _, err := run(t, "", "jsonschema", "--root-name", "Person", "--title", "People", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"$ref":"#/$defs/Person"`)
	assert.Contains(t, out, `"title":"People"`)

	out, _, err = run(t, "", "jsonschema", "--root-name", "Person", "--format", "yaml", path)
	require.NoError(t, err)
	assert.Contains(t, out, "$defs:")

	_, _, err = run(t, "", "jsonschema", "--format", "toml", path)
	require.Error(t, err)
}

const xsdProject = `
mappers:
  - name: Person
    attributes:
      - {name: name, type: string}
      - {name: address, type: Address}
    xml:
      namespace: {uri: "urn:person", prefix: p}
      elements:
        - {name: name}
        - {name: address}
  - name: Address
    attributes:
      - {name: street, type: string}
    xml:
      namespace: {uri: "urn:common", prefix: c}
`

func TestXSD_FromSchema(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.PersonSchema)

	out, _, err := run(t, "", "xsd", "--root-name", "Person", path)
	require.NoError(t, err)
	assert.Contains(t, out, "<!-- File: schema0.xsd -->")
	assert.Contains(t, out, `<xs:complexType name="Person"`)
}

func TestXSD_FromProject(t *testing.T) {
	project := filepath.Join(t.TempDir(), "schemamap.yaml")
	require.NoError(t, os.WriteFile(project, []byte(xsdProject), 0o600))
	dir := t.TempDir()

	_, stderr, err := run(t, "", "xsd", "--config", project, "--mapper", "Person", "--base-name", "person", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote 2 file(s)")

	data, err := os.ReadFile(filepath.Join(dir, "person0.xsd"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `<xs:import namespace="urn:common" schemaLocation="person1.xsd"/>`)
	_, err = os.Stat(filepath.Join(dir, "person1.xsd"))
	assert.NoError(t, err)
}

func TestXSD_Errors(t *testing.T) {
	project := filepath.Join(t.TempDir(), "schemamap.yaml")
	require.NoError(t, os.WriteFile(project, []byte(xsdProject), 0o600))
	path := testutil.WriteTempJSON(t, testutil.PersonSchema)

	tests := []struct {
		name string
		args []string
	}{
		{"nothing to generate", []string{"xsd"}},
		{"mapper without config", []string{"xsd", "--mapper", "Person"}},
		{"unknown mapper", []string{"xsd", "--config", project, "--mapper", "Nobody"}},
		{"mapper with schemas", []string{"xsd", "--config", project, "--mapper", "Person", path}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			require.Error(t, err)
		})
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "schemamap dev\n", out)

	out, _, err = run(t, "", "version", "--build-info")
	require.NoError(t, err)
	assert.Contains(t, out, "Go Version:")
}

func TestParseNamespaceMapping(t *testing.T) {
	got, err := ParseNamespaceMapping([]string{"https://example.com/a.json=a", "urn:x=y=b/c"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"https://example.com/a.json": "a", "urn:x=y": "b/c"}, got)

	for _, bad := range []string{"", "=pkg", "id="} {
		_, err := ParseNamespaceMapping([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestReadSchemas_StdinOnce(t *testing.T) {
	_, err := ReadSchemas(strings.NewReader("{}"), []string{"-", "-"})
	require.Error(t, err)
}

func TestRejectSymlinkOutput(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, RejectSymlinkOutput(filepath.Join(dir, "new")))
	assert.NoError(t, RejectSymlinkOutput(dir))

	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(dir, link))
	assert.Error(t, RejectSymlinkOutput(link))
}
