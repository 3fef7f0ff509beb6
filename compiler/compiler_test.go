package compiler

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemamap/adapter"
	"github.com/erraggy/schemamap/internal/severity"
	"github.com/erraggy/schemamap/internal/testutil"
	"github.com/erraggy/schemamap/mapping"
	"github.com/erraggy/schemamap/schemaerrors"
)

func compileJSON(t *testing.T, opts []Option, schemas ...string) *Result {
	t.Helper()
	srcs := make([][]byte, len(schemas))
	for i, s := range schemas {
		srcs[i] = []byte(s)
	}
	result, err := Compile(srcs, opts...)
	require.NoError(t, err)
	return result
}

func typeNames(types []*ComplexType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name()
	}
	return names
}

func TestCompile_Person(t *testing.T) {
	result := compileJSON(t, nil, testutil.PersonSchema)

	assert.Equal(t, []string{"Address", "Root"}, typeNames(result.Types), "dependencies come first")
	root := result.Root
	assert.Equal(t, "Root", root.Name())
	assert.Equal(t, "", root.Pointer)

	require.Len(t, root.Properties, 6)
	byKey := make(map[string]*Property)
	for _, p := range root.Properties {
		byKey[p.Key] = p
	}

	assert.Equal(t, KindString, byKey["name"].Type.Kind)
	assert.Equal(t, KindInteger, byKey["age"].Type.Kind)
	assert.Equal(t, KindDate, byKey["born"].Type.Kind)

	active := byKey["active"]
	assert.Equal(t, KindBoolean, active.Type.Kind)
	assert.True(t, active.HasDefault)
	assert.Equal(t, true, active.Default)

	tags := byKey["tags"]
	assert.Equal(t, KindString, tags.Type.Kind)
	assert.True(t, tags.Collection)
	assert.False(t, tags.HasDefault)

	address := byKey["address"]
	require.Equal(t, KindComplex, address.Type.Kind)
	assert.Same(t, result.Types[0], address.Type.Complex)
	assert.Equal(t, "#/$defs/address", address.Type.Complex.Pointer)

	require.Len(t, root.References, 1)
	assert.Same(t, address, root.References[0])
	assert.Empty(t, result.Issues)
}

func TestCompile_RootName(t *testing.T) {
	result := compileJSON(t, []Option{WithRootName("Person")}, testutil.PersonSchema)
	assert.Equal(t, "Person", result.Root.Name())
	assert.Equal(t, "person.go", result.Root.FileName())
}

func TestCompile_RootNameFromReference(t *testing.T) {
	result := compileJSON(t, nil, `{"$ref":"#/$defs/customer","$defs":{"customer":{"type":"object","properties":{"id":{"type":"integer"}}}}}`)
	assert.Equal(t, "Customer", result.Root.Name())
	assert.Equal(t, "#/$defs/customer", result.Root.Pointer)
}

func TestCompile_SelfReference(t *testing.T) {
	result := compileJSON(t, nil, testutil.NodeSchema)

	require.Len(t, result.Types, 1)
	root := result.Root
	require.Len(t, root.Properties, 2)
	children := root.Properties[1]
	assert.True(t, children.Collection)
	assert.Same(t, root, children.Type.Complex, "self reference resolves to the same type")
	assert.Empty(t, root.References, "self references are not imports")
}

func TestCompile_MutualRecursion(t *testing.T) {
	result := compileJSON(t, nil, `{
		"type": "object",
		"properties": {"a": {"$ref": "#/$defs/a"}},
		"$defs": {
			"a": {"type": "object", "properties": {"b": {"$ref": "#/$defs/b"}}},
			"b": {"type": "object", "properties": {"a": {"$ref": "#/$defs/a"}}}
		}
	}`)

	assert.Equal(t, []string{"B", "A", "Root"}, typeNames(result.Types))
	a, b := result.Types[1], result.Types[0]
	assert.Same(t, b, a.Properties[0].Type.Complex)
	assert.Same(t, a, b.Properties[0].Type.Complex)
}

func TestCompile_Dedup(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": {
			"a": {"type": "object", "properties": {"x": {"type": "string"}}},
			"b": {"type": "object", "properties": {"x": {"type": "string"}}}
		}
	}`

	t.Run("enabled", func(t *testing.T) {
		result := compileJSON(t, nil, schema)
		assert.Equal(t, []string{"A", "Root"}, typeNames(result.Types))
		a, b := result.Root.Properties[0], result.Root.Properties[1]
		assert.Same(t, a.Type.Complex, b.Type.Complex)
		assert.Equal(t, "b", b.Key, "the wire key is kept")
		assert.Len(t, result.Root.References, 1)
	})

	t.Run("disabled", func(t *testing.T) {
		result := compileJSON(t, []Option{WithDedup(false)}, schema)
		assert.Equal(t, []string{"B", "A", "Root"}, typeNames(result.Types))
	})
}

func TestCompile_DedupKeepsReferenceTargets(t *testing.T) {
	first := `{
		"$id": "http://x/a",
		"type": "object",
		"properties": {
			"p": {"$ref": "#/$defs/p"},
			"q": {"$ref": "http://x/b#/$defs/Holder"}
		},
		"$defs": {
			"p": {"type": "object", "properties": {"v": {"$ref": "#/$defs/V"}}},
			"V": {"type": "string"}
		}
	}`
	second := `{
		"$id": "http://x/b",
		"$defs": {
			"Holder": {"type": "object", "properties": {"v": {"$ref": "#/$defs/V"}}},
			"V": {"type": "integer"}
		}
	}`

	result := compileJSON(t, nil, first, second)
	require.Len(t, result.Root.Properties, 2)
	p, q := result.Root.Properties[0].Type.Complex, result.Root.Properties[1].Type.Complex
	require.NotNil(t, p)
	require.NotNil(t, q)
	assert.NotSame(t, p, q, "same $ref text under different ids is not a duplicate")
	assert.Equal(t, "Holder", q.Name())
	require.Len(t, p.Properties, 1)
	require.Len(t, q.Properties, 1)
	assert.Equal(t, KindString, p.Properties[0].Type.Kind)
	assert.Equal(t, KindInteger, q.Properties[0].Type.Kind)
}

func TestCompile_DedupArrayItems(t *testing.T) {
	result := compileJSON(t, nil, `{
		"type": "object",
		"properties": {
			"lines": {"type": "array", "items": {"type": "object", "properties": {"sku": {"type": "string"}}}},
			"returns": {"type": "array", "items": {"type": "object", "properties": {"sku": {"type": "string"}}}}
		}
	}`)
	assert.Equal(t, []string{"Lines", "Root"}, typeNames(result.Types), "item types are named after their array")
}

func TestCompile_NameCollision(t *testing.T) {
	result := compileJSON(t, nil, `{
		"type": "object",
		"properties": {
			"item": {"type": "object", "properties": {"x": {"type": "string"}}},
			"other": {"type": "object", "properties": {
				"item": {"type": "object", "properties": {"y": {"type": "integer"}}}
			}}
		}
	}`)

	assert.Equal(t, []string{"Item2", "Other", "Item", "Root"}, typeNames(result.Types))
	require.Len(t, result.Issues, 1)
	assert.Equal(t, severity.SeverityInfo, result.Issues[0].Severity)
	assert.Contains(t, result.Issues[0].Message, "renamed to Item2")
}

func TestCompile_NameCollisionSkipsTakenSuffix(t *testing.T) {
	result := compileJSON(t, nil, `{
		"type": "object",
		"properties": {
			"a": {"type": "object", "properties": {"item": {"type": "object", "properties": {"x": {"type": "string"}}}}},
			"b": {"type": "object", "properties": {"item": {"type": "object", "properties": {"y": {"type": "string"}}}}},
			"item2": {"type": "object", "properties": {"z": {"type": "string"}}}
		}
	}`)

	names := typeNames(result.Types)
	assert.Contains(t, names, "Item")
	assert.Contains(t, names, "Item2")
	assert.Contains(t, names, "Item3")
	assert.Len(t, names, 6)
}

func TestCompile_FileNameCollision(t *testing.T) {
	result := compileJSON(t, nil, `{
		"type": "object",
		"properties": {
			"HTTPServer": {"type": "object", "properties": {"a": {"type": "string"}}},
			"httpServer": {"type": "object", "properties": {"b": {"type": "integer"}}}
		}
	}`)

	require.Len(t, result.Types, 3)
	files := make(map[string]string)
	for _, typ := range result.Types {
		prev, dup := files[typ.FileName()]
		assert.False(t, dup, "%s and %s share %s", prev, typ.Name(), typ.FileName())
		files[typ.FileName()] = typ.Name()
	}
	names := typeNames(result.Types)
	assert.Contains(t, names, "HTTPServer")
	assert.Contains(t, names, "HttpServer2")
	require.Len(t, result.Issues, 1)
	assert.Contains(t, result.Issues[0].Message, "renamed to HttpServer2")
}

func TestCompile_Collections(t *testing.T) {
	result := compileJSON(t, nil, `{
		"type": "object",
		"properties": {
			"any": {"type": "array"},
			"ids": {"type": "array", "items": {"type": "integer"}, "default": [1, 2]},
			"none": false
		}
	}`)

	props := result.Root.Properties
	require.Len(t, props, 2, "false schemas yield no property")

	assert.Equal(t, KindValue, props[0].Type.Kind, "missing items compile as a loose value")
	assert.True(t, props[0].Collection)

	assert.True(t, props[1].Collection)
	assert.False(t, props[1].HasDefault)
	assert.Nil(t, props[1].Default)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, severity.SeverityWarning, result.Issues[0].Severity)
	assert.Equal(t, "ids", result.Issues[0].Field)
}

func TestCompile_LooseTypes(t *testing.T) {
	result := compileJSON(t, nil, `{
		"type": "object",
		"properties": {
			"choice": {"anyOf": [{"type": "string"}, {"type": "integer"}]},
			"mixed": {"type": ["string", "integer"]},
			"maybe": {"type": ["string", "null"]},
			"anything": true
		}
	}`)

	kinds := make([]Kind, 0, 4)
	for _, p := range result.Root.Properties {
		kinds = append(kinds, p.Type.Kind)
	}
	assert.Equal(t, []Kind{KindAnyOf, KindValue, KindString, KindValue}, kinds)
}

func TestCompile_MultipleDocumentsAndNamespaces(t *testing.T) {
	person := `{
		"$id": "http://example.com/person.json",
		"type": "object",
		"properties": {"home": {"$ref": "address.json"}}
	}`
	address := `{
		"$id": "http://example.com/address.json",
		"type": "object",
		"properties": {"city": {"type": "string"}}
	}`

	result := compileJSON(t, []Option{
		WithRootName("Person"),
		WithNamespaceMapping(map[string]string{"http://example.com/address.json": "shared/common"}),
	}, person, address)

	require.Len(t, result.Types, 2)
	addr := result.Types[0]
	assert.Equal(t, "common.Home", addr.Name(), "name falls back to the referencing key")
	assert.Equal(t, "shared/common", addr.Package())
	assert.Equal(t, "shared/common/home.go", addr.FileName())
	assert.Equal(t, "http://example.com/address.json", addr.Pointer)
	assert.Empty(t, result.Root.Namespace)
}

func TestCompile_CollisionsArePerPackage(t *testing.T) {
	root := `{
		"$id": "urn:root",
		"type": "object",
		"properties": {
			"item": {"type": "object", "properties": {"a": {"type": "string"}}},
			"other": {"$ref": "urn:other#/$defs/item"}
		}
	}`
	other := `{"$id": "urn:other", "$defs": {"item": {"type": "object", "properties": {"b": {"type": "string"}}}}}`

	result := compileJSON(t, []Option{WithNamespaceMapping(map[string]string{"urn:other": "other"})}, root, other)
	assert.ElementsMatch(t, []string{"Root", "Item", "other.Item"}, typeNames(result.Types))
	assert.Empty(t, result.Issues)
}

func TestCompile_Errors(t *testing.T) {
	t.Run("missing reference", func(t *testing.T) {
		_, err := Compile([][]byte{[]byte(`{"type":"object","properties":{"a":{"$ref":"#/$defs/none"}}}`)})
		var se *schemaerrors.SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "a", se.Key)
		assert.True(t, errors.Is(err, schemaerrors.ErrSchema))
	})

	t.Run("circular reference chain", func(t *testing.T) {
		_, err := Compile([][]byte{[]byte(`{"type":"object","properties":{"a":{"$ref":"#/$defs/x"}},"$defs":{"x":{"$ref":"#/$defs/y"},"y":{"$ref":"#/$defs/x"}}}`)})
		assert.True(t, errors.Is(err, schemaerrors.ErrCircularReference))
	})

	t.Run("duplicate ids", func(t *testing.T) {
		doc := []byte(`{"$id":"urn:same","type":"object"}`)
		_, err := Compile([][]byte{doc, doc})
		assert.ErrorContains(t, err, "schema with id already exists")
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := Compile([][]byte{[]byte(`{"type":`)})
		assert.True(t, errors.Is(err, schemaerrors.ErrParse))
	})

	t.Run("root is not an object", func(t *testing.T) {
		_, err := Compile([][]byte{[]byte(`{"type":"string"}`)})
		assert.True(t, errors.Is(err, schemaerrors.ErrSchema))
	})

	t.Run("no schemas", func(t *testing.T) {
		_, err := Compile(nil)
		assert.True(t, errors.Is(err, schemaerrors.ErrConfig))
	})

	t.Run("invalid options", func(t *testing.T) {
		_, err := Compile([][]byte{[]byte(`{}`)}, WithRootName(" "))
		assert.True(t, errors.Is(err, schemaerrors.ErrConfig))

		_, err = Compile([][]byte{[]byte(`{}`)}, WithNamespaceMapping(map[string]string{"urn:x": "a/../b"}))
		assert.True(t, errors.Is(err, schemaerrors.ErrConfig))

		_, err = Compile([][]byte{[]byte(`{}`)}, WithAdapter(nil))
		assert.True(t, errors.Is(err, schemaerrors.ErrConfig))
	})
}

func TestCompile_YAMLAdapter(t *testing.T) {
	src := []byte("type: object\nproperties:\n  count:\n    type: integer\n    default: 3\n")
	result, err := Compile([][]byte{src}, WithAdapter(adapter.YAML{}))
	require.NoError(t, err)
	require.Len(t, result.Root.Properties, 1)
	assert.Equal(t, int64(3), result.Root.Properties[0].Default)
}

func TestCompileTrees(t *testing.T) {
	result, err := CompileTrees([]any{testutil.LoadJSON(t, testutil.NodeSchema)}, WithRootName("Node"))
	require.NoError(t, err)
	assert.Equal(t, "Node", result.Root.Name())
}

func TestCompile_AttributeNames(t *testing.T) {
	result := compileJSON(t, nil, `{"type":"object","properties":{"firstName":{"type":"string"},"first_name":{"type":"string"}}}`)
	props := result.Root.Properties
	assert.Equal(t, "first_name", props[0].Attribute)
	assert.Equal(t, "first_name_2", props[1].Attribute)
	assert.Equal(t, "first_name", props[1].MappingName())
}

func TestResult_Mappers(t *testing.T) {
	result := compileJSON(t, []Option{WithRootName("Person")}, testutil.PersonSchema)

	mappers, err := result.Mappers()
	require.NoError(t, err)
	require.Len(t, mappers, 2)

	person := mappers["Person"]
	require.NotNil(t, person)
	attrs := person.Attributes()
	require.Len(t, attrs, 6)

	assert.Equal(t, mapping.String, attrs[0].Type)
	assert.True(t, attrs[2].HasDefault())
	def, err := attrs[2].DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, true, def)
	assert.True(t, attrs[4].Collection)

	address, ok := mapping.AsMapper(attrs[5].Type)
	require.True(t, ok)
	assert.Same(t, mappers["Address"], address)

	keys := person.Mapping(mapping.JSON)
	require.Len(t, keys, 6)
	assert.Equal(t, "born", keys[3].Name)
	assert.Equal(t, "born", keys[3].Attribute)

	root, err := result.RootMapper()
	require.NoError(t, err)
	assert.Equal(t, "Person", root.Name())
}

func TestResult_Dump(t *testing.T) {
	result := compileJSON(t, nil, testutil.NodeSchema)
	var buf bytes.Buffer
	result.Dump(&buf)
	out := buf.String()
	assert.Contains(t, out, `Name: (string) (len=4) "Root"`)
	assert.Contains(t, out, `Type: (string) (len=4) "Root"`)
	assert.Contains(t, out, "Collection: (bool) true")
}
