// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemamap/adapter"
	"github.com/erraggy/schemamap/mapping"
)

// PersonSchema is a root object with a nested object, a collection, a
// defaulted boolean and a date.
const PersonSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Person",
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer"},
    "active": {"type": "boolean", "default": true},
    "born": {"type": "string", "format": "date"},
    "tags": {"type": "array", "items": {"type": "string"}},
    "address": {"$ref": "#/$defs/address"}
  },
  "$defs": {
    "address": {
      "type": "object",
      "properties": {
        "street": {"type": "string"},
        "city": {"type": "string"}
      }
    }
  }
}`

// NodeSchema is a self-referencing tree node.
const NodeSchema = `{
  "type": "object",
  "properties": {
    "value": {"type": "number"},
    "children": {"type": "array", "items": {"$ref": "#"}}
  }
}`

// LoadJSON loads a JSON document into a tree, failing the test on error.
func LoadJSON(t *testing.T, src string) any {
	t.Helper()

	doc, err := adapter.JSON{}.Load([]byte(src))
	if err != nil {
		t.Fatalf("Failed to load JSON fixture: %v", err)
	}
	return doc
}

// NewAddressMapper returns an Address mapper in the "urn:common" namespace
// with prefix "c".
func NewAddressMapper() *mapping.Mapper {
	m := mapping.NewMapper("Address").
		MustAttribute("street", mapping.String).
		MustAttribute("city", mapping.String)
	if err := m.XMLNamespace("urn:common", "c"); err != nil {
		panic(err)
	}
	return m
}

// NewPersonMapper returns a Person mapper in the "urn:person" namespace
// (prefix "p") with an Address element from the common namespace.
func NewPersonMapper() *mapping.Mapper {
	m := mapping.NewMapper("Person").
		MustAttribute("name", mapping.String).
		MustAttribute("active", mapping.Boolean, mapping.DefaultValue(true)).
		MustAttribute("tags", mapping.String, mapping.Collection()).
		MustAttribute("address", NewAddressMapper())
	if err := m.XMLNamespace("urn:person", "p"); err != nil {
		panic(err)
	}
	return m
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}

	tmpFile := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}

	return tmpFile
}

// WriteTempJSON writes a raw JSON document, or marshals any other value to
// JSON, into a temporary file and returns its path.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	var data []byte
	switch v := doc.(type) {
	case string:
		data = []byte(v)
	default:
		var err error
		data, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			t.Fatalf("Failed to marshal document to JSON: %v", err)
		}
	}

	tmpFile := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary JSON file: %v", err)
	}

	return tmpFile
}
