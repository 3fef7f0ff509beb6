package adapter

import (
	"bytes"
	"encoding/json"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemamap/schemaerrors"
)

// JSON loads and dumps JSON text.
type JSON struct{}

// Name implements Adapter.
func (JSON) Name() string { return "json" }

// Load implements Adapter. The text must be valid JSON; it is decoded through
// yaml.Node so that object key order is preserved.
func (JSON) Load(data []byte) (any, error) {
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		return nil, &schemaerrors.ParseError{Message: "invalid JSON", Cause: err}
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &schemaerrors.ParseError{Message: "decoding JSON", Cause: err}
	}
	v, err := fromNode(&node, 0)
	if err != nil {
		return nil, &schemaerrors.ParseError{Message: "decoding JSON", Cause: err}
	}
	return v, nil
}

// Dump implements Adapter. Objects are written in key insertion order.
func (JSON) Dump(v any, opts DumpOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
