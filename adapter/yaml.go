package adapter

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemamap/schemaerrors"
)

// YAML loads and dumps YAML text. Since JSON is a subset of YAML, YAML.Load
// also accepts JSON documents.
type YAML struct{}

// Name implements Adapter.
func (YAML) Name() string { return "yaml" }

// Load implements Adapter.
func (YAML) Load(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &schemaerrors.ParseError{Message: "decoding YAML", Cause: err}
	}
	v, err := fromNode(&node, 0)
	if err != nil {
		return nil, &schemaerrors.ParseError{Message: "decoding YAML", Cause: err}
	}
	return v, nil
}

// Dump implements Adapter. YAML output is always block style; Pretty has no
// additional effect.
func (YAML) Dump(v any, _ DumpOptions) ([]byte, error) {
	node, err := toNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}
