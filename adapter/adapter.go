// Package adapter provides the load/dump strategies that move schema
// documents between text and the generic tree in package tree.
//
// Adapters are passed explicitly to the compiler and the generators; there
// is no process-wide default. JSON and YAML share an order-preserving decode
// through yaml.Node, so property order in the source document survives into
// the compiled type graph. XML documents (generated XSD files) are handled
// by XML, which works on etree documents rather than generic trees.
package adapter

import (
	"fmt"
	"strings"

	"github.com/erraggy/schemamap/schemaerrors"
)

// DumpOptions controls text output.
type DumpOptions struct {
	// Pretty enables indented, multi-line output
	Pretty bool
}

// Adapter loads text into a tree and dumps a tree back into text.
type Adapter interface {
	// Load parses data into a tree value (see package tree).
	Load(data []byte) (any, error)
	// Dump renders a tree value as text.
	Dump(v any, opts DumpOptions) ([]byte, error)
	// Name returns the format name ("json", "yaml").
	Name() string
}

// ForFormat returns the adapter registered under name.
func ForFormat(name string) (Adapter, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	default:
		return nil, &schemaerrors.ConfigError{
			Option:  "format",
			Value:   name,
			Message: fmt.Sprintf("unsupported format; valid formats: %s", strings.Join(Formats(), ", ")),
		}
	}
}

// Formats lists the supported tree formats.
func Formats() []string {
	return []string{"json", "yaml"}
}
