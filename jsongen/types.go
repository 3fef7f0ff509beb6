package jsongen

import (
	"github.com/erraggy/schemamap/mapping"
	"github.com/erraggy/schemamap/tree"
)

// FragmentFunc returns a fresh schema fragment for a primitive type. The
// generator appends "null" to its type and adds the default.
type FragmentFunc func() *tree.Object

func typed(name string) FragmentFunc {
	return func() *tree.Object { return tree.NewObject().Set("type", name) }
}

func formatted(name, format string) FragmentFunc {
	return func() *tree.Object { return tree.NewObject().Set("type", name).Set("format", format) }
}

func anyValue() *tree.Object {
	return tree.NewObject().Set("type", []any{"boolean", "integer", "number", "object", "string"})
}

// defaultFragments is the built-in registry. Enum, ObjectList and
// Reference are not registered and fall back to string.
func defaultFragments() map[mapping.Type]FragmentFunc {
	return map[mapping.Type]FragmentFunc{
		mapping.Boolean: typed("boolean"),
		mapping.Integer: typed("integer"),
		mapping.Float:   typed("number"),
		mapping.String:  typed("string"),
		mapping.Date:    formatted("string", "date"),
		mapping.Time:    formatted("string", "date-time"),
		mapping.Value:   anyValue,
		mapping.AnyOf:   anyValue,
	}
}
