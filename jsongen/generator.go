package jsongen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/schemamap/adapter"
	"github.com/erraggy/schemamap/internal/naming"
	"github.com/erraggy/schemamap/internal/pathutil"
	"github.com/erraggy/schemamap/mapping"
	"github.com/erraggy/schemamap/schemaerrors"
	"github.com/erraggy/schemamap/tree"
)

// Dialect is the $schema of generated documents.
const Dialect = "https://json-schema.org/draft/2020-12/schema"

// Generator generates JSON Schema documents. A Generator is safe for
// concurrent use once all Register calls have returned.
type Generator struct {
	fragments map[mapping.Type]FragmentFunc
}

// Option configures a Generator.
type Option func(*Generator)

// WithFragment registers fn as the fragment for t.
func WithFragment(t mapping.Type, fn FragmentFunc) Option {
	return func(g *Generator) { g.Register(t, fn) }
}

// New returns a generator with the built-in primitive fragments.
func New(opts ...Option) *Generator {
	g := &Generator{fragments: defaultFragments()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register sets the fragment used for attributes of type t.
func (g *Generator) Register(t mapping.Type, fn FragmentFunc) {
	g.fragments[t] = fn
}

func (g *Generator) fragment(t mapping.Type) *tree.Object {
	if fn, ok := g.fragments[t]; ok {
		return fn()
	}
	return tree.NewObject().Set("type", "string")
}

type schemaConfig struct {
	id          string
	title       string
	description string
}

// SchemaOption sets a root-level keyword of the generated document.
type SchemaOption func(*schemaConfig)

// WithID sets $id.
func WithID(id string) SchemaOption {
	return func(c *schemaConfig) { c.id = id }
}

// WithTitle sets title.
func WithTitle(title string) SchemaOption {
	return func(c *schemaConfig) { c.title = title }
}

// WithDescription sets description.
func WithDescription(description string) SchemaOption {
	return func(c *schemaConfig) { c.description = description }
}

// Generate returns the JSON Schema document for t, which must be a mapper.
func (g *Generator) Generate(t mapping.Type, opts ...SchemaOption) (*tree.Object, error) {
	root, ok := mapping.AsMapper(t)
	if !ok {
		return nil, &schemaerrors.NotAMapperTypeError{TypeName: typeName(t), Generator: "JSON"}
	}
	var cfg schemaConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	types := collectTypes(nil, make(map[*mapping.Mapper]bool), root)
	names, byMapper := defNames(types)

	defs := make([]*tree.Object, len(types))
	for i, m := range types {
		obj, err := g.object(m, i == 0, byMapper)
		if err != nil {
			return nil, err
		}
		defs[i] = obj
	}

	doc := tree.NewObject().Set("$schema", Dialect)
	if cfg.id != "" {
		doc.Set("$id", cfg.id)
	}
	if cfg.title != "" {
		doc.Set("title", cfg.title)
	}
	if cfg.description != "" {
		doc.Set("description", cfg.description)
	}
	doc.Set("$ref", pathutil.DefsRef(names[0]))

	order := make([]int, len(types))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return strings.Compare(names[a], names[b]) })
	defsObj := tree.NewObject()
	for _, i := range order {
		defsObj.Set(names[i], defs[i])
	}
	doc.Set("$defs", defsObj)
	return doc, nil
}

// Render generates the document for t and dumps it with a.
func (g *Generator) Render(t mapping.Type, a adapter.Adapter, dump adapter.DumpOptions, opts ...SchemaOption) ([]byte, error) {
	doc, err := g.Generate(t, opts...)
	if err != nil {
		return nil, err
	}
	return a.Dump(doc, dump)
}

// defNames assigns each mapper its $defs key. Distinct mappers sharing a
// name get numeric suffixes in discovery order.
func defNames(types []*mapping.Mapper) ([]string, map[*mapping.Mapper]string) {
	names := make([]string, len(types))
	for i, m := range types {
		names[i] = naming.SchemaName(m.Name())
	}
	names = naming.Uniquify(names)
	byMapper := make(map[*mapping.Mapper]string, len(types))
	for i, m := range types {
		byMapper[m] = names[i]
	}
	return names, byMapper
}

// collectTypes appends m and every mapper reachable through its JSON
// mapping, depth first, visiting each mapper once.
func collectTypes(types []*mapping.Mapper, seen map[*mapping.Mapper]bool, m *mapping.Mapper) []*mapping.Mapper {
	seen[m] = true
	types = append(types, m)
	for _, d := range m.Mapping(mapping.JSON) {
		attr, ok := m.Attribute(d.Attribute)
		if !ok {
			continue
		}
		if child, ok := mapping.AsMapper(attr.Type); ok && !seen[child] {
			types = collectTypes(types, seen, child)
		}
	}
	return types
}

func (g *Generator) object(m *mapping.Mapper, isRoot bool, names map[*mapping.Mapper]string) (*tree.Object, error) {
	props := tree.NewObject()
	for _, d := range m.Mapping(mapping.JSON) {
		attr, ok := m.Attribute(d.Attribute)
		if !ok {
			continue
		}
		frag, err := g.property(m, attr, names)
		if err != nil {
			return nil, err
		}
		props.Set(d.Name, frag)
	}

	var typ any = "object"
	if !isRoot {
		typ = []any{"object", "null"}
	}
	return tree.NewObject().Set("type", typ).Set("properties", props), nil
}

func (g *Generator) property(owner *mapping.Mapper, attr *mapping.Attribute, names map[*mapping.Mapper]string) (*tree.Object, error) {
	var frag *tree.Object
	if target, ok := mapping.AsMapper(attr.Type); ok {
		frag = tree.NewObject().Set("$ref", pathutil.DefsRef(names[target]))
	} else {
		frag = g.fragment(attr.Type)
		if !attr.Collection {
			nullable(frag)
			if attr.HasDefault() {
				v, err := attr.DefaultValue()
				if err != nil {
					return nil, fmt.Errorf("jsongen: default of %s.%s: %w", owner.Name(), attr.Name, err)
				}
				if v != nil {
					frag.Set("default", attr.Type.AsJSON(v))
				}
			}
		}
	}

	if attr.Collection {
		return tree.NewObject().Set("type", "array").Set("items", frag), nil
	}
	return frag, nil
}

// nullable appends "null" to the fragment's type.
func nullable(frag *tree.Object) {
	v, _ := frag.Get("type")
	switch t := v.(type) {
	case string:
		frag.Set("type", []any{t, "null"})
	case []any:
		frag.Set("type", append(append([]any{}, t...), "null"))
	}
}

func typeName(t mapping.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.TypeName()
}
