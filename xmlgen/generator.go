package xmlgen

import (
	"fmt"

	"github.com/erraggy/schemamap/adapter"
	"github.com/erraggy/schemamap/internal/naming"
	"github.com/erraggy/schemamap/logging"
	"github.com/erraggy/schemamap/mapping"
	"github.com/erraggy/schemamap/schemaerrors"
)

// DefaultSchemaName is the file base name when none is given.
const DefaultSchemaName = "schema"

// Generator generates XSD documents. A Generator is safe for concurrent
// use once all Register calls have returned.
type Generator struct {
	types  map[mapping.Type]string
	logger logging.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithXSDType maps t to the built-in XSD type name (without the "xs:" prefix).
func WithXSDType(t mapping.Type, xsdType string) Option {
	return func(g *Generator) { g.Register(t, xsdType) }
}

// WithLogger sets the logger. Defaults to no logging.
func WithLogger(l logging.Logger) Option {
	return func(g *Generator) { g.logger = logging.OrNop(l) }
}

// New returns a generator with the built-in type table. Unregistered
// types map to xs:string.
func New(opts ...Option) *Generator {
	g := &Generator{
		types: map[mapping.Type]string{
			mapping.Boolean: "boolean",
			mapping.Date:    "date",
			mapping.Float:   "decimal",
			mapping.Integer: "integer",
			mapping.Time:    "dateTime",
			mapping.Value:   "anyType",
		},
		logger: logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register maps t to an XSD type name.
func (g *Generator) Register(t mapping.Type, xsdType string) {
	g.types[t] = xsdType
}

// documentSet creates documents on first reference to a namespace.
type documentSet struct {
	base  string
	byURI map[string]*Document
	order []*Document
}

func (s *documentSet) get(uri string) *Document {
	if d, ok := s.byURI[uri]; ok {
		return d
	}
	d := &Document{Name: fmt.Sprintf("%s%d.xsd", s.base, len(s.order)), TargetNamespace: uri}
	s.byURI[uri] = d
	s.order = append(s.order, d)
	return d
}

// node is a mapper reached in the context of a namespace.
type node struct {
	mapper    *mapping.Mapper
	namespace string
}

// Generate returns the XSD documents for t in creation order. baseName
// defaults to DefaultSchemaName.
func (g *Generator) Generate(t mapping.Type, baseName string) ([]*Document, error) {
	root, ok := mapping.AsMapper(t)
	if !ok {
		name := "<nil>"
		if t != nil {
			name = t.TypeName()
		}
		return nil, &schemaerrors.NotAMapperTypeError{TypeName: name, Generator: "XML"}
	}
	if baseName == "" {
		baseName = DefaultSchemaName
	}
	set := &documentSet{base: baseName, byURI: make(map[string]*Document)}

	rootXML := root.XML()
	defaultNS := rootXML.DefaultNamespace()
	nodes := collectNodes(nil, make(map[node]bool), node{root, defaultNS.URI})
	names := typeNames(nodes)

	rootDoc := set.get(defaultNS.URI)
	rootDoc.addNamespace(defaultNS)
	rootDoc.addElement(Element{
		Name:     rootXML.Root(),
		Type:     qualify(defaultNS.Prefix, names[root]),
		Required: true,
	})

	for _, n := range nodes {
		if err := g.complexType(set, n, names); err != nil {
			return nil, err
		}
	}
	g.logger.Debug("generated XML schemas", "root", root.Name(), "documents", len(set.order), "types", len(nodes))
	return set.order, nil
}

// Render generates the documents for t and serializes each, keyed by file name.
func (g *Generator) Render(t mapping.Type, baseName string, opts adapter.XMLOptions) (map[string][]byte, error) {
	docs, err := g.Generate(t, baseName)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(docs))
	for _, d := range docs {
		data, err := adapter.XML{}.Dump(d.XML(), opts)
		if err != nil {
			return nil, fmt.Errorf("xmlgen: writing %s: %w", d.Name, err)
		}
		out[d.Name] = data
	}
	return out, nil
}

// collectNodes appends n and every mapper reachable through element
// mappings, each in the namespace of the element that reaches it.
func collectNodes(nodes []node, seen map[node]bool, n node) []node {
	seen[n] = true
	nodes = append(nodes, n)
	for _, d := range n.mapper.XML().Elements() {
		attr, ok := n.mapper.Attribute(d.Attribute)
		if !ok {
			continue
		}
		child, ok := mapping.AsMapper(attr.Type)
		if !ok {
			continue
		}
		next := node{child, d.Namespace.URI}
		if !seen[next] {
			nodes = collectNodes(nodes, seen, next)
		}
	}
	return nodes
}

// typeNames assigns each distinct mapper its complex type name. Distinct
// mappers sharing a name get numeric suffixes in discovery order.
func typeNames(nodes []node) map[*mapping.Mapper]string {
	var mappers []*mapping.Mapper
	var names []string
	seen := make(map[*mapping.Mapper]bool, len(nodes))
	for _, n := range nodes {
		if seen[n.mapper] {
			continue
		}
		seen[n.mapper] = true
		mappers = append(mappers, n.mapper)
		names = append(names, naming.SchemaName(n.mapper.Name()))
	}
	names = naming.Uniquify(names)
	out := make(map[*mapping.Mapper]string, len(mappers))
	for i, m := range mappers {
		out[m] = names[i]
	}
	return out
}

func (g *Generator) complexType(set *documentSet, n node, names map[*mapping.Mapper]string) error {
	x := n.mapper.XML()
	ct := ComplexType{
		Name:  names[n.mapper],
		Mixed: x.Content() != nil,
	}

	for _, d := range x.Elements() {
		attr, ok := n.mapper.Attribute(d.Attribute)
		if !ok {
			continue
		}
		xsdType := g.xsdType(attr.Type, d.Namespace, names)
		def, hasDefault, err := defaultFor(n.mapper, attr)
		if err != nil {
			return err
		}
		if d.Namespace.URI == n.namespace {
			ct.Elements = append(ct.Elements, Element{
				Name: d.Name, Type: xsdType,
				Collection: attr.Collection,
				Default:    def, HasDefault: hasDefault,
			})
			continue
		}
		ct.Elements = append(ct.Elements, Element{
			Ref:        d.PrefixedName(),
			Collection: attr.Collection,
			Default:    def, HasDefault: hasDefault,
		})
		target := set.get(d.Namespace.URI)
		target.addNamespace(d.Namespace)
		target.addElement(Element{Name: d.Name, Type: xsdType, Required: true})
		owner := set.get(n.namespace)
		owner.addNamespace(d.Namespace)
		owner.addImport(Import{Namespace: d.Namespace.URI, SchemaLocation: target.Name})
	}

	for _, d := range x.Attributes() {
		attr, ok := n.mapper.Attribute(d.Attribute)
		if !ok {
			continue
		}
		xsdType := g.xsdType(attr.Type, d.Namespace, names)
		def, hasDefault, err := defaultFor(n.mapper, attr)
		if err != nil {
			return err
		}
		if d.Namespace.IsZero() || d.Namespace.URI == n.namespace {
			ct.Attributes = append(ct.Attributes, Attribute{Name: d.Name, Type: xsdType, Default: def, HasDefault: hasDefault})
			continue
		}
		ct.Attributes = append(ct.Attributes, Attribute{Ref: d.PrefixedName(), Default: def, HasDefault: hasDefault})
		target := set.get(d.Namespace.URI)
		target.addNamespace(d.Namespace)
		target.addAttribute(Attribute{Name: d.Name, Type: xsdType})
		owner := set.get(n.namespace)
		owner.addNamespace(d.Namespace)
		owner.addImport(Import{Namespace: d.Namespace.URI, SchemaLocation: target.Name})
	}

	set.get(n.namespace).addComplexType(ct)
	return nil
}

// xsdType returns the qualified XSD type of an attribute type used under ns.
func (g *Generator) xsdType(t mapping.Type, ns mapping.Namespace, names map[*mapping.Mapper]string) string {
	if m, ok := mapping.AsMapper(t); ok {
		name, ok := names[m]
		if !ok {
			// attributes do not recurse, so their mapper types are unnamed
			name = naming.SchemaName(m.Name())
		}
		return qualify(ns.Prefix, name)
	}
	if name, ok := g.types[t]; ok {
		return "xs:" + name
	}
	return "xs:string"
}

// defaultFor returns the rendered default of attr. Collections and mapper
// attributes never carry a default.
func defaultFor(owner *mapping.Mapper, attr *mapping.Attribute) (string, bool, error) {
	if !attr.HasDefault() || attr.Collection {
		return "", false, nil
	}
	if _, ok := mapping.AsMapper(attr.Type); ok {
		return "", false, nil
	}
	v, err := attr.DefaultValue()
	if err != nil {
		return "", false, fmt.Errorf("xmlgen: default of %s.%s: %w", owner.Name(), attr.Name, err)
	}
	if v == nil {
		return "", false, nil
	}
	return attr.Type.AsXML(v), true, nil
}

func qualify(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + ":" + name
}
