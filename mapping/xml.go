package mapping

import (
	"slices"
)

// Namespace is an XML namespace and its prefix.
type Namespace struct {
	URI    string
	Prefix string
}

// IsZero reports whether this is the empty (no) namespace.
func (n Namespace) IsZero() bool {
	return n.URI == "" && n.Prefix == ""
}

// XMLMapping is the XML mapping of a mapper.
type XMLMapping struct {
	root       string
	namespace  Namespace
	elements   []*Descriptor
	attributes []*Descriptor
	content    *Descriptor
}

func (x *XMLMapping) clone() *XMLMapping {
	out := &XMLMapping{root: x.root, namespace: x.namespace}
	for _, d := range x.elements {
		c := *d
		out.elements = append(out.elements, &c)
	}
	for _, d := range x.attributes {
		c := *d
		out.attributes = append(out.attributes, &c)
	}
	if x.content != nil {
		c := *x.content
		out.content = &c
	}
	return out
}

func (x *XMLMapping) merge(parent *XMLMapping) {
	p := parent.clone()
	if x.root == "" {
		x.root = p.root
	}
	if x.namespace.IsZero() {
		x.namespace = p.namespace
	}
	for _, d := range p.elements {
		x.elements = setDescriptor(x.elements, d)
	}
	for _, d := range p.attributes {
		x.attributes = setDescriptor(x.attributes, d)
	}
	if x.content == nil {
		x.content = p.content
	}
}

func setDescriptor(list []*Descriptor, d *Descriptor) []*Descriptor {
	if i := slices.IndexFunc(list, func(k *Descriptor) bool { return k.Name == d.Name && k.Namespace == d.Namespace }); i >= 0 {
		list[i] = d
		return list
	}
	return append(list, d)
}

func (m *Mapper) explicitXML() *XMLMapping {
	if m.xml == nil {
		m.xml = &XMLMapping{}
	}
	return m.xml
}

func (m *Mapper) validateNamespace(key string, ns Namespace) error {
	if (ns.URI == "") != (ns.Prefix == "") {
		return m.argError(key, "both namespace and prefix must be set")
	}
	return nil
}

// XMLRoot sets the root element name.
func (m *Mapper) XMLRoot(name string) *Mapper {
	m.explicitXML().root = name
	return m
}

// XMLNamespace sets the default namespace of the mapper's elements.
func (m *Mapper) XMLNamespace(uri, prefix string) error {
	ns := Namespace{URI: uri, Prefix: prefix}
	if err := m.validateNamespace("", ns); err != nil {
		return err
	}
	m.explicitXML().namespace = ns
	return nil
}

// MapElement maps an XML element onto an attribute.
func (m *Mapper) MapElement(name string, opts ...MapOption) error {
	d, err := m.buildDescriptor(name, opts)
	if err != nil {
		return err
	}
	x := m.explicitXML()
	x.elements = setDescriptor(x.elements, d)
	return nil
}

// MapAttribute maps an XML attribute onto an attribute.
func (m *Mapper) MapAttribute(name string, opts ...MapOption) error {
	d, err := m.buildDescriptor(name, opts)
	if err != nil {
		return err
	}
	x := m.explicitXML()
	x.attributes = setDescriptor(x.attributes, d)
	return nil
}

// MapContent maps the element's text content onto an attribute.
func (m *Mapper) MapContent(opts ...MapOption) error {
	d, err := m.buildDescriptor("content", opts)
	if err != nil {
		return err
	}
	d.Name = ""
	m.explicitXML().content = d
	return nil
}

// Root returns the unprefixed root element name.
func (x *XMLMapping) Root() string { return x.root }

// PrefixedRoot returns the root element name with the default prefix.
func (x *XMLMapping) PrefixedRoot() string {
	if x.namespace.Prefix == "" {
		return x.root
	}
	return x.namespace.Prefix + ":" + x.root
}

// DefaultNamespace returns the mapper's default namespace.
func (x *XMLMapping) DefaultNamespace() Namespace { return x.namespace }

// Elements returns the element mappings in declaration order. Elements
// without an explicit namespace take the default namespace.
func (x *XMLMapping) Elements() []*Descriptor {
	out := make([]*Descriptor, 0, len(x.elements))
	for _, d := range x.elements {
		c := *d
		if !c.explicitNamespace {
			c.Namespace = x.namespace
		}
		out = append(out, &c)
	}
	return out
}

// Attributes returns the attribute mappings in declaration order.
// Attributes without an explicit namespace are in no namespace.
func (x *XMLMapping) Attributes() []*Descriptor {
	out := make([]*Descriptor, 0, len(x.attributes))
	for _, d := range x.attributes {
		c := *d
		out = append(out, &c)
	}
	return out
}

// Content returns the content mapping, or nil.
func (x *XMLMapping) Content() *Descriptor {
	if x.content == nil {
		return nil
	}
	c := *x.content
	return &c
}

// XML returns the XML mapping. Without explicit declarations the root is the
// snake_case mapper name and every attribute maps to an element of the
// same name. A mapper that only declared a root or namespace still gets the
// attribute-derived elements.
func (m *Mapper) XML() *XMLMapping {
	var x *XMLMapping
	if m.xml != nil {
		x = m.xml.clone()
	} else {
		x = &XMLMapping{}
	}
	if x.root == "" {
		x.root = m.defaultRoot()
	}
	if len(x.elements) == 0 && len(x.attributes) == 0 && x.content == nil {
		for _, attr := range m.attributes {
			x.elements = append(x.elements, &Descriptor{Name: attr.Name, Attribute: attr.Name})
		}
	}
	return x
}
