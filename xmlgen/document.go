package xmlgen

import (
	"slices"
	"strings"

	"github.com/beevik/etree"

	"github.com/erraggy/schemamap/mapping"
)

// XSNamespace is the XML Schema namespace bound to the "xs" prefix.
const XSNamespace = "http://www.w3.org/2001/XMLSchema"

// Element is an xs:element. Ref is set for references to elements defined
// in another document; Name and Type are set otherwise.
type Element struct {
	Name       string
	Ref        string
	Type       string
	Required   bool
	Collection bool
	Default    string
	HasDefault bool
}

// Attribute is an xs:attribute, typed or a ref.
type Attribute struct {
	Name       string
	Ref        string
	Type       string
	Default    string
	HasDefault bool
}

// Import is an xs:import of another generated document.
type Import struct {
	Namespace      string
	SchemaLocation string
}

// ComplexType is an xs:complexType.
type ComplexType struct {
	Name       string
	Mixed      bool
	Elements   []Element
	Attributes []Attribute
}

// Document is one generated XSD file.
type Document struct {
	// Name is the file name, e.g. "schema0.xsd".
	Name string
	// TargetNamespace is empty for the no-namespace document.
	TargetNamespace string
	// Namespaces are the xmlns declarations in first-use order.
	Namespaces   []mapping.Namespace
	Imports      []Import
	Elements     []Element
	Attributes   []Attribute
	ComplexTypes []ComplexType
}

func (d *Document) addNamespace(ns mapping.Namespace) {
	if ns.IsZero() {
		return
	}
	if slices.ContainsFunc(d.Namespaces, func(n mapping.Namespace) bool { return n.Prefix == ns.Prefix }) {
		return
	}
	d.Namespaces = append(d.Namespaces, ns)
}

func (d *Document) addImport(i Import) {
	if slices.ContainsFunc(d.Imports, func(x Import) bool { return x.Namespace == i.Namespace }) {
		return
	}
	d.Imports = append(d.Imports, i)
}

func (d *Document) addElement(e Element) {
	if slices.ContainsFunc(d.Elements, func(x Element) bool { return x.Name == e.Name }) {
		return
	}
	d.Elements = append(d.Elements, e)
}

func (d *Document) addAttribute(a Attribute) {
	if slices.ContainsFunc(d.Attributes, func(x Attribute) bool { return x.Name == a.Name }) {
		return
	}
	d.Attributes = append(d.Attributes, a)
}

func (d *Document) addComplexType(c ComplexType) {
	if slices.ContainsFunc(d.ComplexTypes, func(x ComplexType) bool { return x.Name == c.Name }) {
		return
	}
	d.ComplexTypes = append(d.ComplexTypes, c)
}

// XML builds the xs:schema tree. Imports are sorted by namespace, then
// elements, attributes and complex types each by name.
func (d *Document) XML() *etree.Document {
	doc := etree.NewDocument()
	schema := doc.CreateElement("xs:schema")
	schema.CreateAttr("elementFormDefault", "qualified")
	schema.CreateAttr("attributeFormDefault", "qualified")
	if d.TargetNamespace != "" {
		schema.CreateAttr("targetNamespace", d.TargetNamespace)
	}
	schema.CreateAttr("xmlns:xs", XSNamespace)
	for _, ns := range d.Namespaces {
		schema.CreateAttr("xmlns:"+ns.Prefix, ns.URI)
	}

	imports := slices.Clone(d.Imports)
	slices.SortStableFunc(imports, func(a, b Import) int { return strings.Compare(a.Namespace, b.Namespace) })
	for _, i := range imports {
		el := schema.CreateElement("xs:import")
		el.CreateAttr("namespace", i.Namespace)
		el.CreateAttr("schemaLocation", i.SchemaLocation)
	}

	elements := slices.Clone(d.Elements)
	slices.SortStableFunc(elements, func(a, b Element) int { return strings.Compare(a.Name, b.Name) })
	for _, e := range elements {
		writeElement(schema, e)
	}

	attributes := slices.Clone(d.Attributes)
	slices.SortStableFunc(attributes, func(a, b Attribute) int { return strings.Compare(a.Name, b.Name) })
	for _, a := range attributes {
		writeAttribute(schema, a)
	}

	types := slices.Clone(d.ComplexTypes)
	slices.SortStableFunc(types, func(a, b ComplexType) int { return strings.Compare(a.Name, b.Name) })
	for _, c := range types {
		el := schema.CreateElement("xs:complexType")
		el.CreateAttr("name", c.Name)
		if c.Mixed {
			el.CreateAttr("mixed", "true")
		}
		if len(c.Elements) > 0 {
			seq := el.CreateElement("xs:sequence")
			for _, e := range c.Elements {
				writeElement(seq, e)
			}
		}
		for _, a := range c.Attributes {
			writeAttribute(el, a)
		}
	}
	return doc
}

func writeElement(parent *etree.Element, e Element) {
	el := parent.CreateElement("xs:element")
	if e.Ref != "" {
		el.CreateAttr("ref", e.Ref)
	} else {
		el.CreateAttr("name", e.Name)
		el.CreateAttr("type", e.Type)
	}
	if !e.Required {
		el.CreateAttr("minOccurs", "0")
	}
	if e.Collection {
		el.CreateAttr("maxOccurs", "unbounded")
	}
	if e.HasDefault {
		el.CreateAttr("default", e.Default)
	}
}

func writeAttribute(parent *etree.Element, a Attribute) {
	el := parent.CreateElement("xs:attribute")
	if a.Ref != "" {
		el.CreateAttr("ref", a.Ref)
	} else {
		el.CreateAttr("name", a.Name)
		el.CreateAttr("type", a.Type)
	}
	if a.HasDefault {
		el.CreateAttr("default", a.Default)
	}
}
