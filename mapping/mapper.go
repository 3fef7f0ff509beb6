package mapping

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/schemamap/internal/naming"
	"github.com/erraggy/schemamap/schemaerrors"
)

// Attribute is one typed member of a mapper.
type Attribute struct {
	// Name is the attribute name that mappings refer to
	Name string
	// Type is the attribute type
	Type Type
	// Collection marks a list-valued attribute
	Collection bool
	// Default produces the default value; nil when there is none
	Default func() any
}

// HasDefault reports whether the attribute declares a default.
func (a *Attribute) HasDefault() bool {
	return a.Default != nil
}

// DefaultValue evaluates the default and casts it to the attribute type.
func (a *Attribute) DefaultValue() (any, error) {
	if a.Default == nil {
		return nil, nil
	}
	return a.Type.Cast(a.Default())
}

// AttributeOption configures an attribute declaration.
type AttributeOption func(*Attribute)

// Collection marks the attribute as list-valued.
func Collection() AttributeOption {
	return func(a *Attribute) { a.Collection = true }
}

// Default sets a default value producer.
func Default(fn func() any) AttributeOption {
	return func(a *Attribute) { a.Default = fn }
}

// DefaultValue sets a constant default.
func DefaultValue(v any) AttributeOption {
	return Default(func() any { return v })
}

// Mapper describes a mapped type.
type Mapper struct {
	name       string
	attributes []*Attribute
	dict       map[Format]*dictMapping
	xml        *XMLMapping
}

// NewMapper returns an empty mapper. The name may be qualified with a
// package path ("models.Person"); generators derive schema names from it.
func NewMapper(name string) *Mapper {
	return &Mapper{name: name, dict: make(map[Format]*dictMapping)}
}

// Name returns the mapper name.
func (m *Mapper) Name() string { return m.name }

// UnqualifiedName returns the name without its package qualifier.
func (m *Mapper) UnqualifiedName() string {
	name := m.name
	for _, sep := range []string{"::", ".", "/"} {
		if i := strings.LastIndex(name, sep); i >= 0 {
			name = name[i+len(sep):]
		}
	}
	return name
}

// TypeName implements Type.
func (m *Mapper) TypeName() string { return m.name }

// Cast implements Type. Nested mapper values are passed through unchanged.
func (m *Mapper) Cast(v any) (any, error) { return v, nil }

// AsJSON implements Type.
func (m *Mapper) AsJSON(v any) any { return v }

// AsXML implements Type.
func (m *Mapper) AsXML(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// AsMapper returns t as a *Mapper when it is one.
func AsMapper(t Type) (*Mapper, bool) {
	m, ok := t.(*Mapper)
	return m, ok && m != nil
}

// AddAttribute declares an attribute. Redeclaring a name replaces the
// earlier declaration in place.
func (m *Mapper) AddAttribute(name string, typ Type, opts ...AttributeOption) error {
	if name == "" {
		return m.argError(name, "attribute name can't be empty")
	}
	if typ == nil {
		return m.argError(name, "attribute type can't be nil")
	}
	attr := &Attribute{Name: name, Type: typ}
	for _, opt := range opts {
		opt(attr)
	}
	if attr.Collection && attr.Default != nil {
		return m.argError(name, "collection attributes can't have a default")
	}

	if i := m.attributeIndex(name); i >= 0 {
		m.attributes[i] = attr
		return nil
	}
	m.attributes = append(m.attributes, attr)
	return nil
}

// MustAttribute is like AddAttribute but panics on error. It returns the
// mapper for chaining and is what generated source calls.
func (m *Mapper) MustAttribute(name string, typ Type, opts ...AttributeOption) *Mapper {
	if err := m.AddAttribute(name, typ, opts...); err != nil {
		panic(err)
	}
	return m
}

// Attributes returns the attributes in declaration order.
func (m *Mapper) Attributes() []*Attribute {
	return slices.Clone(m.attributes)
}

// Attribute returns the attribute with the given name.
func (m *Mapper) Attribute(name string) (*Attribute, bool) {
	if i := m.attributeIndex(name); i >= 0 {
		return m.attributes[i], true
	}
	return nil, false
}

func (m *Mapper) attributeIndex(name string) int {
	return slices.IndexFunc(m.attributes, func(a *Attribute) bool { return a.Name == name })
}

// Extend copies the parent's attributes and mapping tables into m. The
// parent is not modified, and later declarations on m append to the copies.
func (m *Mapper) Extend(parent *Mapper) *Mapper {
	for _, attr := range parent.attributes {
		clone := *attr
		if i := m.attributeIndex(attr.Name); i >= 0 {
			m.attributes[i] = &clone
		} else {
			m.attributes = append(m.attributes, &clone)
		}
	}
	for format, dm := range parent.dict {
		if existing, ok := m.dict[format]; ok {
			existing.merge(dm)
			continue
		}
		m.dict[format] = dm.clone()
	}
	if parent.xml != nil {
		if m.xml == nil {
			m.xml = parent.xml.clone()
		} else {
			m.xml.merge(parent.xml)
		}
	}
	return m
}

func (m *Mapper) argError(key, msg string) error {
	return &schemaerrors.IncorrectMappingArgumentsError{Mapper: m.name, Key: key, Message: msg}
}

// defaultRoot is the XML root name used when none is declared.
func (m *Mapper) defaultRoot() string {
	return naming.ToSnakeCase(m.UnqualifiedName())
}
