package compiler

import (
	"path"
	"strconv"
	"strings"

	"github.com/erraggy/schemamap/internal/naming"
	"github.com/erraggy/schemamap/mapping"
)

// Kind tags the inferred type of a schema fragment.
type Kind int

const (
	KindValue Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindDate
	KindTime
	KindEnum
	KindAnyOf
	KindObjectList
	KindReference
	KindComplex
)

var kindPrimitives = map[Kind]mapping.Primitive{
	KindValue:      mapping.Value,
	KindBoolean:    mapping.Boolean,
	KindInteger:    mapping.Integer,
	KindFloat:      mapping.Float,
	KindString:     mapping.String,
	KindDate:       mapping.Date,
	KindTime:       mapping.Time,
	KindEnum:       mapping.Enum,
	KindAnyOf:      mapping.AnyOf,
	KindObjectList: mapping.ObjectList,
	KindReference:  mapping.Reference,
}

// String returns the kind name. Primitive kinds use the mapping type name.
func (k Kind) String() string {
	if k == KindComplex {
		return "Complex"
	}
	if p, ok := kindPrimitives[k]; ok {
		return string(p)
	}
	return "Unknown"
}

// Primitive returns the mapping primitive for a non-complex kind.
func (k Kind) Primitive() (mapping.Primitive, bool) {
	p, ok := kindPrimitives[k]
	return p, ok
}

// Type is the inferred type of a property: a primitive kind, or
// KindComplex together with the compiled type.
type Type struct {
	Kind    Kind
	Complex *ComplexType
}

// Name returns the type name as referenced from another type.
func (t Type) Name() string {
	if t.Kind == KindComplex && t.Complex != nil {
		return t.Complex.Name()
	}
	return t.Kind.String()
}

// ComplexType is a compiled object schema. Exactly one instance exists per
// identity pointer in a compilation.
type ComplexType struct {
	// Pointer is the absolute pointer that identifies the type.
	Pointer string
	// RootName is the unqualified type name; renamed on collision.
	RootName string
	// Namespace holds the package path segments, empty for the default package.
	Namespace []string
	// Properties in schema document order.
	Properties []*Property
	// References is the subset of Properties pointing to other complex
	// types, one per distinct type in first-appearance order.
	References []*Property
}

// Package returns the slash-separated package path, empty for the default package.
func (t *ComplexType) Package() string {
	return strings.Join(t.Namespace, "/")
}

// PackageName returns the Go package name of the namespace, empty for the
// default package.
func (t *ComplexType) PackageName() string {
	if len(t.Namespace) == 0 {
		return ""
	}
	return naming.ToPackageName(t.Package())
}

// Name returns the namespace-qualified name, e.g. "common.Address".
func (t *ComplexType) Name() string {
	if pkg := t.PackageName(); pkg != "" {
		return pkg + "." + t.RootName
	}
	return t.RootName
}

// FileName returns the slash-separated path of the emitted source file.
func (t *ComplexType) FileName() string {
	name := naming.ToSnakeCase(t.RootName) + ".go"
	if len(t.Namespace) == 0 {
		return name
	}
	return path.Join(append(append([]string{}, t.Namespace...), name)...)
}

func (t *ComplexType) addProperty(p *Property) {
	p.Attribute = t.uniqueAttribute(naming.ToAttributeName(p.Key))
	t.Properties = append(t.Properties, p)
	if p.Type.Kind != KindComplex || p.Type.Complex == nil || p.Type.Complex == t {
		return
	}
	for _, ref := range t.References {
		if ref.Type.Complex == p.Type.Complex {
			return
		}
	}
	t.References = append(t.References, p)
}

// uniqueAttribute suffixes name until no earlier property uses it.
func (t *ComplexType) uniqueAttribute(name string) string {
	taken := func(n string) bool {
		for _, p := range t.Properties {
			if p.Attribute == n {
				return true
			}
		}
		return false
	}
	if !taken(name) {
		return name
	}
	for i := 2; ; i++ {
		candidate := name + "_" + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// Property is one attribute of a complex type.
type Property struct {
	// Key is the wire name from the schema.
	Key string
	// Attribute is the mapper attribute name, unique within the owning type.
	Attribute  string
	Type       Type
	Collection bool
	// Default is copied verbatim from the schema. Always nil for collections.
	Default    any
	HasDefault bool
}

// NewProperty returns a property. A default supplied for a collection is
// dropped and dropped reports true.
func NewProperty(key string, typ Type, collection bool, def any, hasDefault bool) (p *Property, dropped bool) {
	p = &Property{Key: key, Type: typ, Collection: collection}
	if hasDefault {
		if collection {
			return p, true
		}
		p.Default = def
		p.HasDefault = true
	}
	return p, false
}

// MappingName returns the wire name used in format mappings.
func (p *Property) MappingName() string { return p.Key }
