package mapping

import (
	"slices"
)

// Format names a key/value serialization format.
type Format string

// Supported dict formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
	CSV  Format = "csv"
	Hash Format = "hash"
)

// Formats lists the dict formats.
func Formats() []Format {
	return []Format{JSON, YAML, TOML, CSV, Hash}
}

// Methods names a pair of custom (de)serialization methods.
type Methods struct {
	From string
	To   string
}

// Descriptor ties one wire name to an attribute (or to custom methods).
type Descriptor struct {
	// Name is the wire name: a JSON key, an XML element or attribute name
	Name string
	// Attribute is the mapped attribute name; empty when Using is set
	Attribute string
	// Using holds custom methods instead of an attribute
	Using *Methods
	// Group names a method group sharing one pair of custom methods
	Group string
	// RenderNil includes the key when the value is nil
	RenderNil bool
	// Namespace is the XML namespace of the element or attribute
	Namespace Namespace

	explicitNamespace bool
}

// PrefixedName returns "prefix:name", or name when there is no prefix.
func (d *Descriptor) PrefixedName() string {
	if d.Namespace.Prefix == "" {
		return d.Name
	}
	return d.Namespace.Prefix + ":" + d.Name
}

// MapOption configures a mapping declaration.
type MapOption func(*mapArgs)

type mapArgs struct {
	to        string
	using     *Methods
	group     string
	renderNil bool
	namespace *Namespace
}

// To maps the key onto an attribute.
func To(attribute string) MapOption {
	return func(a *mapArgs) { a.to = attribute }
}

// Using maps the key through custom methods. Both names are required.
func Using(from, to string) MapOption {
	return func(a *mapArgs) { a.using = &Methods{From: from, To: to} }
}

// Group places the mapping in a named method group.
func Group(name string) MapOption {
	return func(a *mapArgs) { a.group = name }
}

// RenderNil controls whether nil values are written.
func RenderNil(render bool) MapOption {
	return func(a *mapArgs) { a.renderNil = render }
}

// InNamespace overrides the XML namespace of an element or attribute.
// InNamespace("", "") explicitly places it in no namespace.
func InNamespace(uri, prefix string) MapOption {
	return func(a *mapArgs) { a.namespace = &Namespace{URI: uri, Prefix: prefix} }
}

func (m *Mapper) buildDescriptor(key string, opts []MapOption) (*Descriptor, error) {
	var args mapArgs
	for _, opt := range opts {
		opt(&args)
	}
	if key == "" {
		return nil, m.argError(key, "key can't be empty")
	}
	if args.to == "" && args.using == nil {
		return nil, m.argError(key, "either To or Using is required")
	}
	if args.to != "" && args.using != nil {
		return nil, m.argError(key, "To and Using are mutually exclusive")
	}
	if args.using != nil && (args.using.From == "" || args.using.To == "") {
		return nil, m.argError(key, "Using must name both the from and to methods")
	}
	d := &Descriptor{
		Name:      key,
		Attribute: args.to,
		Using:     args.using,
		Group:     args.group,
		RenderNil: args.renderNil,
	}
	if args.namespace != nil {
		if err := m.validateNamespace(key, *args.namespace); err != nil {
			return nil, err
		}
		d.Namespace = *args.namespace
		d.explicitNamespace = true
	}
	return d, nil
}

type dictMapping struct {
	keys []*Descriptor
}

func (dm *dictMapping) set(d *Descriptor) {
	if i := slices.IndexFunc(dm.keys, func(k *Descriptor) bool { return k.Name == d.Name }); i >= 0 {
		dm.keys[i] = d
		return
	}
	dm.keys = append(dm.keys, d)
}

func (dm *dictMapping) clone() *dictMapping {
	out := &dictMapping{}
	for _, d := range dm.keys {
		c := *d
		out.keys = append(out.keys, &c)
	}
	return out
}

func (dm *dictMapping) merge(parent *dictMapping) {
	for _, d := range parent.keys {
		c := *d
		dm.set(&c)
	}
}

// Map declares a dict mapping for format. The first Map call for a format
// replaces the default attribute-derived mapping with an explicit one.
func (m *Mapper) Map(format Format, key string, opts ...MapOption) error {
	if !slices.Contains(Formats(), format) {
		return m.argError(key, "unknown format "+string(format))
	}
	d, err := m.buildDescriptor(key, opts)
	if err != nil {
		return err
	}
	if d.explicitNamespace {
		return m.argError(key, "namespaces only apply to XML mappings")
	}
	dm, ok := m.dict[format]
	if !ok {
		dm = &dictMapping{}
		m.dict[format] = dm
	}
	dm.set(d)
	return nil
}

// MustMap is like Map but panics on error.
func (m *Mapper) MustMap(format Format, key string, opts ...MapOption) *Mapper {
	if err := m.Map(format, key, opts...); err != nil {
		panic(err)
	}
	return m
}

// Mapping returns the dict mapping for format in declaration order. Without
// an explicit declaration every attribute maps to a key of the same name.
func (m *Mapper) Mapping(format Format) []*Descriptor {
	if dm, ok := m.dict[format]; ok {
		return slices.Clone(dm.keys)
	}
	keys := make([]*Descriptor, 0, len(m.attributes))
	for _, attr := range m.attributes {
		keys = append(keys, &Descriptor{Name: attr.Name, Attribute: attr.Name})
	}
	return keys
}

// HasExplicitMapping reports whether format was declared with Map.
func (m *Mapper) HasExplicitMapping(format Format) bool {
	_, ok := m.dict[format]
	return ok
}
