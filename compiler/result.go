package compiler

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/erraggy/schemamap/mapping"
)

// Mappers builds one mapping descriptor per compiled type, keyed by the
// qualified type name. Each mapper carries an explicit JSON mapping from
// wire keys to attribute names, so generating a JSON Schema from the
// result reproduces the compiled structure.
func (r *Result) Mappers() (map[string]*mapping.Mapper, error) {
	mappers := make(map[*ComplexType]*mapping.Mapper, len(r.Types))
	for _, t := range r.Types {
		mappers[t] = mapping.NewMapper(t.Name())
	}
	for _, t := range r.Types {
		m := mappers[t]
		for _, p := range t.Properties {
			var typ mapping.Type
			if p.Type.Kind == KindComplex {
				target, ok := mappers[p.Type.Complex]
				if !ok {
					return nil, fmt.Errorf("compiler: type %s references %s, which is not part of the result", t.Name(), p.Type.Name())
				}
				typ = target
			} else {
				prim, _ := p.Type.Kind.Primitive()
				typ = prim
			}

			var opts []mapping.AttributeOption
			if p.Collection {
				opts = append(opts, mapping.Collection())
			}
			if p.HasDefault {
				opts = append(opts, mapping.DefaultValue(p.Default))
			}
			if err := m.AddAttribute(p.Attribute, typ, opts...); err != nil {
				return nil, err
			}
			if err := m.Map(mapping.JSON, p.MappingName(), mapping.To(p.Attribute)); err != nil {
				return nil, err
			}
		}
	}

	out := make(map[string]*mapping.Mapper, len(mappers))
	for _, m := range mappers {
		out[m.Name()] = m
	}
	return out, nil
}

// RootMapper returns the mapper built for the root type.
func (r *Result) RootMapper() (*mapping.Mapper, error) {
	mappers, err := r.Mappers()
	if err != nil {
		return nil, err
	}
	return mappers[r.Root.Name()], nil
}

type dumpType struct {
	Name       string
	Pointer    string
	Package    string
	Properties []dumpProperty
}

type dumpProperty struct {
	Key        string
	Attribute  string
	Type       string
	Collection bool
	Default    any
}

// Dump writes a debug rendering of the type graph to w. Complex property
// types are shown by name, so cycles print finitely.
func (r *Result) Dump(w io.Writer) {
	out := make([]dumpType, 0, len(r.Types))
	for _, t := range r.Types {
		dt := dumpType{Name: t.Name(), Pointer: t.Pointer, Package: t.Package()}
		for _, p := range t.Properties {
			dt.Properties = append(dt.Properties, dumpProperty{
				Key:        p.Key,
				Attribute:  p.Attribute,
				Type:       p.Type.Name(),
				Collection: p.Collection,
				Default:    p.Default,
			})
		}
		out = append(out, dt)
	}
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cfg.Fdump(w, out)
}
