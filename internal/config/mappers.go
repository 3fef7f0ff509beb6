package config

import (
	"fmt"
	"slices"

	"github.com/erraggy/schemamap/mapping"
	"github.com/erraggy/schemamap/schemaerrors"
)

// BuildMappers constructs the declared mappers, keyed by name. Attribute
// types may refer to mappers declared later in the file, and a mapper that
// extends another is built after its parent.
func (f *File) BuildMappers() (map[string]*mapping.Mapper, error) {
	index := make(map[string]int, len(f.Mappers))
	for i, m := range f.Mappers {
		index[m.Name] = i
	}
	order, err := topoSort(len(f.Mappers), func(i int) ([]int, error) {
		parent := f.Mappers[i].Extends
		if parent == "" {
			return nil, nil
		}
		j, ok := index[parent]
		if !ok {
			return nil, &schemaerrors.ConfigError{Option: fmt.Sprintf("mappers[%d].extends", i), Value: parent, Message: "unknown mapper"}
		}
		return []int{j}, nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]*mapping.Mapper, len(f.Mappers))
	for _, m := range f.Mappers {
		out[m.Name] = mapping.NewMapper(m.Name)
	}
	for _, i := range order {
		decl := f.Mappers[i]
		m := out[decl.Name]
		if decl.Extends != "" {
			m.Extend(out[decl.Extends])
		}
		if err := declare(m, decl, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func declare(m *mapping.Mapper, decl Mapper, mappers map[string]*mapping.Mapper) error {
	for _, a := range decl.Attributes {
		typ, err := resolveType(a.Type, mappers)
		if err != nil {
			return fmt.Errorf("config: mapper %s attribute %s: %w", decl.Name, a.Name, err)
		}
		var opts []mapping.AttributeOption
		if a.Collection {
			opts = append(opts, mapping.Collection())
		}
		if a.Default != nil {
			opts = append(opts, mapping.DefaultValue(a.Default))
		}
		if err := m.AddAttribute(a.Name, typ, opts...); err != nil {
			return err
		}
	}
	for _, j := range decl.JSON {
		if err := m.Map(mapping.JSON, j.Name, mapping.To(j.To)); err != nil {
			return err
		}
	}
	if decl.XML == nil {
		return nil
	}

	x := decl.XML
	if x.Root != "" {
		m.XMLRoot(x.Root)
	}
	if x.Namespace != nil {
		if err := m.XMLNamespace(x.Namespace.URI, x.Namespace.Prefix); err != nil {
			return err
		}
	}
	for _, e := range x.Elements {
		if err := m.MapElement(e.Name, mapOptions(e)...); err != nil {
			return err
		}
	}
	for _, a := range x.Attributes {
		if err := m.MapAttribute(a.Name, mapOptions(a)...); err != nil {
			return err
		}
	}
	if x.Content != "" {
		if err := m.MapContent(mapping.To(x.Content)); err != nil {
			return err
		}
	}
	return nil
}

func mapOptions(mp Mapping) []mapping.MapOption {
	to := mp.To
	if to == "" {
		to = mp.Name
	}
	opts := []mapping.MapOption{mapping.To(to)}
	if mp.Namespace != nil {
		opts = append(opts, mapping.InNamespace(mp.Namespace.URI, mp.Namespace.Prefix))
	}
	return opts
}

func resolveType(name string, mappers map[string]*mapping.Mapper) (mapping.Type, error) {
	if m, ok := mappers[name]; ok {
		return m, nil
	}
	if p, ok := mapping.ParsePrimitive(name); ok {
		return p, nil
	}
	return nil, &schemaerrors.ConfigError{Option: "type", Value: name, Message: "not a built-in type or declared mapper"}
}

// topoSort returns node indices with every dependency before its
// dependents. Ties go to the smallest index.
func topoSort(n int, depsFn func(i int) ([]int, error)) ([]int, error) {
	indeg := make([]int, n)
	out := make([][]int, n)
	for i := range n {
		deps, err := depsFn(i)
		if err != nil {
			return nil, err
		}
		for _, d := range deps {
			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	var ready []int
	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)
	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]
		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k, _ := slices.BinarySearch(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}
	if len(order) != n {
		return nil, &schemaerrors.ConfigError{Option: "extends", Message: "inheritance cycle"}
	}
	return order, nil
}
