// Package config loads schemamap project files.
//
// A project file is YAML with two sections: compile settings shared by the
// CLI commands, and mapper descriptors for generating schemas from
// hand-declared mappers (the only way XML namespaces reach the CLI).
//
//	compile:
//	  root_name: Person
//	  package: models
//	  namespace_mapping:
//	    https://example.com/common.json: common
//	mappers:
//	  - name: Address
//	    attributes:
//	      - {name: street, type: string}
//	    xml:
//	      namespace: {uri: "urn:common", prefix: c}
package config

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemamap/compiler"
	"github.com/erraggy/schemamap/emitter"
	"github.com/erraggy/schemamap/schemaerrors"
)

// File is a parsed project file.
type File struct {
	Compile Compile  `yaml:"compile"`
	Mappers []Mapper `yaml:"mappers"`

	path string
}

// Compile holds compile settings.
type Compile struct {
	RootName         string            `yaml:"root_name"`
	NamespaceMapping map[string]string `yaml:"namespace_mapping"`
	Package          string            `yaml:"package"`
	ModulePath       string            `yaml:"module_path"`
}

// Mapper declares one mapper.
type Mapper struct {
	Name       string      `yaml:"name"`
	Extends    string      `yaml:"extends"`
	Attributes []Attribute `yaml:"attributes"`
	JSON       []Mapping   `yaml:"json"`
	XML        *XML        `yaml:"xml"`
}

// Attribute declares one mapper attribute. Type is a built-in type name
// (case-insensitive) or the name of another mapper in the file.
type Attribute struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Collection bool   `yaml:"collection"`
	Default    any    `yaml:"default"`
}

// XML declares a mapper's XML mapping.
type XML struct {
	Root       string     `yaml:"root"`
	Namespace  *Namespace `yaml:"namespace"`
	Elements   []Mapping  `yaml:"elements"`
	Attributes []Mapping  `yaml:"attributes"`
	Content    string     `yaml:"content"`
}

// Mapping ties a wire name to an attribute.
type Mapping struct {
	Name      string     `yaml:"name"`
	To        string     `yaml:"to"`
	Namespace *Namespace `yaml:"namespace"`
}

// Namespace is an XML namespace URI and prefix.
type Namespace struct {
	URI    string `yaml:"uri"`
	Prefix string `yaml:"prefix"`
}

// Load reads and parses a project file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	f.path = path
	return f, nil
}

// Parse parses and validates project file content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &schemaerrors.ParseError{Message: "decoding project file", Cause: err}
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Path returns the file the configuration was loaded from, if any.
func (f *File) Path() string { return f.path }

func (f *File) validate() error {
	names := make(map[string]bool, len(f.Mappers))
	for i, m := range f.Mappers {
		if strings.TrimSpace(m.Name) == "" {
			return &schemaerrors.ConfigError{Option: fmt.Sprintf("mappers[%d].name", i), Message: "is required"}
		}
		if names[m.Name] {
			return &schemaerrors.ConfigError{Option: fmt.Sprintf("mappers[%d].name", i), Value: m.Name, Message: "duplicate mapper name"}
		}
		names[m.Name] = true
		for j, a := range m.Attributes {
			if a.Name == "" || a.Type == "" {
				return &schemaerrors.ConfigError{
					Option:  fmt.Sprintf("mappers[%d].attributes[%d]", i, j),
					Message: "name and type are required",
				}
			}
		}
	}
	for id, pkg := range f.Compile.NamespaceMapping {
		if id == "" || pkg == "" {
			return &schemaerrors.ConfigError{Option: "compile.namespace_mapping", Value: id, Message: "id and package are required"}
		}
	}
	return nil
}

// CompileOptions returns the compiler options for the compile settings.
func (f *File) CompileOptions() []compiler.Option {
	var opts []compiler.Option
	if f.Compile.RootName != "" {
		opts = append(opts, compiler.WithRootName(f.Compile.RootName))
	}
	if len(f.Compile.NamespaceMapping) > 0 {
		opts = append(opts, compiler.WithNamespaceMapping(f.Compile.NamespaceMapping))
	}
	return opts
}

// EmitterOptions returns the emitter options for the compile settings.
func (f *File) EmitterOptions() []emitter.Option {
	var opts []emitter.Option
	if f.Compile.Package != "" {
		opts = append(opts, emitter.WithPackageName(f.Compile.Package))
	}
	if f.Compile.ModulePath != "" {
		opts = append(opts, emitter.WithModulePath(f.Compile.ModulePath))
	}
	return opts
}
