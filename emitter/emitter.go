package emitter

import (
	"fmt"
	"path"
	"strings"

	"github.com/erraggy/schemamap/compiler"
	"github.com/erraggy/schemamap/internal/issues"
	"github.com/erraggy/schemamap/internal/naming"
	"github.com/erraggy/schemamap/logging"
	"github.com/erraggy/schemamap/schemaerrors"
)

const (
	// DefaultPackageName is the package name of types outside any namespace.
	DefaultPackageName = "models"
	// DefaultMappingImport is the import path of the mapping package.
	DefaultMappingImport = "github.com/erraggy/schemamap/mapping"
)

// Option is a function that configures rendering.
type Option func(*renderConfig) error

type renderConfig struct {
	packageName   string
	modulePath    string
	mappingImport string
	logger        logging.Logger
}

// WithPackageName sets the package name for types outside any namespace.
func WithPackageName(name string) Option {
	return func(cfg *renderConfig) error {
		if name == "" || naming.ToPackageName(name) != name {
			return &schemaerrors.ConfigError{Option: "package name", Value: name, Message: "must be a lowercase Go identifier"}
		}
		cfg.packageName = name
		return nil
	}
}

// WithModulePath sets the import path of the output directory. Types in
// namespace packages are imported as modulePath + "/" + package path.
// Required only when types reference another package.
func WithModulePath(modulePath string) Option {
	return func(cfg *renderConfig) error {
		cfg.modulePath = strings.TrimSuffix(modulePath, "/")
		return nil
	}
}

// WithMappingImport overrides the import path of the mapping package.
func WithMappingImport(importPath string) Option {
	return func(cfg *renderConfig) error {
		if importPath == "" {
			return &schemaerrors.ConfigError{Option: "mapping import", Message: "cannot be empty"}
		}
		cfg.mappingImport = importPath
		return nil
	}
}

// WithLogger sets the logger. Defaults to no logging.
func WithLogger(l logging.Logger) Option {
	return func(cfg *renderConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}

// File is one rendered source file.
type File struct {
	// Name is the slash-separated path relative to the output directory.
	Name string
	// TypeName is the unqualified name of the declared mapper variable.
	TypeName string
	// Package is the Go package name of the file.
	Package string
	// References names the complex types the file refers to, in first
	// appearance order.
	References []string
	Content    []byte
}

// Result holds the rendered files in input order.
type Result struct {
	Files []*File
	// Issues are non-fatal problems, such as output that could not be
	// formatted.
	Issues []issues.Issue
}

type importSpec struct {
	Alias string
	Path  string
}

// Spec renders the import line.
func (i importSpec) Spec() string {
	if i.Alias == "" || i.Alias == path.Base(i.Path) {
		return fmt.Sprintf("%q", i.Path)
	}
	return fmt.Sprintf("%s %q", i.Alias, i.Path)
}

type attributeData struct {
	Name       string
	Type       string
	Collection bool
	HasDefault bool
	Default    any
}

type mappingData struct {
	Key       string
	Attribute string
}

type fileData struct {
	Package       string
	MappingImport importSpec
	Imports       []importSpec
	TypeName      string
	MapperName    string
	Pointer       string
	Attributes    []attributeData
	Mappings      []mappingData
}

// Render renders one file per type. Types should be in dependency order
// (compiler.Result.Types), which the files keep.
func Render(types []*compiler.ComplexType, opts ...Option) (*Result, error) {
	cfg := &renderConfig{
		packageName:   DefaultPackageName,
		mappingImport: DefaultMappingImport,
		logger:        logging.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("emitter: invalid options: %w", err)
		}
	}

	result := &Result{Files: make([]*File, 0, len(types))}
	for _, t := range types {
		file, err := cfg.render(t, result)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, file)
	}
	cfg.logger.Debug("rendered mapper sources", "files", len(result.Files))
	return result, nil
}

func (cfg *renderConfig) packageOf(t *compiler.ComplexType) string {
	if name := t.PackageName(); name != "" {
		return name
	}
	return cfg.packageName
}

func (cfg *renderConfig) importPath(t *compiler.ComplexType) (string, error) {
	if cfg.modulePath == "" {
		return "", &schemaerrors.ConfigError{
			Option:  "module path",
			Message: fmt.Sprintf("required to import %s across packages", t.Name()),
		}
	}
	if len(t.Namespace) == 0 {
		return cfg.modulePath, nil
	}
	return cfg.modulePath + "/" + t.Package(), nil
}

// typeExpr returns the Go expression for a property type as seen from owner.
func (cfg *renderConfig) typeExpr(owner *compiler.ComplexType, typ compiler.Type) string {
	if typ.Kind != compiler.KindComplex {
		return "mapping." + typ.Kind.String()
	}
	if typ.Complex.Package() == owner.Package() {
		return typ.Complex.RootName
	}
	return cfg.packageOf(typ.Complex) + "." + typ.Complex.RootName
}

func (cfg *renderConfig) render(t *compiler.ComplexType, result *Result) (*File, error) {
	data := fileData{
		Package:       cfg.packageOf(t),
		MappingImport: importSpec{Alias: "mapping", Path: cfg.mappingImport},
		TypeName:      t.RootName,
		MapperName:    t.Name(),
		Pointer:       t.Pointer,
	}
	file := &File{Name: t.FileName(), TypeName: t.RootName, Package: data.Package}

	seen := make(map[string]bool)
	for _, ref := range t.References {
		target := ref.Type.Complex
		file.References = append(file.References, target.Name())
		if target.Package() == t.Package() {
			continue
		}
		importPath, err := cfg.importPath(target)
		if err != nil {
			return nil, err
		}
		if seen[importPath] {
			continue
		}
		seen[importPath] = true
		data.Imports = append(data.Imports, importSpec{Alias: cfg.packageOf(target), Path: importPath})
	}

	for _, p := range t.Properties {
		data.Attributes = append(data.Attributes, attributeData{
			Name:       p.Attribute,
			Type:       cfg.typeExpr(t, p.Type),
			Collection: p.Collection,
			HasDefault: p.HasDefault,
			Default:    p.Default,
		})
		data.Mappings = append(data.Mappings, mappingData{Key: p.MappingName(), Attribute: p.Attribute})
	}

	content, err := executeTemplate("mapper.go.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("emitter: rendering %s: %w", t.Name(), err)
	}
	file.Content = cfg.format(file.Name, content, result)
	return file, nil
}
