package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/schemamap/internal/issues"
	"github.com/erraggy/schemamap/internal/naming"
	"github.com/erraggy/schemamap/internal/pathutil"
	"github.com/erraggy/schemamap/internal/severity"
	"github.com/erraggy/schemamap/logging"
	"github.com/erraggy/schemamap/schemaerrors"
	"github.com/erraggy/schemamap/tree"
)

// DefaultRootName names the root type when neither an override nor a key is available.
const DefaultRootName = "root"

// Result is the outcome of a compilation.
type Result struct {
	// Types in reverse discovery order, so dependencies precede dependents.
	Types []*ComplexType
	// Root is the type compiled from the first document.
	Root *ComplexType
	// Issues are non-fatal problems, such as dropped defaults.
	Issues []issues.Issue
	// Repository holds every addressable fragment of the input documents.
	Repository *Repository
}

// Compile loads schemas with the configured adapter and compiles them.
// The first document is the root; the others only supply $ref targets.
func Compile(schemas [][]byte, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("compiler: invalid options: %w", err)
	}
	trees := make([]any, 0, len(schemas))
	for i, src := range schemas {
		doc, err := cfg.adapter.Load(src)
		if err != nil {
			return nil, fmt.Errorf("compiler: loading schema %d: %w", i, err)
		}
		trees = append(trees, doc)
	}
	return compileTrees(cfg, trees)
}

// CompileTrees compiles already loaded schema trees (see package tree).
func CompileTrees(trees []any, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("compiler: invalid options: %w", err)
	}
	return compileTrees(cfg, trees)
}

func compileTrees(cfg *compileConfig, trees []any) (*Result, error) {
	if len(trees) == 0 {
		return nil, &schemaerrors.ConfigError{Option: "schemas", Message: "at least one schema is required"}
	}

	repo := NewRepository()
	for _, doc := range trees {
		if err := repo.Disassemble(doc, nil, ""); err != nil {
			return nil, err
		}
	}
	cfg.logger.Debug("disassembled schemas",
		"documents", len(trees),
		"entries", repo.Len(),
		"dedupGroups", len(repo.Hashes().Candidates()))

	c := &compiler{
		cfg:       cfg,
		repo:      repo,
		byPointer: make(map[string]*ComplexType),
		log:       cfg.logger,
	}
	root, err := c.compile(trees[0], true, "", nil)
	if err != nil {
		return nil, err
	}
	if root == nil || root.Type.Kind != KindComplex {
		return nil, &schemaerrors.SchemaError{Message: "root schema must describe an object"}
	}

	c.resolveCollisions()

	types := make([]*ComplexType, len(c.types))
	for i, t := range c.types {
		types[len(c.types)-1-i] = t
	}
	cfg.logger.Info("compiled schema", "types", len(types), "root", root.Type.Complex.Name(), "issues", len(c.issues))

	return &Result{
		Types:      types,
		Root:       root.Type.Complex,
		Issues:     c.issues,
		Repository: repo,
	}, nil
}

type compiler struct {
	cfg       *compileConfig
	repo      *Repository
	types     []*ComplexType // discovery order
	byPointer map[string]*ComplexType
	issues    []issues.Issue
	log       logging.Logger
}

// compile compiles one schema fragment into a property. It returns nil
// for fragments that yield no property.
func (c *compiler) compile(schema any, isRoot bool, baseID string, fragment []string) (*Property, error) {
	key, hasKey := lastToken(fragment)
	id := baseID

	obj, isObj := tree.AsObject(schema)
	if isObj {
		if declared, ok := obj.String("$id"); ok {
			var err error
			if id, err = BuildID(id, declared, true); err != nil {
				return nil, err
			}
			fragment = nil
		}
	}
	origin := BuildPointer(id, fragment)

	var (
		defaultValue any
		hasDefault   bool
	)
	if isObj {
		defaultValue, hasDefault = obj.Get("default")
	}

	collection := false
	if isObj {
		if typeName, _ := obj.String("type"); typeName == "array" {
			collection = true
			items, ok := obj.Get("items")
			if !ok {
				items = true
			}
			schema = items
			fragment = extend(fragment, "items")
			obj, isObj = tree.AsObject(schema)
			if isObj {
				if declared, ok := obj.String("$id"); ok {
					var err error
					if id, err = BuildID(id, declared, true); err != nil {
						return nil, err
					}
					fragment = nil
				}
				if !hasDefault {
					defaultValue, hasDefault = obj.Get("default")
				}
			}
		}
	}

	var resolved *Entry
	if isObj {
		if ref, ok := obj.String("$ref"); ok {
			entry, err := c.repo.Resolve(id, ref)
			if err != nil {
				return nil, withLocation(err, origin, key)
			}
			resolved = entry
			schema = entry.Schema
			if id, fragment, err = splitPointer(entry.Pointer); err != nil {
				return nil, err
			}
			if !hasDefault {
				if target, ok := tree.AsObject(schema); ok {
					defaultValue, hasDefault = target.Get("default")
				}
			}
		}
	}

	kind, ok := InferKind(schema)
	if !ok {
		return nil, nil
	}

	name := key
	if resolved != nil && resolved.HasKey {
		name = resolved.Key
	}
	if isRoot {
		switch {
		case c.cfg.rootName != "":
			name = c.cfg.rootName
		case name == "":
			name = DefaultRootName
		}
	}

	typ := Type{Kind: kind}
	if kind == KindComplex {
		t, err := c.complexType(schema, id, fragment, name)
		if err != nil {
			return nil, err
		}
		typ.Complex = t
		if hasDefault {
			c.issue(severity.SeverityWarning, origin, key, "default on an object property is ignored", defaultValue)
			hasDefault, defaultValue = false, nil
		}
	}

	p, dropped := NewProperty(key, typ, collection, defaultValue, hasDefault)
	if dropped {
		c.issue(severity.SeverityWarning, origin, key, "default dropped on collection", defaultValue)
	}
	if !hasKey && !isRoot {
		p.Key = name
	}
	return p, nil
}

// complexType returns the type for an object fragment, compiling it on
// first visit. The type is registered before its properties are compiled
// so that self-references find it.
func (c *compiler) complexType(schema any, id string, fragment []string, name string) (*ComplexType, error) {
	pointer := BuildPointer(id, fragment)

	if c.cfg.dedup {
		if canonical, ok := c.repo.Hashes().Canonical(pointer); ok && canonical != pointer {
			entry, _ := c.repo.Get(canonical)
			c.log.Debug("collapsing duplicate object schema", "pointer", pointer, "canonical", canonical)
			pointer = canonical
			schema = entry.Schema
			if entry.HasKey {
				name = entry.Key
			}
			var err error
			if id, fragment, err = splitPointer(canonical); err != nil {
				return nil, err
			}
		}
	}

	if t, ok := c.byPointer[pointer]; ok {
		return t, nil
	}

	t := &ComplexType{
		Pointer:   pointer,
		RootName:  naming.ToTypeName(name),
		Namespace: c.namespaceFor(pointer),
	}
	c.types = append(c.types, t)
	c.byPointer[pointer] = t
	c.log.Debug("compiling type", "name", t.RootName, "pointer", pointer)

	obj, ok := tree.AsObject(schema)
	if !ok {
		return t, nil
	}
	props, ok := obj.Object("properties")
	if !ok {
		return t, nil
	}
	for key, sub := range props.All() {
		p, err := c.compile(sub, false, id, extend(fragment, "properties", key))
		if err != nil {
			return nil, err
		}
		if p != nil {
			t.addProperty(p)
		}
	}
	return t, nil
}

func (c *compiler) namespaceFor(pointer string) []string {
	baseID, _ := pathutil.SplitRef(pointer)
	if baseID == "" {
		return nil
	}
	pkg, ok := c.cfg.namespaceMapping[baseID]
	if !ok {
		return nil
	}
	return strings.Split(pkg, "/")
}

// resolveCollisions renames types that share a qualified name or an
// emitted file name. The first type in discovery order keeps its name;
// later ones get the smallest numeric suffix, from 2, that leaves both
// unused.
func (c *compiler) resolveCollisions() {
	takenNames := make(map[string]bool, len(c.types))
	takenFiles := make(map[string]bool, len(c.types))
	for _, t := range c.types {
		takenNames[t.Name()] = true
		takenFiles[t.FileName()] = true
	}
	usedNames := make(map[string]bool, len(c.types))
	usedFiles := make(map[string]bool, len(c.types))
	for _, t := range c.types {
		if !usedNames[t.Name()] && !usedFiles[t.FileName()] {
			usedNames[t.Name()] = true
			usedFiles[t.FileName()] = true
			continue
		}
		original := t.RootName
		for i := 2; ; i++ {
			t.RootName = original + strconv.Itoa(i)
			if !takenNames[t.Name()] && !usedNames[t.Name()] &&
				!takenFiles[t.FileName()] && !usedFiles[t.FileName()] {
				break
			}
		}
		usedNames[t.Name()] = true
		usedFiles[t.FileName()] = true
		c.issue(severity.SeverityInfo, t.Pointer, "", fmt.Sprintf("type %s renamed to %s to avoid a name collision", original, t.RootName), nil)
	}
}

func (c *compiler) issue(sev severity.Severity, path, field, msg string, value any) {
	c.issues = append(c.issues, issues.Issue{
		Path:     path,
		Field:    field,
		Message:  msg,
		Severity: sev,
		Value:    value,
	})
	c.log.Debug(msg, "pointer", path, "field", field)
}

// withLocation fills in where a reference error occurred.
func withLocation(err error, pointer, key string) error {
	se, ok := err.(*schemaerrors.SchemaError)
	if !ok {
		return err
	}
	out := *se
	if out.Key == "" {
		out.Key = key
	}
	if out.Pointer == "" {
		out.Pointer = pointer
	}
	return &out
}
