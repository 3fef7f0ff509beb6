package compiler

import (
	"github.com/erraggy/schemamap/internal/pathutil"
	"github.com/erraggy/schemamap/schemaerrors"
	"github.com/erraggy/schemamap/tree"
)

// MaxRefDepth bounds the length of a $ref chain.
const MaxRefDepth = 100

// Entry is one addressable schema fragment.
type Entry struct {
	Pointer string
	// Key is the last fragment token at registration, if any.
	Key    string
	HasKey bool
	Schema any
}

// Repository maps absolute pointers to schema fragments. It is built once
// by Disassemble and read-only afterwards.
type Repository struct {
	entries map[string]*Entry
	order   []string
	hashes  *HashIndex
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{
		entries: make(map[string]*Entry),
		hashes:  NewHashIndex(),
	}
}

// Get returns the entry registered at pointer.
func (r *Repository) Get(pointer string) (*Entry, bool) {
	e, ok := r.entries[pointer]
	return e, ok
}

// Len returns the number of registered entries.
func (r *Repository) Len() int { return len(r.entries) }

// Pointers returns registered pointers in registration order.
func (r *Repository) Pointers() []string {
	return append([]string(nil), r.order...)
}

// Hashes returns the structural hash index of object fragments.
func (r *Repository) Hashes() *HashIndex { return r.hashes }

// Disassemble registers schema and every addressable subschema under the
// pointers they can be referenced by.
func (r *Repository) Disassemble(schema any, fragment []string, baseID string) error {
	key, hasKey := lastToken(fragment)
	return r.disassemble(schema, fragment, baseID, key, hasKey)
}

// disassemble registers schema under key. Array items carry the key of
// the array that holds them.
func (r *Repository) disassemble(schema any, fragment []string, baseID, key string, hasKey bool) error {
	id := baseID
	obj, isObj := tree.AsObject(schema)
	if isObj {
		if declared, ok := obj.String("$id"); ok {
			var err error
			if id, err = BuildID(baseID, declared, true); err != nil {
				return err
			}
			fragment = nil
		}
	}

	pointer := BuildPointer(id, fragment)
	if _, exists := r.entries[pointer]; exists {
		return &schemaerrors.SchemaError{Pointer: pointer, Key: key, Message: "schema with id already exists"}
	}
	r.entries[pointer] = &Entry{Pointer: pointer, Key: key, HasKey: hasKey, Schema: schema}
	r.order = append(r.order, pointer)
	if isObjectSchema(schema) {
		r.hashes.Add(StructuralHash(schema, baseID), pointer)
	}
	if !isObj {
		return nil
	}

	for _, keyword := range []string{"properties", "patternProperties", "$defs", "definitions"} {
		children, ok := obj.Object(keyword)
		if !ok {
			continue
		}
		for name, child := range children.All() {
			if err := r.disassemble(child, extend(fragment, keyword, name), id, name, true); err != nil {
				return err
			}
		}
	}
	if items, ok := obj.Object("items"); ok {
		if err := r.disassemble(items, extend(fragment, "items"), id, key, hasKey); err != nil {
			return err
		}
	}
	return nil
}

// Resolve follows ref, relative to baseID, to the entry it names. Chains of
// $ref entries are followed until a non-reference entry is found.
func (r *Repository) Resolve(baseID, ref string) (*Entry, error) {
	visited := make(map[string]bool)
	for depth := 0; ; depth++ {
		refID, frag := pathutil.SplitRef(ref)
		id := baseID
		if refID != "" {
			var err error
			if id, err = BuildID(baseID, refID, true); err != nil {
				return nil, err
			}
		}
		tokens, err := pathutil.ParseFragment(frag)
		if err != nil {
			return nil, &schemaerrors.SchemaError{Ref: ref, Message: "malformed reference", Cause: err}
		}
		key := BuildPointer(id, tokens)

		if visited[key] || depth > MaxRefDepth {
			return nil, &schemaerrors.SchemaError{Pointer: key, Ref: ref, IsCircular: true, Message: "reference chain does not terminate"}
		}
		visited[key] = true

		entry, ok := r.entries[key]
		if !ok {
			return nil, &schemaerrors.SchemaError{Pointer: key, Ref: ref, Message: "can't resolve reference"}
		}
		next, ok := refOf(entry.Schema)
		if !ok {
			return entry, nil
		}
		baseID, _ = pathutil.SplitRef(entry.Pointer)
		ref = next
	}
}

// refOf returns the $ref of an object schema.
func refOf(schema any) (string, bool) {
	obj, ok := tree.AsObject(schema)
	if !ok {
		return "", false
	}
	return obj.String("$ref")
}

func lastToken(fragment []string) (string, bool) {
	if len(fragment) == 0 {
		return "", false
	}
	return fragment[len(fragment)-1], true
}

// extend returns a new slice; fragments are shared across recursion.
func extend(fragment []string, tokens ...string) []string {
	out := make([]string, 0, len(fragment)+len(tokens))
	out = append(out, fragment...)
	return append(out, tokens...)
}
