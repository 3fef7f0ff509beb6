package compiler

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"slices"
	"strconv"

	"github.com/erraggy/schemamap/internal/pathutil"
	"github.com/erraggy/schemamap/tree"
)

// metadataKeywords do not change what a fragment compiles to and are left
// out of structural hashes.
var metadataKeywords = map[string]bool{
	"$id":         true,
	"$schema":     true,
	"$comment":    true,
	"title":       true,
	"description": true,
	"examples":    true,
	"deprecated":  true,
}

// schemaMapKeywords hold maps from names to subschemas.
var schemaMapKeywords = map[string]bool{
	"properties":        true,
	"patternProperties": true,
	"$defs":             true,
	"definitions":       true,
}

// schemaKeywords hold a subschema or a list of subschemas.
var schemaKeywords = map[string]bool{
	"items": true,
	"anyOf": true,
	"allOf": true,
	"oneOf": true,
	"not":   true,
}

// StructuralHash returns the hex SHA-256 of the canonical serialization of
// a schema fragment. Object keys are sorted and array elements are sorted
// by their serialized form, so the hash does not depend on key or element
// order. Metadata keywords are ignored. $ref values are hashed as the
// absolute pointer they name, resolved against baseID and any $id on the
// way down, so equal references from different documents stay distinct.
//
// Collisions are treated as impossible at schema scale; equal hashes are
// taken to mean equal structure.
func StructuralHash(schema any, baseID string) string {
	h := sha256.New()
	writeSchema(h, schema, baseID)
	return hex.EncodeToString(h.Sum(nil))
}

// canonical returns the canonical serialization used by StructuralHash.
func canonical(schema any, baseID string) string {
	h := &stringHash{}
	writeSchema(h, schema, baseID)
	return string(h.buf)
}

func writeSchema(h hash.Hash, schema any, baseID string) {
	obj, ok := tree.AsObject(schema)
	if !ok {
		writeString(h, serializeValue(schema))
		return
	}
	if declared, ok := obj.String("$id"); ok {
		if id, err := BuildID(baseID, declared, true); err == nil {
			baseID = id
		}
	}
	keys := obj.Keys()
	slices.Sort(keys)
	writeString(h, "{")
	first := true
	for _, k := range keys {
		if metadataKeywords[k] {
			continue
		}
		if !first {
			writeString(h, ",")
		}
		first = false
		writeString(h, strconv.Quote(k)+":")
		v, _ := obj.Get(k)
		switch {
		case k == "$ref":
			writeString(h, serializeValue(absoluteRef(baseID, v)))
		case schemaMapKeywords[k]:
			writeSchemaMap(h, v, baseID)
		case schemaKeywords[k]:
			writeSubschemas(h, v, baseID)
		default:
			writeString(h, serializeValue(v))
		}
	}
	writeString(h, "}")
}

// absoluteRef returns the pointer a $ref value names under baseID. Values
// that are not well-formed references are returned unchanged.
func absoluteRef(baseID string, v any) any {
	ref, ok := v.(string)
	if !ok {
		return v
	}
	refID, frag := pathutil.SplitRef(ref)
	id := baseID
	if refID != "" {
		var err error
		if id, err = BuildID(baseID, refID, true); err != nil {
			return v
		}
	}
	tokens, err := pathutil.ParseFragment(frag)
	if err != nil {
		return v
	}
	return BuildPointer(id, tokens)
}

func writeSchemaMap(h hash.Hash, v any, baseID string) {
	obj, ok := tree.AsObject(v)
	if !ok {
		writeString(h, serializeValue(v))
		return
	}
	keys := obj.Keys()
	slices.Sort(keys)
	writeString(h, "{")
	for i, k := range keys {
		if i > 0 {
			writeString(h, ",")
		}
		writeString(h, strconv.Quote(k)+":")
		sub, _ := obj.Get(k)
		writeSchema(h, sub, baseID)
	}
	writeString(h, "}")
}

func writeSubschemas(h hash.Hash, v any, baseID string) {
	list, ok := v.([]any)
	if !ok {
		writeSchema(h, v, baseID)
		return
	}
	parts := make([]string, len(list))
	for i, sub := range list {
		parts[i] = canonical(sub, baseID)
	}
	slices.Sort(parts)
	writeString(h, "[")
	for i, p := range parts {
		if i > 0 {
			writeString(h, ",")
		}
		writeString(h, p)
	}
	writeString(h, "]")
}

// serializeValue serializes a plain value (enum members, defaults).
func serializeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case string:
		return strconv.Quote(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = serializeValue(item)
		}
		slices.Sort(parts)
		out := "["
		for i, p := range parts {
			if i > 0 {
				out += ","
			}
			out += p
		}
		return out + "]"
	case *tree.Object:
		keys := val.Keys()
		slices.Sort(keys)
		out := "{"
		for i, k := range keys {
			if i > 0 {
				out += ","
			}
			child, _ := val.Get(k)
			out += strconv.Quote(k) + ":" + serializeValue(child)
		}
		return out + "}"
	default:
		return strconv.Quote("?")
	}
}

func writeString(h hash.Hash, s string) {
	_, _ = h.Write([]byte(s))
}

// stringHash captures the bytes written to it instead of hashing them.
type stringHash struct {
	buf []byte
}

func (s *stringHash) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}
func (s *stringHash) Sum(b []byte) []byte { return append(b, s.buf...) }
func (s *stringHash) Reset()              { s.buf = s.buf[:0] }
func (s *stringHash) Size() int           { return len(s.buf) }
func (s *stringHash) BlockSize() int      { return 1 }

// HashIndex groups pointers by the structural hash of their fragment.
type HashIndex struct {
	groups    map[string][]string
	byPointer map[string]string
}

// NewHashIndex returns an empty index.
func NewHashIndex() *HashIndex {
	return &HashIndex{
		groups:    make(map[string][]string),
		byPointer: make(map[string]string),
	}
}

// Add records pointer under hash. Registration order is kept.
func (h *HashIndex) Add(hash, pointer string) {
	h.groups[hash] = append(h.groups[hash], pointer)
	h.byPointer[pointer] = hash
}

// Candidates returns only the hash groups with two or more pointers.
func (h *HashIndex) Candidates() map[string][]string {
	out := make(map[string][]string)
	for hash, pointers := range h.groups {
		if len(pointers) > 1 {
			out[hash] = slices.Clone(pointers)
		}
	}
	return out
}

// Canonical returns the first registered pointer sharing pointer's hash
// when pointer belongs to a dedup candidate group.
func (h *HashIndex) Canonical(pointer string) (string, bool) {
	hash, ok := h.byPointer[pointer]
	if !ok {
		return "", false
	}
	group := h.groups[hash]
	if len(group) < 2 {
		return "", false
	}
	return group[0], true
}

// Hash returns the recorded hash of pointer.
func (h *HashIndex) Hash(pointer string) (string, bool) {
	hash, ok := h.byPointer[pointer]
	return hash, ok
}
