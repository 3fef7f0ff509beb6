// Package tree holds the generic key/value tree that schema documents are
// loaded into and generated schemas are built as.
//
// A tree value is one of: *Object (ordered mapping), []any, string, int64,
// float64, bool, or nil. Key order is significant: property order in a
// compiled schema drives attribute order in emitted source, and generated
// documents are written in the order their keys were set.
package tree

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
)

// Object is an insertion-ordered string-keyed mapping.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores value under key and returns the object for chaining.
// Overwriting an existing key keeps its original position.
func (o *Object) Set(key string, value any) *Object {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// String returns the value under key when it is a string.
func (o *Object) String(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Object returns the value under key when it is an *Object.
func (o *Object) Object(key string) (*Object, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*Object)
	return obj, ok
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	if !o.Has(key) {
		return
	}
	delete(o.values, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// All iterates over key/value pairs in insertion order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON writes the object with keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AsObject returns v as an *Object.
func AsObject(v any) (*Object, bool) {
	obj, ok := v.(*Object)
	return obj, ok && obj != nil
}

// ToPlain converts a tree into plain Go values (map[string]any for objects),
// recursively. Useful for comparisons where key order does not matter.
func ToPlain(v any) any {
	switch val := v.(type) {
	case *Object:
		m := make(map[string]any, val.Len())
		for k, child := range val.All() {
			m[k] = ToPlain(child)
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = ToPlain(child)
		}
		return out
	default:
		return v
	}
}

// FromPlain converts plain Go values into a tree. Map keys are sorted, since
// Go maps carry no order.
func FromPlain(v any) any {
	switch val := v.(type) {
	case map[string]any:
		obj := NewObject()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			obj.Set(k, FromPlain(val[k]))
		}
		return obj
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = FromPlain(child)
		}
		return out
	case int:
		return int64(val)
	default:
		return v
	}
}
