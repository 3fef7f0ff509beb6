package compiler

import "github.com/erraggy/schemamap/tree"

// InferKind infers the type kind of a schema fragment. The second result
// is false when the fragment yields no property (false or null schemas).
func InferKind(schema any) (Kind, bool) {
	switch s := schema.(type) {
	case nil:
		return 0, false
	case bool:
		if !s {
			return 0, false
		}
		return KindValue, true
	}
	obj, ok := tree.AsObject(schema)
	if !ok {
		return KindValue, true
	}

	typeName, multi := schemaType(obj)
	if multi {
		return KindValue, true
	}
	switch typeName {
	case "object":
		return KindComplex, true
	case "number":
		return KindFloat, true
	case "integer":
		return KindInteger, true
	case "boolean":
		return KindBoolean, true
	case "string":
		return inferString(obj), true
	case "":
		switch {
		case obj.Has("properties"):
			return KindComplex, true
		case obj.Has("enum"):
			return KindEnum, true
		case obj.Has("anyOf"):
			return KindAnyOf, true
		}
	}
	return KindValue, true
}

func inferString(obj *tree.Object) Kind {
	format, _ := obj.String("format")
	switch {
	case format == "date-time":
		return KindTime
	case format == "date":
		return KindDate
	case obj.Has("enum"):
		return KindEnum
	case obj.Has("object_list"):
		return KindObjectList
	case obj.Has("reference"):
		return KindReference
	default:
		return KindString
	}
}

// schemaType returns the single non-null type named by obj. multi reports
// a type list with more than one non-null member.
func schemaType(obj *tree.Object) (name string, multi bool) {
	v, ok := obj.Get("type")
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, false
	case []any:
		var members []string
		for _, item := range t {
			s, ok := item.(string)
			if !ok || s == "null" {
				continue
			}
			members = append(members, s)
		}
		if len(members) > 1 {
			return "", true
		}
		if len(members) == 1 {
			return members[0], false
		}
	}
	return "", false
}

// isObjectSchema reports whether a fragment is eligible for structural
// deduplication.
func isObjectSchema(schema any) bool {
	obj, ok := tree.AsObject(schema)
	if !ok {
		return false
	}
	if obj.Has("properties") {
		return true
	}
	name, multi := schemaType(obj)
	return !multi && name == "object"
}
