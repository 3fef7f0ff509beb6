package compiler

import (
	"net/url"

	"github.com/erraggy/schemamap/internal/pathutil"
	"github.com/erraggy/schemamap/schemaerrors"
)

// BuildID returns the base id in effect after a schema declares id.
//
// Without an id the base is unchanged. When both are relative the id is
// returned as-is; otherwise the id is resolved against the base using
// RFC 3986 reference resolution.
func BuildID(base, id string, hasID bool) (string, error) {
	if !hasID {
		return base, nil
	}
	baseURI, err := url.Parse(base)
	if err != nil {
		return "", &schemaerrors.SchemaError{Ref: base, Message: "malformed base id", Cause: err}
	}
	idURI, err := url.Parse(id)
	if err != nil {
		return "", &schemaerrors.SchemaError{Ref: id, Message: "malformed $id", Cause: err}
	}
	if !baseURI.IsAbs() && !idURI.IsAbs() {
		return id, nil
	}
	return baseURI.ResolveReference(idURI).String(), nil
}

// BuildPointer returns the absolute pointer for fragment tokens under id.
// An empty fragment yields id without a trailing "#".
func BuildPointer(id string, fragment []string) string {
	return pathutil.Join(id, fragment)
}

// splitPointer returns the id part and decoded fragment tokens of a pointer.
func splitPointer(pointer string) (string, []string, error) {
	id, frag := pathutil.SplitRef(pointer)
	tokens, err := pathutil.ParseFragment(frag)
	if err != nil {
		return "", nil, &schemaerrors.SchemaError{Pointer: pointer, Message: "malformed pointer", Cause: err}
	}
	return id, tokens, nil
}
