// Package pathutil builds and parses the JSON Pointer locators used to
// address schema fragments, and validates output locations for generated
// files.
//
// A locator is an absolute pointer: a base id followed by an RFC 6901
// fragment, "person.json#/properties/address":
//
//	pointer := pathutil.Join(id, []string{"properties", key})
//
// Tokens are escaped ("~" becomes "~0", "/" becomes "~1") when joined and
// unescaped when a reference is split with [SplitRef] and [ParseFragment].
package pathutil
