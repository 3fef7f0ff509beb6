// Package jsongen generates JSON Schema (draft 2020-12) documents from
// mapping descriptors.
//
// Every mapper reachable from the root through its JSON mapping becomes a
// $defs entry named after the mapper; mapper-typed attributes are emitted
// as $ref fragments, so recursive and mutually recursive mappers produce
// finite output. Primitive attributes are nullable unless they are
// collections, and defaults are cast to the attribute type before being
// rendered.
//
// The fragment for each primitive is looked up in a per-generator registry.
// Register overrides or extends it; unregistered types render as strings.
//
//	g := jsongen.New()
//	doc, err := g.Generate(person, jsongen.WithID("https://example.com/person.json"))
package jsongen
