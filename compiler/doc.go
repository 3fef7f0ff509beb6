// Package compiler compiles a set of JSON Schema documents into a graph of
// complex types.
//
// Compilation runs in two passes. The disassembler flattens every input
// document into a [Repository] addressed by absolute pointers (base id plus
// JSON Pointer fragment), honoring $id rebasing, and records a structural
// hash of every object fragment in a [HashIndex]. The type compiler then
// walks from the first document's root, resolving $ref chains through the
// repository, inferring a [Kind] for each fragment, and memoizing complex
// types by pointer so that self-referential schemas terminate with a single
// [ComplexType] instance.
//
// Object fragments that are structurally identical (same hash) collapse to
// one shared type, identified by the first pointer registered for that
// hash. Type names that still collide after compilation are made unique
// with numeric suffixes in discovery order.
//
// # Supported vocabulary
//
// type, properties, patternProperties, items, $id, $ref, $defs,
// definitions, enum, format (date, date-time), default, anyOf, plus the
// object_list and reference markers. A type list with more than one
// non-null member, and anyOf, both compile to a loosely typed value.
//
// # Usage
//
//	result, err := compiler.Compile([][]byte{schema},
//		compiler.WithRootName("Person"),
//		compiler.WithLogger(logging.NewSlogAdapter(nil)),
//	)
//	if err != nil {
//		return err
//	}
//	for _, t := range result.Types {
//		fmt.Println(t.Name())
//	}
package compiler
