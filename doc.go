// Package schemamap compiles JSON Schema documents into object-mapper
// descriptors and generates JSON Schema and XML Schema back from them.
//
// # Overview
//
// The library is organized as a pipeline of packages:
//
//   - compiler: disassemble schema documents into pointer-addressed
//     fragments, resolve $ref chains, and compile a graph of complex types
//     with cycle handling, structural deduplication and unique naming
//   - emitter: render Go source that declares a mapping.Mapper per type
//   - jsongen: generate a draft 2020-12 JSON Schema from a mapper graph
//   - xmlgen: generate XML Schema documents from a mapper graph, one per
//     XML namespace, linked with xs:import
//   - mapping: the mapper descriptor both directions meet on
//   - adapter: JSON, YAML and XML load/dump strategies
//
// # Quick Start
//
// Compile a schema and emit mapper source:
//
//	result, err := compiler.Compile([][]byte{data}, compiler.WithRootName("Person"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	files, err := emitter.Render(result.Types, emitter.WithPackageName("models"))
//
// Generate schemas from the compiled root:
//
//	root, err := result.RootMapper()
//	jsonSchema, err := jsongen.New().Render(root, adapter.JSON{}, adapter.DumpOptions{Pretty: true})
//	xsds, err := xmlgen.New().Render(root, "person", adapter.XMLOptions{Pretty: true})
//
// # Errors
//
// Failures are reported with the types in package schemaerrors and can be
// matched with errors.Is against its sentinels. Non-fatal findings, such
// as a default dropped from a collection, are returned on
// compiler.Result.Issues.
//
// # Command Line
//
// The schemamap command (cmd/schemamap) exposes compile, jsonschema, xsd
// and mcp subcommands.
package schemamap
