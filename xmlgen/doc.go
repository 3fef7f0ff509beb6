// Package xmlgen generates XML Schema (XSD) documents from mapping
// descriptors.
//
// Output is split by XML namespace: one [Document] per namespace URI,
// created on first use and named "<base><index>.xsd". An element or
// attribute whose namespace differs from its owning type's is written as a
// ref in the owner's document, backed by a top-level definition in the
// target namespace's document and an xs:import pointing at it.
//
//	docs, err := xmlgen.New().Generate(person, "person")
//	files, err := xmlgen.New().Render(person, "person", adapter.XMLOptions{Pretty: true})
package xmlgen
