// Package emitter renders Go source declaring one mapping descriptor per
// compiled type.
//
// Each file holds a package-level *mapping.Mapper variable and an init
// function that declares its attributes and its JSON mapping:
//
//	var Person = mapping.NewMapper("Person")
//
//	func init() {
//		Person.MustAttribute("name", mapping.String)
//		Person.MustAttribute("address", Address)
//		Person.MustAttribute("tags", mapping.String, mapping.Collection())
//		Person.MustMap(mapping.JSON, "name", mapping.To("name"))
//		...
//	}
//
// Files follow the order of the type list they are given. Types placed in a
// namespace package by the compiler are written under that package's
// directory and imported by the packages that reference them.
package emitter
