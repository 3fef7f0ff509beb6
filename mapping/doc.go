// Package mapping describes mapper types: an ordered list of typed
// attributes plus per-format mapping tables that tie wire names to those
// attributes.
//
// A Mapper is a static, data-only descriptor. It is built once through
// explicit calls and read by the schema generators in packages jsongen and
// xmlgen; the compiler's emitter writes Go source that builds Mappers.
//
//	var Person = mapping.NewMapper("Person")
//
//	func init() {
//		Person.MustAttribute("name", mapping.String)
//		Person.MustAttribute("address", Address)
//		Person.MustAttribute("tags", mapping.String, mapping.Collection())
//		Person.MustMap(mapping.JSON, "Name", mapping.To("name"))
//	}
//
// Inheritance is an explicit merge: [Mapper.Extend] copies the parent's
// attributes and mapping tables into the child, which then appends its own.
//
// Malformed mapping arguments are reported as
// *schemaerrors.IncorrectMappingArgumentsError.
package mapping
