// Package naming provides the case conversions shared by the compiler, the
// emitter, and both schema generators.
//
// Functions include ToTypeName (schema keys to exported Go identifiers),
// ToSnakeCase (attribute and XML root names), ToPackageName, and SchemaName
// (mapper names to JSON Schema $defs keys and XSD type names).
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
