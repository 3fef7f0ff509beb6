// Package schemaerrors provides structured error types for schemamap.
//
// Every error raised by the compiler, the generators, or the mapping
// descriptor is one of the types below. They support errors.Is() against the
// package sentinels and errors.As() for structured access to the offending
// pointer, key, or type name.
//
// # Error Categories
//
//   - SchemaError: duplicate pointers, unresolvable or circular $ref, invalid fragments
//   - NotAMapperTypeError: a generator was invoked on something that is not a mapper
//   - IncorrectMappingArgumentsError: malformed mapping descriptor arguments
//   - ParseError: schema text that could not be loaded
//   - ConfigError: invalid options or project file settings
//
// # Usage with errors.As
//
//	result, err := compiler.Compile(schemas)
//	if err != nil {
//	    var schemaErr *schemaerrors.SchemaError
//	    if errors.As(err, &schemaErr) && schemaErr.IsCircular {
//	        // $ref chain never reaches a concrete schema
//	    }
//	}
package schemaerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrSchema indicates a structurally invalid schema set.
	ErrSchema = errors.New("schema error")

	// ErrCircularReference indicates a $ref chain that never reaches a concrete schema.
	ErrCircularReference = errors.New("circular reference")

	// ErrNotAMapper indicates a generator was given a non-mapper type.
	ErrNotAMapper = errors.New("not a mapper type")

	// ErrIncorrectMappingArguments indicates malformed mapping descriptor arguments.
	ErrIncorrectMappingArguments = errors.New("incorrect mapping arguments")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// SchemaError represents a fatal problem in the schema set being compiled.
type SchemaError struct {
	// Pointer is the absolute pointer of the offending fragment, if known
	Pointer string
	// Key is the property or definition key of the offending fragment, if known
	Key string
	// Ref is the $ref value being resolved, if any
	Ref string
	// IsCircular is true when a $ref chain loops without reaching a concrete schema
	IsCircular bool
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Ref != "" {
		msg += fmt.Sprintf(" (ref %q)", e.Ref)
	}
	if e.Pointer != "" {
		msg += fmt.Sprintf(" at %q", e.Pointer)
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" (key %q)", e.Key)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaError) Is(target error) bool {
	if target == ErrSchema {
		return true
	}
	return e.IsCircular && target == ErrCircularReference
}

// NotAMapperTypeError is returned when a schema generator is invoked on a
// type that is not a mapper.
type NotAMapperTypeError struct {
	// TypeName is the name of the rejected type
	TypeName string
	// Generator names the generator that rejected it ("JSON", "XML")
	Generator string
}

// Error returns a human-readable error message.
func (e *NotAMapperTypeError) Error() string {
	kind := "schema"
	if e.Generator != "" {
		kind = e.Generator + " schema"
	}
	return fmt.Sprintf("%s can't be generated for %q type: not a mapper", kind, e.TypeName)
}

// Is reports whether target matches this error type.
func (e *NotAMapperTypeError) Is(target error) bool {
	return target == ErrNotAMapper
}

// IncorrectMappingArgumentsError reports malformed arguments to a mapping
// declaration (a map/element/attribute call on a mapper descriptor).
type IncorrectMappingArgumentsError struct {
	// Mapper is the name of the mapper being declared
	Mapper string
	// Key is the mapping key being declared
	Key string
	// Message describes which argument is wrong
	Message string
}

// Error returns a human-readable error message.
func (e *IncorrectMappingArgumentsError) Error() string {
	msg := "incorrect mapping arguments"
	if e.Mapper != "" {
		msg += " for " + e.Mapper
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" key %q", e.Key)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *IncorrectMappingArgumentsError) Is(target error) bool {
	return target == ErrIncorrectMappingArguments
}

// ParseError represents a failure to load schema text into a tree.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
