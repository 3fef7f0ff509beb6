package schemaerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &SchemaError{
			Pointer: "a#/properties/b",
			Key:     "b",
			Ref:     "#/$defs/missing",
			Message: "can't resolve reference",
			Cause:   errors.New("underlying"),
		}
		want := `schema error: can't resolve reference (ref "#/$defs/missing") at "a#/properties/b" (key "b"): underlying`
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Circular prefix", func(t *testing.T) {
		err := &SchemaError{IsCircular: true, Ref: "#/x"}
		if err.Error() != `circular reference (ref "#/x")` {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches sentinels", func(t *testing.T) {
		err := &SchemaError{IsCircular: true}
		if !errors.Is(err, ErrSchema) {
			t.Error("expected ErrSchema")
		}
		if !errors.Is(err, ErrCircularReference) {
			t.Error("expected ErrCircularReference")
		}
		if errors.Is(&SchemaError{}, ErrCircularReference) {
			t.Error("non-circular error should not match ErrCircularReference")
		}
		if errors.Is(err, ErrParse) {
			t.Error("should not match ErrParse")
		}
	})

	t.Run("As through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("compiling: %w", &SchemaError{Pointer: "p"})
		var target *SchemaError
		if !errors.As(wrapped, &target) {
			t.Fatal("errors.As should find SchemaError")
		}
		if target.Pointer != "p" {
			t.Errorf("unexpected pointer: %s", target.Pointer)
		}
	})
}

func TestNotAMapperTypeError(t *testing.T) {
	err := &NotAMapperTypeError{TypeName: "String", Generator: "JSON"}
	if err.Error() != `JSON schema can't be generated for "String" type: not a mapper` {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrNotAMapper) {
		t.Error("expected ErrNotAMapper")
	}
	if (&NotAMapperTypeError{TypeName: "x"}).Error() != `schema can't be generated for "x" type: not a mapper` {
		t.Error("unexpected message without generator")
	}
}

func TestIncorrectMappingArgumentsError(t *testing.T) {
	err := &IncorrectMappingArgumentsError{Mapper: "Person", Key: "name", Message: "either To or Using is required"}
	if err.Error() != `incorrect mapping arguments for Person key "name": either To or Using is required` {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrIncorrectMappingArguments) {
		t.Error("expected ErrIncorrectMappingArguments")
	}
}

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &ParseError{Path: "schema.json", Cause: cause}
	if err.Error() != "parse error in schema.json: unexpected EOF" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	//nolint:errorlint // testing pointer identity
	if err.Unwrap() != cause {
		t.Error("Unwrap should return cause")
	}
	if !errors.Is(err, ErrParse) {
		t.Error("expected ErrParse")
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "namespace_mapping", Value: "a", Message: "expected id=package"}
	if err.Error() != "configuration error for namespace_mapping (value: a): expected id=package" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("expected ErrConfig")
	}
	if (&ConfigError{}).Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}
