package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToTypeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: "Type"},
		{name: "single word", input: "person", want: "Person"},
		{name: "snake_case", input: "address_line", want: "AddressLine"},
		{name: "kebab-case", input: "api-client", want: "ApiClient"},
		{name: "camelCase keeps inner capitals", input: "userProfile", want: "UserProfile"},
		{name: "all caps", input: "API", want: "API"},
		{name: "accents folded", input: "café-menu", want: "CafeMenu"},
		{name: "leading digit", input: "2fa", want: "T2fa"},
		{name: "keyword type", input: "type", want: "Type"},
		{name: "keyword map", input: "map", want: "Map"},
		{name: "keyword range", input: "Range", want: "Range"},
		{name: "only separators", input: "--", want: "Type"},
		{name: "path-like", input: "/defs/user", want: "DefsUser"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToTypeName(tt.input))
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"person", "person"},
		{"UserProfile", "user_profile"},
		{"HTTPServer", "http_server"},
		{"APIClient", "api_client"},
		{"first-name", "first_name"},
		{"a.b", "a_b"},
		{"Version2Name", "version2_name"},
		{"already_snake", "already_snake"},
		{"Mixed_Case", "mixed_case"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ToSnakeCase(tt.input))
		})
	}
}

func TestToAttributeName(t *testing.T) {
	assert.Equal(t, "first_name", ToAttributeName("firstName"))
	assert.Equal(t, "first_name", ToAttributeName("first name"))
	assert.Equal(t, "_1st", ToAttributeName("1st"))
	assert.Equal(t, "a_b", ToAttributeName("a$b"))
	assert.Equal(t, "value", ToAttributeName(""))
}

func TestToPackageName(t *testing.T) {
	assert.Equal(t, "models", ToPackageName("models"))
	assert.Equal(t, "v1models", ToPackageName("example.com/api/v1-models"))
	assert.Equal(t, "pkg2", ToPackageName("example.com/2"))
	assert.Equal(t, "pkg", ToPackageName(""))
	assert.Equal(t, "type_", ToPackageName("example.com/type"))
}

func TestEscapeReservedWord(t *testing.T) {
	assert.Equal(t, "func_", EscapeReservedWord("func"))
	assert.Equal(t, "range_", EscapeReservedWord("range"))
	assert.Equal(t, "Range", EscapeReservedWord("Range"), "exported names never clash with keywords")
	assert.Equal(t, "Type", EscapeReservedWord("Type"))
	assert.Equal(t, "person", EscapeReservedWord("person"))
}

func TestSchemaName(t *testing.T) {
	assert.Equal(t, "models_Person", SchemaName("models.Person"))
	assert.Equal(t, "Foo_Bar_Baz", SchemaName("Foo::Bar/Baz"))
	assert.Equal(t, "Person", SchemaName("Person"))
}

func TestRemoveAccents(t *testing.T) {
	assert.Equal(t, "cafe", RemoveAccents("café"))
	assert.Equal(t, "Uber", RemoveAccents("Über"))
	assert.Equal(t, "plain", RemoveAccents("plain"))
}

func TestToTitleCase(t *testing.T) {
	assert.Equal(t, "", ToTitleCase(""))
	assert.Equal(t, "Hello", ToTitleCase("hello"))
	assert.Equal(t, "HTTP", ToTitleCase("HTTP"))
}

func TestUniquify(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "no duplicates", input: []string{"A", "B"}, want: []string{"A", "B"}},
		{name: "first keeps its name", input: []string{"Address", "Person", "Address", "Address"}, want: []string{"Address", "Person", "Address2", "Address3"}},
		{name: "skips suffixes already in use", input: []string{"Item", "Item", "Item2"}, want: []string{"Item", "Item3", "Item2"}},
		{name: "empty", input: nil, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Uniquify(tt.input))
		})
	}
}
