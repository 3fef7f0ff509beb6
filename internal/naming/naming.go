package naming

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// goReservedWords contains Go keywords that cannot be used as identifiers.
var goReservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// RemoveAccents folds accented characters to their base forms.
// Example: "Größe" -> "Große", "café" -> "cafe"
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// EscapeReservedWord appends an underscore to Go keywords. Keywords are
// lowercase, so exported names are returned unchanged.
func EscapeReservedWord(name string) string {
	if goReservedWords[name] {
		return name + "_"
	}
	return name
}

// ToTypeName converts a schema key into an exported Go identifier.
// Non-alphanumeric runes split words, each word gets an upper-case first
// rune, and a leading digit gets a "T" prefix.
// Example: "address_line" -> "AddressLine"
// Example: "café-menu" -> "CafeMenu"
// Example: "2fa" -> "T2fa"
func ToTypeName(s string) string {
	var result strings.Builder
	for _, word := range splitWords(RemoveAccents(s)) {
		rs := []rune(word)
		rs[0] = unicode.ToUpper(rs[0])
		result.WriteString(string(rs))
	}

	name := result.String()
	if name == "" {
		return "Type"
	}
	if r := []rune(name)[0]; !unicode.IsLetter(r) {
		name = "T" + name
	}
	return name
}

// ToTitleCase converts the first letter to uppercase and leaves the rest.
// Example: "hello" -> "Hello"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}
	return titleCaser.String(s)
}

// ToSnakeCase converts a string to snake_case.
// Runs of capitals are kept together as one word, and hyphens, dots, and
// slashes become underscores.
// Example: "UserProfile" -> "user_profile"
// Example: "HTTPServer" -> "http_server"
// Example: "first-name" -> "first_name"
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	rs := []rune(s)
	var result strings.Builder
	for i, r := range rs {
		switch {
		case r == '-' || r == '.' || r == '/' || r == ' ':
			result.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 && needsBreak(rs, i) {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// needsBreak reports whether an underscore belongs before the capital at i.
func needsBreak(rs []rune, i int) bool {
	prev := rs[i-1]
	if prev == '_' || prev == '-' || prev == '.' || prev == '/' || prev == ' ' {
		return false
	}
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// inside a run of capitals, break before the last one when a lowercase follows
	return unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
}

// ToAttributeName converts a wire key into a mapper attribute name.
// Example: "firstName" -> "first_name"
func ToAttributeName(key string) string {
	name := ToSnakeCase(RemoveAccents(key))
	var result strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}
	out := result.String()
	if out == "" {
		return "value"
	}
	if unicode.IsDigit([]rune(out)[0]) {
		out = "_" + out
	}
	return out
}

// ToPackageName returns the Go package name for an import path: its last
// segment, lowercased, with non-alphanumeric runes dropped.
// Example: "example.com/api/v1-models" -> "v1models"
func ToPackageName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	var result strings.Builder
	for _, r := range strings.ToLower(RemoveAccents(path)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			result.WriteRune(r)
		}
	}
	name := result.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "pkg" + name
	}
	return EscapeReservedWord(name)
}

// SchemaName converts a qualified mapper name into a name usable as a JSON
// Schema $defs key or an XSD type name.
// Example: "models.Person" -> "models_Person"
func SchemaName(name string) string {
	return strings.NewReplacer("::", "_", ".", "_", "/", "_").Replace(name)
}

// Uniquify returns names with later duplicates renamed. The first
// occurrence keeps its name; each later one gets the smallest numeric
// suffix, from 2, that is neither an input name nor already assigned.
// Example: ["Address", "Person", "Address"] -> ["Address", "Person", "Address2"]
func Uniquify(names []string) []string {
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[n] = true
	}
	used := make(map[string]bool, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		name := n
		if used[name] {
			for k := 2; ; k++ {
				name = n + strconv.Itoa(k)
				if !taken[name] && !used[name] {
					break
				}
			}
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
