package pathutil

import (
	"fmt"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// RefPrefixDefs is the local reference prefix for $defs entries.
const RefPrefixDefs = "#/$defs/"

// DefsRef returns the local $ref for a $defs entry.
func DefsRef(name string) string {
	return RefPrefixDefs + jsonpointer.Escape(name)
}

// Join builds an absolute pointer from id and fragment tokens. An empty
// fragment yields id alone, without a trailing "#".
func Join(id string, tokens []string) string {
	if len(tokens) == 0 {
		return id
	}
	var b strings.Builder
	b.WriteString(id)
	b.WriteByte('#')
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(jsonpointer.Escape(tok))
	}
	return b.String()
}

// SplitRef splits a reference into the part before "#" and the fragment
// after it. A reference without "#" has an empty fragment.
func SplitRef(ref string) (id, fragment string) {
	id, fragment, _ = strings.Cut(ref, "#")
	return id, fragment
}

// ParseFragment decodes an escaped fragment ("/a/b~1c") into tokens.
func ParseFragment(fragment string) ([]string, error) {
	if fragment == "" || fragment == "/" {
		return nil, nil
	}
	ptr, err := jsonpointer.New(fragment)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON pointer %q: %w", fragment, err)
	}
	return ptr.DecodedTokens(), nil
}
