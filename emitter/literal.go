package emitter

import (
	"strconv"
	"strings"

	"github.com/erraggy/schemamap/tree"
)

// goLiteral renders a schema default as a Go expression.
func goLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case string:
		return strconv.Quote(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		s := strconv.FormatFloat(val, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = goLiteral(item)
		}
		return "[]any{" + strings.Join(parts, ", ") + "}"
	case *tree.Object:
		parts := make([]string, 0, val.Len())
		for k, item := range val.All() {
			parts = append(parts, strconv.Quote(k)+": "+goLiteral(item))
		}
		return "map[string]any{" + strings.Join(parts, ", ") + "}"
	default:
		return "nil"
	}
}
