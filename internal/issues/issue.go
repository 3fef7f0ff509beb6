// Package issues provides the issue type reported by the compiler and the
// schema generators for non-fatal problems.
package issues

import (
	"fmt"
	"strings"

	"github.com/erraggy/schemamap/internal/severity"
)

// Issue is a single non-fatal problem found while compiling or generating.
type Issue struct {
	// Path is the schema pointer or mapper name the issue relates to
	// (e.g., "person.json#/properties/tags").
	Path string
	// Message is a human-readable description of the issue.
	Message string
	// Severity indicates the severity level of the issue.
	Severity severity.Severity
	// Field is the property key or attribute name involved (optional).
	Field string
	// Value is the offending value (optional).
	Value any
	// Context provides additional information about the issue (optional).
	Context string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	var sb strings.Builder
	sb.WriteString(symbol)
	sb.WriteByte(' ')
	if i.Path != "" {
		sb.WriteString(i.Path)
		if i.Field != "" {
			fmt.Fprintf(&sb, " [%s]", i.Field)
		}
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	if i.Context != "" {
		fmt.Fprintf(&sb, "\n    Context: %s", i.Context)
	}
	return sb.String()
}

// Count returns the number of issues at each severity level.
func Count(list []Issue) map[severity.Severity]int {
	out := make(map[severity.Severity]int)
	for _, i := range list {
		out[i.Severity]++
	}
	return out
}

// Filter returns the issues at or above minimum severity, in order.
// Severity ordering is Info < Warning < Error < Critical.
func Filter(list []Issue, minimum severity.Severity) []Issue {
	var out []Issue
	for _, i := range list {
		if severity.Rank(i.Severity) >= severity.Rank(minimum) {
			out = append(out, i)
		}
	}
	return out
}
