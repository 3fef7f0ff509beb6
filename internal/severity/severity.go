// Package severity provides severity level constants and utilities
// for issues reported by the compiler and the schema generators.
//
//   - SeverityInfo: Informational messages about choices made (renames, dedup)
//   - SeverityWarning: Lossy compilation, such as dropped defaults
//   - SeverityError: Problems that make part of the output unusable
//   - SeverityCritical: Constructs that cannot be processed at all
//
// The severity levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

import "strings"

// Severity indicates the severity level of an issue.
type Severity int

const (
	// SeverityError indicates a problem that makes part of the output unusable.
	SeverityError Severity = iota

	// SeverityWarning indicates lossy compilation that doesn't prevent
	// processing but should be reviewed.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo

	// SeverityCritical indicates constructs that cannot be processed.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Rank orders severities from least (0) to most severe. Unknown values rank -1.
func Rank(s Severity) int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// Parse returns the severity named by s, case-insensitively.
func Parse(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SeverityInfo, true
	case "warning", "warn":
		return SeverityWarning, true
	case "error":
		return SeverityError, true
	case "critical":
		return SeverityCritical, true
	default:
		return 0, false
	}
}
