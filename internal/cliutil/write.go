// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/erraggy/schemamap/internal/fileutil"
	"github.com/erraggy/schemamap/internal/issues"
	"github.com/erraggy/schemamap/internal/pathutil"
	"github.com/erraggy/schemamap/internal/severity"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteIssues prints every issue at or above minimum, followed by a
// per-severity summary line. Nothing is printed when no issue qualifies.
func WriteIssues(w io.Writer, list []issues.Issue, minimum severity.Severity) {
	shown := issues.Filter(list, minimum)
	if len(shown) == 0 {
		return
	}
	for _, i := range shown {
		Writef(w, "%s\n", i.String())
	}
	counts := issues.Count(shown)
	Writef(w, "\n%d issue(s):", len(shown))
	for _, s := range []severity.Severity{severity.SeverityCritical, severity.SeverityError, severity.SeverityWarning, severity.SeverityInfo} {
		if n := counts[s]; n > 0 {
			Writef(w, " %d %s", n, s)
		}
	}
	Writef(w, "\n")
}

// WriteFileSet writes name/content pairs into dir, creating it as needed.
// Names must be plain file names. Files are written in name order and the
// written paths are returned.
func WriteFileSet(dir string, files map[string][]byte) ([]string, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	if err := os.MkdirAll(dir, fileutil.OutputDir); err != nil {
		return nil, fmt.Errorf("cliutil: creating output directory: %w", err)
	}
	written := make([]string, 0, len(names))
	for _, name := range names {
		path, err := pathutil.SafeJoin(dir, name)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(path, files[name], fileutil.ReadableByAll); err != nil {
			return written, fmt.Errorf("cliutil: writing %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
