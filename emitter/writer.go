package emitter

import (
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/schemamap/internal/fileutil"
	"github.com/erraggy/schemamap/internal/pathutil"
)

// WriteFiles writes all rendered files under outputDir, creating package
// directories as needed.
func (r *Result) WriteFiles(outputDir string) error {
	if err := os.MkdirAll(outputDir, fileutil.OutputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, file := range r.Files {
		segments := strings.Split(file.Name, "/")
		dir := outputDir
		for _, segment := range segments[:len(segments)-1] {
			next, err := pathutil.SafeJoin(dir, segment)
			if err != nil {
				return fmt.Errorf("invalid package directory in %s: %w", file.Name, err)
			}
			if err := os.MkdirAll(next, fileutil.OutputDir); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			dir = next
		}

		target, err := pathutil.SafeJoin(dir, segments[len(segments)-1])
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, file.Content, fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Name, err)
		}
	}

	return nil
}
