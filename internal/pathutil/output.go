package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SafeJoin joins a generated file name onto dir. Names that carry path
// separators or resolve outside dir are rejected, as is a target that is an
// existing symlink.
func SafeJoin(dir, name string) (string, error) {
	if name == "" || filepath.Base(name) != name || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name %q: must be a plain file name", name)
	}

	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return "", fmt.Errorf("cannot resolve output directory: %w", err)
	}
	target := filepath.Join(absDir, name)

	info, err := os.Lstat(target)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("refusing to write to symlink: %s", target)
		}
	case os.IsNotExist(err):
	default:
		return "", fmt.Errorf("cannot stat %s: %w", target, err)
	}
	return target, nil
}
