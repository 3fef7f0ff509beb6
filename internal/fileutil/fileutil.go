// Package fileutil holds the permission modes used for generated output.
package fileutil

import "os"

// OutputDir is the mode for directories created to hold generated files.
const OutputDir os.FileMode = 0o755

// ReadableByAll is the mode for generated source and schema files, which
// build tools and other users need to read.
const ReadableByAll os.FileMode = 0o644
