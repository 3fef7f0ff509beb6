package emitter

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strconv"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/tools/imports"

	"github.com/erraggy/schemamap/internal/issues"
	"github.com/erraggy/schemamap/internal/severity"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates *template.Template

func init() {
	var err error
	templates, err = template.New("").
		Funcs(templateFuncs()).
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		panic(err)
	}
}

// templateFuncs returns the sprig function map with local overrides.
func templateFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["quote"] = strconv.Quote
	funcs["goLiteral"] = goLiteral
	return funcs
}

// executeTemplate executes a template by name and returns the raw bytes.
func executeTemplate(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// format runs goimports over src. On failure the unformatted source is
// kept and a warning issue is recorded on result.
func (cfg *renderConfig) format(fileName string, src []byte, result *Result) []byte {
	formatted, err := imports.Process(path.Base(fileName), src, nil)
	if err != nil {
		result.Issues = append(result.Issues, issues.Issue{
			Path:     fileName,
			Message:  fmt.Sprintf("failed to format generated code: %v", err),
			Severity: severity.SeverityWarning,
		})
		cfg.logger.Warn("failed to format generated code", "file", fileName, "error", err)
		return src
	}
	return formatted
}
