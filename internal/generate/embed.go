// Package generate renders the JavaScript sources consumed by the front-end
// bundle: the locale registry and the module loader.
package generate

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/openimis/fe-config/internal/ordered"
)

//go:embed templates/*.tmpl
var TemplateFS embed.FS

// Template file names within TemplateFS.
const (
	LocalesTemplate = "templates/locales.js.tmpl"
	ModulesTemplate = "templates/modules.js.tmpl"
)

var funcs = template.FuncMap{
	"quote": quote,
}

// quote renders s as a JSON string literal, which is also a valid
// JavaScript string literal.
func quote(s string) (string, error) {
	b, err := ordered.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// renderFile parses an embedded template and executes it with data.
func renderFile(name string, data any) ([]byte, error) {
	content, err := TemplateFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
