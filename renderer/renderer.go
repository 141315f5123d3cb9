// Package renderer turns a consolidation run into a markdown audit report, and
// the report into HTML or terminal output.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// RenderAudit renders the audit report to a markdown string.
func RenderAudit(a *Audit) (string, error) {
	partials := map[string]string{
		"audit_title":         "audit_title.md",
		"audit_records":       "audit_records.md",
		"audit_diagnostics":   "audit_diagnostics.md",
		"audit_concentration": "audit_concentration.md",
	}
	// An empty file name results in an empty section.
	if len(a.Concentration) == 0 {
		partials["audit_concentration"] = ""
	}
	return renderTemplate("audit", "audit.md", partials, a)
}

// renderTemplate renders a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) (string, error) {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return "", fmt.Errorf("reading main template %q: %w", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return "", fmt.Errorf("parsing main template %q: %w", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, "templates/"+file)
			if err != nil {
				return "", fmt.Errorf("reading partial template %q: %w", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return "", fmt.Errorf("parsing partial template %q for %q: %w", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", templateName, err)
	}
	return b.String(), nil
}
