// SPDX-License-Identifier: MPL-2.0

// Package manifest renders the documents a packaged bundle ships with: the
// remote-debugging descriptor (.debug), the CSXS bundle manifest
// (manifest.xml), and the aggregate multi-build package descriptor (.mxi).
//
// Rendering is a constrained substitution step: every list, version string
// and conditional attribute is computed in Go first, and the templates only
// interpolate fields of the resulting view structs. Templates never evaluate
// expressions or reach back into the build model.
package manifest

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// defaultManifestTemplates keys the built-in bundle manifest templates by
// family. Selection uses the build's earliest targeted family: manifests are
// read by every generation from that one on, so the oldest schema wins.
var defaultManifestTemplates = map[string]string{
	"cc":     "templates/manifest_v4.xml.tmpl",
	"cc2014": "templates/manifest_v5.xml.tmpl",
	"cc2015": "templates/manifest_v6.xml.tmpl",
}

// csxsVersions maps families to the CSXS runtime version their manifest
// schema requires.
var csxsVersions = map[string]string{
	"cc":     "4.0",
	"cc2014": "5.0",
	"cc2015": "6.0",
}

type (
	// TemplateError reports a template that could not be read or parsed.
	TemplateError struct {
		Path string
		Err  error
	}

	// DebugPortError reports a missing or negative remote-debugging port.
	DebugPortError struct {
		Build string
		Port  int
	}
)

func (e *TemplateError) Error() string {
	return fmt.Sprintf("manifest template %s: %v", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

func (e *DebugPortError) Error() string {
	return fmt.Sprintf("build %q: debug port %d must be a non-negative number", e.Build, e.Port)
}

// loadTemplate parses an override file when path is non-empty, otherwise the
// named embedded default. Relative override paths are resolved against dir.
func loadTemplate(path, dir, embedded string) (*template.Template, error) {
	if path == "" {
		data, err := templateFS.ReadFile(embedded)
		if err != nil {
			return nil, &TemplateError{Path: embedded, Err: err}
		}
		return parseTemplate(embedded, string(data))
	}

	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateError{Path: path, Err: err}
	}
	return parseTemplate(path, string(data))
}

func parseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(filepath.Base(name)).Parse(text)
	if err != nil {
		return nil, &TemplateError{Path: name, Err: err}
	}
	return tmpl, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", &TemplateError{Path: tmpl.Name(), Err: err}
	}
	return sb.String(), nil
}

// xmlEscape escapes the five XML special characters. Applied when building
// views, so templates interpolate already-safe strings.
func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
