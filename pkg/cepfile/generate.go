// SPDX-License-Identifier: MPL-2.0

package cepfile

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateCUE renders a Cepfile back to CUE text. It emits only the fields
// that are set, so a freshly scaffolded document stays readable.
func GenerateCUE(doc *Cepfile) string {
	var sb strings.Builder

	sb.WriteString("// cepack.cue - build declarations for cepack\n\n")

	if doc.Description != "" {
		fmt.Fprintf(&sb, "description: %q\n\n", doc.Description)
	}

	sb.WriteString("builds: {\n")
	names := make([]string, 0, len(doc.Builds))
	for name := range doc.Builds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		generateBuild(&sb, name, doc.Builds[name])
	}
	sb.WriteString("}\n")

	if pkg := generatePackaging(&doc.Packaging); pkg != "" {
		sb.WriteString("\n")
		sb.WriteString(pkg)
	}

	return sb.String()
}

func generateBuild(sb *strings.Builder, name string, decl *BuildDecl) {
	fmt.Fprintf(sb, "\t%q: {\n", name)
	if decl.Source != "" {
		fmt.Fprintf(sb, "\t\tsource: %q\n", decl.Source)
	}

	if b := decl.Bundle; b != (BundleDecl{}) {
		sb.WriteString("\t\tbundle: {\n")
		writeField(sb, "\t\t\t", "id", b.ID)
		writeField(sb, "\t\t\t", "version", b.Version)
		writeField(sb, "\t\t\t", "name", b.Name)
		writeField(sb, "\t\t\t", "author", b.Author)
		if b.Debug.Port != nil {
			fmt.Fprintf(sb, "\t\t\tdebug: port: %d\n", *b.Debug.Port)
		}
		sb.WriteString("\t\t}\n")
	}

	sb.WriteString("\t\textensions: [\n")
	for i := range decl.Extensions {
		generateExtension(sb, &decl.Extensions[i])
	}
	sb.WriteString("\t\t]\n")

	writeSelector(sb, "\t\t", "products", decl.Products)
	writeSelector(sb, "\t\t", "families", decl.Families)
	writeField(sb, "\t\t", "manifest_template", decl.ManifestTemplate)
	writeField(sb, "\t\t", "debug_template", decl.DebugTemplate)
	sb.WriteString("\t}\n")
}

func generateExtension(sb *strings.Builder, ext *ExtensionDecl) {
	sb.WriteString("\t\t\t{\n")
	writeField(sb, "\t\t\t\t", "id", ext.ID)
	writeField(sb, "\t\t\t\t", "name", ext.Name)
	writeField(sb, "\t\t\t\t", "version", ext.Version)
	writeField(sb, "\t\t\t\t", "main_path", ext.MainPath)
	writeField(sb, "\t\t\t\t", "script_path", ext.ScriptPath)
	writeField(sb, "\t\t\t\t", "type", string(ext.Type))
	if s := ext.Size.Base; s != (Dimensions{}) {
		fmt.Fprintf(sb, "\t\t\t\tsize: base: {width: %d, height: %d}\n", s.Width, s.Height)
	}
	sb.WriteString("\t\t\t},\n")
}

func generatePackaging(p *PackagingDecl) string {
	if *p == (PackagingDecl{}) {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("packaging: {\n")
	writeField(&sb, "\t", "output", p.Output)
	writeField(&sb, "\t", "staging", p.Staging)
	if c := p.Certificate; c != (CertificateDecl{}) {
		sb.WriteString("\tcertificate: {\n")
		writeField(&sb, "\t\t", "file", c.File)
		writeField(&sb, "\t\t", "password", c.Password)
		writeField(&sb, "\t\t", "timestamp_url", c.TimestampURL)
		writeField(&sb, "\t\t", "owner", c.Owner)
		sb.WriteString("\t}\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

func writeField(sb *strings.Builder, indent, key, value string) {
	if value != "" {
		fmt.Fprintf(sb, "%s%s: %q\n", indent, key, value)
	}
}

// writeSelector emits a string-or-list field in the shape it was declared:
// bare strings mean minimum mode, lists mean range mode.
func writeSelector(sb *strings.Builder, indent, key string, raw any) {
	switch v := raw.(type) {
	case string:
		if v != "" {
			fmt.Fprintf(sb, "%s%s: %q\n", indent, key, v)
		}
	case []string:
		writeList(sb, indent, key, v)
	case []any:
		strs := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				strs = append(strs, s)
			}
		}
		writeList(sb, indent, key, strs)
	}
}

func writeList(sb *strings.Builder, indent, key string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s%s: [", indent, key)
	for i, s := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%q", s)
	}
	sb.WriteString("]\n")
}
