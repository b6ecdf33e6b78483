// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"cepack-cli/pkg/build"
	"cepack-cli/pkg/hostdb"
)

const debugTemplatePath = "templates/debug.xml.tmpl"

type (
	debugView struct {
		Extensions []debugExtensionView
	}

	debugExtensionView struct {
		ID    string
		Hosts []debugHostView
	}

	debugHostView struct {
		Name string
		Port int
	}
)

// RenderDebugDescriptor renders the .debug document enabling remote
// debugging for every extension of the build. Each extension gets a
// consecutive port starting at the bundle's declared base port.
func RenderDebugDescriptor(b *build.Build) (string, error) {
	if err := b.Init(); err != nil {
		return "", err
	}

	if b.Bundle.Debug.Port == nil || *b.Bundle.Debug.Port < 0 {
		port := -1
		if b.Bundle.Debug.Port != nil {
			port = *b.Bundle.Debug.Port
		}
		return "", &DebugPortError{Build: b.Name, Port: port}
	}
	basePort := *b.Bundle.Debug.Port

	hosts, err := hostIDsFor(b)
	if err != nil {
		return "", err
	}

	view := debugView{}
	for i, ext := range b.Extensions {
		extView := debugExtensionView{ID: xmlEscape(ext.ID)}
		for _, host := range hosts {
			extView.Hosts = append(extView.Hosts, debugHostView{Name: host, Port: basePort + i})
		}
		view.Extensions = append(view.Extensions, extView)
	}

	tmpl, err := loadTemplate(b.DebugTemplate, b.SourceFolder, debugTemplatePath)
	if err != nil {
		return "", err
	}
	return render(tmpl, view)
}

// hostIDsFor returns the host application codes across every product the
// build targets, deduplicated, in product declaration order. Host codes are
// stable across families, so the earliest family's record is authoritative.
func hostIDsFor(b *build.Build) ([]string, error) {
	family := b.Families.Earliest()
	seen := map[string]bool{}
	var hosts []string
	for _, product := range b.Products {
		rec, err := hostdb.Lookup(product, family)
		if err != nil {
			return nil, err
		}
		for _, id := range rec.HostIDs {
			if !seen[id] {
				seen[id] = true
				hosts = append(hosts, id)
			}
		}
	}
	return hosts, nil
}
