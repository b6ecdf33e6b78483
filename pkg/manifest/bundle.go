// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"

	"cepack-cli/pkg/build"
	"cepack-cli/pkg/cepfile"
	"cepack-cli/pkg/hostdb"
)

const extensionTemplatePath = "templates/extension.xml.tmpl"

type (
	bundleManifestView struct {
		BundleID      string
		BundleVersion string
		BundleName    string
		Author        string
		CSXSVersion   string
		ExtensionRefs []extensionRefView
		Hosts         []hostView
		// DispatchEntries are per-extension fragments, pre-rendered.
		DispatchEntries []string
	}

	extensionRefView struct {
		ID      string
		Version string
	}

	hostView struct {
		Name    string
		Version string
	}

	extensionView struct {
		ID          string
		MenuName    string
		MainPath    string
		ScriptPath  string
		Type        string
		AutoVisible bool
		Events      []string
		Icons       cepfile.IconsDecl
		Size        cepfile.SizeDecl
	}
)

// RenderBundleManifest renders the CSXS manifest.xml for one build: the
// extension reference list, one pre-rendered dispatch fragment per
// extension, and the host list with the resolved version bounds. Minimum
// mode emits a bare lower bound; range mode emits "[min,max]".
func RenderBundleManifest(b *build.Build) (string, error) {
	if err := b.Init(); err != nil {
		return "", err
	}

	view := bundleManifestView{
		BundleID:      xmlEscape(b.Bundle.ID),
		BundleVersion: xmlEscape(b.Bundle.Version),
		BundleName:    xmlEscape(b.Bundle.Name),
		Author:        xmlEscape(b.Bundle.Author),
		CSXSVersion:   csxsVersions[b.Families.Earliest()],
	}
	if view.CSXSVersion == "" {
		view.CSXSVersion = csxsVersions["cc2015"]
	}

	for _, ext := range b.Extensions {
		version := ext.Version
		if version == "" {
			version = b.Bundle.Version
		}
		view.ExtensionRefs = append(view.ExtensionRefs, extensionRefView{
			ID:      xmlEscape(ext.ID),
			Version: xmlEscape(version),
		})

		fragment, err := renderDispatchEntry(b, ext)
		if err != nil {
			return "", err
		}
		view.DispatchEntries = append(view.DispatchEntries, fragment)
	}

	hosts, err := hostEntriesFor(b)
	if err != nil {
		return "", err
	}
	view.Hosts = hosts

	embedded, ok := defaultManifestTemplates[b.Families.Earliest()]
	if !ok {
		embedded = defaultManifestTemplates["cc2015"]
	}
	tmpl, err := loadTemplate(b.ManifestTemplate, b.SourceFolder, embedded)
	if err != nil {
		return "", err
	}
	return render(tmpl, view)
}

// hostEntriesFor computes one <Host> entry per host code per targeted
// product, with the version attribute already formatted.
func hostEntriesFor(b *build.Build) ([]hostView, error) {
	family := b.Families.Earliest()
	var entries []hostView
	for _, product := range b.Products {
		rec, err := hostdb.Lookup(product, family)
		if err != nil {
			return nil, err
		}
		hr, err := b.VersionRangeFor(product)
		if err != nil {
			return nil, err
		}

		version := hostdb.FormatVersion(hr.Min)
		if hr.Closed {
			version = fmt.Sprintf("[%s,%s]", hostdb.FormatVersion(hr.Min), hostdb.FormatVersion(hr.Max))
		}
		for _, id := range rec.HostIDs {
			entries = append(entries, hostView{Name: id, Version: version})
		}
	}
	return entries, nil
}

func renderDispatchEntry(b *build.Build, ext cepfile.ExtensionDecl) (string, error) {
	view := extensionView{
		ID:         xmlEscape(ext.ID),
		MenuName:   xmlEscape(ext.Name),
		MainPath:   xmlEscape(ext.MainPath),
		ScriptPath: xmlEscape(ext.ScriptPath),
		Type:       string(ext.Type),
		Events:     ext.Lifecycle.Events,
		Icons:      ext.Icons,
		Size:       ext.Size,
	}
	if ext.Lifecycle.AutoVisible != nil {
		view.AutoVisible = *ext.Lifecycle.AutoVisible
	}

	tmpl, err := loadTemplate(ext.ManifestTemplate, b.SourceFolder, extensionTemplatePath)
	if err != nil {
		return "", err
	}
	return render(tmpl, view)
}
