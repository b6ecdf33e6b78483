// SPDX-License-Identifier: MPL-2.0

// Package cepfile defines the schema and parsing for cepack.cue files.
//
// A cepack.cue file declares one or more builds: which extension sources go
// into a bundle, which products and release families the bundle targets, and
// how the resulting archive gets signed. The file is validated against an
// embedded CUE schema before any field is used.
package cepfile

import (
	"sort"
)

// ExtensionType is the UI surface an extension presents inside a host.
type ExtensionType string

const (
	// TypePanel is a dockable panel, the default surface.
	TypePanel ExtensionType = "Panel"
	// TypeModalDialog is a blocking dialog window.
	TypeModalDialog ExtensionType = "ModalDialog"
	// TypeModeless is a non-blocking floating window.
	TypeModeless ExtensionType = "Modeless"
	// TypeCustom is an invisible extension dispatched by events only.
	TypeCustom ExtensionType = "Custom"
)

type (
	// Cepfile is a parsed and schema-validated cepack.cue document.
	Cepfile struct {
		// Description is free-form text shown by `cepack config show`.
		Description string `json:"description,omitempty"`
		// Builds maps build names to their declarations.
		Builds map[string]*BuildDecl `json:"builds"`
		// Packaging carries signing and output settings shared by all builds.
		Packaging PackagingDecl `json:"packaging,omitempty"`

		// FilePath is where this document was loaded from. Set by Parse.
		FilePath string `json:"-"`
	}

	// BuildDecl is the raw declaration of one build, before normalization
	// by the build package. Products and Families accept either a single
	// string or a list of strings; NormalizedProducts and FamilySelector
	// resolve that shape exactly once, here at the parsing boundary.
	BuildDecl struct {
		Source     string          `json:"source,omitempty"`
		Bundle     BundleDecl      `json:"bundle,omitempty"`
		Extensions []ExtensionDecl `json:"extensions,omitempty"`
		Products   any             `json:"products,omitempty"`
		Families   any             `json:"families,omitempty"`

		// ManifestTemplate overrides the family-keyed default bundle
		// manifest template. DebugTemplate does the same for the debug
		// descriptor.
		ManifestTemplate string `json:"manifest_template,omitempty"`
		DebugTemplate    string `json:"debug_template,omitempty"`
	}

	// BundleDecl is the bundle identity block of a build.
	BundleDecl struct {
		ID      string    `json:"id,omitempty"`
		Version string    `json:"version,omitempty"`
		Name    string    `json:"name,omitempty"`
		Author  string    `json:"author,omitempty"`
		Debug   DebugDecl `json:"debug,omitempty"`
	}

	// DebugDecl configures remote debugging for decorated builds. Port is
	// the base port; each extension in the build gets base+index.
	DebugDecl struct {
		Port *int `json:"port,omitempty"`
	}

	// ExtensionDecl declares one extension dispatched by a bundle.
	ExtensionDecl struct {
		ID string `json:"id"`
		// Name is the host menu label. A blank name keeps the extension
		// out of the host's extension menu.
		Name string `json:"name,omitempty"`
		// Version and Author are optional; when the bundle block leaves
		// its identity fields blank they are back-filled from the first
		// extension.
		Version    string        `json:"version,omitempty"`
		Author     string        `json:"author,omitempty"`
		MainPath   string        `json:"main_path,omitempty"`
		ScriptPath string        `json:"script_path,omitempty"`
		Type       ExtensionType `json:"type,omitempty"`
		Lifecycle  LifecycleDecl `json:"lifecycle,omitempty"`
		Icons      IconsDecl     `json:"icons,omitempty"`
		Size       SizeDecl      `json:"size,omitempty"`
		// ManifestTemplate overrides the default per-extension dispatch
		// fragment template.
		ManifestTemplate string `json:"manifest_template,omitempty"`
	}

	// LifecycleDecl controls extension startup and event dispatch.
	LifecycleDecl struct {
		AutoVisible *bool    `json:"auto_visible,omitempty"`
		Events      []string `json:"events,omitempty"`
	}

	// IconsDecl holds the light/dark icon sets.
	IconsDecl struct {
		Light IconSet `json:"light,omitempty"`
		Dark  IconSet `json:"dark,omitempty"`
	}

	// IconSet holds the per-state icon image paths.
	IconSet struct {
		Normal   string `json:"normal,omitempty"`
		Hover    string `json:"hover,omitempty"`
		Disabled string `json:"disabled,omitempty"`
	}

	// SizeDecl holds the base and min/max panel dimensions.
	SizeDecl struct {
		Base Dimensions `json:"base,omitempty"`
		Min  Dimensions `json:"min,omitempty"`
		Max  Dimensions `json:"max,omitempty"`
	}

	// Dimensions is a width/height pair in pixels.
	Dimensions struct {
		Width  int `json:"width,omitempty"`
		Height int `json:"height,omitempty"`
	}

	// PackagingDecl carries run-wide packaging settings.
	PackagingDecl struct {
		// Output is the directory receiving signed archives and the
		// aggregate descriptor.
		Output string `json:"output,omitempty"`
		// Staging is the temporary directory for per-build assembly.
		Staging string `json:"staging,omitempty"`
		// Certificate configures signing.
		Certificate CertificateDecl `json:"certificate,omitempty"`
	}

	// CertificateDecl identifies the signing certificate, or the identity
	// used to self-sign one.
	CertificateDecl struct {
		File         string `json:"file,omitempty"`
		Password     string `json:"password,omitempty"`
		TimestampURL string `json:"timestamp_url,omitempty"`
		Owner        string `json:"owner,omitempty"`
	}
)

// BuildNames returns the declared build names in deterministic order.
func (c *Cepfile) BuildNames() []string {
	names := make([]string, 0, len(c.Builds))
	for name := range c.Builds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
