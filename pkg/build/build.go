// SPDX-License-Identifier: MPL-2.0

// Package build turns a raw cepack.cue build declaration into a validated,
// fully-resolved packaging unit. A Build knows its bundle identity, the
// extensions it dispatches, which products and release families it targets,
// and the host version range those targets imply.
package build

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"cepack-cli/pkg/cepfile"
	"cepack-cli/pkg/hostdb"
)

// FamilyMode distinguishes the two ways a build can target release families.
type FamilyMode int

const (
	// FamilyMinimum targets a single family and everything after it; the
	// rendered manifests carry no upper version bound.
	FamilyMinimum FamilyMode = iota
	// FamilyRange targets exactly the listed families; manifests carry
	// both bounds.
	FamilyRange
)

type (
	// FamilySet is a build's resolved family targeting.
	FamilySet struct {
		Mode FamilyMode
		// Names is epoch-sorted in range mode and has exactly one entry
		// in minimum mode.
		Names []string
	}

	// Build is one packaging unit. Construct with New, then call Init
	// before handing it to a renderer or orchestrator.
	Build struct {
		// Name is the build's key within the declaration file.
		Name string
		// SourceFolder holds the extension sources staged into the bundle.
		SourceFolder string
		// Bundle is the bundle identity block, back-filled during Init.
		Bundle cepfile.BundleDecl
		// Extensions are the dispatched extensions, in declaration order.
		Extensions []cepfile.ExtensionDecl
		// Products are the targeted product keys, lower-cased, non-empty
		// after Init.
		Products []string
		// Families is the resolved family targeting.
		Families FamilySet

		// ManifestTemplate and DebugTemplate optionally override the
		// default document templates.
		ManifestTemplate string
		DebugTemplate    string

		// BaseName is the filesystem-safe name derived from the bundle id.
		// Computed by Init.
		BaseName string
		// OutputArchiveName is the process-unique archive filename for
		// this build. Computed by New.
		OutputArchiveName string

		initialized  bool
		debugApplied bool
	}

	// ValidationError reports one invalid field of one build.
	ValidationError struct {
		Build   string
		Field   string
		Message string
	}
)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("build %q: %s: %s", e.Build, e.Field, e.Message)
}

// New constructs a Build from a declaration. Products and families are
// normalized here; validation is deferred to Init so a bad build can still
// be listed and reported alongside good ones.
func New(name string, decl *cepfile.BuildDecl) *Build {
	sel := decl.FamilySelector()
	families := FamilySet{Mode: FamilyMinimum, Names: sel.Values}
	if sel.FromList {
		families.Mode = FamilyRange
		hostdb.SortFamilies(families.Names)
	}

	return &Build{
		Name:              name,
		SourceFolder:      decl.Source,
		Bundle:            decl.Bundle,
		Extensions:        append([]cepfile.ExtensionDecl(nil), decl.Extensions...),
		Products:          decl.NormalizedProducts(),
		Families:          families,
		ManifestTemplate:  decl.ManifestTemplate,
		DebugTemplate:     decl.DebugTemplate,
		OutputArchiveName: fmt.Sprintf("%s_%s.zxp", sanitizeName(name), uuid.NewString()[:8]),
	}
}

// Initialized reports whether Init has completed successfully.
func (b *Build) Initialized() bool {
	return b.initialized
}

// DebugApplied reports whether the debug identifier transform has run.
func (b *Build) DebugApplied() bool {
	return b.debugApplied
}

// Earliest returns the chronologically first family of the set.
func (f FamilySet) Earliest() string {
	return hostdb.EarliestFamily(f.Names)
}

// IsRange reports whether the set was declared in range mode.
func (f FamilySet) IsRange() bool {
	return f.Mode == FamilyRange
}

type (
	// HostRange is a resolved host version span. Closed records whether
	// the build declared an explicit upper bound (range mode).
	HostRange struct {
		hostdb.VersionRange
		Closed bool
	}
)

// VersionRangeFor resolves the host version span this build supports for
// one of its products, across every targeted family.
func (b *Build) VersionRangeFor(product string) (HostRange, error) {
	vr, err := hostdb.ResolveRange(product, b.Families.Names)
	if err != nil {
		return HostRange{}, err
	}
	return HostRange{VersionRange: vr, Closed: b.Families.IsRange()}, nil
}

// sanitizeName collapses whitespace runs to single underscores and lowers
// the result, producing a name safe for filenames.
var whitespaceRun = regexp.MustCompile(`\s+`)

func sanitizeName(s string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(strings.TrimSpace(s), "_"))
}
