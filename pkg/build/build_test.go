// SPDX-License-Identifier: MPL-2.0

package build

import (
	"errors"
	"testing"

	"cepack-cli/pkg/cepfile"
	"cepack-cli/pkg/hostdb"
)

// testDecl returns a minimal valid declaration rooted at a temp source dir.
func testDecl(t *testing.T) *cepfile.BuildDecl {
	t.Helper()
	return &cepfile.BuildDecl{
		Source: t.TempDir(),
		Bundle: cepfile.BundleDecl{
			ID:      "com.example.tools",
			Version: "1.2.0",
			Name:    "Example Tools",
			Author:  "Example Inc",
		},
		Extensions: []cepfile.ExtensionDecl{
			{ID: "com.example.tools.panel", Name: "Tools Panel", Version: "1.2.0", Author: "Example Inc"},
		},
		Products: []string{"photoshop"},
		Families: []string{"cc2014", "cc2015"},
	}
}

func TestNewNormalizesFamilies(t *testing.T) {
	decl := testDecl(t)
	decl.Families = []string{"cc2015", "cc2014"}
	b := New("main", decl)

	if !b.Families.IsRange() {
		t.Error("list declaration should produce range mode")
	}
	if b.Families.Names[0] != "cc2014" || b.Families.Names[1] != "cc2015" {
		t.Errorf("families not epoch-sorted: %v", b.Families.Names)
	}

	decl.Families = "CC2015"
	b = New("main", decl)
	if b.Families.IsRange() {
		t.Error("single string declaration should produce minimum mode")
	}
	if b.Families.Names[0] != "cc2015" {
		t.Errorf("family = %q, want cc2015", b.Families.Names[0])
	}
}

func TestOutputArchiveNamesAreUnique(t *testing.T) {
	decl := testDecl(t)
	a, b := New("main", decl), New("main", decl)
	if a.OutputArchiveName == b.OutputArchiveName {
		t.Errorf("two builds received the same archive name %q", a.OutputArchiveName)
	}
}

func TestInit(t *testing.T) {
	b := New("main", testDecl(t))
	if err := b.Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	if !b.Initialized() {
		t.Error("Initialized() = false after successful Init")
	}
	if b.BaseName != "com.example.tools" {
		t.Errorf("BaseName = %q, want com.example.tools", b.BaseName)
	}

	// Repeated calls are no-ops.
	if err := b.Init(); err != nil {
		t.Errorf("second Init() returned error: %v", err)
	}
}

func TestInitBackfillsBundleIdentity(t *testing.T) {
	decl := testDecl(t)
	decl.Bundle = cepfile.BundleDecl{}
	b := New("main", decl)
	if err := b.Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	if b.Bundle.ID != "com.example.tools.panel" {
		t.Errorf("bundle id = %q, want back-fill from first extension", b.Bundle.ID)
	}
	if b.Bundle.Version != "1.2.0" || b.Bundle.Name != "Tools Panel" || b.Bundle.Author != "Example Inc" {
		t.Errorf("bundle identity not back-filled: %+v", b.Bundle)
	}
}

func TestInitRejectsInvalidDeclarations(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*cepfile.BuildDecl)
		wantField string
	}{
		{"id with space", func(d *cepfile.BuildDecl) { d.Bundle.ID = "com.example tools" }, "bundle.id"},
		{"non-numeric version", func(d *cepfile.BuildDecl) { d.Bundle.Version = "1.a" }, "bundle.version"},
		{"empty name", func(d *cepfile.BuildDecl) { d.Bundle.Name = ""; d.Extensions[0].Name = "" }, "bundle.name"},
		{"empty author", func(d *cepfile.BuildDecl) { d.Bundle.Author = ""; d.Extensions[0].Author = "" }, "bundle.author"},
		{"no extensions", func(d *cepfile.BuildDecl) { d.Extensions = nil }, "extensions"},
		{"no products", func(d *cepfile.BuildDecl) { d.Products = nil }, "products"},
		{"no families", func(d *cepfile.BuildDecl) { d.Families = nil }, "families"},
		{"missing source", func(d *cepfile.BuildDecl) { d.Source = "/nonexistent/path" }, "source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decl := testDecl(t)
			tt.mutate(decl)
			b := New("main", decl)

			err := b.Init()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Init() error = %v, want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.wantField)
			}
			if verr.Build != "main" {
				t.Errorf("ValidationError.Build = %q, want main", verr.Build)
			}
			if b.Initialized() {
				t.Error("build marked initialized after failed Init")
			}
		})
	}
}

func TestVersionSuffixesAccepted(t *testing.T) {
	for _, version := range []string{"1", "1.2", "1.2.0", "1.2.0-beta", "1.2.3.rc_1"} {
		decl := testDecl(t)
		decl.Bundle.Version = version
		if err := New("main", decl).Init(); err != nil {
			t.Errorf("version %q rejected: %v", version, err)
		}
	}
}

func TestApplyDebugTransform(t *testing.T) {
	b := New("main", testDecl(t))
	if err := b.ApplyDebugTransform(); err != nil {
		t.Fatalf("ApplyDebugTransform() returned error: %v", err)
	}

	if b.Bundle.ID != "com.example.tools.debug" {
		t.Errorf("bundle id = %q, want .debug suffix", b.Bundle.ID)
	}
	if b.Bundle.Name != "Example Tools (debug)" {
		t.Errorf("bundle name = %q, want (debug) suffix", b.Bundle.Name)
	}
	if b.Extensions[0].ID != "com.example.tools.panel.debug" {
		t.Errorf("extension id = %q, want .debug suffix", b.Extensions[0].ID)
	}

	// The suffixed id must still satisfy the identifier pattern.
	if !bundleIDPattern.MatchString(b.Bundle.ID) {
		t.Errorf("debug-suffixed id %q violates the bundle id pattern", b.Bundle.ID)
	}

	if err := b.ApplyDebugTransform(); !errors.Is(err, ErrDebugTransformApplied) {
		t.Errorf("second ApplyDebugTransform() error = %v, want ErrDebugTransformApplied", err)
	}
}

func TestApplyDebugTransformSkipsBlankNames(t *testing.T) {
	decl := testDecl(t)
	decl.Extensions[0].Name = "" // hidden extension stays hidden
	b := New("main", decl)
	if err := b.ApplyDebugTransform(); err != nil {
		t.Fatalf("ApplyDebugTransform() returned error: %v", err)
	}
	if b.Extensions[0].Name != "" {
		t.Errorf("blank extension name gained a suffix: %q", b.Extensions[0].Name)
	}
}

func TestVersionRangeFor(t *testing.T) {
	b := New("main", testDecl(t))
	hr, err := b.VersionRangeFor("photoshop")
	if err != nil {
		t.Fatalf("VersionRangeFor() returned error: %v", err)
	}
	if !hr.Closed {
		t.Error("range-mode build should produce a closed range")
	}
	if min := hostdb.FormatVersion(hr.Min); min != "15.0" {
		t.Errorf("min = %s, want 15.0", min)
	}
	if max := hostdb.FormatVersion(hr.Max); max != "16.9" {
		t.Errorf("max = %s, want 16.9", max)
	}

	decl := testDecl(t)
	decl.Families = "cc2015"
	open, err := New("main", decl).VersionRangeFor("photoshop")
	if err != nil {
		t.Fatalf("VersionRangeFor() returned error: %v", err)
	}
	if open.Closed {
		t.Error("minimum-mode build should produce an open range")
	}
	if min := hostdb.FormatVersion(open.Min); min != "16.0" {
		t.Errorf("min = %s, want 16.0", min)
	}
}
