// SPDX-License-Identifier: MPL-2.0

package pack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cepack-cli/internal/zxp"
	"cepack-cli/pkg/build"
	"cepack-cli/pkg/cepfile"
	"cepack-cli/pkg/hostdb"
	"cepack-cli/pkg/manifest"
)

// signerFunc adapts a function to the ArchiveSigner interface.
type signerFunc func(ctx context.Context, req zxp.SignRequest) error

func (f signerFunc) Sign(ctx context.Context, req zxp.SignRequest) error { return f(ctx, req) }

type fakeSigner struct {
	mu       sync.Mutex
	requests []zxp.SignRequest
	failFor  string // input substring that triggers a signing failure
}

func (f *fakeSigner) Sign(_ context.Context, req zxp.SignRequest) error {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.failFor != "" && strings.Contains(req.Input, f.failFor) {
		return &zxp.SigningError{ExitCode: 1, Output: "signing failed"}
	}
	// Signing produces the archive; the fake just touches it.
	return os.WriteFile(req.Output, []byte("zxp"), 0o644)
}

func testSourceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "js"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"index.html", filepath.Join("js", "main.js")} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("content of "+f), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func testBuild(t *testing.T, name, bundleID string, port *int) *build.Build {
	t.Helper()
	return build.New(name, &cepfile.BuildDecl{
		Source: testSourceDir(t),
		Bundle: cepfile.BundleDecl{
			ID:      bundleID,
			Version: "1.0.0",
			Name:    "Example Tools",
			Author:  "Example Inc",
			Debug:   cepfile.DebugDecl{Port: port},
		},
		Extensions: []cepfile.ExtensionDecl{
			{
				ID:       bundleID + ".panel",
				Name:     "Tools Panel",
				Version:  "1.0.0",
				MainPath: "index.html",
				Type:     cepfile.TypePanel,
			},
		},
		Products: []string{"photoshop"},
		Families: "cc2015",
	})
}

func testOptions(t *testing.T, signer ArchiveSigner) Options {
	t.Helper()
	return Options{
		StagingDir:  filepath.Join(t.TempDir(), "staging"),
		OutputDir:   filepath.Join(t.TempDir(), "out"),
		Certificate: Certificate{File: "/tmp/cert.p12", Password: "pw"},
		Signer:      signer,
	}
}

func TestPackage(t *testing.T) {
	t.Run("stages, decorates, signs and aggregates", func(t *testing.T) {
		port := 8088
		builds := []*build.Build{
			testBuild(t, "panel", "com.example.panel", &port),
			testBuild(t, "settings", "com.example.settings", nil),
		}
		signer := &fakeSigner{}
		opts := testOptions(t, signer)

		result, err := Package(context.Background(), builds, opts)
		if err != nil {
			t.Fatalf("Package() error = %v", err)
		}

		if len(result.Archives) != 2 {
			t.Fatalf("Archives = %d, want 2", len(result.Archives))
		}
		for _, archive := range result.Archives {
			if _, err := os.Stat(archive); err != nil {
				t.Errorf("archive %s not collected: %v", archive, err)
			}
		}

		// The descriptor aggregates both builds into the output directory.
		data, err := os.ReadFile(result.DescriptorPath)
		if err != nil {
			t.Fatalf("descriptor not written: %v", err)
		}
		for _, b := range builds {
			if !strings.Contains(string(data), b.OutputArchiveName) {
				t.Errorf("descriptor missing archive %q", b.OutputArchiveName)
			}
		}

		// Each signing request pointed at that build's staging tree.
		if len(signer.requests) != 2 {
			t.Fatalf("signer invoked %d times, want 2", len(signer.requests))
		}
		for _, req := range signer.requests {
			if !strings.HasPrefix(req.Input, opts.StagingDir) {
				t.Errorf("signed %q, want a path under %q", req.Input, opts.StagingDir)
			}
			if req.Cert != "/tmp/cert.p12" || req.Password != "pw" {
				t.Errorf("signing request lost certificate settings: %+v", req)
			}
		}

		// Successful builds clean their staging trees up.
		entries, err := os.ReadDir(opts.StagingDir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("staging dir not cleaned, %d entries left", len(entries))
		}
	})

	t.Run("writes manifest and debug descriptor into the staged tree", func(t *testing.T) {
		port := 8100
		b := testBuild(t, "panel", "com.example.panel", &port)

		// The staging tree is removed after signing, so inspect it from
		// inside the signer.
		signer := signerFunc(func(_ context.Context, req zxp.SignRequest) error {
			for _, f := range []string{
				filepath.Join("CSXS", "manifest.xml"),
				".debug",
				"index.html",
			} {
				if _, err := os.Stat(filepath.Join(req.Input, f)); err != nil {
					t.Errorf("staged tree missing %s: %v", f, err)
				}
			}
			return os.WriteFile(req.Output, []byte("zxp"), 0o644)
		})

		if _, err := Package(context.Background(), []*build.Build{b}, testOptions(t, signer)); err != nil {
			t.Fatalf("Package() error = %v", err)
		}
	})

	t.Run("builds sharing a bundle id stage into distinct trees", func(t *testing.T) {
		port := 8088
		builds := []*build.Build{
			testBuild(t, "panel-cc2014", "com.example.panel", &port),
			testBuild(t, "panel-cc2015", "com.example.panel", nil),
		}
		signer := &fakeSigner{}

		result, err := Package(context.Background(), builds, testOptions(t, signer))
		if err != nil {
			t.Fatalf("Package() error = %v", err)
		}

		if len(signer.requests) != 2 {
			t.Fatalf("signer invoked %d times, want 2", len(signer.requests))
		}
		if signer.requests[0].Input == signer.requests[1].Input {
			t.Errorf("both builds staged into %q", signer.requests[0].Input)
		}
		for _, archive := range result.Archives {
			if _, err := os.Stat(archive); err != nil {
				t.Errorf("archive %s not collected: %v", archive, err)
			}
		}
	})

	t.Run("signing failure aborts the run", func(t *testing.T) {
		port := 8088
		builds := []*build.Build{
			testBuild(t, "panel", "com.example.panel", &port),
			testBuild(t, "settings", "com.example.settings", nil),
		}
		signer := &fakeSigner{failFor: "settings"}

		_, err := Package(context.Background(), builds, testOptions(t, signer))
		var sigErr *zxp.SigningError
		if !errors.As(err, &sigErr) {
			t.Fatalf("Package() error = %v, want *zxp.SigningError", err)
		}
	})

	t.Run("invalid build aborts before signing", func(t *testing.T) {
		b := testBuild(t, "broken", "com.example.broken", nil)
		b.Products = nil
		signer := &fakeSigner{}

		_, err := Package(context.Background(), []*build.Build{b}, testOptions(t, signer))
		var valErr *build.ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("Package() error = %v, want *build.ValidationError", err)
		}
		if len(signer.requests) != 0 {
			t.Errorf("signer invoked %d times for an invalid build", len(signer.requests))
		}
	})

	t.Run("rejects empty run", func(t *testing.T) {
		_, err := Package(context.Background(), nil, testOptions(t, &fakeSigner{}))
		if !errors.Is(err, ErrNoBuilds) {
			t.Fatalf("Package() error = %v, want ErrNoBuilds", err)
		}
	})
}

func TestDecorate(t *testing.T) {
	t.Run("writes documents into the source tree", func(t *testing.T) {
		port := 8088
		b := testBuild(t, "panel", "com.example.panel", &port)

		if err := Decorate(context.Background(), []*build.Build{b}, DecorateOptions{}); err != nil {
			t.Fatalf("Decorate() error = %v", err)
		}

		if _, err := os.Stat(filepath.Join(b.SourceFolder, "CSXS", "manifest.xml")); err != nil {
			t.Errorf("manifest not written: %v", err)
		}
		if _, err := os.Stat(filepath.Join(b.SourceFolder, ".debug")); err != nil {
			t.Errorf("debug descriptor not written: %v", err)
		}
	})

	t.Run("debug mode rewrites identifiers", func(t *testing.T) {
		port := 8088
		b := testBuild(t, "panel", "com.example.panel", &port)

		if err := Decorate(context.Background(), []*build.Build{b}, DecorateOptions{Debug: true}); err != nil {
			t.Fatalf("Decorate() error = %v", err)
		}

		data, err := os.ReadFile(filepath.Join(b.SourceFolder, "CSXS", "manifest.xml"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "com.example.panel.debug") {
			t.Errorf("debug manifest kept release bundle id\n%s", data)
		}
	})

	t.Run("debug mode requires a debug port", func(t *testing.T) {
		b := testBuild(t, "panel", "com.example.panel", nil)

		err := Decorate(context.Background(), []*build.Build{b}, DecorateOptions{Debug: true})
		var portErr *manifest.DebugPortError
		if !errors.As(err, &portErr) {
			t.Fatalf("Decorate() error = %v, want *manifest.DebugPortError", err)
		}
	})

	t.Run("unknown family surfaces as a typed error", func(t *testing.T) {
		port := 8088
		b := testBuild(t, "panel", "com.example.panel", &port)
		b.Families.Names = []string{"cs6"}

		err := Decorate(context.Background(), []*build.Build{b}, DecorateOptions{})
		var famErr *hostdb.UnknownFamilyError
		if !errors.As(err, &famErr) {
			t.Fatalf("Decorate() error = %v, want *hostdb.UnknownFamilyError", err)
		}
	})

	t.Run("failed builds are skipped, not fatal", func(t *testing.T) {
		port := 8088
		good := testBuild(t, "good", "com.example.good", &port)
		bad := testBuild(t, "bad", "com.example.bad", &port)
		bad.Products = nil

		err := Decorate(context.Background(), []*build.Build{bad, good}, DecorateOptions{})
		if err == nil {
			t.Fatal("Decorate() expected aggregated error")
		}
		// The good build was still decorated.
		if _, statErr := os.Stat(filepath.Join(good.SourceFolder, "CSXS", "manifest.xml")); statErr != nil {
			t.Errorf("good build not decorated: %v", statErr)
		}
	})
}

func TestStageTree(t *testing.T) {
	src := testSourceDir(t)
	dst := filepath.Join(t.TempDir(), "stage")

	// A stale file in the destination must not survive restaging.
	if err := os.MkdirAll(dst, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dst, "stale.txt"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := StageTree(src, dst); err != nil {
		t.Fatalf("StageTree() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "js", "main.js")); err != nil {
		t.Errorf("nested file not copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "stale.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Error("stale file survived restaging")
	}
}
