// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestProvider_Load_Defaults(t *testing.T) {
	p := NewProvider()

	cfg, err := p.Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("color scheme = %s, want auto", cfg.UI.ColorScheme)
	}
}

func TestProvider_Load_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte(`ui: { verbose: true }`), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProvider()
	cfg, err := p.Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !cfg.UI.Verbose {
		t.Error("verbose should be true from explicit file")
	}
}

func TestProvider_Load_MissingExplicitFile(t *testing.T) {
	p := NewProvider()
	_, err := p.Load(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "missing.cue"),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit file")
	}
}
