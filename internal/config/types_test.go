// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme  ColorScheme
		want    bool
		wantErr bool
	}{
		{ColorSchemeAuto, true, false},
		{ColorSchemeDark, true, false},
		{ColorSchemeLight, true, false},
		{"", false, true},
		{"invalid", false, true},
		{"AUTO", false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.scheme.IsValid()
			if isValid != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("ColorScheme(%q).IsValid() returned no errors, want error", tt.scheme)
				}
				if !errors.Is(errs[0], ErrInvalidColorScheme) {
					t.Errorf("error should wrap ErrInvalidColorScheme, got: %v", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("ColorScheme(%q).IsValid() returned unexpected errors: %v", tt.scheme, errs)
			}
		})
	}
}

func TestSignerPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    SignerPath
		want    bool
		wantErr bool
	}{
		{"empty is valid", "", true, false},
		{"normal path", "/opt/adobe/ZXPSignCmd", true, false},
		{"whitespace-only rejected", "   ", false, true},
		{"tab-only rejected", "\t", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.path.IsValid()
			if isValid != tt.want {
				t.Errorf("SignerPath(%q).IsValid() = %v, want %v", tt.path, isValid, tt.want)
			}
			if tt.wantErr && !errors.Is(errs[0], ErrInvalidSignerPath) {
				t.Errorf("error should wrap ErrInvalidSignerPath, got: %v", errs[0])
			}
		})
	}
}

func TestDirPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    DirPath
		want    bool
		wantErr bool
	}{
		{"empty is valid", "", true, false},
		{"normal path", "./dist", true, false},
		{"whitespace-only rejected", "  ", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.path.IsValid()
			if isValid != tt.want {
				t.Errorf("DirPath(%q).IsValid() = %v, want %v", tt.path, isValid, tt.want)
			}
			if tt.wantErr && !errors.Is(errs[0], ErrInvalidDirPath) {
				t.Errorf("error should wrap ErrInvalidDirPath, got: %v", errs[0])
			}
		})
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	valid := DefaultConfig()
	if ok, errs := valid.IsValid(); !ok {
		t.Errorf("default config should be valid, got: %v", errs)
	}

	bad := DefaultConfig()
	bad.Signer.Path = "   "
	bad.UI.ColorScheme = "neon"
	ok, errs := bad.IsValid()
	if ok {
		t.Fatal("config with bad fields should be invalid")
	}
	if len(errs) != 1 {
		t.Fatalf("expected single aggregate error, got %d", len(errs))
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Errorf("aggregate should wrap ErrInvalidConfig, got: %v", errs[0])
	}

	var aggregate *InvalidConfigError
	if !errors.As(errs[0], &aggregate) {
		t.Fatalf("aggregate should be *InvalidConfigError, got: %T", errs[0])
	}
	if len(aggregate.FieldErrors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(aggregate.FieldErrors), aggregate.FieldErrors)
	}
}
