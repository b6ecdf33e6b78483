// SPDX-License-Identifier: MPL-2.0

package build

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"cepack-cli/pkg/hostdb"
)

type (
	// InstallPaths carries the OS-specific filesystem roots install target
	// resolution needs. DefaultInstallPaths fills it for the current
	// machine; tests construct it directly.
	InstallPaths struct {
		OS hostdb.OS
		// ApplicationsRoot is where host applications are installed.
		ApplicationsRoot string
		// SharedExtensionsRoot is the system-wide Adobe data directory
		// holding the shared extensions folders.
		SharedExtensionsRoot string
		// UserExtensionsRoot is the per-user equivalent, used for debug
		// installs so they never require elevation.
		UserExtensionsRoot string
		// Win64 reports a 64-bit Windows installation.
		Win64 bool
	}

	// InstallTarget is the resolved destination for an install-and-launch
	// operation.
	InstallTarget struct {
		Record         hostdb.ProductRecord
		ExtensionsDir  string
		ExecutablePath string
	}

	// ProductNotInBuildError reports an install request for a product or
	// family the build does not target.
	ProductNotInBuildError struct {
		Build   string
		Product string
		Family  string
	}

	// ExecutableNotFoundError reports a host executable missing from the
	// computed install location.
	ExecutableNotFoundError struct {
		Path string
	}
)

func (e *ProductNotInBuildError) Error() string {
	return fmt.Sprintf("build %q does not target product %q in family %q", e.Build, e.Product, e.Family)
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("host executable not found at %s", e.Path)
}

// statPath is stubbed in tests to fake installed hosts.
var statPath = os.Stat

// DefaultInstallPaths returns the conventional roots for the current OS.
func DefaultInstallPaths() InstallPaths {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Warn("failed to resolve home directory for user extensions root", "error", err)
	}
	switch runtime.GOOS {
	case "windows":
		return InstallPaths{
			OS:                   hostdb.OSWindows,
			ApplicationsRoot:     `C:\Program Files\Adobe`,
			SharedExtensionsRoot: `C:\Program Files (x86)\Common Files\Adobe`,
			UserExtensionsRoot:   filepath.Join(os.Getenv("APPDATA"), "Adobe"),
			Win64:                os.Getenv("ProgramFiles(x86)") != "",
		}
	default: // darwin; other platforms have no CEP hosts but resolve anyway
		return InstallPaths{
			OS:                   hostdb.OSMac,
			ApplicationsRoot:     "/Applications",
			SharedExtensionsRoot: "/Library/Application Support/Adobe",
			UserExtensionsRoot:   filepath.Join(home, "Library", "Application Support", "Adobe"),
		}
	}
}

// ResolveInstallTarget resolves where a build should be installed and which
// host executable to relaunch afterwards, using the current machine's roots.
// Empty product or family select the build's defaults (first product,
// earliest family).
func (b *Build) ResolveInstallTarget(product, family string, debug bool) (InstallTarget, error) {
	return b.ResolveInstallTargetIn(DefaultInstallPaths(), product, family, debug)
}

// ResolveInstallTargetIn is ResolveInstallTarget with explicit roots.
func (b *Build) ResolveInstallTargetIn(paths InstallPaths, product, family string, debug bool) (InstallTarget, error) {
	if err := b.Init(); err != nil {
		return InstallTarget{}, err
	}

	if product == "" {
		product = b.Products[0]
	}
	if family == "" {
		family = b.Families.Earliest()
	}

	if !b.targetsProduct(product) || !b.targetsFamily(family) {
		return InstallTarget{}, &ProductNotInBuildError{Build: b.Name, Product: product, Family: family}
	}

	rec, err := hostdb.Lookup(product, family)
	if err != nil {
		return InstallTarget{}, err
	}

	fam, _ := hostdb.FamilyOf(family)
	extRoot := paths.SharedExtensionsRoot
	if debug {
		extRoot = paths.UserExtensionsRoot
	}
	extensionsDir := filepath.Join(extRoot, serviceDirName(fam), "extensions")

	exePath := filepath.Join(paths.ApplicationsRoot, installFolder(rec, fam, paths), rec.ExecutableNames[paths.OS])
	if _, err := statPath(exePath); err != nil {
		return InstallTarget{}, &ExecutableNotFoundError{Path: exePath}
	}

	return InstallTarget{Record: rec, ExtensionsDir: extensionsDir, ExecutablePath: exePath}, nil
}

func (b *Build) targetsProduct(product string) bool {
	for _, p := range b.Products {
		if p == product {
			return true
		}
	}
	return false
}

// targetsFamily accepts exact members in range mode; in minimum mode it
// accepts the declared family and every later generation.
func (b *Build) targetsFamily(family string) bool {
	if b.Families.IsRange() {
		for _, f := range b.Families.Names {
			if f == family {
				return true
			}
		}
		return false
	}

	min, ok := hostdb.FamilyOf(b.Families.Names[0])
	if !ok {
		return false
	}
	fam, ok := hostdb.FamilyOf(family)
	if !ok {
		return false
	}
	return fam.Epoch >= min.Epoch
}

// serviceDirName returns the per-generation shared directory name. The
// first CC generation shipped its own service manager; everything after it
// uses the common CEP directory.
func serviceDirName(f hostdb.Family) string {
	if f.Epoch <= 1 {
		return "CEPServiceManager4"
	}
	return "CEP"
}

// installFolder computes the host application's install folder name. The
// first CC generation shipped separate 64-bit folders on Windows.
func installFolder(rec hostdb.ProductRecord, fam hostdb.Family, paths InstallPaths) string {
	folder := rec.InstallFolderOverride
	if folder == "" {
		folder = fmt.Sprintf("Adobe %s %s", rec.DisplayName, rec.FamilyDisplayName)
	}
	if fam.Epoch <= 1 && paths.OS == hostdb.OSWindows && paths.Win64 && rec.Supports64Bit {
		folder += " (64 Bit)"
	}
	return folder
}
