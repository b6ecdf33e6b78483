// SPDX-License-Identifier: MPL-2.0

// Package install implements the install-and-launch workflow: copying a
// decorated build into a host's extensions directory, flipping the host's
// debug-mode flag, and restarting the host application. All of it is
// orchestration glue around the packaging core; the OS-specific pieces are
// deliberately best-effort.
package install

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"

	"cepack-cli/internal/pack"
	"cepack-cli/pkg/build"
	"cepack-cli/pkg/hostdb"
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Option configures a Workflow.
	Option func(*Workflow)

	// Workflow carries the OS binding and exec hook shared by the install,
	// debug-mode, and relaunch steps.
	Workflow struct {
		os          hostdb.OS
		execCommand ExecCommandFunc
		logger      *log.Logger
	}
)

// WithOS overrides the detected operating system.
func WithOS(o hostdb.OS) Option {
	return func(w *Workflow) { w.os = o }
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(w *Workflow) { w.execCommand = fn }
}

// WithLogger sets the progress logger.
func WithLogger(logger *log.Logger) Option {
	return func(w *Workflow) { w.logger = logger }
}

// New creates a Workflow bound to the current operating system.
func New(opts ...Option) *Workflow {
	w := &Workflow{
		os:          hostdb.OSMac,
		execCommand: exec.CommandContext,
	}
	if runtime.GOOS == "windows" {
		w.os = hostdb.OSWindows
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "install"})
	}
	return w
}

// Install copies the build's decorated source tree into the target's
// extensions directory, replacing any stale copy of the same bundle. In
// debug mode the bundle identifiers are rewritten first so the debug copy
// installs next to a release copy instead of over it. Returns the installed
// bundle directory.
func (w *Workflow) Install(ctx context.Context, b *build.Build, target build.InstallTarget, debug bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := b.Init(); err != nil {
		return "", err
	}
	if debug && !b.DebugApplied() {
		if err := b.ApplyDebugTransform(); err != nil {
			return "", err
		}
	}

	dest := filepath.Join(target.ExtensionsDir, b.Bundle.ID)
	w.logger.Info("installing", "bundle", b.Bundle.ID, "dest", dest)
	if err := pack.StageTree(b.SourceFolder, dest); err != nil {
		return "", fmt.Errorf("install %q: %w", b.Bundle.ID, err)
	}
	if err := pack.WriteDocuments(b, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// EnableDebugMode flips the host's unsigned-extension flag for the given
// release family. On Windows this writes the per-user registry value, on
// macOS the per-user preference domain. Hosts read the flag at startup, so
// callers normally follow with Relaunch.
func (w *Workflow) EnableDebugMode(ctx context.Context, family string) error {
	fam, ok := hostdb.FamilyOf(family)
	if !ok {
		return &hostdb.UnknownFamilyError{Family: family}
	}
	domain := serviceDomain(fam)

	var cmd *exec.Cmd
	switch w.os {
	case hostdb.OSWindows:
		cmd = w.execCommand(ctx, "reg", "add", `HKCU\Software\Adobe\`+domain,
			"/v", "PlayerDebugMode", "/t", "REG_SZ", "/d", "1", "/f")
	default:
		cmd = w.execCommand(ctx, "defaults", "write", "com.adobe."+domain,
			"PlayerDebugMode", "1")
	}

	w.logger.Debug("enabling debug mode", "family", family, "domain", domain)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("enable debug mode for %s: %w: %s", family, err, out)
	}
	return nil
}

// Relaunch stops the target host application if it is running and starts it
// again. The kill step is best-effort: a host that is not running is not an
// error.
func (w *Workflow) Relaunch(ctx context.Context, target build.InstallTarget) error {
	exe := filepath.Base(target.ExecutablePath)

	var kill *exec.Cmd
	switch w.os {
	case hostdb.OSWindows:
		kill = w.execCommand(ctx, "taskkill", "/F", "/IM", exe)
	default:
		kill = w.execCommand(ctx, "pkill", "-x", processName(exe))
	}
	if out, err := kill.CombinedOutput(); err != nil {
		w.logger.Debug("host was not running", "executable", exe, "output", string(out))
	}

	var start *exec.Cmd
	switch w.os {
	case hostdb.OSWindows:
		start = w.execCommand(ctx, target.ExecutablePath)
	default:
		start = w.execCommand(ctx, "open", target.ExecutablePath)
	}
	w.logger.Info("relaunching", "executable", target.ExecutablePath)
	if err := start.Start(); err != nil {
		return fmt.Errorf("relaunch %s: %w", target.ExecutablePath, err)
	}
	return nil
}

// serviceDomain maps a release family to the CSXS settings domain its hosts
// read the debug flag from. The major tracks the manifest runtime version.
func serviceDomain(f hostdb.Family) string {
	return fmt.Sprintf("CSXS.%d", f.Epoch+3)
}

// processName strips the macOS app-bundle extension, since pkill matches
// the process name rather than the bundle directory.
func processName(exe string) string {
	if ext := filepath.Ext(exe); ext == ".app" {
		return exe[:len(exe)-len(ext)]
	}
	return exe
}
