// SPDX-License-Identifier: MPL-2.0

package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"cepack-cli/pkg/build"
	"cepack-cli/pkg/cepfile"
	"cepack-cli/pkg/hostdb"
)

type (
	// mockCommandRecorder captures arguments passed to exec.CommandContext.
	// It uses the TestHelperProcess pattern to simulate command execution.
	mockCommandRecorder struct {
		Invocations []mockInvocation
		ExitCode    int
	}

	mockInvocation struct {
		Name string
		Args []string
	}
)

func (m *mockCommandRecorder) ContextCommandFunc(t *testing.T) ExecCommandFunc {
	t.Helper()
	return func(_ context.Context, name string, args ...string) *exec.Cmd {
		m.Invocations = append(m.Invocations, mockInvocation{Name: name, Args: args})

		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		//nolint:gosec // TestHelperProcess is a test-only pattern
		cmd := exec.Command(os.Args[0], cs...) //nolint:noctx // exec.Command used intentionally for test helper
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("GO_HELPER_EXIT_CODE=%d", m.ExitCode),
		}
		return cmd
	}
}

// TestHelperProcess is used by the mock to simulate command execution.
// This function should not be called directly - it is invoked by the mock.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	exitCode := 0
	if code := os.Getenv("GO_HELPER_EXIT_CODE"); code != "" {
		fmt.Sscanf(code, "%d", &exitCode)
	}
	os.Exit(exitCode)
}

func testBuild(t *testing.T) *build.Build {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	port := 8088
	return build.New("panel", &cepfile.BuildDecl{
		Source: dir,
		Bundle: cepfile.BundleDecl{
			ID:      "com.example.panel",
			Version: "1.0.0",
			Name:    "Example Panel",
			Author:  "Example Inc",
			Debug:   cepfile.DebugDecl{Port: &port},
		},
		Extensions: []cepfile.ExtensionDecl{
			{
				ID:       "com.example.panel.main",
				Name:     "Panel",
				Version:  "1.0.0",
				MainPath: "index.html",
				Type:     cepfile.TypePanel,
			},
		},
		Products: []string{"photoshop"},
		Families: "cc2015",
	})
}

func TestWorkflow_Install(t *testing.T) {
	t.Run("copies decorated tree into extensions dir", func(t *testing.T) {
		w := New(WithOS(hostdb.OSMac))
		b := testBuild(t)
		target := build.InstallTarget{ExtensionsDir: t.TempDir()}

		dest, err := w.Install(context.Background(), b, target, false)
		if err != nil {
			t.Fatalf("Install() error = %v", err)
		}
		if filepath.Base(dest) != "com.example.panel" {
			t.Errorf("installed into %q, want bundle id directory", dest)
		}
		for _, f := range []string{"index.html", filepath.Join("CSXS", "manifest.xml"), ".debug"} {
			if _, err := os.Stat(filepath.Join(dest, f)); err != nil {
				t.Errorf("installed tree missing %s: %v", f, err)
			}
		}
	})

	t.Run("debug install rewrites the bundle directory name", func(t *testing.T) {
		w := New(WithOS(hostdb.OSMac))
		b := testBuild(t)
		target := build.InstallTarget{ExtensionsDir: t.TempDir()}

		dest, err := w.Install(context.Background(), b, target, true)
		if err != nil {
			t.Fatalf("Install() error = %v", err)
		}
		if filepath.Base(dest) != "com.example.panel.debug" {
			t.Errorf("installed into %q, want debug-suffixed directory", dest)
		}
	})

	t.Run("replaces a stale copy", func(t *testing.T) {
		w := New(WithOS(hostdb.OSMac))
		b := testBuild(t)
		extDir := t.TempDir()
		stale := filepath.Join(extDir, "com.example.panel", "old.js")
		if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := w.Install(context.Background(), b, build.InstallTarget{ExtensionsDir: extDir}, false); err != nil {
			t.Fatalf("Install() error = %v", err)
		}
		if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
			t.Error("stale file survived reinstall")
		}
	})
}

func TestWorkflow_EnableDebugMode(t *testing.T) {
	tests := []struct {
		name     string
		os       hostdb.OS
		family   string
		wantCmd  string
		wantArgs []string
	}{
		{
			name:    "macOS writes the preference domain",
			os:      hostdb.OSMac,
			family:  "cc2015",
			wantCmd: "defaults",
			wantArgs: []string{
				"write", "com.adobe.CSXS.6", "PlayerDebugMode", "1",
			},
		},
		{
			name:    "windows writes the registry value",
			os:      hostdb.OSWindows,
			family:  "cc",
			wantCmd: "reg",
			wantArgs: []string{
				"add", `HKCU\Software\Adobe\CSXS.4`,
				"/v", "PlayerDebugMode", "/t", "REG_SZ", "/d", "1", "/f",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &mockCommandRecorder{}
			w := New(WithOS(tt.os), WithExecCommand(recorder.ContextCommandFunc(t)))

			if err := w.EnableDebugMode(context.Background(), tt.family); err != nil {
				t.Fatalf("EnableDebugMode() error = %v", err)
			}
			if len(recorder.Invocations) != 1 {
				t.Fatalf("expected 1 invocation, got %d", len(recorder.Invocations))
			}
			inv := recorder.Invocations[0]
			if inv.Name != tt.wantCmd {
				t.Errorf("invoked %q, want %q", inv.Name, tt.wantCmd)
			}
			if got, want := strings.Join(inv.Args, " "), strings.Join(tt.wantArgs, " "); got != want {
				t.Errorf("args = %q, want %q", got, want)
			}
		})
	}

	t.Run("unknown family is an error", func(t *testing.T) {
		w := New(WithOS(hostdb.OSMac), WithExecCommand((&mockCommandRecorder{}).ContextCommandFunc(t)))
		err := w.EnableDebugMode(context.Background(), "cs6")
		var famErr *hostdb.UnknownFamilyError
		if !errors.As(err, &famErr) {
			t.Fatalf("EnableDebugMode() error = %v, want *hostdb.UnknownFamilyError", err)
		}
	})
}

func TestWorkflow_Relaunch(t *testing.T) {
	t.Run("macOS kills by process name and opens the app", func(t *testing.T) {
		recorder := &mockCommandRecorder{}
		w := New(WithOS(hostdb.OSMac), WithExecCommand(recorder.ContextCommandFunc(t)))
		target := build.InstallTarget{
			ExecutablePath: "/Applications/Adobe Photoshop CC 2015/Adobe Photoshop CC 2015.app",
		}

		if err := w.Relaunch(context.Background(), target); err != nil {
			t.Fatalf("Relaunch() error = %v", err)
		}
		if len(recorder.Invocations) != 2 {
			t.Fatalf("expected kill + start, got %d invocations", len(recorder.Invocations))
		}
		kill := recorder.Invocations[0]
		if kill.Name != "pkill" || kill.Args[len(kill.Args)-1] != "Adobe Photoshop CC 2015" {
			t.Errorf("kill invocation = %q %v", kill.Name, kill.Args)
		}
		start := recorder.Invocations[1]
		if start.Name != "open" {
			t.Errorf("start invocation = %q, want open", start.Name)
		}
	})

	t.Run("windows kills by image name and starts the exe", func(t *testing.T) {
		recorder := &mockCommandRecorder{}
		w := New(WithOS(hostdb.OSWindows), WithExecCommand(recorder.ContextCommandFunc(t)))
		target := build.InstallTarget{
			ExecutablePath: `C:\Program Files\Adobe\Adobe Photoshop CC 2015\Photoshop.exe`,
		}

		if err := w.Relaunch(context.Background(), target); err != nil {
			t.Fatalf("Relaunch() error = %v", err)
		}
		if len(recorder.Invocations) != 2 {
			t.Fatalf("expected kill + start, got %d invocations", len(recorder.Invocations))
		}
		if recorder.Invocations[0].Name != "taskkill" {
			t.Errorf("kill invocation = %q, want taskkill", recorder.Invocations[0].Name)
		}
	})

	t.Run("host not running is not an error", func(t *testing.T) {
		// pkill exits nonzero when nothing matched; Start() of the helper
		// still succeeds, mirroring a host launch.
		recorder := &mockCommandRecorder{ExitCode: 1}
		w := New(WithOS(hostdb.OSMac), WithExecCommand(recorder.ContextCommandFunc(t)))
		target := build.InstallTarget{ExecutablePath: "/Applications/Adobe InDesign CC 2015/Adobe InDesign CC 2015.app"}

		if err := w.Relaunch(context.Background(), target); err != nil {
			t.Fatalf("Relaunch() error = %v", err)
		}
	})
}
