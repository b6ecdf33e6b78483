// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for cepack.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cepack-cli/internal/config"
	"cepack-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// declFile allows specifying a custom cepack.cue path
	declFile string

	// loadedConfig holds the configuration loaded by initRootConfig.
	// Commands read it instead of re-loading.
	loadedConfig *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "cepack",
		Short: "Package and install CEP extension bundles",
		Long: TitleStyle.Render("cepack") + SubtitleStyle.Render(" - CEP extension bundle packager") + `

cepack turns declarative build descriptions into signed, installable
extension bundles for Adobe Creative Cloud hosts. It validates the
declaration, renders the bundle manifest and debug descriptor, stages
the extension sources, and hands the tree to ZXPSignCmd for signing.

Builds are declared in a 'cepack.cue' file using CUE format.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a cepack.cue in your project directory
  2. Declare your builds using CUE syntax
  3. Run: cepack package

` + SubtitleStyle.Render("Examples:") + `
  cepack package            Sign every declared build into archives
  cepack decorate --debug   Write debug manifests into the source tree
  cepack install main       Install a build into the host's extensions dir
  cepack launch main        Install, enable debug mode, and relaunch the host
  cepack cert               Generate a self-signed signing certificate
  cepack init               Create a new cepack.cue
  cepack config show        Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the per-user cepack/config.cue)")
	rootCmd.PersistentFlags().StringVarP(&declFile, "file", "f", "", "build declaration file (default is ./cepack.cue)")

	// Add subcommands
	rootCmd.AddCommand(packageCmd)
	rootCmd.AddCommand(decorateCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(certCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	cfg, err := config.NewProvider().Load(context.Background(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}
	loadedConfig = cfg

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
