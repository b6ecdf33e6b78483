// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"cepack-cli/internal/install"
	"cepack-cli/internal/issue"
	"cepack-cli/pkg/build"
	"cepack-cli/pkg/hostdb"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	installProduct string
	installFamily  string
	installDebug   bool

	installCmd = &cobra.Command{
		Use:   "install <build>",
		Short: "Install a build into the host's extensions directory",
		Long: `Install a build into the host's extensions directory.

The build's source tree is decorated and copied into the shared extensions
directory of the selected product and family (the build's first product and
earliest family by default). With --debug the bundle is installed under a
debug-suffixed identifier into the per-user extensions directory, which
needs no elevation.`,
		Args: cobra.ExactArgs(1),
		RunE: runInstall,
	}

	launchCmd = &cobra.Command{
		Use:   "launch <build>",
		Short: "Install a build, enable host debug mode, and relaunch the host",
		Long: `Install a build, enable host debug mode, and relaunch the host.

Runs the full install-and-launch workflow: a debug install of the build,
flipping the host's unsigned-extension flag, and restarting the host
application so it picks both up.`,
		Args: cobra.ExactArgs(1),
		RunE: runLaunch,
	}
)

func init() {
	for _, c := range []*cobra.Command{installCmd, launchCmd} {
		c.Flags().StringVarP(&installProduct, "product", "p", "", "target product (default: build's first product)")
		c.Flags().StringVarP(&installFamily, "family", "F", "", "target family (default: build's earliest family)")
	}
	installCmd.Flags().BoolVarP(&installDebug, "debug", "d", false, "install as a debug copy")
}

func runInstall(cmd *cobra.Command, args []string) error {
	b, target, err := resolveInstall(args[0], installDebug)
	if err != nil {
		return err
	}

	w := install.New(install.WithLogger(installLogger()))
	dest, err := w.Install(cmd.Context(), b, target, installDebug)
	if err != nil {
		return err
	}

	fmt.Printf("%s Installed %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(dest))
	return nil
}

func runLaunch(cmd *cobra.Command, args []string) error {
	// Launch always means a debug session: a debug copy of the bundle plus
	// the host flag that lets unsigned extensions load.
	b, target, err := resolveInstall(args[0], true)
	if err != nil {
		return err
	}

	w := install.New(install.WithLogger(installLogger()))
	ctx := cmd.Context()

	dest, err := w.Install(ctx, b, target, true)
	if err != nil {
		return err
	}
	fmt.Printf("%s Installed %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(dest))

	family := installFamily
	if family == "" {
		family = b.Families.Earliest()
	}
	if err := w.EnableDebugMode(ctx, family); err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
	} else {
		fmt.Printf("%s Enabled debug mode for %s\n", SuccessStyle.Render("✓"), family)
	}

	if err := w.Relaunch(ctx, target); err != nil {
		return err
	}
	fmt.Printf("%s Relaunched %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(target.ExecutablePath))
	return nil
}

// resolveInstall loads the named build and resolves its install target,
// rendering the matching remediation card on the known failure classes.
func resolveInstall(name string, debug bool) (*build.Build, build.InstallTarget, error) {
	doc, err := loadCepfile()
	if err != nil {
		return nil, build.InstallTarget{}, err
	}
	builds, err := selectBuilds(doc, []string{name})
	if err != nil {
		return nil, build.InstallTarget{}, err
	}
	b := builds[0]

	target, err := b.ResolveInstallTarget(installProduct, installFamily, debug)
	if err != nil {
		var exeErr *build.ExecutableNotFoundError
		if errors.As(err, &exeErr) {
			renderIssue(issue.HostNotInstalledId)
		}
		var prodErr *build.ProductNotInBuildError
		if errors.As(err, &prodErr) {
			renderIssue(issue.UnknownProductId)
		}
		var famErr *hostdb.UnknownFamilyError
		if errors.As(err, &famErr) {
			renderIssue(issue.UnknownFamilyId)
		}
		return nil, build.InstallTarget{}, err
	}
	return b, target, nil
}

func installLogger() *log.Logger {
	logLevel := log.InfoLevel
	if verbose {
		logLevel = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "install", Level: logLevel})
}
