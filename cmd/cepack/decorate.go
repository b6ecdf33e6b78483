// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"cepack-cli/internal/issue"
	"cepack-cli/internal/pack"
	"cepack-cli/pkg/hostdb"
	"cepack-cli/pkg/manifest"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	decorateDebug  bool
	decorateBuilds []string

	decorateCmd = &cobra.Command{
		Use:   "decorate [build...]",
		Short: "Render manifests into the source tree without packaging",
		Long: `Render manifests into the source tree without packaging.

Writes each build's CSXS/manifest.xml (and .debug descriptor, when the
build declares a debug port) directly into its source folder. With --debug
the bundle and extension identifiers get a debug suffix, so the decorated
tree can be installed next to a release copy.

Unlike 'cepack package', a failing build is reported and skipped; the
remaining builds are still decorated.`,
		RunE: runDecorate,
	}
)

func init() {
	decorateCmd.Flags().BoolVarP(&decorateDebug, "debug", "d", false, "rewrite identifiers for a debug install")
	decorateCmd.Flags().StringSliceVarP(&decorateBuilds, "build", "b", nil, "decorate only the named builds")
}

func runDecorate(cmd *cobra.Command, args []string) error {
	doc, err := loadCepfile()
	if err != nil {
		return err
	}

	names := decorateBuilds
	if len(args) > 0 {
		names = append(names, args...)
	}
	builds, err := selectBuilds(doc, names)
	if err != nil {
		return err
	}

	logLevel := log.InfoLevel
	if verbose {
		logLevel = log.DebugLevel
	}
	err = pack.Decorate(cmd.Context(), builds, pack.DecorateOptions{
		Debug:  decorateDebug,
		Logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "decorate", Level: logLevel}),
	})
	if err != nil {
		var portErr *manifest.DebugPortError
		if errors.As(err, &portErr) {
			renderIssue(issue.DebugPortInvalidId)
		}
		var famErr *hostdb.UnknownFamilyError
		if errors.As(err, &famErr) {
			renderIssue(issue.UnknownFamilyId)
		}
		return err
	}

	fmt.Printf("%s Decorated %d build(s)\n", SuccessStyle.Render("✓"), len(builds))
	return nil
}
