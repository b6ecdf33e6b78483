// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cepack-cli/internal/issue"
	"cepack-cli/internal/pack"
	"cepack-cli/internal/zxp"
	"cepack-cli/pkg/cepfile"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	packageBuilds      []string
	packageOutput      string
	packageStaging     string
	packageCert        string
	packagePassword    string
	packageTimestamp   string
	packageConcurrency int

	packageCmd = &cobra.Command{
		Use:   "package [build...]",
		Short: "Stage, render, and sign every declared build",
		Long: `Stage, render, and sign every declared build.

Each build's source tree is copied into the staging directory, the bundle
manifest and debug descriptor are rendered into the copy, and ZXPSignCmd
signs the tree into a .zxp archive. After all builds succeed, a single
aggregate .mxi descriptor covering the whole run is written next to the
archives.

Settings resolve in order: flags, the cepack.cue packaging block, the
per-user configuration.`,
		RunE: runPackage,
	}
)

func init() {
	packageCmd.Flags().StringSliceVarP(&packageBuilds, "build", "b", nil, "package only the named builds")
	packageCmd.Flags().StringVarP(&packageOutput, "output", "o", "", "directory for signed archives and the descriptor")
	packageCmd.Flags().StringVar(&packageStaging, "staging", "", "directory for per-build assembly")
	packageCmd.Flags().StringVar(&packageCert, "cert", "", "PKCS#12 certificate file")
	packageCmd.Flags().StringVar(&packagePassword, "password", "", "certificate password")
	packageCmd.Flags().StringVar(&packageTimestamp, "timestamp-url", "", "RFC 3161 timestamp server")
	packageCmd.Flags().IntVar(&packageConcurrency, "concurrency", 0, "max builds processed at once (0 = CPU count)")
}

func runPackage(cmd *cobra.Command, args []string) error {
	doc, err := loadCepfile()
	if err != nil {
		return err
	}

	names := packageBuilds
	if len(args) > 0 {
		names = append(names, args...)
	}
	builds, err := selectBuilds(doc, names)
	if err != nil {
		return err
	}

	opts, err := packagingOptions(doc)
	if err != nil {
		return err
	}
	opts.Concurrency = packageConcurrency

	result, err := pack.Package(cmd.Context(), builds, opts)
	if err != nil {
		return reportPackagingError(err)
	}

	fmt.Printf("%s Packaged %d build(s) into %s\n", SuccessStyle.Render("✓"), len(result.Archives), opts.OutputDir)
	for _, archive := range result.Archives {
		fmt.Printf("  %s\n", CmdStyle.Render(filepath.Base(archive)))
	}
	fmt.Printf("  %s\n", CmdStyle.Render(filepath.Base(result.DescriptorPath)))
	return nil
}

// packagingOptions merges flags, the declaration's packaging block, and the
// per-user config into pack options, and constructs the signer.
func packagingOptions(doc *cepfile.Cepfile) (pack.Options, error) {
	decl := doc.Packaging

	output := firstNonEmpty(packageOutput, decl.Output, loadedConfig.Packaging.Output.String(), "dist")
	staging := firstNonEmpty(packageStaging, decl.Staging, loadedConfig.Packaging.Staging.String())
	if staging == "" {
		staging = filepath.Join(os.TempDir(), "cepack-staging")
	}

	certFile := firstNonEmpty(packageCert, decl.Certificate.File, loadedConfig.Certificate.File.String())
	if certFile == "" {
		renderIssue(issue.CertificateMissingId)
		return pack.Options{}, errors.New("no signing certificate configured")
	}
	password := firstNonEmpty(packagePassword, decl.Certificate.Password)
	timestamp := firstNonEmpty(packageTimestamp, decl.Certificate.TimestampURL, loadedConfig.Signer.TimestampURL.String())

	signer, err := zxp.NewSigner(loadedConfig.Signer.Path.String())
	if err != nil {
		renderIssue(issue.SignerNotFoundId)
		return pack.Options{}, err
	}

	logLevel := log.InfoLevel
	if verbose {
		logLevel = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "pack", Level: logLevel})

	return pack.Options{
		StagingDir: staging,
		OutputDir:  output,
		Certificate: pack.Certificate{
			File:         certFile,
			Password:     password,
			TimestampURL: timestamp,
		},
		Signer: signer,
		Logger: logger,
	}, nil
}

// reportPackagingError renders the remediation card matching the failure
// class before handing the error back to cobra.
func reportPackagingError(err error) error {
	var sigErr *zxp.SigningError
	if errors.As(err, &sigErr) {
		renderIssue(issue.SigningFailedId)
		return &ExitError{Code: sigErr.ExitCode, Err: err}
	}
	var stageErr *pack.StagingError
	if errors.As(err, &stageErr) {
		renderIssue(issue.StagingFailedId)
	}
	return err
}

// firstNonEmpty returns the first value that is not blank.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
