// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"cepack-cli/internal/issue"
	"cepack-cli/internal/zxp"

	"github.com/spf13/cobra"
)

var (
	certCountry  string
	certState    string
	certOrg      string
	certName     string
	certPassword string
	certOutput   string

	certCmd = &cobra.Command{
		Use:   "cert",
		Short: "Generate a self-signed signing certificate",
		Long: `Generate a self-signed signing certificate.

Invokes ZXPSignCmd to create a PKCS#12 certificate suitable for signing
development builds. Hosts reject self-signed archives unless debug mode is
enabled; distribute production builds with a CA-issued certificate instead.

The common name defaults to the configured certificate owner.`,
		RunE: runCert,
	}
)

func init() {
	certCmd.Flags().StringVar(&certCountry, "country", "US", "certificate country code")
	certCmd.Flags().StringVar(&certState, "state", "CA", "certificate state or locale")
	certCmd.Flags().StringVar(&certOrg, "org", "", "certificate organization")
	certCmd.Flags().StringVar(&certName, "cn", "", "certificate common name (default: configured owner)")
	certCmd.Flags().StringVar(&certPassword, "password", "", "password protecting the certificate")
	certCmd.Flags().StringVarP(&certOutput, "output", "o", "cert.p12", "certificate file to create")
}

func runCert(cmd *cobra.Command, args []string) error {
	signer, err := zxp.NewSigner(loadedConfig.Signer.Path.String())
	if err != nil {
		renderIssue(issue.SignerNotFoundId)
		return err
	}

	commonName := firstNonEmpty(certName, loadedConfig.Certificate.Owner)
	org := firstNonEmpty(certOrg, loadedConfig.Certificate.Owner)

	req := zxp.CertRequest{
		Country:       certCountry,
		StateOrLocale: certState,
		Organization:  org,
		CommonName:    commonName,
		Password:      certPassword,
		Output:        certOutput,
	}
	if err := signer.SelfSignedCert(cmd.Context(), req); err != nil {
		var sigErr *zxp.SigningError
		if errors.As(err, &sigErr) {
			renderIssue(issue.SigningFailedId)
			return &ExitError{Code: sigErr.ExitCode, Err: err}
		}
		return err
	}

	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(certOutput))
	fmt.Println(SubtitleStyle.Render("Keep the password; packaging needs it to unlock the certificate."))
	return nil
}
