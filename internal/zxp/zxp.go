// SPDX-License-Identifier: MPL-2.0

// Package zxp wraps the external ZXPSignCmd tool that signs staged CEP
// bundles into .zxp archives. All cryptography is delegated to the tool;
// this package only builds argument lists and interprets exit status.
package zxp

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// BinaryName is the signer executable searched on PATH when no explicit
// path is configured.
const BinaryName = "ZXPSignCmd"

var (
	// ErrSignerNotFound is returned when the signer binary cannot be located.
	ErrSignerNotFound = errors.New("ZXPSignCmd not found")
	// ErrInvalidSignRequest is the sentinel error wrapped by InvalidSignRequestError.
	ErrInvalidSignRequest = errors.New("invalid sign request")
	// ErrInvalidCertRequest is the sentinel error wrapped by InvalidCertRequestError.
	ErrInvalidCertRequest = errors.New("invalid certificate request")
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// LookPathFunc is the function signature for resolving a binary on PATH.
	LookPathFunc func(file string) (string, error)

	// SignerOption configures a Signer.
	SignerOption func(*Signer)

	// Signer invokes ZXPSignCmd. The zero binary path means "resolve
	// BinaryName on PATH at construction time".
	Signer struct {
		binaryPath  string
		execCommand ExecCommandFunc
	}

	// SignRequest describes one signing invocation: the staged bundle
	// directory, the archive to produce, and the certificate identity.
	SignRequest struct {
		// Input is the staged bundle directory to package.
		Input string
		// Output is the .zxp archive path to produce.
		Output string
		// Cert is the PKCS#12 certificate file.
		Cert string
		// Password unlocks the certificate.
		Password string
		// TimestampURL optionally adds an RFC 3161 timestamp to the signature.
		TimestampURL string
	}

	// CertRequest describes a self-signed certificate generation run,
	// typically for development signing.
	CertRequest struct {
		Country       string
		StateOrLocale string
		Organization  string
		CommonName    string
		// Password protects the generated PKCS#12 file.
		Password string
		// Output is the .p12 file path to produce.
		Output string
	}

	// InvalidSignRequestError is returned when a SignRequest has missing fields.
	// It wraps ErrInvalidSignRequest for errors.Is() compatibility.
	InvalidSignRequestError struct {
		FieldErrors []error
	}

	// InvalidCertRequestError is returned when a CertRequest has missing fields.
	// It wraps ErrInvalidCertRequest for errors.Is() compatibility.
	InvalidCertRequestError struct {
		FieldErrors []error
	}

	// SigningError is returned when ZXPSignCmd exits nonzero. Output carries
	// the tool's combined stdout/stderr for diagnosis.
	SigningError struct {
		ExitCode int
		Output   string
	}

	// SignerNotFoundError is returned when the signer binary cannot be
	// located on PATH or at the configured path.
	SignerNotFoundError struct {
		Path string
	}
)

// Error implements the error interface for SigningError.
func (e *SigningError) Error() string {
	msg := fmt.Sprintf("ZXPSignCmd exited with code %d", e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

// Error implements the error interface for SignerNotFoundError.
func (e *SignerNotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("ZXPSignCmd not found at %q", e.Path)
	}
	return "ZXPSignCmd not found on PATH"
}

// Unwrap returns ErrSignerNotFound for errors.Is() compatibility.
func (e *SignerNotFoundError) Unwrap() error { return ErrSignerNotFound }

// Error implements the error interface for InvalidSignRequestError.
func (e *InvalidSignRequestError) Error() string {
	return fmt.Sprintf("invalid sign request: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidSignRequest for errors.Is() compatibility.
func (e *InvalidSignRequestError) Unwrap() error { return ErrInvalidSignRequest }

// Error implements the error interface for InvalidCertRequestError.
func (e *InvalidCertRequestError) Error() string {
	return fmt.Sprintf("invalid certificate request: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidCertRequest for errors.Is() compatibility.
func (e *InvalidCertRequestError) Unwrap() error { return ErrInvalidCertRequest }

// Validate returns an error if required SignRequest fields are missing.
func (r SignRequest) Validate() error {
	var errs []error
	for _, f := range []struct{ name, value string }{
		{"input", r.Input},
		{"output", r.Output},
		{"cert", r.Cert},
		{"password", r.Password},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("%s must be non-empty", f.name))
		}
	}
	if len(errs) > 0 {
		return &InvalidSignRequestError{FieldErrors: errs}
	}
	return nil
}

// Validate returns an error if required CertRequest fields are missing.
func (r CertRequest) Validate() error {
	var errs []error
	for _, f := range []struct{ name, value string }{
		{"country", r.Country},
		{"state", r.StateOrLocale},
		{"organization", r.Organization},
		{"common name", r.CommonName},
		{"password", r.Password},
		{"output", r.Output},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("%s must be non-empty", f.name))
		}
	}
	if len(errs) > 0 {
		return &InvalidCertRequestError{FieldErrors: errs}
	}
	return nil
}

// --- Option Functions ---

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) SignerOption {
	return func(s *Signer) {
		s.execCommand = fn
	}
}

// --- Constructor ---

// lookPath is a stub point for tests.
var lookPath LookPathFunc = exec.LookPath

// NewSigner creates a Signer. An empty binaryPath resolves BinaryName on
// PATH; failure to resolve returns SignerNotFoundError.
func NewSigner(binaryPath string, opts ...SignerOption) (*Signer, error) {
	if binaryPath == "" {
		resolved, err := lookPath(BinaryName)
		if err != nil {
			return nil, &SignerNotFoundError{}
		}
		binaryPath = resolved
	}

	s := &Signer{
		binaryPath:  binaryPath,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BinaryPath returns the resolved path to the signer binary.
func (s *Signer) BinaryPath() string {
	return s.binaryPath
}

// --- Argument Builders ---

// SignArgs constructs arguments for a signing invocation.
//
// Generated command: ZXPSignCmd -sign <input> <output> <cert> <password> [-tsa <url>]
func (s *Signer) SignArgs(req SignRequest) []string {
	args := []string{"-sign", req.Input, req.Output, req.Cert, req.Password}
	if req.TimestampURL != "" {
		args = append(args, "-tsa", req.TimestampURL)
	}
	return args
}

// SelfSignedCertArgs constructs arguments for certificate generation.
//
// Generated command: ZXPSignCmd -selfSignedCert <country> <state> <org> <cn> <password> <output>
func (s *Signer) SelfSignedCertArgs(req CertRequest) []string {
	return []string{
		"-selfSignedCert",
		req.Country,
		req.StateOrLocale,
		req.Organization,
		req.CommonName,
		req.Password,
		req.Output,
	}
}

// VerifyArgs constructs arguments for signature verification.
func (s *Signer) VerifyArgs(archive string) []string {
	return []string{"-verify", archive}
}

// --- Invocations ---

// Sign packages and signs a staged bundle directory into a .zxp archive.
// A nonzero signer exit becomes a SigningError carrying the tool's output.
func (s *Signer) Sign(ctx context.Context, req SignRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.run(ctx, s.SignArgs(req)...)
}

// SelfSignedCert generates a self-signed PKCS#12 certificate.
func (s *Signer) SelfSignedCert(ctx context.Context, req CertRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.run(ctx, s.SelfSignedCertArgs(req)...)
}

// Verify checks the signature of an existing archive.
func (s *Signer) Verify(ctx context.Context, archive string) error {
	if strings.TrimSpace(archive) == "" {
		return &InvalidSignRequestError{FieldErrors: []error{errors.New("archive must be non-empty")}}
	}
	return s.run(ctx, s.VerifyArgs(archive)...)
}

// run executes the signer and converts command failure into SigningError.
func (s *Signer) run(ctx context.Context, args ...string) error {
	cmd := s.execCommand(ctx, s.binaryPath, args...)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	if exitErr, ok := errors.AsType[*exec.ExitError](err); ok {
		return &SigningError{ExitCode: exitErr.ExitCode(), Output: string(out)}
	}
	return fmt.Errorf("command %s %v failed: %w", s.binaryPath, args, err)
}
