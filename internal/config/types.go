// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidSignerPath is returned when a SignerPath value is whitespace-only.
	ErrInvalidSignerPath = errors.New("invalid signer path")
	// ErrInvalidTimestampURL is returned when a TimestampURL value is whitespace-only.
	ErrInvalidTimestampURL = errors.New("invalid timestamp URL")
	// ErrInvalidDirPath is returned when a DirPath value is whitespace-only.
	ErrInvalidDirPath = errors.New("invalid directory path")
	// ErrInvalidCertificateFilePath is returned when a CertificateFilePath value is whitespace-only.
	ErrInvalidCertificateFilePath = errors.New("invalid certificate file path")
	// ErrInvalidSignerConfig is the sentinel error wrapped by InvalidSignerConfigError.
	ErrInvalidSignerConfig = errors.New("invalid signer config")
	// ErrInvalidPackagingConfig is the sentinel error wrapped by InvalidPackagingConfigError.
	ErrInvalidPackagingConfig = errors.New("invalid packaging config")
	// ErrInvalidCertificateConfig is the sentinel error wrapped by InvalidCertificateConfigError.
	ErrInvalidCertificateConfig = errors.New("invalid certificate config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// SignerPath represents a filesystem path to the ZXPSignCmd binary.
	// The zero value ("") is valid and means "find ZXPSignCmd on PATH".
	SignerPath string

	// InvalidSignerPathError is returned when a SignerPath value is
	// non-empty but whitespace-only.
	InvalidSignerPathError struct {
		Value SignerPath
	}

	// TimestampURL represents the RFC 3161 timestamp server URL passed to the
	// signer. The zero value ("") is valid and means "sign without timestamping".
	TimestampURL string

	// InvalidTimestampURLError is returned when a TimestampURL value is
	// non-empty but whitespace-only.
	InvalidTimestampURLError struct {
		Value TimestampURL
	}

	// DirPath represents a filesystem path to a working directory.
	// The zero value ("") is valid and means "use the built-in default".
	DirPath string

	// InvalidDirPathError is returned when a DirPath value is
	// non-empty but whitespace-only.
	InvalidDirPathError struct {
		Value DirPath
	}

	// CertificateFilePath represents a filesystem path to a signing certificate.
	// The zero value ("") is valid and means "certificate comes from cepack.cue".
	CertificateFilePath string

	// InvalidCertificateFilePathError is returned when a CertificateFilePath
	// value is non-empty but whitespace-only.
	InvalidCertificateFilePathError struct {
		Value CertificateFilePath
	}

	// InvalidSignerConfigError is returned when a SignerConfig has invalid fields.
	// It wraps ErrInvalidSignerConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidSignerConfigError struct {
		FieldErrors []error
	}

	// InvalidPackagingConfigError is returned when a PackagingConfig has invalid fields.
	// It wraps ErrInvalidPackagingConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidPackagingConfigError struct {
		FieldErrors []error
	}

	// InvalidCertificateConfigError is returned when a CertificateConfig has invalid fields.
	// It wraps ErrInvalidCertificateConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidCertificateConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Signer configures how the external ZXPSignCmd tool is located and invoked.
		Signer SignerConfig `json:"signer" mapstructure:"signer"`
		// Packaging configures the default packaging directories.
		Packaging PackagingConfig `json:"packaging" mapstructure:"packaging"`
		// Certificate sets fallback signing-certificate defaults. Values in a
		// project's cepack.cue take precedence.
		Certificate CertificateConfig `json:"certificate" mapstructure:"certificate"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// SignerConfig configures the external signing tool.
	SignerConfig struct {
		// Path overrides where to find the ZXPSignCmd binary.
		Path SignerPath `json:"path" mapstructure:"path"`
		// TimestampURL is the timestamp server passed to the signer.
		TimestampURL TimestampURL `json:"timestamp_url" mapstructure:"timestamp_url"`
	}

	// PackagingConfig configures default packaging directories.
	PackagingConfig struct {
		// Staging is where per-build bundle trees are assembled before signing.
		Staging DirPath `json:"staging" mapstructure:"staging"`
		// Output is where signed archives and the aggregate descriptor land.
		Output DirPath `json:"output" mapstructure:"output"`
	}

	// CertificateConfig sets fallback signing-certificate defaults.
	CertificateConfig struct {
		// File is the certificate file used when a project declares none.
		File CertificateFilePath `json:"file" mapstructure:"file"`
		// Owner is the default identity for self-signed certificates.
		Owner string `json:"owner" mapstructure:"owner"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// IsValid returns whether the SignerConfig has valid fields.
// It delegates to Path.IsValid() and TimestampURL.IsValid().
func (c SignerConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Path.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.TimestampURL.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidSignerConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSignerConfigError.
func (e *InvalidSignerConfigError) Error() string {
	return fmt.Sprintf("invalid signer config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidSignerConfig for errors.Is() compatibility.
func (e *InvalidSignerConfigError) Unwrap() error { return ErrInvalidSignerConfig }

// IsValid returns whether the PackagingConfig has valid fields.
// It delegates to Staging.IsValid() and Output.IsValid().
func (c PackagingConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Staging.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Output.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidPackagingConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPackagingConfigError.
func (e *InvalidPackagingConfigError) Error() string {
	return fmt.Sprintf("invalid packaging config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidPackagingConfig for errors.Is() compatibility.
func (e *InvalidPackagingConfigError) Unwrap() error { return ErrInvalidPackagingConfig }

// IsValid returns whether the CertificateConfig has valid fields.
// It delegates to File.IsValid(); Owner is free-form and needs no validation.
func (c CertificateConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.File.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidCertificateConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCertificateConfigError.
func (e *InvalidCertificateConfigError) Error() string {
	return fmt.Sprintf("invalid certificate config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidCertificateConfig for errors.Is() compatibility.
func (e *InvalidCertificateConfigError) Unwrap() error { return ErrInvalidCertificateConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Signer.IsValid(), Packaging.IsValid(), Certificate.IsValid(),
// and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Signer.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Packaging.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Certificate.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the SignerPath.
func (p SignerPath) String() string { return string(p) }

// IsValid returns whether the SignerPath is valid.
// The zero value ("") is valid (means "find ZXPSignCmd on PATH").
// Non-zero values must not be whitespace-only.
func (p SignerPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidSignerPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSignerPathError.
func (e *InvalidSignerPathError) Error() string {
	return fmt.Sprintf("invalid signer path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidSignerPath for errors.Is() compatibility.
func (e *InvalidSignerPathError) Unwrap() error { return ErrInvalidSignerPath }

// String returns the string representation of the TimestampURL.
func (u TimestampURL) String() string { return string(u) }

// IsValid returns whether the TimestampURL is valid.
// The zero value ("") is valid (means "sign without timestamping").
// Non-zero values must not be whitespace-only.
func (u TimestampURL) IsValid() (bool, []error) {
	if u == "" {
		return true, nil
	}
	if strings.TrimSpace(string(u)) == "" {
		return false, []error{&InvalidTimestampURLError{Value: u}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTimestampURLError.
func (e *InvalidTimestampURLError) Error() string {
	return fmt.Sprintf("invalid timestamp URL %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidTimestampURL for errors.Is() compatibility.
func (e *InvalidTimestampURLError) Unwrap() error { return ErrInvalidTimestampURL }

// String returns the string representation of the DirPath.
func (p DirPath) String() string { return string(p) }

// IsValid returns whether the DirPath is valid.
// The zero value ("") is valid (means "use the built-in default").
// Non-zero values must not be whitespace-only.
func (p DirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDirPathError.
func (e *InvalidDirPathError) Error() string {
	return fmt.Sprintf("invalid directory path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidDirPath for errors.Is() compatibility.
func (e *InvalidDirPathError) Unwrap() error { return ErrInvalidDirPath }

// String returns the string representation of the CertificateFilePath.
func (p CertificateFilePath) String() string { return string(p) }

// IsValid returns whether the CertificateFilePath is valid.
// The zero value ("") is valid (means "certificate comes from cepack.cue").
// Non-zero values must not be whitespace-only.
func (p CertificateFilePath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidCertificateFilePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCertificateFilePathError.
func (e *InvalidCertificateFilePathError) Error() string {
	return fmt.Sprintf("invalid certificate file path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidCertificateFilePath for errors.Is() compatibility.
func (e *InvalidCertificateFilePathError) Unwrap() error { return ErrInvalidCertificateFilePath }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Signer: SignerConfig{
			Path:         "", // Will search PATH if empty
			TimestampURL: "",
		},
		Packaging: PackagingConfig{
			Staging: "", // Will use a temp dir if empty
			Output:  "", // Will use ./dist if empty
		},
		Certificate: CertificateConfig{
			File:  "",
			Owner: "",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
