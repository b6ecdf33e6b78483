// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions selects the configuration source for one load. The zero value
// reads config.cue from the platform config directory and falls back to
// built-in defaults when no file exists there.
type LoadOptions struct {
	// ConfigFilePath loads exactly this file; a missing file is an error
	// rather than a fallback, since the user asked for it explicitly.
	ConfigFilePath string
	// ConfigDirPath overrides the platform config directory lookup.
	ConfigDirPath string
}

// Provider resolves the effective tool configuration: the ZXPSignCmd
// location, staging and output directories, and certificate defaults that
// commands merge under their flags.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider returns the file-backed Provider.
func NewProvider() Provider {
	return fileProvider{}
}

func (fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
