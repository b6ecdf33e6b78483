// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/cepack/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/cepack/config.cue on macOS, %APPDATA%\cepack\config.cue
// on Windows). The package provides type-safe configuration access and covers signer
// location, packaging directories, certificate defaults, and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
