// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"cepack-cli/internal/config"
	"cepack-cli/internal/issue"

	"github.com/spf13/cobra"
)

// configCmd is the `cepack config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cepack configuration",
	Long: `Manage cepack configuration.

Configuration is stored in:
  - Linux: ~/.config/cepack/config.cue
  - macOS: ~/Library/Application Support/cepack/config.cue
  - Windows: %APPDATA%\cepack\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context())
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), args[0], args[1])
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile})
			if err != nil {
				return err
			}

			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig(ctx context.Context) error {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(headerStyle.Render("Current Configuration"))
	fmt.Println()

	cfgDir, dirErr := config.ConfigDir()
	if dirErr == nil && fileExistsCheck(cfgDir+"/config.cue") {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgDir+"/config.cue")
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("signer"))
	fmt.Printf("  path: %s\n", valueStyle.Render(orUnset(cfg.Signer.Path.String())))
	fmt.Printf("  timestamp_url: %s\n", valueStyle.Render(orUnset(cfg.Signer.TimestampURL.String())))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("packaging"))
	fmt.Printf("  staging: %s\n", valueStyle.Render(orUnset(cfg.Packaging.Staging.String())))
	fmt.Printf("  output: %s\n", valueStyle.Render(orUnset(cfg.Packaging.Output.String())))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("certificate"))
	fmt.Printf("  file: %s\n", valueStyle.Render(orUnset(cfg.Certificate.File.String())))
	fmt.Printf("  owner: %s\n", valueStyle.Render(orUnset(cfg.Certificate.Owner)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfigFile() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s/config.cue\n", SuccessStyle.Render("✓"), cfgDir)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s/config.cue\n", cfgDir)
	return nil
}

func setConfigValue(ctx context.Context, key, value string) error {
	cfg, err := config.NewProvider().Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		return err
	}

	switch key {
	case "signer.path":
		cfg.Signer.Path = config.SignerPath(value)

	case "signer.timestamp_url":
		cfg.Signer.TimestampURL = config.TimestampURL(value)

	case "packaging.staging":
		cfg.Packaging.Staging = config.DirPath(value)

	case "packaging.output":
		cfg.Packaging.Output = config.DirPath(value)

	case "certificate.file":
		cfg.Certificate.File = config.CertificateFilePath(value)

	case "certificate.owner":
		cfg.Certificate.Owner = value

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: signer.path, signer.timestamp_url, packaging.staging, packaging.output, certificate.file, certificate.owner, ui.verbose, ui.color_scheme", key)
	}

	if ok, errs := cfg.IsValid(); !ok {
		return fmt.Errorf("invalid value for %s: %v", key, errs)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
