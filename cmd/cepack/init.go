// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"cepack-cli/pkg/cepfile"

	"github.com/spf13/cobra"
)

var (
	initForce    bool
	initTemplate string

	// initCmd creates a new cepack.cue
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new cepack.cue in the current directory",
		Long: `Create a new cepack.cue in the current directory with an example build.

This command generates a starter declaration to help you get started
quickly.`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "", false, "overwrite existing cepack.cue")
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "default", "template to use (default, minimal)")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := cepfile.FileName
	if len(args) > 0 {
		filename = args[0]
	}

	// Check if file exists
	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	// Generate content based on template
	content := generateCepfile(initTemplate)

	// Write file
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Edit the cepack.cue to describe your extension bundle")
	fmt.Println("  2. Run 'cepack cert' to create a development certificate")
	fmt.Println("  3. Run 'cepack package' to build signed archives")

	return nil
}

func generateCepfile(template string) string {
	var doc *cepfile.Cepfile

	switch template {
	case "minimal":
		doc = &cepfile.Cepfile{
			Builds: map[string]*cepfile.BuildDecl{
				"main": {
					Source: "./src",
					Extensions: []cepfile.ExtensionDecl{
						{
							ID:       "com.example.panel",
							Name:     "Example Panel",
							Version:  "1.0.0",
							MainPath: "index.html",
						},
					},
					Products: "photoshop",
					Families: "cc2015",
				},
			},
		}

	default: // "default"
		port := 8088
		doc = &cepfile.Cepfile{
			Description: "Example extension bundle",
			Builds: map[string]*cepfile.BuildDecl{
				"main": {
					Source: "./src",
					Bundle: cepfile.BundleDecl{
						ID:      "com.example.tools",
						Version: "1.0.0",
						Name:    "Example Tools",
						Author:  "Example Inc",
						Debug:   cepfile.DebugDecl{Port: &port},
					},
					Extensions: []cepfile.ExtensionDecl{
						{
							ID:       "com.example.tools.panel",
							Name:     "Example Panel",
							Version:  "1.0.0",
							MainPath: "index.html",
							Type:     cepfile.TypePanel,
							Size: cepfile.SizeDecl{
								Base: cepfile.Dimensions{Width: 400, Height: 600},
							},
						},
					},
					Products: []string{"photoshop", "illustrator"},
					Families: "cc2014",
				},
			},
			Packaging: cepfile.PackagingDecl{
				Output:  "./dist",
				Staging: "./build/staging",
				Certificate: cepfile.CertificateDecl{
					File: "cert.p12",
				},
			},
		}
	}

	return cepfile.GenerateCUE(doc)
}
