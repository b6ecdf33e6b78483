// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"

	"cepack-cli/pkg/cepfile"
)

// The scaffolded templates must parse back through the schema, or `cepack
// init` would hand users a broken starting point.
func TestGenerateCepfileRoundTrips(t *testing.T) {
	for _, template := range []string{"default", "minimal"} {
		t.Run(template, func(t *testing.T) {
			content := generateCepfile(template)

			doc, err := cepfile.ParseBytes([]byte(content), cepfile.FileName)
			if err != nil {
				t.Fatalf("scaffolded %s template does not parse: %v\n%s", template, err, content)
			}
			if _, ok := doc.Builds["main"]; !ok {
				t.Errorf("scaffolded template missing the main build\n%s", content)
			}
		})
	}
}

func TestGenerateCepfileDefaultTemplate(t *testing.T) {
	content := generateCepfile("default")

	for _, want := range []string{
		`"main":`,
		`id: "com.example.tools"`,
		`debug: port: 8088`,
		`products: ["photoshop", "illustrator"]`,
		`families: "cc2014"`,
		`output: "./dist"`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("default template missing %q\n%s", want, content)
		}
	}
}
