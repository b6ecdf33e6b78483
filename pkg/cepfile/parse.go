// SPDX-License-Identifier: MPL-2.0

package cepfile

import (
	_ "embed"
	"fmt"
	"os"

	"cepack-cli/pkg/cueutil"
)

// FileName is the canonical name of a build declaration file.
const FileName = "cepack.cue"

//go:embed cepfile_schema.cue
var cepfileSchema string

// Parse reads and parses a cepack.cue file from the given path.
func Parse(path string) (*Cepfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s at %s: %w", FileName, path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses cepack.cue content from bytes. The content is unified
// with the embedded #Cepfile schema before decoding, so any document that
// comes back has the right shape; semantic validation (identifier patterns,
// registry membership) happens later, in the build package.
func ParseBytes(data []byte, path string) (*Cepfile, error) {
	doc, err := cueutil.Decode[Cepfile](cepfileSchema, data, "#Cepfile", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}

	if len(doc.Builds) == 0 {
		return nil, fmt.Errorf("%s: no builds declared (missing required 'builds' map)", path)
	}

	doc.FilePath = path
	for _, decl := range doc.Builds {
		applyDefaults(decl)
	}
	return doc, nil
}
