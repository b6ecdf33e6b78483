// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cepack-cli/internal/issue"
	"cepack-cli/pkg/build"
	"cepack-cli/pkg/cepfile"
)

// loadCepfile reads the build declaration file: the --file flag when set,
// otherwise ./cepack.cue. A missing file gets the rendered remediation card
// in addition to the error.
func loadCepfile() (*cepfile.Cepfile, error) {
	path := declFile
	if path == "" {
		path = cepfile.FileName
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		renderIssue(issue.CepfileNotFoundId)
		abs, _ := filepath.Abs(path)
		return nil, fmt.Errorf("no %s found at %s", cepfile.FileName, abs)
	}

	doc, err := cepfile.Parse(path)
	if err != nil {
		renderIssue(issue.CepfileParseErrorId)
		return nil, err
	}
	return doc, nil
}

// selectBuilds constructs Builds from the declaration, filtered to the named
// builds when names are given. Order is deterministic: declaration names
// sorted, or the requested order when explicit.
func selectBuilds(doc *cepfile.Cepfile, names []string) ([]*build.Build, error) {
	if len(names) == 0 {
		names = doc.BuildNames()
	} else {
		sort.Strings(names)
	}

	builds := make([]*build.Build, 0, len(names))
	for _, name := range names {
		decl, ok := doc.Builds[name]
		if !ok {
			renderIssue(issue.BuildNotFoundId)
			return nil, fmt.Errorf("build %q not declared in %s (have: %v)", name, doc.FilePath, doc.BuildNames())
		}
		builds = append(builds, build.New(name, decl))
	}
	return builds, nil
}

// renderIssue prints the remediation card for an issue id to stderr,
// using the configured color scheme.
func renderIssue(id issue.Id) {
	scheme := "dark"
	if loadedConfig != nil {
		scheme = string(loadedConfig.UI.ColorScheme)
	}
	if rendered, err := issue.Get(id).Render(scheme); err == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
}
