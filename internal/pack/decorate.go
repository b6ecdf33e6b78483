// SPDX-License-Identifier: MPL-2.0

package pack

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"cepack-cli/pkg/build"
	"cepack-cli/pkg/manifest"
)

// DecorateOptions configures a decorate run.
type DecorateOptions struct {
	// Debug rewrites bundle and extension identifiers for a debug install
	// and requires every build to declare a debug port.
	Debug bool
	// Logger receives per-build progress. Nil gets a default stderr logger.
	Logger *log.Logger
}

// Decorate generates each build's documents directly into its source tree,
// without packaging. Unlike Package, one build's failure does not abort the
// run: failed builds are reported and skipped, the rest are still decorated.
func Decorate(ctx context.Context, builds []*build.Build, opts DecorateOptions) error {
	if len(builds) == 0 {
		return ErrNoBuilds
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "decorate"})
	}

	var errs []error
	for _, b := range builds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := decorateOne(b, opts.Debug); err != nil {
			logger.Error("decorate failed", "build", b.Name, "err", err)
			errs = append(errs, err)
			continue
		}
		logger.Info("decorated", "build", b.Name, "source", b.SourceFolder, "debug", opts.Debug)
	}
	return errors.Join(errs...)
}

func decorateOne(b *build.Build, debug bool) error {
	if err := b.Init(); err != nil {
		return err
	}
	if debug {
		if b.Bundle.Debug.Port == nil {
			// Render anyway so the caller gets the renderer's port error.
			_, err := manifest.RenderDebugDescriptor(b)
			return err
		}
		if err := b.ApplyDebugTransform(); err != nil {
			return fmt.Errorf("build %q: %w", b.Name, err)
		}
	}
	return WriteDocuments(b, b.SourceFolder)
}
