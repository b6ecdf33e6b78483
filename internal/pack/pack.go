// SPDX-License-Identifier: MPL-2.0

// Package pack orchestrates the packaging pipeline: each build is validated,
// staged, decorated with its rendered documents, and signed into a .zxp
// archive, then a single aggregate descriptor is written over the whole run.
package pack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"cepack-cli/internal/zxp"
	"cepack-cli/pkg/build"
	"cepack-cli/pkg/manifest"
)

// bundleManifestPath is where hosts expect the bundle manifest inside an
// extension bundle.
const bundleManifestPath = "CSXS/manifest.xml"

// ErrNoBuilds is returned when a run is started with an empty build list.
var ErrNoBuilds = errors.New("packaging run needs at least one build")

type (
	// ArchiveSigner signs a staged bundle directory into an archive.
	// *zxp.Signer satisfies it; tests substitute a fake.
	ArchiveSigner interface {
		Sign(ctx context.Context, req zxp.SignRequest) error
	}

	// Certificate identifies the signing certificate for a run.
	Certificate struct {
		File         string
		Password     string
		TimestampURL string
	}

	// Options configures a packaging run.
	Options struct {
		// StagingDir receives per-build assembly trees. Created if missing,
		// per-build subtrees are removed after a successful signing.
		StagingDir string
		// OutputDir receives the signed archives and the aggregate descriptor.
		OutputDir string
		// Certificate signs every archive of the run.
		Certificate Certificate
		// Signer invokes the external signing tool.
		Signer ArchiveSigner
		// Concurrency bounds the per-build fan-out. Zero means GOMAXPROCS.
		Concurrency int
		// Logger receives per-build progress. Nil gets a default stderr logger.
		Logger *log.Logger
	}

	// Result summarizes a successful packaging run.
	Result struct {
		// Archives are the signed archive paths, in build order.
		Archives []string
		// DescriptorPath is the aggregate descriptor written over all builds.
		DescriptorPath string
	}

	// StagingError reports a failure assembling one build's staging tree.
	StagingError struct {
		Build string
		Err   error
	}
)

func (e *StagingError) Error() string {
	return fmt.Sprintf("build %q: staging failed: %v", e.Build, e.Err)
}

func (e *StagingError) Unwrap() error { return e.Err }

func (o *Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "pack"})
}

func (o *Options) concurrency() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// Package runs the full pipeline over every build: validate, stage the
// source tree, write the rendered documents, sign, and collect the archive.
// Builds are processed concurrently with a bounded fan-out; each build is
// owned exclusively by its worker. Any failure aborts the run, because a
// partial archive set is not installable. After the join barrier the
// aggregate descriptor is rendered over all builds and written to the
// output directory.
func Package(ctx context.Context, builds []*build.Build, opts Options) (*Result, error) {
	if len(builds) == 0 {
		return nil, ErrNoBuilds
	}
	if opts.Signer == nil {
		return nil, errors.New("packaging run needs a signer")
	}

	logger := opts.logger()
	for _, dir := range []string{opts.StagingDir, opts.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	archives := make([]string, len(builds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency())
	for i, b := range builds {
		g.Go(func() error {
			archive, err := packageOne(gctx, b, opts, logger.WithPrefix(b.Name))
			if err != nil {
				return err
			}
			archives[i] = archive
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	descriptor, err := manifest.RenderPackageDescriptor(builds)
	if err != nil {
		return nil, err
	}
	descriptorPath := filepath.Join(opts.OutputDir, builds[0].BaseName+".mxi")
	if err := os.WriteFile(descriptorPath, []byte(descriptor), 0o644); err != nil {
		return nil, fmt.Errorf("write descriptor: %w", err)
	}
	logger.Info("packaging run complete", "builds", len(builds), "descriptor", descriptorPath)

	return &Result{Archives: archives, DescriptorPath: descriptorPath}, nil
}

// packageOne takes a single build through stage, decorate, and sign.
// The staging tree is removed only on success so a failed build can be
// inspected in place.
func packageOne(ctx context.Context, b *build.Build, opts Options, logger *log.Logger) (string, error) {
	if err := b.Init(); err != nil {
		return "", err
	}

	// Keyed by the archive stem, not the bundle-derived BaseName: two builds
	// may package the same bundle id for different family generations, and
	// concurrent workers must never share a staging tree.
	stageDir := filepath.Join(opts.StagingDir, strings.TrimSuffix(b.OutputArchiveName, ".zxp"))
	logger.Debug("staging source tree", "from", b.SourceFolder, "to", stageDir)
	if err := StageTree(b.SourceFolder, stageDir); err != nil {
		return "", &StagingError{Build: b.Name, Err: err}
	}

	if err := WriteDocuments(b, stageDir); err != nil {
		return "", err
	}

	archive := filepath.Join(opts.OutputDir, b.OutputArchiveName)
	logger.Info("signing", "archive", archive)
	err := opts.Signer.Sign(ctx, zxp.SignRequest{
		Input:        stageDir,
		Output:       archive,
		Cert:         opts.Certificate.File,
		Password:     opts.Certificate.Password,
		TimestampURL: opts.Certificate.TimestampURL,
	})
	if err != nil {
		return "", fmt.Errorf("build %q: %w", b.Name, err)
	}

	if err := os.RemoveAll(stageDir); err != nil {
		logger.Warn("could not remove staging tree", "dir", stageDir, "err", err)
	}
	return archive, nil
}

// WriteDocuments renders and writes the bundle manifest into root, and the
// debug descriptor when the build declares a debug port. The install
// workflow reuses it to decorate installed copies.
func WriteDocuments(b *build.Build, root string) error {
	doc, err := manifest.RenderBundleManifest(b)
	if err != nil {
		return err
	}
	manifestPath := filepath.Join(root, filepath.FromSlash(bundleManifestPath))
	if err := os.MkdirAll(filepath.Dir(manifestPath), 0o755); err != nil {
		return fmt.Errorf("build %q: %w", b.Name, err)
	}
	if err := os.WriteFile(manifestPath, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("build %q: write manifest: %w", b.Name, err)
	}

	if b.Bundle.Debug.Port == nil {
		return nil
	}
	descriptor, err := manifest.RenderDebugDescriptor(b)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(root, ".debug"), []byte(descriptor), 0o644); err != nil {
		return fmt.Errorf("build %q: write debug descriptor: %w", b.Name, err)
	}
	return nil
}
