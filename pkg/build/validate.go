// SPDX-License-Identifier: MPL-2.0

package build

import (
	"fmt"
	"os"
	"regexp"
)

var (
	bundleIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

	// Dotted numeric version with an optional free-form suffix after the
	// third segment, e.g. "1", "1.2", "1.2.0", "1.2.0-beta_3".
	bundleVersionPattern = regexp.MustCompile(`^\d{1,9}(\.\d{1,9}(\.\d{1,9}([.\w-]+)?)?)?$`)
)

// Init validates the build and computes its derived fields. It is
// idempotent: every call site invokes it defensively, and repeated calls
// after a success are no-ops. A failed Init leaves the build unvalidated
// and may be retried after the declaration is fixed.
func (b *Build) Init() error {
	if b.initialized {
		return nil
	}

	if len(b.Extensions) == 0 {
		return b.invalid("extensions", "at least one extension is required")
	}

	// Bundle identity left blank falls back to the first extension.
	first := b.Extensions[0]
	if b.Bundle.ID == "" {
		b.Bundle.ID = first.ID
	}
	if b.Bundle.Version == "" {
		b.Bundle.Version = first.Version
	}
	if b.Bundle.Name == "" {
		b.Bundle.Name = first.Name
	}
	if b.Bundle.Author == "" {
		b.Bundle.Author = first.Author
	}

	if !bundleIDPattern.MatchString(b.Bundle.ID) {
		return b.invalid("bundle.id", fmt.Sprintf("%q must match %s", b.Bundle.ID, bundleIDPattern))
	}
	if !bundleVersionPattern.MatchString(b.Bundle.Version) {
		return b.invalid("bundle.version", fmt.Sprintf("%q is not a dotted numeric version", b.Bundle.Version))
	}
	if b.Bundle.Name == "" {
		return b.invalid("bundle.name", "must not be empty")
	}
	if b.Bundle.Author == "" {
		return b.invalid("bundle.author", "must not be empty")
	}
	if len(b.Products) == 0 {
		return b.invalid("products", "at least one product is required")
	}
	if len(b.Families.Names) == 0 {
		return b.invalid("families", "at least one family is required")
	}

	info, err := os.Stat(b.SourceFolder)
	if err != nil {
		return b.invalid("source", fmt.Sprintf("folder %q does not exist", b.SourceFolder))
	}
	if !info.IsDir() {
		return b.invalid("source", fmt.Sprintf("%q is not a directory", b.SourceFolder))
	}

	b.BaseName = sanitizeName(b.Bundle.ID)
	b.initialized = true
	return nil
}

func (b *Build) invalid(field, message string) error {
	return &ValidationError{Build: b.Name, Field: field, Message: message}
}
