// SPDX-License-Identifier: MPL-2.0

package build

import "errors"

const (
	// debugIDSuffix keeps debug copies of a bundle installable next to the
	// release copy. It must stay within the bundle id character set.
	debugIDSuffix = ".debug"
	// debugNameSuffix marks debug copies in host menus.
	debugNameSuffix = " (debug)"
)

// ErrDebugTransformApplied is returned when the debug transform is applied
// to a build that already carries debug identifiers. Applying it twice would
// double-suffix every id, so it is a hard error rather than a silent no-op.
var ErrDebugTransformApplied = errors.New("debug transform already applied to this build")

// ApplyDebugTransform rewrites the bundle and extension identifiers for a
// debug install: ids get the ".debug" suffix, non-empty display names get a
// " (debug)" suffix. The build must be initialized first so the transform
// sees the back-filled bundle identity.
func (b *Build) ApplyDebugTransform() error {
	if b.debugApplied {
		return ErrDebugTransformApplied
	}
	if err := b.Init(); err != nil {
		return err
	}

	b.Bundle.ID += debugIDSuffix
	if b.Bundle.Name != "" {
		b.Bundle.Name += debugNameSuffix
	}

	for i := range b.Extensions {
		b.Extensions[i].ID += debugIDSuffix
		if b.Extensions[i].Name != "" {
			b.Extensions[i].Name += debugNameSuffix
		}
	}

	b.debugApplied = true
	return nil
}
