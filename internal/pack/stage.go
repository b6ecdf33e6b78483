// SPDX-License-Identifier: MPL-2.0

package pack

import (
	"os"
)

// StageTree replaces dst with a fresh copy of the src directory. A stale
// tree from an earlier run is removed first so renamed or deleted source
// files never leak into the output.
func StageTree(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return err
	}
	return os.CopyFS(dst, os.DirFS(src))
}
