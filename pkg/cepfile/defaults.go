// SPDX-License-Identifier: MPL-2.0

package cepfile

// DefaultDebugPort is the base remote-debugging port assigned when a build
// does not declare one. Extensions within a build get consecutive ports.
const DefaultDebugPort = 8088

// applyDefaults fills only the fields the declaration left absent. This is
// deliberately a flat, typed merge: each defaulted field is listed here, so
// there is no generic deep-merge machinery to reason about.
func applyDefaults(d *BuildDecl) {
	if d.Bundle.Debug.Port == nil {
		port := DefaultDebugPort
		d.Bundle.Debug.Port = &port
	}

	for i := range d.Extensions {
		ext := &d.Extensions[i]
		if ext.Type == "" {
			ext.Type = TypePanel
		}
		if ext.Lifecycle.AutoVisible == nil {
			visible := true
			ext.Lifecycle.AutoVisible = &visible
		}
		if ext.Size.Base == (Dimensions{}) {
			ext.Size.Base = Dimensions{Width: 400, Height: 300}
		}
		if ext.Size.Min == (Dimensions{}) {
			ext.Size.Min = Dimensions{Width: 200, Height: 150}
		}
		if ext.Size.Max == (Dimensions{}) {
			ext.Size.Max = Dimensions{Width: 2048, Height: 2048}
		}
	}
}
