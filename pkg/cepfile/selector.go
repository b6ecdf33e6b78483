// SPDX-License-Identifier: MPL-2.0

package cepfile

import "strings"

// Selector is the resolved form of a string-or-list declaration field.
// FromList records which input shape was used: a bare string means an
// open-ended selection ("this and everything later"), a list means exactly
// the listed values. Downstream code branches on FromList and never
// re-inspects the raw declaration.
type Selector struct {
	Values   []string
	FromList bool
}

// IsEmpty reports whether the selector carries no usable values.
func (s Selector) IsEmpty() bool {
	return len(s.Values) == 0
}

// NormalizedProducts returns the build's products as a lower-cased list with
// blank and non-string entries dropped. Duplicates are removed, first
// occurrence wins.
func (d *BuildDecl) NormalizedProducts() []string {
	sel := normalizeSelector(d.Products)
	seen := make(map[string]bool, len(sel.Values))
	out := make([]string, 0, len(sel.Values))
	for _, v := range sel.Values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// FamilySelector returns the build's families with shape information intact:
// FromList false means minimum mode, true means range mode.
func (d *BuildDecl) FamilySelector() Selector {
	return normalizeSelector(d.Families)
}

// normalizeSelector converts the raw string-or-list value the CUE decoder
// produced into a Selector. Invalid and blank entries are dropped rather
// than failing: emptiness is diagnosed later with a per-build error.
func normalizeSelector(raw any) Selector {
	switch v := raw.(type) {
	case string:
		if s := canonical(v); s != "" {
			return Selector{Values: []string{s}}
		}
		return Selector{}
	case []string:
		return Selector{Values: canonicalList(v), FromList: true}
	case []any:
		strs := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				strs = append(strs, s)
			}
		}
		return Selector{Values: canonicalList(strs), FromList: true}
	default:
		return Selector{}
	}
}

func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func canonicalList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if c := canonical(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}
