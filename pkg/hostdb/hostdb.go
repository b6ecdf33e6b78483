// SPDX-License-Identifier: MPL-2.0

// Package hostdb holds the static registry of Creative Cloud host
// applications: which products exist in which release family, the CEP host
// version range each one accepts, and where their executables live on disk.
//
// The registry is defined once at process start and never mutated. Families
// carry an explicit integer epoch so chronological ordering never depends on
// how a family happens to be named.
package hostdb

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver"
)

// OS identifies a supported desktop platform, matching runtime.GOOS values.
type OS string

const (
	// OSWindows is the Windows platform key.
	OSWindows OS = "windows"
	// OSMac is the macOS platform key.
	OSMac OS = "darwin"
)

type (
	// Family is one release generation of the Creative Cloud suite. All
	// products in a family share a manifest schema version and an epoch.
	Family struct {
		// Name is the canonical lower-case key (e.g. "cc2015").
		Name string
		// DisplayName is the marketing name (e.g. "CC 2015").
		DisplayName string
		// Epoch orders families chronologically. Lower is older.
		Epoch int
	}

	// VersionRange is the inclusive host version span a product accepts.
	VersionRange struct {
		Min *semver.Version
		Max *semver.Version
	}

	// ProductRecord describes one host application within one family.
	ProductRecord struct {
		// Key is the lower-case product identifier (e.g. "photoshop").
		Key string
		// Family is the family key this record belongs to.
		Family string
		// FamilyDisplayName is the family's marketing name.
		FamilyDisplayName string
		// DisplayName is the product's marketing name (family-independent).
		DisplayName string
		// HostIDs are the CEP host application codes, in dispatch order
		// (e.g. PHSP then PHXS for Photoshop). Never empty.
		HostIDs []string
		// Range is the supported host version span for this family.
		Range VersionRange
		// ExecutableNames maps each OS to the executable path relative to
		// the product's install folder.
		ExecutableNames map[OS]string
		// InstallFolderOverride replaces the generated install folder name
		// when the product ships under a folder that does not follow the
		// "Adobe <product> <family>" convention.
		InstallFolderOverride string
		// Supports64Bit reports whether a 64-bit variant ships on Windows.
		Supports64Bit bool
	}

	// UnknownFamilyError reports a family key absent from the registry.
	UnknownFamilyError struct {
		Family string
	}

	// UnknownProductError reports a product key absent from a known family.
	UnknownProductError struct {
		Product string
		Family  string
	}
)

func (e *UnknownFamilyError) Error() string {
	return fmt.Sprintf("unknown product family %q", e.Family)
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %q in family %q", e.Product, e.Family)
}

var (
	productsByFamily = map[string]map[string]ProductRecord{}
	familiesByName   = map[string]Family{}
)

func registerFamily(f Family) {
	familiesByName[f.Name] = f
	productsByFamily[f.Name] = map[string]ProductRecord{}
}

func register(r ProductRecord) {
	f, ok := familiesByName[r.Family]
	if !ok {
		panic(fmt.Sprintf("hostdb: product %q registered before family %q", r.Key, r.Family))
	}
	if len(r.HostIDs) == 0 {
		panic(fmt.Sprintf("hostdb: product %q in %q has no host identifiers", r.Key, r.Family))
	}
	if r.Range.Min == nil || r.Range.Max == nil || r.Range.Max.LessThan(r.Range.Min) {
		panic(fmt.Sprintf("hostdb: product %q in %q has an inverted version range", r.Key, r.Family))
	}
	r.FamilyDisplayName = f.DisplayName
	productsByFamily[r.Family][r.Key] = r
}

// Lookup returns the record for the given product key within the given
// family. Both keys are expected in canonical lower-case form.
func Lookup(productKey, family string) (ProductRecord, error) {
	byProduct, ok := productsByFamily[family]
	if !ok {
		return ProductRecord{}, &UnknownFamilyError{Family: family}
	}
	rec, ok := byProduct[productKey]
	if !ok {
		return ProductRecord{}, &UnknownProductError{Product: productKey, Family: family}
	}
	return rec, nil
}

// FamilyOf returns the Family entry for the given key.
func FamilyOf(name string) (Family, bool) {
	f, ok := familiesByName[name]
	return f, ok
}

// Families returns every registered family in epoch order.
func Families() []Family {
	out := make([]Family, 0, len(familiesByName))
	for _, f := range familiesByName {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Epoch < out[j].Epoch })
	return out
}

// SortFamilies orders family keys chronologically by epoch. Keys not present
// in the registry sort after known ones; validation rejects them later with
// a precise error, so the ordering here only has to be deterministic.
func SortFamilies(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		fi, iok := familiesByName[names[i]]
		fj, jok := familiesByName[names[j]]
		switch {
		case iok && jok:
			return fi.Epoch < fj.Epoch
		case iok:
			return true
		case jok:
			return false
		default:
			return names[i] < names[j]
		}
	})
}

// EarliestFamily returns the chronologically first key among names,
// preferring registered families. Returns "" for an empty slice.
func EarliestFamily(names []string) string {
	if len(names) == 0 {
		return ""
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	SortFamilies(sorted)
	return sorted[0]
}

// FormatVersion renders a host version the way CSXS manifests expect it:
// major.minor with exactly one decimal place.
func FormatVersion(v *semver.Version) string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

func mustVersion(s string) *semver.Version {
	return semver.MustParse(s)
}

func vr(min, max string) VersionRange {
	return VersionRange{Min: mustVersion(min), Max: mustVersion(max)}
}

func execs(windows, mac string) map[OS]string {
	return map[OS]string{OSWindows: windows, OSMac: mac}
}
