// SPDX-License-Identifier: MPL-2.0

package hostdb

// ResolveSingle looks up a single product/family pair.
func ResolveSingle(productKey, family string) (ProductRecord, error) {
	return Lookup(productKey, family)
}

// ResolveRange merges a product's version spans across the given families:
// the smallest Min and the largest Max seen. A family that cannot be
// resolved fails the whole resolution; silently skipping one would produce
// a range the product never shipped with.
func ResolveRange(productKey string, families []string) (VersionRange, error) {
	var merged VersionRange
	for _, family := range families {
		rec, err := Lookup(productKey, family)
		if err != nil {
			return VersionRange{}, err
		}
		if merged.Min == nil || rec.Range.Min.LessThan(merged.Min) {
			merged.Min = rec.Range.Min
		}
		if merged.Max == nil || rec.Range.Max.GreaterThan(merged.Max) {
			merged.Max = rec.Range.Max
		}
	}
	return merged, nil
}

// legacyAliases maps the product keys whose Extension Manager descriptor
// entries must list every historical product name variant. The installer
// matches these against names baked into old host releases.
var legacyAliases = map[string]string{
	"illustrator": "Illustrator,Illustrator32,Illustrator64",
	"incopy":      "InCopy,InCopy32,InCopy64",
	"indesign":    "InDesign,InDesign32,InDesign64",
	"photoshop":   "Photoshop,Photoshop32,Photoshop64",
}

// LegacyProductAlias returns the comma-joined alias list for products that
// need one, and the plain display name for everything else.
func LegacyProductAlias(productKey string) string {
	if alias, ok := legacyAliases[productKey]; ok {
		return alias
	}
	return DisplayNameOf(productKey)
}

// UsesFamilyNameAttr reports whether the product's descriptor entry must use
// the familyname attribute instead of name. Same four products as the alias
// list; the downstream installer treats them as product families.
func UsesFamilyNameAttr(productKey string) bool {
	_, ok := legacyAliases[productKey]
	return ok
}

// DisplayNameOf returns the product's display name, which is constant across
// families. Returns the key itself when the product is unknown so callers
// rendering documents never emit an empty attribute.
func DisplayNameOf(productKey string) string {
	for _, f := range Families() {
		if rec, ok := productsByFamily[f.Name][productKey]; ok {
			return rec.DisplayName
		}
	}
	return productKey
}
