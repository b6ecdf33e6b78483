// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"

	"github.com/Masterminds/semver"

	"cepack-cli/pkg/build"
	"cepack-cli/pkg/hostdb"
)

const descriptorTemplatePath = "templates/mxi.xml.tmpl"

// ErrNoBuilds is returned when a descriptor is requested for an empty run.
var ErrNoBuilds = errors.New("package descriptor needs at least one build")

type (
	descriptorView struct {
		Name     string
		Version  string
		Author   string
		Products []descriptorProductView
		Files    []descriptorFileView
	}

	descriptorProductView struct {
		Name    string
		Version string
		// MaxVersion is empty when every contributing build targeted an
		// open-ended family minimum.
		MaxVersion string
		// FamilyName replaces Name for products whose descriptor entries
		// historically carry the familyname attribute instead.
		FamilyName string
	}

	descriptorFileView struct {
		Source     string
		Products   string
		MinVersion string
		// MaxVersion is empty when every contributing build targeted an
		// open-ended family minimum.
		MaxVersion string
	}
)

// productSpan is the per-product accumulator across all builds in a run.
type productSpan struct {
	min *semver.Version
	max *semver.Version
	// closed is set once any contributing build declared an explicit
	// family range. Only then does the descriptor carry an upper bound.
	closed bool
}

// RenderPackageDescriptor renders the aggregate MXI document covering every
// build of a run. Product version spans are accumulated across builds: the
// lowest minimum wins, and a maximum appears only when at least one
// contributing build declared a closed family range. The top-level identity
// comes from the first build's bundle block.
func RenderPackageDescriptor(builds []*build.Build) (string, error) {
	if len(builds) == 0 {
		return "", ErrNoBuilds
	}

	spans := make(map[string]*productSpan)
	var order []string
	for _, b := range builds {
		if err := b.Init(); err != nil {
			return "", err
		}
		for _, product := range b.Products {
			hr, err := b.VersionRangeFor(product)
			if err != nil {
				return "", err
			}
			span, ok := spans[product]
			if !ok {
				span = &productSpan{}
				spans[product] = span
				order = append(order, product)
			}
			if span.min == nil || hr.Min.LessThan(span.min) {
				span.min = hr.Min
			}
			if hr.Closed {
				span.closed = true
				if span.max == nil || hr.Max.GreaterThan(span.max) {
					span.max = hr.Max
				}
			}
		}
	}

	first := builds[0]
	view := descriptorView{
		Name:    xmlEscape(first.Bundle.Name),
		Version: xmlEscape(first.Bundle.Version),
		Author:  xmlEscape(first.Bundle.Author),
	}

	for _, product := range order {
		span := spans[product]
		entry := descriptorProductView{Version: hostdb.FormatVersion(span.min)}
		if span.closed {
			entry.MaxVersion = hostdb.FormatVersion(span.max)
		}
		if hostdb.UsesFamilyNameAttr(product) {
			entry.FamilyName = hostdb.DisplayNameOf(product)
		} else {
			entry.Name = hostdb.DisplayNameOf(product)
		}
		view.Products = append(view.Products, entry)
	}

	// File entries are one per build and product pair, but carry the
	// accumulated span so every archive installs under the same bounds.
	for _, b := range builds {
		for _, product := range b.Products {
			span := spans[product]
			entry := descriptorFileView{
				Source:     b.OutputArchiveName,
				Products:   hostdb.LegacyProductAlias(product),
				MinVersion: hostdb.FormatVersion(span.min),
			}
			if span.closed {
				entry.MaxVersion = hostdb.FormatVersion(span.max)
			}
			view.Files = append(view.Files, entry)
		}
	}

	tmpl, err := loadTemplate("", "", descriptorTemplatePath)
	if err != nil {
		return "", err
	}
	return render(tmpl, view)
}
