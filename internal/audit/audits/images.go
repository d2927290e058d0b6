package audits

import (
	"context"
	"fmt"

	"beacon/internal/audit"
	"beacon/internal/gather"
	"beacon/internal/gather/gatherers"
)

// ImageAlt fails when any image lacks an alt attribute.
type ImageAlt struct {
	audit.Unimplemented
}

func (*ImageAlt) Meta() audit.Meta {
	return audit.Meta{
		ID:                "image-alt",
		Title:             "Image elements have alt attributes",
		FailureTitle:      "Image elements do not have alt attributes",
		Description:       "Informative images need short alt text; decorative images need an empty alt attribute so screen readers skip them.",
		RequiredArtifacts: []string{"ImageElements"},
		SupportedModes:    []gather.Mode{gather.ModeNavigation, gather.ModeSnapshot},
	}
}

func (*ImageAlt) Audit(_ context.Context, actx *audit.Context) (*audit.Result, error) {
	images, _ := actx.Artifacts["ImageElements"].([]gatherers.ImageElement)
	var missing []gatherers.ImageElement
	for _, img := range images {
		if !img.HasAlt {
			missing = append(missing, img)
		}
	}
	res := audit.Binary(len(missing) == 0)
	if len(missing) > 0 {
		res.DisplayValue = fmt.Sprintf("%d images missing alt", len(missing))
		res.Details = missing
	}
	return res, nil
}

// UnsizedImages fails when images lack explicit width and height, a common
// layout-shift source.
type UnsizedImages struct {
	audit.Unimplemented
}

func (*UnsizedImages) Meta() audit.Meta {
	return audit.Meta{
		ID:                "unsized-images",
		Title:             "Image elements have explicit width and height",
		FailureTitle:      "Image elements do not have explicit width and height",
		Description:       "Explicit image dimensions reserve layout space before the image loads and prevent layout shifts.",
		RequiredArtifacts: []string{"ImageElements"},
		SupportedModes:    []gather.Mode{gather.ModeNavigation, gather.ModeSnapshot},
	}
}

func (*UnsizedImages) Audit(_ context.Context, actx *audit.Context) (*audit.Result, error) {
	images, _ := actx.Artifacts["ImageElements"].([]gatherers.ImageElement)
	var unsized []gatherers.ImageElement
	for _, img := range images {
		if !img.HasSizeAttrs && img.Width > 0 {
			unsized = append(unsized, img)
		}
	}
	res := audit.Binary(len(unsized) == 0)
	if len(unsized) > 0 {
		res.Details = unsized
	}
	return res, nil
}

// LCPLazyLoaded fails when the largest-contentful-paint element is a
// lazy-loaded image: deferring the most important image delays the paint it
// gates.
type LCPLazyLoaded struct {
	audit.Unimplemented
}

func (*LCPLazyLoaded) Meta() audit.Meta {
	return audit.Meta{
		ID:                "lcp-lazy-loaded",
		Title:             "Largest Contentful Paint image was not lazily loaded",
		FailureTitle:      "Largest Contentful Paint image was lazily loaded",
		Description:       "Above-the-fold images that are lazily loaded render later in the page lifecycle, delaying the largest contentful paint.",
		RequiredArtifacts: []string{"TraceElements", "ImageElements"},
		SupportedModes:    []gather.Mode{gather.ModeNavigation},
	}
}

func (*LCPLazyLoaded) Audit(_ context.Context, actx *audit.Context) (*audit.Result, error) {
	elements, _ := actx.Artifacts["TraceElements"].([]gatherers.TraceElement)
	for _, el := range elements {
		if el.Metric == "largest-contentful-paint" && el.NodeName == "img" && el.Loading == "lazy" {
			return audit.Binary(false), nil
		}
	}
	return audit.Binary(true), nil
}
