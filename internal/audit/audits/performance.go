package audits

import (
	"context"
	"fmt"
	"math"

	"beacon/internal/audit"
	"beacon/internal/gather"
	"beacon/internal/gather/gatherers"
)

// LCP log-normal curve anchors, in milliseconds: the median scores 0.5 and
// the p10 value scores 0.9.
const (
	lcpMedianMs = 4000.0
	lcpP10Ms    = 2500.0
)

// LargestContentfulPaint grades the LCP milestone from the trace.
type LargestContentfulPaint struct {
	audit.Unimplemented
}

func (*LargestContentfulPaint) Meta() audit.Meta {
	return audit.Meta{
		ID:                "largest-contentful-paint",
		Title:             "Largest Contentful Paint",
		Description:       "Largest Contentful Paint marks the time at which the largest text or image block is painted.",
		RequiredArtifacts: []string{"Trace"},
		SupportedModes:    []gather.Mode{gather.ModeNavigation},
		ScoreDisplayMode:  audit.ScoreNumeric,
	}
}

func (*LargestContentfulPaint) Audit(_ context.Context, actx *audit.Context) (*audit.Result, error) {
	trace, _ := actx.Artifacts["Trace"].(gatherers.TraceArtifact)
	lcp := trace.LargestContentfulPaint
	if lcp == 0 {
		res := &audit.Result{ScoreDisplayMode: audit.ScoreNotApplicable}
		return res, nil
	}

	res := audit.Numeric(scoreLogNormal(lcp, lcpMedianMs, lcpP10Ms))
	res.NumericValue = lcp
	res.NumericUnit = "millisecond"
	res.DisplayValue = fmt.Sprintf("%.1f s", lcp/1000)
	return res, nil
}

// BFCache fails when the page is not restorable from the back/forward
// cache.
type BFCache struct {
	audit.Unimplemented
}

func (*BFCache) Meta() audit.Meta {
	return audit.Meta{
		ID:                "bf-cache",
		Title:             "Page can be restored from back/forward cache",
		FailureTitle:      "Page prevented back/forward cache restoration",
		Description:       "The back/forward cache makes history navigations instant; blockers such as unload handlers disable it.",
		RequiredArtifacts: []string{"BFCacheFailures"},
		SupportedModes:    []gather.Mode{gather.ModeNavigation},
	}
}

func (*BFCache) Audit(_ context.Context, actx *audit.Context) (*audit.Result, error) {
	failures, _ := actx.Artifacts["BFCacheFailures"].([]gatherers.BFCacheFailure)
	res := audit.Binary(len(failures) == 0)
	if len(failures) > 0 {
		res.DisplayValue = fmt.Sprintf("%d failure reasons", len(failures))
		res.Details = failures
	}
	return res, nil
}

// ValidSourceMaps fails when large external scripts ship without source
// maps.
type ValidSourceMaps struct {
	audit.Unimplemented
}

func (*ValidSourceMaps) Meta() audit.Meta {
	return audit.Meta{
		ID:                "valid-source-maps",
		Title:             "Page has valid source maps",
		FailureTitle:      "Missing source maps for large first-party JavaScript",
		Description:       "Source maps translate minified code back to source, which enables debugging in production.",
		RequiredArtifacts: []string{"SourceMaps"},
		SupportedModes:    []gather.Mode{gather.ModeNavigation, gather.ModeTimespan},
	}
}

func (*ValidSourceMaps) Audit(_ context.Context, actx *audit.Context) (*audit.Result, error) {
	records, _ := actx.Artifacts["SourceMaps"].([]gatherers.SourceMapRecord)
	missing := 0
	for _, r := range records {
		if r.Missing {
			missing++
		}
	}
	res := audit.Binary(missing == 0)
	if missing > 0 {
		res.DisplayValue = fmt.Sprintf("%d scripts without source maps", missing)
		res.NumericValue = float64(missing)
		res.NumericUnit = "element"
	}
	return res, nil
}

// scoreLogNormal maps a metric value onto a 0-1 score along a log-normal
// curve anchored so the median scores 0.5 and the p10 value 0.9.
func scoreLogNormal(value, median, p10 float64) float64 {
	if value <= 0 {
		return 1
	}
	logRatio := math.Log(value / median)
	shape := math.Abs(math.Log(p10/median)) / 1.28155
	return 1 - 0.5*math.Erfc(-logRatio/(shape*math.Sqrt2))
}
