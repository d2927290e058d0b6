package audits

import (
	"context"
	"fmt"

	"beacon/internal/audit"
	"beacon/internal/gather"
	"beacon/internal/gather/gatherers"
)

// DOM size thresholds: full score at or below the pass mark, zero at or
// above the fail mark, linear in between.
const (
	domSizePassElements = 800
	domSizeFailElements = 3000
)

// DOMSize grades the page on total DOM element count.
type DOMSize struct {
	audit.Unimplemented
}

func (*DOMSize) Meta() audit.Meta {
	return audit.Meta{
		ID:                "dom-size",
		Title:             "Avoids an excessive DOM size",
		FailureTitle:      "Uses an excessive DOM size",
		Description:       "A large DOM increases memory usage and produces costly style recalculations.",
		RequiredArtifacts: []string{"DOMStats"},
		SupportedModes:    []gather.Mode{gather.ModeNavigation, gather.ModeSnapshot},
		ScoreDisplayMode:  audit.ScoreNumeric,
	}
}

func (*DOMSize) Audit(_ context.Context, actx *audit.Context) (*audit.Result, error) {
	stats, _ := actx.Artifacts["DOMStats"].(gatherers.DOMStatsArtifact)

	pass, fail := domSizePassElements, domSizeFailElements
	if v, ok := intOption(actx.Options, "passElements"); ok {
		pass = v
	}
	if v, ok := intOption(actx.Options, "failElements"); ok {
		fail = v
	}

	var score float64
	switch {
	case stats.TotalElements <= pass:
		score = 1
	case stats.TotalElements >= fail:
		score = 0
	default:
		score = 1 - float64(stats.TotalElements-pass)/float64(fail-pass)
	}

	res := audit.Numeric(score)
	res.NumericValue = float64(stats.TotalElements)
	res.NumericUnit = "element"
	res.DisplayValue = fmt.Sprintf("%d elements", stats.TotalElements)
	res.Details = stats
	return res, nil
}

func intOption(opts map[string]any, key string) (int, bool) {
	switch v := opts[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}
