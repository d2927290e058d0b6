package gatherers

import (
	"context"

	"beacon/internal/gather"
)

// TraceSymbol is the dependency handle for the Trace artifact.
var TraceSymbol = gather.NewSymbol("Trace")

// TraceEntry is one performance timeline entry.
type TraceEntry struct {
	Name      string  `json:"name"`
	EntryType string  `json:"entryType"`
	StartTime float64 `json:"startTime"`
	Duration  float64 `json:"duration"`
}

// TraceArtifact is the page's performance timeline plus the key paint
// timings.
type TraceArtifact struct {
	Entries                []TraceEntry `json:"entries"`
	FirstContentfulPaint   float64      `json:"firstContentfulPaint"`
	LargestContentfulPaint float64      `json:"largestContentfulPaint"`
}

// Trace reads the performance timeline accumulated since navigation start.
type Trace struct {
	gather.Base
}

// NewTrace returns the gatherer.
func NewTrace() gather.Gatherer { return &Trace{} }

func (*Trace) Meta() gather.Meta {
	return gather.Meta{
		SupportedModes: []gather.Mode{gather.ModeNavigation, gather.ModeTimespan},
		Symbol:         TraceSymbol,
	}
}

func (*Trace) GetArtifact(_ context.Context, gctx *gather.Context) (any, error) {
	const expr = `(() => {
		const entries = performance.getEntries().map(e => ({
			name: e.name, entryType: e.entryType,
			startTime: e.startTime, duration: e.duration,
		}));
		const fcp = performance.getEntriesByName('first-contentful-paint')[0];
		const lcps = performance.getEntriesByType('largest-contentful-paint');
		return {
			entries,
			firstContentfulPaint: fcp ? fcp.startTime : 0,
			largestContentfulPaint: lcps.length ? lcps[lcps.length - 1].startTime : 0,
		};
	})()`
	var out TraceArtifact
	if err := gctx.Driver.Evaluate(expr, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TraceElement describes the page element behind a paint milestone.
type TraceElement struct {
	Metric   string `json:"metric"`
	NodeName string `json:"nodeName"`
	Snippet  string `json:"snippet"`
	Loading  string `json:"loading"`
}

// TraceElements resolves the elements responsible for the paint milestones
// recorded in the Trace artifact. Navigation only: the milestones exist
// solely for a page load observed from the start.
type TraceElements struct {
	gather.Base
}

// NewTraceElements returns the gatherer.
func NewTraceElements() gather.Gatherer { return &TraceElements{} }

func (*TraceElements) Meta() gather.Meta {
	return gather.Meta{
		SupportedModes: []gather.Mode{gather.ModeNavigation},
		Dependencies:   map[string]gather.Symbol{"trace": TraceSymbol},
	}
}

func (*TraceElements) GetArtifact(_ context.Context, gctx *gather.Context) (any, error) {
	trace, _ := gctx.Dependencies["trace"].(TraceArtifact)
	if trace.LargestContentfulPaint == 0 {
		return []TraceElement{}, nil
	}
	const expr = `(() => {
		const lcps = performance.getEntriesByType('largest-contentful-paint');
		const last = lcps[lcps.length - 1];
		if (!last || !last.element) return [];
		const el = last.element;
		return [{
			metric: 'largest-contentful-paint',
			nodeName: el.nodeName.toLowerCase(),
			snippet: el.outerHTML.slice(0, 200),
			loading: el.getAttribute ? (el.getAttribute('loading') || '') : '',
		}];
	})()`
	var out []TraceElement
	if err := gctx.Driver.Evaluate(expr, &out); err != nil {
		return nil, err
	}
	return out, nil
}
