package gatherers

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"beacon/internal/gather"
)

// BFCacheFailure is one reason the page could not be restored from the
// back/forward cache.
type BFCacheFailure struct {
	Reason string `json:"reason"`
	Type   string `json:"type"`
}

// BFCacheFailures probes the back/forward cache by navigating away and
// back, recording every not-restored explanation the browser reports. The
// probe destroys page state, so the resolver sorts it last alongside the
// full-page screenshot.
type BFCacheFailures struct {
	gather.Base
}

// NewBFCacheFailures returns the gatherer.
func NewBFCacheFailures() gather.Gatherer { return &BFCacheFailures{} }

func (*BFCacheFailures) Meta() gather.Meta {
	return gather.Meta{SupportedModes: []gather.Mode{gather.ModeNavigation}}
}

func (*BFCacheFailures) GetArtifact(_ context.Context, gctx *gather.Context) (any, error) {
	tab := gctx.Driver.Tab()
	if tab == nil {
		return nil, gather.ErrNoDriver
	}

	var mu sync.Mutex
	var failures []BFCacheFailure
	chromedp.ListenTarget(tab, func(ev any) {
		e, ok := ev.(*page.EventBackForwardCacheNotUsed)
		if !ok {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		for _, ex := range e.NotRestoredExplanations {
			failures = append(failures, BFCacheFailure{
				Reason: string(ex.Reason),
				Type:   string(ex.Type),
			})
		}
	})

	if err := gctx.Driver.Run(
		chromedp.Navigate("chrome://terms"),
		chromedp.NavigateBack(),
	); err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	out := make([]BFCacheFailure, len(failures))
	copy(out, failures)
	return out, nil
}
