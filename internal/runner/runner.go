// Package runner executes a ResolvedConfig against a live page: artifact
// collection in plan order, audit execution, and category scoring. The
// ResolvedConfig is treated as immutable throughout.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"

	"beacon/internal/audit"
	"beacon/internal/config"
	"beacon/internal/gather"
	"beacon/internal/logging"
)

// Options configures a Runner.
type Options struct {
	// Headless controls the browser launch mode. Defaults to headless.
	Headed bool

	// TimespanDuration is the observation window for timespan runs.
	// Defaults to 3 seconds.
	TimespanDuration time.Duration

	// AuditConcurrency bounds parallel audit execution. Defaults to 4.
	AuditConcurrency int

	Logger *slog.Logger
}

// Runner drives one run per call. Safe to reuse sequentially.
type Runner struct {
	log  *slog.Logger
	opts Options
}

// New creates a Runner with defaulted options.
func New(opts Options) *Runner {
	if opts.TimespanDuration <= 0 {
		opts.TimespanDuration = 3 * time.Second
	}
	if opts.AuditConcurrency <= 0 {
		opts.AuditConcurrency = 4
	}
	log := opts.Logger
	if log == nil {
		log = logging.New("runner")
	}
	return &Runner{log: log, opts: opts}
}

// CategoryResult is one category's aggregate outcome.
type CategoryResult struct {
	Title string
	Score float64
}

// Result is the outcome of one run.
type Result struct {
	URL        string
	Mode       gather.Mode
	Artifacts  map[string]any
	Audits     map[string]*audit.Result
	Categories map[string]CategoryResult
	Warnings   []string
}

// Run collects every artifact in the plan and executes every audit,
// returning scores per category. The gather mode comes from the plan; it
// was fixed at config resolution time.
func (r *Runner) Run(ctx context.Context, mode gather.Mode, url string, rc *config.ResolvedConfig) (*Result, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !r.opts.Headed),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	driver := gather.NewDriver(tabCtx)
	if err := r.applyEmulation(driver, rc.Settings); err != nil {
		return nil, fmt.Errorf("apply emulation: %w", err)
	}

	artifacts, err := r.collect(ctx, driver, mode, url, rc)
	if err != nil {
		return nil, err
	}

	results, err := r.runAudits(ctx, mode, rc, artifacts)
	if err != nil {
		return nil, err
	}

	return &Result{
		URL:        url,
		Mode:       mode,
		Artifacts:  artifacts,
		Audits:     results,
		Categories: scoreCategories(rc, results),
	}, nil
}

func (r *Runner) applyEmulation(driver *gather.Driver, s *config.Settings) error {
	var actions []chromedp.Action
	if se := s.ScreenEmulation; se != nil && !se.Disabled {
		actions = append(actions, emulation.SetDeviceMetricsOverride(
			int64(se.Width), int64(se.Height), se.DeviceScaleFactor, se.Mobile))
	}
	if s.EmulatedUserAgent != "" {
		actions = append(actions, emulation.SetUserAgentOverride(s.EmulatedUserAgent))
	}
	if len(actions) == 0 {
		return nil
	}
	return driver.Run(actions...)
}

// collect produces every artifact in plan order. The plan's order is the
// dependency order, so each gatherer's dependencies are already present
// when it runs.
func (r *Runner) collect(ctx context.Context, driver *gather.Driver, mode gather.Mode, url string, rc *config.ResolvedConfig) (map[string]any, error) {
	start := time.Now()
	artifacts := map[string]any{
		"GatherContext": map[string]any{"gatherMode": string(mode)},
		"URL":           url,
		"HostUserAgent": rc.Settings.EmulatedUserAgent,
	}

	contexts := make(map[string]*gather.Context, len(rc.Artifacts))
	for _, defn := range rc.Artifacts {
		contexts[defn.ID] = &gather.Context{Mode: mode, URL: url, Driver: driver}
	}

	instrument := func(stop bool) error {
		for _, defn := range rc.Artifacts {
			in, ok := defn.Gatherer.Instance.(gather.Instrumenter)
			if !ok {
				continue
			}
			var err error
			if stop {
				err = in.StopInstrumentation(ctx, contexts[defn.ID])
			} else {
				err = in.StartInstrumentation(ctx, contexts[defn.ID])
			}
			if err != nil {
				return fmt.Errorf("instrument artifact %q: %w", defn.ID, err)
			}
		}
		return nil
	}

	switch mode {
	case gather.ModeNavigation:
		if err := driver.Run(chromedp.Navigate(rc.Settings.BlankPage)); err != nil {
			return nil, fmt.Errorf("prepare blank page: %w", err)
		}
		if err := instrument(false); err != nil {
			return nil, err
		}
		if err := driver.Run(chromedp.Navigate(url), chromedp.WaitReady("body")); err != nil {
			return nil, fmt.Errorf("navigate %q: %w", url, err)
		}
		if err := instrument(true); err != nil {
			return nil, err
		}
	case gather.ModeTimespan:
		if err := driver.Run(chromedp.Navigate(url), chromedp.WaitReady("body")); err != nil {
			return nil, fmt.Errorf("navigate %q: %w", url, err)
		}
		if err := instrument(false); err != nil {
			return nil, err
		}
		r.log.Debug("observing timespan", slog.Duration("window", r.opts.TimespanDuration))
		select {
		case <-time.After(r.opts.TimespanDuration):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if err := instrument(true); err != nil {
			return nil, err
		}
	case gather.ModeSnapshot:
		if err := driver.Run(chromedp.Navigate(url), chromedp.WaitReady("body")); err != nil {
			return nil, fmt.Errorf("navigate %q: %w", url, err)
		}
	}

	// Collection is strictly sequential: later gatherers read earlier
	// gatherers' artifacts through their dependency edges.
	for _, defn := range rc.Artifacts {
		gctx := contexts[defn.ID]
		if len(defn.Dependencies) > 0 {
			gctx.Dependencies = make(map[string]any, len(defn.Dependencies))
			for name, dep := range defn.Dependencies {
				gctx.Dependencies[name] = artifacts[dep.ID]
			}
		}
		art, err := defn.Gatherer.Instance.GetArtifact(ctx, gctx)
		if err != nil {
			return nil, fmt.Errorf("gather artifact %q: %w", defn.ID, err)
		}
		artifacts[defn.ID] = art
		r.log.Debug("artifact collected", slog.String("id", defn.ID))
	}

	artifacts["Timing"] = map[string]any{"gatherMs": time.Since(start).Milliseconds()}
	return artifacts, nil
}

// runAudits executes audits concurrently against the immutable artifact
// map. A failing audit records an error result; it does not abort the run.
func (r *Runner) runAudits(ctx context.Context, mode gather.Mode, rc *config.ResolvedConfig, artifacts map[string]any) (map[string]*audit.Result, error) {
	results := make([]*audit.Result, len(rc.Audits))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.AuditConcurrency)
	for i, defn := range rc.Audits {
		g.Go(func() error {
			results[i] = r.runOne(gctx, mode, defn, artifacts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[string]*audit.Result, len(results))
	for i, defn := range rc.Audits {
		byID[defn.Implementation.Meta().ID] = results[i]
	}
	return byID, nil
}

func (r *Runner) runOne(ctx context.Context, mode gather.Mode, defn *config.AuditDefn, artifacts map[string]any) *audit.Result {
	meta := defn.Implementation.Meta()
	switch meta.DisplayMode() {
	case audit.ScoreManual, audit.ScoreInformative:
		return &audit.Result{ScoreDisplayMode: meta.DisplayMode()}
	}

	for _, req := range meta.RequiredArtifacts {
		if _, ok := artifacts[req]; !ok {
			return &audit.Result{
				ScoreDisplayMode: audit.ScoreError,
				DisplayValue:     fmt.Sprintf("missing required artifact %q", req),
			}
		}
	}

	res, err := defn.Implementation.Audit(ctx, &audit.Context{
		Artifacts: artifacts,
		Options:   defn.Options,
		Mode:      mode,
	})
	if err != nil {
		r.log.Warn("audit failed", slog.String("id", meta.ID), slog.Any("error", err))
		return &audit.Result{
			ScoreDisplayMode: audit.ScoreError,
			DisplayValue:     err.Error(),
		}
	}
	if res == nil {
		res = &audit.Result{ScoreDisplayMode: audit.ScoreError, DisplayValue: "audit produced no result"}
	}
	return res
}

// scoreCategories rolls audit scores up into weighted category scores.
// Unscored results (manual, informative, notApplicable, error) contribute
// nothing.
func scoreCategories(rc *config.ResolvedConfig, results map[string]*audit.Result) map[string]CategoryResult {
	out := make(map[string]CategoryResult, len(rc.Categories))
	for id, cat := range rc.Categories {
		var sum, weight float64
		for _, ref := range cat.AuditRefs {
			if ref.Weight <= 0 {
				continue
			}
			res, ok := results[ref.ID]
			if !ok || res.Score == nil {
				continue
			}
			sum += *res.Score * ref.Weight
			weight += ref.Weight
		}
		score := 0.0
		if weight > 0 {
			score = sum / weight
		}
		out[id] = CategoryResult{Title: cat.Title, Score: score}
	}
	return out
}
