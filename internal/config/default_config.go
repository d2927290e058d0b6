package config

import (
	"beacon/internal/audit"
	"beacon/internal/audit/audits"
	"beacon/internal/gather"
	"beacon/internal/gather/gatherers"
)

// CoreRegistry returns a registry pre-populated with every built-in
// gatherer and audit.
func CoreRegistry() *Registry {
	r := NewRegistry()

	coreGatherers := map[string]func() gather.Gatherer{
		"ConsoleMessages":    gatherers.NewConsoleMessages,
		"MetaElements":       gatherers.NewMetaElements,
		"DOMStats":           gatherers.NewDOMStats,
		"ImageElements":      gatherers.NewImageElements,
		"Scripts":            gatherers.NewScripts,
		"SourceMaps":         gatherers.NewSourceMaps,
		"Trace":              gatherers.NewTrace,
		"TraceElements":      gatherers.NewTraceElements,
		"FullPageScreenshot": gatherers.NewFullPageScreenshot,
		"BFCacheFailures":    gatherers.NewBFCacheFailures,
	}
	for name, ctor := range coreGatherers {
		r.registerCoreGatherer(name, ctor)
	}

	coreAudits := []audit.Audit{
		&audits.ErrorsInConsole{},
		&audits.Viewport{},
		&audits.DocumentTitle{},
		&audits.DOMSize{},
		&audits.ImageAlt{},
		&audits.UnsizedImages{},
		&audits.LCPLazyLoaded{},
		&audits.LargestContentfulPaint{},
		&audits.BFCache{},
		&audits.ValidSourceMaps{},
		&audits.FocusTraps{},
	}
	for _, a := range coreAudits {
		r.registerCoreAudit(a.Meta().ID, a)
	}
	return r
}

// DefaultConfig returns a fresh copy of the built-in default config.
// Artifact declaration order matters: an artifact may only depend on
// artifacts declared before it.
func DefaultConfig() *Config {
	return &Config{
		Settings: map[string]any{},
		Artifacts: []*ArtifactConfig{
			{ID: "ConsoleMessages", Gatherer: "ConsoleMessages"},
			{ID: "MetaElements", Gatherer: "MetaElements"},
			{ID: "DOMStats", Gatherer: "DOMStats"},
			{ID: "ImageElements", Gatherer: "ImageElements"},
			{ID: "Scripts", Gatherer: "Scripts"},
			{ID: "SourceMaps", Gatherer: "SourceMaps"},
			{ID: "Trace", Gatherer: "Trace"},
			{ID: "TraceElements", Gatherer: "TraceElements"},
			{ID: "FullPageScreenshot", Gatherer: "FullPageScreenshot"},
			{ID: "BFCacheFailures", Gatherer: "BFCacheFailures"},
		},
		Audits: []*AuditConfig{
			{Path: "errors-in-console"},
			{Path: "viewport"},
			{Path: "document-title"},
			{Path: "dom-size"},
			{Path: "image-alt"},
			{Path: "unsized-images"},
			{Path: "lcp-lazy-loaded"},
			{Path: "largest-contentful-paint"},
			{Path: "bf-cache"},
			{Path: "valid-source-maps"},
			{Path: "focus-traps"},
		},
		Categories: map[string]*Category{
			"performance": {
				Title: "Performance",
				AuditRefs: []*AuditRef{
					{ID: "largest-contentful-paint", Weight: 3},
					{ID: "dom-size", Weight: 1},
					{ID: "bf-cache", Weight: 1},
					{ID: "unsized-images", Weight: 1},
					{ID: "lcp-lazy-loaded", Weight: 1},
				},
			},
			"accessibility": {
				Title:             "Accessibility",
				Description:       "These checks highlight opportunities to improve the accessibility of your web app.",
				ManualDescription: "These items address areas that automated testing cannot cover.",
				AuditRefs: []*AuditRef{
					{ID: "image-alt", Weight: 3, Group: "a11y-names-labels"},
					{ID: "focus-traps", Weight: 0},
				},
			},
			"best-practices": {
				Title: "Best Practices",
				AuditRefs: []*AuditRef{
					{ID: "errors-in-console", Weight: 1, Group: "best-practices-general"},
					{ID: "valid-source-maps", Weight: 1, Group: "best-practices-general"},
				},
			},
			"seo": {
				Title:       "SEO",
				Description: "These checks ensure your page can be crawled and understood by search engines.",
				AuditRefs: []*AuditRef{
					{ID: "document-title", Weight: 1, Group: "seo-content"},
					{ID: "viewport", Weight: 1, Group: "seo-mobile"},
				},
			},
		},
		Groups: map[string]*Group{
			"a11y-names-labels": {
				Title:       "Names and labels",
				Description: "These are opportunities to give controls and media the names assistive technology announces.",
			},
			"best-practices-general": {
				Title: "General",
			},
			"seo-content": {
				Title: "Content best practices",
			},
			"seo-mobile": {
				Title: "Mobile friendly",
			},
		},
	}
}
