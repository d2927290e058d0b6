package config

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"beacon/internal/audit"
	"beacon/internal/gather"
	"beacon/internal/logging"
)

func quietWarnings() *logging.Warnings {
	return logging.NewWarnings(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func modedArtifact(id string, deps map[string]Dependency, modes ...gather.Mode) *ArtifactDefn {
	return &ArtifactDefn{
		ID: id,
		Gatherer: &GathererDefn{
			Path:     id,
			Instance: &stubGatherer{meta: gather.Meta{SupportedModes: modes}},
		},
		Dependencies: deps,
	}
}

// filterFixture builds a resolved config with artifacts and audits spread
// across the three lifecycles, pre-filtering.
func filterFixture() *ResolvedConfig {
	navAudit := &stubAudit{meta: stubAuditMeta("nav-audit", []string{"NavOnly"}, gather.ModeNavigation)}
	sharedAudit := &stubAudit{meta: stubAuditMeta("shared-audit", []string{"Shared"})}
	depAudit := &stubAudit{meta: stubAuditMeta("dep-audit", []string{"SharedDep"})}
	baseAudit := &stubAudit{meta: stubAuditMeta("base-audit", []string{"URL"})}
	manualAudit := &stubAudit{meta: audit.Meta{
		ID: "manual-audit", Title: "t", Description: "d",
		RequiredArtifacts: []string{},
		ScoreDisplayMode:  audit.ScoreManual,
	}}

	return &ResolvedConfig{
		Settings: &Settings{FormFactor: "mobile"},
		Artifacts: []*ArtifactDefn{
			modedArtifact("NavOnly", nil, gather.ModeNavigation),
			modedArtifact("Shared", nil, gather.AllModes...),
			modedArtifact("SharedDep", map[string]Dependency{"shared": {ID: "Shared"}}, gather.AllModes...),
			modedArtifact("FullPageScreenshot", nil, gather.AllModes...),
		},
		Audits: []*AuditDefn{
			{Path: "nav-audit", Implementation: navAudit},
			{Path: "shared-audit", Implementation: sharedAudit},
			{Path: "dep-audit", Implementation: depAudit},
			{Path: "base-audit", Implementation: baseAudit},
			{Path: "manual-audit", Implementation: manualAudit},
		},
		Categories: map[string]*Category{
			"main": {Title: "Main", AuditRefs: []*AuditRef{
				{ID: "nav-audit", Weight: 1},
				{ID: "shared-audit", Weight: 1},
				{ID: "dep-audit", Weight: 1},
				{ID: "base-audit", Weight: 1},
				{ID: "manual-audit", Weight: 0},
			}},
			"navcat": {
				Title:          "Navigation only",
				SupportedModes: []gather.Mode{gather.ModeNavigation},
				AuditRefs:      []*AuditRef{{ID: "nav-audit", Weight: 1}},
			},
			"manualcat": {Title: "Manual only", AuditRefs: []*AuditRef{
				{ID: "manual-audit", Weight: 0},
			}},
		},
		Groups: map[string]*Group{"g": {Title: "Group"}},
	}
}

func TestFilterByGatherMode_Navigation(t *testing.T) {
	got := filterByGatherMode(filterFixture(), gather.ModeNavigation)

	wantArtifacts := []string{"NavOnly", "Shared", "SharedDep", "FullPageScreenshot"}
	if diff := cmp.Diff(wantArtifacts, artifactIDs(got.Artifacts)); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}
	wantAudits := []string{"nav-audit", "shared-audit", "dep-audit", "base-audit", "manual-audit"}
	if diff := cmp.Diff(wantAudits, auditIDs(got.Audits)); diff != "" {
		t.Errorf("audit mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got.Categories["navcat"]; !ok {
		t.Error("navcat should survive navigation filtering")
	}
	// A category whose surviving refs are all manual carries no signal.
	if refs := got.Categories["manualcat"].AuditRefs; refs != nil {
		t.Errorf("manualcat refs = %v, want muted (nil)", refs)
	}
}

func TestFilterByGatherMode_Snapshot(t *testing.T) {
	got := filterByGatherMode(filterFixture(), gather.ModeSnapshot)

	wantArtifacts := []string{"Shared", "SharedDep", "FullPageScreenshot"}
	if diff := cmp.Diff(wantArtifacts, artifactIDs(got.Artifacts)); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}
	wantAudits := []string{"shared-audit", "dep-audit", "base-audit", "manual-audit"}
	if diff := cmp.Diff(wantAudits, auditIDs(got.Audits)); diff != "" {
		t.Errorf("audit mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got.Categories["navcat"]; ok {
		t.Error("navcat should be dropped outside navigation")
	}
	wantRefs := []string{"shared-audit", "dep-audit", "base-audit", "manual-audit"}
	if diff := cmp.Diff(wantRefs, refIDs(got.Categories["main"])); diff != "" {
		t.Errorf("main refs mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterByGatherMode_Idempotent(t *testing.T) {
	once := filterByGatherMode(filterFixture(), gather.ModeSnapshot)
	twice := filterByGatherMode(once, gather.ModeSnapshot)

	if diff := cmp.Diff(artifactIDs(once.Artifacts), artifactIDs(twice.Artifacts)); diff != "" {
		t.Errorf("artifact set changed on second pass (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(auditIDs(once.Audits), auditIDs(twice.Audits)); diff != "" {
		t.Errorf("audit set changed on second pass (-once +twice):\n%s", diff)
	}
	if diff := cmp.Diff(refIDs(once.Categories["main"]), refIDs(twice.Categories["main"])); diff != "" {
		t.Errorf("category refs changed on second pass (-once +twice):\n%s", diff)
	}
}

func TestFilterByExplicitFilters_NoFiltersPassThrough(t *testing.T) {
	rc := filterFixture()
	got := filterByExplicitFilters(rc, quietWarnings())
	if got != rc {
		t.Error("no filters should return the input untouched")
	}
}

func TestFilterByExplicitFilters_OnlyCategories(t *testing.T) {
	rc := filterFixture()
	rc.Settings.OnlyCategories = []string{"navcat"}

	got := filterByExplicitFilters(rc, quietWarnings())

	if diff := cmp.Diff([]string{"nav-audit"}, auditIDs(got.Audits)); diff != "" {
		t.Errorf("audit mismatch (-want +got):\n%s", diff)
	}
	// nav-audit pulls NavOnly; the screenshot rides along by default.
	wantArtifacts := []string{"NavOnly", "FullPageScreenshot"}
	if diff := cmp.Diff(wantArtifacts, artifactIDs(got.Artifacts)); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}
	if len(got.Categories) != 1 {
		t.Errorf("categories = %d, want just navcat", len(got.Categories))
	}
	if _, ok := got.Categories["navcat"]; !ok {
		t.Error("navcat missing from filtered config")
	}
}

func TestFilterByExplicitFilters_UnknownCategoryWarns(t *testing.T) {
	rc := filterFixture()
	rc.Settings.OnlyCategories = []string{"no-such-category", "navcat"}

	warnings := quietWarnings()
	got := filterByExplicitFilters(rc, warnings)

	msgs := warnings.Messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "no-such-category") {
		t.Errorf("warnings = %v, want one naming the unknown category", msgs)
	}
	if _, ok := got.Categories["navcat"]; !ok {
		t.Error("known category should still be applied")
	}
}

func TestFilterByExplicitFilters_UnknownAuditWarns(t *testing.T) {
	cases := []struct {
		name string
		set  func(s *Settings)
	}{
		{"onlyAudits", func(s *Settings) { s.OnlyAudits = []string{"no-such-audit", "shared-audit"} }},
		{"skipAudits", func(s *Settings) { s.SkipAudits = []string{"no-such-audit"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rc := filterFixture()
			tc.set(rc.Settings)

			warnings := quietWarnings()
			filterByExplicitFilters(rc, warnings)

			msgs := warnings.Messages()
			if len(msgs) != 1 || !strings.Contains(msgs[0], "no-such-audit") {
				t.Errorf("warnings = %v, want one naming the unknown audit", msgs)
			}
		})
	}
}

func TestFilterByExplicitFilters_UnknownSkipLeavesAuditsAlone(t *testing.T) {
	rc := filterFixture()
	rc.Settings.SkipAudits = []string{"no-such-audit"}

	got := filterByExplicitFilters(rc, quietWarnings())

	want := auditIDs(rc.Audits)
	if diff := cmp.Diff(want, auditIDs(got.Audits)); diff != "" {
		t.Errorf("audits changed by unknown skip entry (-want +got):\n%s", diff)
	}
}

func TestFilterByExplicitFilters_OnlyAudits(t *testing.T) {
	rc := filterFixture()
	rc.Settings.OnlyAudits = []string{"dep-audit"}

	got := filterByExplicitFilters(rc, quietWarnings())

	if diff := cmp.Diff([]string{"dep-audit"}, auditIDs(got.Audits)); diff != "" {
		t.Errorf("audit mismatch (-want +got):\n%s", diff)
	}
	// SharedDep depends on Shared; the producer must ride along.
	wantArtifacts := []string{"Shared", "SharedDep", "FullPageScreenshot"}
	if diff := cmp.Diff(wantArtifacts, artifactIDs(got.Artifacts)); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterByExplicitFilters_SkipAudits(t *testing.T) {
	rc := filterFixture()
	rc.Settings.SkipAudits = []string{"nav-audit"}

	got := filterByExplicitFilters(rc, quietWarnings())

	for _, id := range auditIDs(got.Audits) {
		if id == "nav-audit" {
			t.Fatal("nav-audit should be skipped")
		}
	}
	// navcat's only audit was skipped; the category is dropped.
	if _, ok := got.Categories["navcat"]; ok {
		t.Error("navcat should be dropped when its last audit is skipped")
	}
	if _, ok := got.Categories["main"]; !ok {
		t.Error("main should survive with its remaining audits")
	}
}

func TestFilterByExplicitFilters_ScreenshotDisabled(t *testing.T) {
	rc := filterFixture()
	rc.Settings.OnlyAudits = []string{"shared-audit"}
	rc.Settings.DisableFullPageScreenshot = true

	got := filterByExplicitFilters(rc, quietWarnings())

	if diff := cmp.Diff([]string{"Shared"}, artifactIDs(got.Artifacts)); diff != "" {
		t.Errorf("artifact mismatch (-want +got):\n%s", diff)
	}
}
