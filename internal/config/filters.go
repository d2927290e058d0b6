package config

import (
	"beacon/internal/audit"
	"beacon/internal/gather"
	"beacon/internal/logging"
)

// filterByGatherMode prunes the resolved config down to what can run under
// mode m, cascading artifacts → audits → categories. The input is not
// mutated; filtering is idempotent.
func filterByGatherMode(rc *ResolvedConfig, m gather.Mode) *ResolvedConfig {
	out := &ResolvedConfig{
		Settings: rc.Settings,
		Groups:   rc.Groups,
	}

	available := make(map[string]bool, len(rc.Artifacts)+len(baseArtifactIDs))
	for _, id := range baseArtifactIDs {
		available[id] = true
	}
	for _, a := range rc.Artifacts {
		if gather.SupportsMode(a.Gatherer.Instance.Meta().SupportedModes, m) {
			out.Artifacts = append(out.Artifacts, a)
			available[a.ID] = true
		}
	}

	surviving := make(map[string]bool)
	for _, d := range rc.Audits {
		meta := d.Implementation.Meta()
		if len(meta.SupportedModes) > 0 && !gather.SupportsMode(meta.SupportedModes, m) {
			continue
		}
		ok := true
		for _, req := range meta.RequiredArtifacts {
			if !available[req] {
				ok = false
				break
			}
		}
		if ok {
			out.Audits = append(out.Audits, d)
			surviving[meta.ID] = true
		}
	}

	if rc.Categories != nil {
		out.Categories = make(map[string]*Category, len(rc.Categories))
		for id, cat := range rc.Categories {
			if len(cat.SupportedModes) > 0 && !gather.SupportsMode(cat.SupportedModes, m) {
				continue
			}
			pruned := cloneCategory(cat)
			pruned.AuditRefs = nil
			hasScored := false
			for _, ref := range cat.AuditRefs {
				if !surviving[ref.ID] {
					continue
				}
				pruned.AuditRefs = append(pruned.AuditRefs, ref)
				if !refIsManual(rc, ref.ID) {
					hasScored = true
				}
			}
			// A category with only manual refs left carries no signal for
			// this mode; mute it rather than dropping it.
			if !hasScored {
				pruned.AuditRefs = nil
			}
			out.Categories[id] = pruned
		}
	}
	return out
}

func refIsManual(rc *ResolvedConfig, auditID string) bool {
	for _, d := range rc.Audits {
		meta := d.Implementation.Meta()
		if meta.ID == auditID {
			return meta.DisplayMode() == audit.ScoreManual
		}
	}
	return false
}

// filterByExplicitFilters applies the user's onlyCategories / onlyAudits /
// skipAudits selections, cascading audits → artifacts → categories.
// Unknown onlyCategories, onlyAudits, and skipAudits entries warn and are
// skipped; they never fail the resolution.
func filterByExplicitFilters(rc *ResolvedConfig, warnings *logging.Warnings) *ResolvedConfig {
	s := rc.Settings
	onlyCategories := s.OnlyCategories
	onlyAudits := s.OnlyAudits
	skipAudits := s.SkipAudits

	if len(onlyCategories) == 0 && len(onlyAudits) == 0 && len(skipAudits) == 0 {
		return rc
	}

	keep := make(map[string]bool)
	switch {
	case len(onlyCategories) > 0:
		for _, catID := range onlyCategories {
			cat, ok := rc.Categories[catID]
			if !ok {
				warnings.Warnf("unknown category in onlyCategories: %q", catID)
				continue
			}
			for _, ref := range cat.AuditRefs {
				keep[ref.ID] = true
			}
		}
	case len(onlyAudits) > 0:
		// Populated solely by the onlyAudits union below.
	default:
		for _, cat := range rc.Categories {
			for _, ref := range cat.AuditRefs {
				keep[ref.ID] = true
			}
		}
	}
	for _, id := range filterResistantAuditIDs {
		keep[id] = true
	}

	known := make(map[string]bool, len(rc.Audits))
	for _, d := range rc.Audits {
		known[d.Implementation.Meta().ID] = true
	}
	for _, id := range onlyAudits {
		if !known[id] {
			warnings.Warnf("unknown audit in onlyAudits: %q", id)
			continue
		}
		keep[id] = true
	}
	for _, id := range skipAudits {
		if !known[id] {
			warnings.Warnf("unknown audit in skipAudits: %q", id)
			continue
		}
		delete(keep, id)
	}

	out := &ResolvedConfig{
		Settings: rc.Settings,
		Groups:   rc.Groups,
	}

	requiredArtifacts := make(map[string]bool)
	for _, d := range rc.Audits {
		meta := d.Implementation.Meta()
		if !keep[meta.ID] {
			continue
		}
		out.Audits = append(out.Audits, d)
		for _, req := range meta.RequiredArtifacts {
			requiredArtifacts[req] = true
		}
	}

	// The full-page screenshot rides along unless explicitly disabled.
	if !s.DisableFullPageScreenshot {
		requiredArtifacts["FullPageScreenshot"] = true
	}

	// Artifact-to-artifact dependencies keep their producers alive; iterate
	// to a fixpoint since producers may have producers.
	for {
		grew := false
		for _, a := range rc.Artifacts {
			if !requiredArtifacts[a.ID] {
				continue
			}
			for _, dep := range a.Dependencies {
				if !requiredArtifacts[dep.ID] {
					requiredArtifacts[dep.ID] = true
					grew = true
				}
			}
		}
		if !grew {
			break
		}
	}

	for _, a := range rc.Artifacts {
		if requiredArtifacts[a.ID] {
			out.Artifacts = append(out.Artifacts, a)
		}
	}

	restrict := make(map[string]bool, len(onlyCategories))
	for _, id := range onlyCategories {
		restrict[id] = true
	}
	surviving := make(map[string]bool, len(out.Audits))
	for _, d := range out.Audits {
		surviving[d.Implementation.Meta().ID] = true
	}

	out.Categories = make(map[string]*Category)
	for id, cat := range rc.Categories {
		if len(restrict) > 0 && !restrict[id] {
			continue
		}
		pruned := cloneCategory(cat)
		pruned.AuditRefs = nil
		for _, ref := range cat.AuditRefs {
			if surviving[ref.ID] {
				pruned.AuditRefs = append(pruned.AuditRefs, ref)
			}
		}
		if len(pruned.AuditRefs) == 0 {
			continue
		}
		out.Categories[id] = pruned
	}
	return out
}
