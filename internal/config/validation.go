package config

import (
	"fmt"

	"beacon/internal/audit"
	"beacon/internal/gather"
)

// assertValidGatherer checks the gatherer contract at resolution time: a
// meta descriptor with at least one supported mode and a real GetArtifact
// implementation, not the abstract base.
func assertValidGatherer(artifactID string, gd *GathererDefn) error {
	if gd == nil || gd.Instance == nil {
		return fmt.Errorf("%w: artifact %q resolved to no gatherer", ErrGathererShape, artifactID)
	}
	if gather.IsBase(gd.Instance) {
		return fmt.Errorf("%w: artifact %q gatherer does not implement GetArtifact", ErrGathererShape, artifactID)
	}
	meta := gd.Instance.Meta()
	if len(meta.SupportedModes) == 0 {
		return fmt.Errorf("%w: artifact %q gatherer supports no gather modes", ErrGathererShape, artifactID)
	}
	for _, m := range meta.SupportedModes {
		if !m.Valid() {
			return fmt.Errorf("%w: artifact %q gatherer declares unknown mode %q", ErrGathererShape, artifactID, m)
		}
	}
	return nil
}

// assertValidArtifacts re-checks the resolved artifact set as a whole:
// unique ids and well-formed gatherers.
func assertValidArtifacts(artifacts []*ArtifactDefn) error {
	seen := make(map[string]bool, len(artifacts))
	for _, a := range artifacts {
		if seen[a.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateArtifact, a.ID)
		}
		seen[a.ID] = true
		if err := assertValidGatherer(a.ID, a.Gatherer); err != nil {
			return err
		}
	}
	return nil
}

// assertValidAudit checks one audit implementation against the audit
// contract.
func assertValidAudit(d *AuditDefn) error {
	if d.Implementation == nil {
		return fmt.Errorf("%w: audit %q has no implementation", ErrAuditShape, d.Path)
	}
	if audit.IsUnimplemented(d.Implementation) {
		return fmt.Errorf("%w: audit %q does not implement Audit", ErrAuditShape, d.Path)
	}
	meta := d.Implementation.Meta()
	if meta.ID == "" {
		return fmt.Errorf("%w: audit %q has no meta id", ErrAuditShape, d.Path)
	}
	if meta.Title == "" {
		return fmt.Errorf("%w: audit %q has no title", ErrAuditShape, meta.ID)
	}
	if meta.DisplayMode() == audit.ScoreBinary && meta.FailureTitle == "" {
		return fmt.Errorf("%w: binary audit %q has no failureTitle", ErrAuditShape, meta.ID)
	}
	if meta.Description == "" {
		return fmt.Errorf("%w: audit %q has no description", ErrAuditShape, meta.ID)
	}
	if meta.RequiredArtifacts == nil {
		return fmt.Errorf("%w: audit %q declares no requiredArtifacts list", ErrAuditShape, meta.ID)
	}
	return nil
}

func assertValidAudits(audits []*AuditDefn) error {
	for _, d := range audits {
		if err := assertValidAudit(d); err != nil {
			return err
		}
	}
	return nil
}

// assertValidCategories cross-checks category audit references against the
// resolved audits and groups. The accessibility category additionally
// requires every non-manual audit to declare a group, and a weighted audit
// must never be manual.
func assertValidCategories(categories map[string]*Category, audits []*AuditDefn, groups map[string]*Group) error {
	auditsByID := make(map[string]*AuditDefn, len(audits))
	for _, a := range audits {
		auditsByID[a.Implementation.Meta().ID] = a
	}

	for catID, cat := range categories {
		for _, ref := range cat.AuditRefs {
			defn, ok := auditsByID[ref.ID]
			if !ok {
				return fmt.Errorf("%w: category %q references unknown audit %q", ErrCategoryReference, catID, ref.ID)
			}
			meta := defn.Implementation.Meta()
			isManual := meta.DisplayMode() == audit.ScoreManual
			if ref.Weight > 0 && isManual {
				return fmt.Errorf("%w: category %q gives weight to manual audit %q", ErrCategoryReference, catID, ref.ID)
			}
			if catID == "accessibility" && ref.Group == "" && !isManual {
				return fmt.Errorf("%w: accessibility audit %q is missing a group", ErrCategoryReference, ref.ID)
			}
			if ref.Group != "" {
				if _, ok := groups[ref.Group]; !ok {
					return fmt.Errorf("%w: category %q audit %q references unknown group %q",
						ErrCategoryReference, catID, ref.ID, ref.Group)
				}
			}
		}
	}
	return nil
}

// validateSettings applies the settings sanity assertions: no audit may be
// both skipped and exclusively selected, and the emulated screen must agree
// with the declared form factor unless emulation is disabled.
func validateSettings(s *Settings) error {
	if len(s.OnlyAudits) > 0 && len(s.SkipAudits) > 0 {
		skip := make(map[string]bool, len(s.SkipAudits))
		for _, id := range s.SkipAudits {
			skip[id] = true
		}
		for _, id := range s.OnlyAudits {
			if skip[id] {
				return fmt.Errorf("%w: audit %q appears in both onlyAudits and skipAudits", ErrSettings, id)
			}
		}
	}

	switch s.FormFactor {
	case "mobile", "desktop":
	default:
		return fmt.Errorf("%w: unknown formFactor %q", ErrSettings, s.FormFactor)
	}

	if s.ScreenEmulation != nil && !s.ScreenEmulation.Disabled {
		mobile := s.FormFactor == "mobile"
		if s.ScreenEmulation.Mobile != mobile {
			return fmt.Errorf("%w: screenEmulation.mobile=%v contradicts formFactor=%q",
				ErrSettings, s.ScreenEmulation.Mobile, s.FormFactor)
		}
	}
	return nil
}

// validateResolvedConfig is the batch of structural assertions run once the
// graph and audits are both resolved, before any filtering.
func validateResolvedConfig(rc *ResolvedConfig) error {
	if err := assertValidArtifacts(rc.Artifacts); err != nil {
		return err
	}
	if err := assertValidAudits(rc.Audits); err != nil {
		return err
	}
	if err := assertValidCategories(rc.Categories, rc.Audits, rc.Groups); err != nil {
		return err
	}
	return validateSettings(rc.Settings)
}
