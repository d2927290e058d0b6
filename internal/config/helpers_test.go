package config

import (
	"context"

	"beacon/internal/audit"
	"beacon/internal/gather"
)

// stubGatherer is a minimal in-memory gatherer for resolution tests.
type stubGatherer struct {
	gather.Base
	meta gather.Meta
}

func (g *stubGatherer) Meta() gather.Meta { return g.meta }

func (g *stubGatherer) GetArtifact(context.Context, *gather.Context) (any, error) {
	return "stub", nil
}

// stubAudit is a minimal in-memory audit for resolution tests.
type stubAudit struct {
	audit.Unimplemented
	meta audit.Meta
}

func (a *stubAudit) Meta() audit.Meta { return a.meta }

func (a *stubAudit) Audit(context.Context, *audit.Context) (*audit.Result, error) {
	return audit.Binary(true), nil
}

func stubAuditMeta(id string, required []string, modes ...gather.Mode) audit.Meta {
	return audit.Meta{
		ID:                id,
		Title:             "Stub " + id,
		FailureTitle:      "Stub " + id + " failed",
		Description:       "Test-only audit.",
		RequiredArtifacts: required,
		SupportedModes:    modes,
	}
}

func artifactIDs(defns []*ArtifactDefn) []string {
	ids := make([]string, 0, len(defns))
	for _, d := range defns {
		ids = append(ids, d.ID)
	}
	return ids
}

func auditIDs(defns []*AuditDefn) []string {
	ids := make([]string, 0, len(defns))
	for _, d := range defns {
		ids = append(ids, d.Implementation.Meta().ID)
	}
	return ids
}

func refIDs(cat *Category) []string {
	if cat == nil {
		return nil
	}
	ids := make([]string, 0, len(cat.AuditRefs))
	for _, r := range cat.AuditRefs {
		ids = append(ids, r.ID)
	}
	return ids
}
