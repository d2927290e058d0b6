package audits

import (
	"context"
	"strings"

	"beacon/internal/audit"
	"beacon/internal/gather"
	"beacon/internal/gather/gatherers"
)

// Viewport checks for a meta viewport tag that enables mobile-friendly
// scaling.
type Viewport struct {
	audit.Unimplemented
}

func (*Viewport) Meta() audit.Meta {
	return audit.Meta{
		ID:                "viewport",
		Title:             "Has a viewport meta tag",
		FailureTitle:      "Does not have a viewport meta tag",
		Description:       "A viewport meta tag optimizes the page for mobile screen sizes and prevents the tap-delay heuristic.",
		RequiredArtifacts: []string{"MetaElements"},
		SupportedModes:    []gather.Mode{gather.ModeNavigation, gather.ModeSnapshot},
	}
}

func (*Viewport) Audit(_ context.Context, actx *audit.Context) (*audit.Result, error) {
	metas, _ := actx.Artifacts["MetaElements"].(gatherers.MetaElementsArtifact)
	for _, m := range metas.Metas {
		if m.Name == "viewport" && strings.Contains(m.Content, "width=") {
			return audit.Binary(true), nil
		}
	}
	return audit.Binary(false), nil
}

// DocumentTitle checks that the document has a non-empty title.
type DocumentTitle struct {
	audit.Unimplemented
}

func (*DocumentTitle) Meta() audit.Meta {
	return audit.Meta{
		ID:                "document-title",
		Title:             "Document has a title element",
		FailureTitle:      "Document does not have a title element",
		Description:       "The title describes the page to searchers and screen-reader users.",
		RequiredArtifacts: []string{"MetaElements"},
		SupportedModes:    []gather.Mode{gather.ModeNavigation, gather.ModeSnapshot},
	}
}

func (*DocumentTitle) Audit(_ context.Context, actx *audit.Context) (*audit.Result, error) {
	metas, _ := actx.Artifacts["MetaElements"].(gatherers.MetaElementsArtifact)
	return audit.Binary(strings.TrimSpace(metas.Title) != ""), nil
}
