package audits

import (
	"beacon/internal/audit"
)

// FocusTraps is an advisory check that cannot be automated: a human must
// tab through the page and confirm focus is never trapped.
type FocusTraps struct {
	audit.Unimplemented
}

func (*FocusTraps) Meta() audit.Meta {
	return audit.Meta{
		ID:                "focus-traps",
		Title:             "User focus is not accidentally trapped in a region",
		Description:       "A user can tab into and out of any control or region without accidentally trapping their focus.",
		RequiredArtifacts: []string{},
		ScoreDisplayMode:  audit.ScoreManual,
	}
}
