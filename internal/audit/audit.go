// Package audit defines the audit contract: the meta descriptor the config
// resolver validates and filters on, and the Audit interface the runner
// invokes with collected artifacts.
package audit

import (
	"context"
	"errors"

	"beacon/internal/gather"
)

// Score display modes. Binary audits must carry a FailureTitle; manual
// audits are advisory and never contribute to a category score.
const (
	ScoreBinary        = "binary"
	ScoreNumeric       = "numeric"
	ScoreManual        = "manual"
	ScoreInformative   = "informative"
	ScoreNotApplicable = "notApplicable"
	ScoreError         = "error"
)

// Meta describes an audit to the resolver and to report consumers.
type Meta struct {
	ID                string
	Title             string
	FailureTitle      string
	Description       string
	RequiredArtifacts []string
	SupportedModes    []gather.Mode
	ScoreDisplayMode  string
}

// DisplayMode returns the effective score display mode, defaulting to binary.
func (m Meta) DisplayMode() string {
	if m.ScoreDisplayMode == "" {
		return ScoreBinary
	}
	return m.ScoreDisplayMode
}

// Context carries per-audit inputs: the collected artifacts keyed by
// artifact id, the audit's resolved options, and the gather mode the run
// executed under.
type Context struct {
	Artifacts map[string]any
	Options   map[string]any
	Mode      gather.Mode
}

// Result is the outcome of one audit. Score is nil for modes that do not
// score (manual, informative, notApplicable, error).
type Result struct {
	Score            *float64
	ScoreDisplayMode string
	NumericValue     float64
	NumericUnit      string
	DisplayValue     string
	Details          any
}

// Binary builds a pass/fail result.
func Binary(passed bool) *Result {
	score := 0.0
	if passed {
		score = 1.0
	}
	return &Result{Score: &score, ScoreDisplayMode: ScoreBinary}
}

// Numeric builds a graded result with the given 0-1 score.
func Numeric(score float64) *Result {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return &Result{Score: &score, ScoreDisplayMode: ScoreNumeric}
}

// Audit scores one aspect of the page from already-gathered artifacts.
// Implementations embed Unimplemented and override Audit; the validator
// rejects a bare *Unimplemented.
type Audit interface {
	Meta() Meta
	Audit(ctx context.Context, actx *Context) (*Result, error)
}

// Unimplemented is the abstract audit, kept for embedding and for the
// validator's identity check.
type Unimplemented struct{}

// ErrNotOverridden is returned by the abstract Audit so that a scored
// embedder that forgot to override it errors at run time instead of
// producing a nil result. Manual and informative audits never reach it;
// the runner synthesizes their results without calling Audit.
var ErrNotOverridden = errors.New("audit does not override Audit")

// Meta returns an empty descriptor. Implementations must shadow this.
func (*Unimplemented) Meta() Meta { return Meta{} }

// Audit is the un-overridden stub.
func (*Unimplemented) Audit(context.Context, *Context) (*Result, error) {
	return nil, ErrNotOverridden
}

// IsUnimplemented reports whether a is the abstract audit itself. It is an
// identity check on the dynamic type only: a type that embeds Unimplemented
// and overrides Meta passes, and its un-overridden Audit surfaces
// ErrNotOverridden when invoked.
func IsUnimplemented(a Audit) bool {
	_, ok := a.(*Unimplemented)
	return ok
}
