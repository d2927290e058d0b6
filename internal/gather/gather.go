package gather

import (
	"context"
	"errors"
)

// Meta describes a gatherer to the config resolver: which lifecycle modes it
// supports, which symbols it depends on, and the symbol (if any) it exports
// for later-declared artifacts to depend on.
type Meta struct {
	// SupportedModes must be non-empty.
	SupportedModes []Mode

	// Dependencies maps a local dependency name to the symbol of the
	// artifact that must be declared earlier in the config.
	Dependencies map[string]Symbol

	// Symbol, when non-nil, registers the produced artifact as a dependency
	// target for artifacts declared after this one.
	Symbol Symbol
}

// Context carries everything a gatherer may need while producing its
// artifact. Dependencies holds the already-collected artifacts this gatherer
// declared via Meta.Dependencies, keyed by local dependency name.
type Context struct {
	Mode         Mode
	URL          string
	Driver       *Driver
	Dependencies map[string]any
}

// Gatherer produces one artifact. Implementations embed Base and override
// GetArtifact; the resolver rejects a bare *Base.
type Gatherer interface {
	Meta() Meta
	GetArtifact(ctx context.Context, gctx *Context) (any, error)
}

// Instrumenter is an optional extension for gatherers that observe the page
// over time (timespan and navigation collection). StartInstrumentation is
// called before the observed span begins, StopInstrumentation after it ends;
// GetArtifact runs last.
type Instrumenter interface {
	StartInstrumentation(ctx context.Context, gctx *Context) error
	StopInstrumentation(ctx context.Context, gctx *Context) error
}

// Base is the abstract gatherer. It exists so implementations can embed it
// and so the validator has an identity to reject: a config whose gatherer is
// a plain *Base has not implemented anything.
type Base struct{}

// ErrNotOverridden is returned by the abstract GetArtifact so that an
// embedder that forgot to override it fails at gather time instead of
// producing a nil artifact.
var ErrNotOverridden = errors.New("gatherer does not override GetArtifact")

// Meta returns an empty descriptor. Implementations must shadow this.
func (*Base) Meta() Meta { return Meta{} }

// GetArtifact is the un-overridden stub.
func (*Base) GetArtifact(context.Context, *Context) (any, error) {
	return nil, ErrNotOverridden
}

// IsBase reports whether g is the abstract gatherer itself. It is an
// identity check on the dynamic type only: a type that embeds Base and
// overrides Meta passes, and its un-overridden GetArtifact surfaces
// ErrNotOverridden when invoked.
func IsBase(g Gatherer) bool {
	_, ok := g.(*Base)
	return ok
}
