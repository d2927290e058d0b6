package gather

import (
	"context"
	"testing"
)

func TestNewSymbol_IdentityNotName(t *testing.T) {
	a := NewSymbol("Trace")
	b := NewSymbol("Trace")
	if a == b {
		t.Error("two symbols with the same name must not be equal")
	}
	if a != a {
		t.Error("a symbol must equal itself")
	}
	if SymbolName(a) != "Trace" {
		t.Errorf("SymbolName = %q, want %q", SymbolName(a), "Trace")
	}
	if SymbolName(nil) != "<nil>" {
		t.Errorf("SymbolName(nil) = %q, want %q", SymbolName(nil), "<nil>")
	}
}

func TestSymbol_UsableAsMapKey(t *testing.T) {
	a := NewSymbol("Scripts")
	b := NewSymbol("Scripts")
	m := map[Symbol]string{a: "first", b: "second"}
	if len(m) != 2 {
		t.Fatalf("map len = %d, want 2 (distinct identities)", len(m))
	}
	if m[a] != "first" || m[b] != "second" {
		t.Error("symbol map lookups must follow identity")
	}
}

func TestSupportsMode(t *testing.T) {
	modes := []Mode{ModeNavigation, ModeTimespan}
	if !SupportsMode(modes, ModeTimespan) {
		t.Error("expected timespan to be supported")
	}
	if SupportsMode(modes, ModeSnapshot) {
		t.Error("snapshot must not be supported")
	}
	if SupportsMode(nil, ModeNavigation) {
		t.Error("empty mode set supports nothing")
	}
}

func TestMode_Valid(t *testing.T) {
	for _, m := range AllModes {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if Mode("teleport").Valid() {
		t.Error("unknown mode should be invalid")
	}
}

func TestIsBase(t *testing.T) {
	if !IsBase(&Base{}) {
		t.Error("bare *Base must be detected")
	}
	if IsBase(&fakeGatherer{}) {
		t.Error("a real implementation is not the base")
	}
}

func TestBase_GetArtifactErrors(t *testing.T) {
	// A type that embeds Base and overrides only Meta slips past IsBase;
	// the inherited GetArtifact must fail rather than yield a nil artifact.
	g := &metaOnlyGatherer{}
	if IsBase(g) {
		t.Fatal("embedder should pass the identity check")
	}
	artifact, err := g.GetArtifact(context.Background(), &Context{})
	if err != ErrNotOverridden {
		t.Errorf("GetArtifact err = %v, want ErrNotOverridden", err)
	}
	if artifact != nil {
		t.Errorf("GetArtifact artifact = %v, want nil", artifact)
	}
}

func TestDriver_NilSafe(t *testing.T) {
	var d *Driver
	if err := d.Run(); err != ErrNoDriver {
		t.Errorf("nil driver Run() = %v, want ErrNoDriver", err)
	}
	if d.Tab() != nil {
		t.Error("nil driver Tab() should be nil")
	}
}

type metaOnlyGatherer struct{ Base }

func (*metaOnlyGatherer) Meta() Meta {
	return Meta{SupportedModes: AllModes}
}

type fakeGatherer struct{ Base }

func (f *fakeGatherer) Meta() Meta {
	return Meta{SupportedModes: AllModes}
}

func (f *fakeGatherer) GetArtifact(context.Context, *Context) (any, error) {
	return "ok", nil
}
