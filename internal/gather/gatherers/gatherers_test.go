package gatherers

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"beacon/internal/gather"
)

func TestMetaContracts(t *testing.T) {
	all := map[string]gather.Gatherer{
		"ConsoleMessages":    NewConsoleMessages(),
		"MetaElements":       NewMetaElements(),
		"DOMStats":           NewDOMStats(),
		"ImageElements":      NewImageElements(),
		"Scripts":            NewScripts(),
		"SourceMaps":         NewSourceMaps(),
		"Trace":              NewTrace(),
		"TraceElements":      NewTraceElements(),
		"FullPageScreenshot": NewFullPageScreenshot(),
		"BFCacheFailures":    NewBFCacheFailures(),
	}
	for name, g := range all {
		meta := g.Meta()
		if len(meta.SupportedModes) == 0 {
			t.Errorf("%s: no supported modes", name)
		}
		for _, m := range meta.SupportedModes {
			if !m.Valid() {
				t.Errorf("%s: invalid mode %q", name, m)
			}
		}
		if gather.IsBase(g) {
			t.Errorf("%s: constructor returned the abstract base", name)
		}
	}
}

func TestSymbolWiring(t *testing.T) {
	if got := NewSourceMaps().Meta().Dependencies["scripts"]; got != ScriptsSymbol {
		t.Error("SourceMaps must depend on the Scripts symbol")
	}
	if got := NewTraceElements().Meta().Dependencies["trace"]; got != TraceSymbol {
		t.Error("TraceElements must depend on the Trace symbol")
	}
	if NewScripts().Meta().Symbol != ScriptsSymbol {
		t.Error("Scripts must export its symbol")
	}
	if NewTrace().Meta().Symbol != TraceSymbol {
		t.Error("Trace must export its symbol")
	}
}

func TestSourceMaps_DerivesRecords(t *testing.T) {
	scripts := []Script{
		{URL: "https://example.com/app.js"},
		{URL: "https://example.com/vendor.js", SourceMapURL: "vendor.js.map"},
		{Inline: true, Length: 120, SourceMapURL: ""},
		{Inline: true, Length: 0}, // empty inline scripts are noise
	}
	got, err := NewSourceMaps().GetArtifact(context.Background(), &gather.Context{
		Dependencies: map[string]any{"scripts": scripts},
	})
	if err != nil {
		t.Fatalf("GetArtifact: %v", err)
	}
	want := []SourceMapRecord{
		{ScriptURL: "https://example.com/app.js", Missing: true},
		{ScriptURL: "https://example.com/vendor.js", SourceMapURL: "vendor.js.map"},
		{Missing: false}, // inline scripts never count as missing
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestTraceElements_EmptyWithoutPaint(t *testing.T) {
	got, err := NewTraceElements().GetArtifact(context.Background(), &gather.Context{
		Dependencies: map[string]any{"trace": TraceArtifact{}},
	})
	if err != nil {
		t.Fatalf("GetArtifact: %v", err)
	}
	elements, ok := got.([]TraceElement)
	if !ok || len(elements) != 0 {
		t.Errorf("got %v, want empty element list", got)
	}
}
