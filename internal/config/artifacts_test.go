package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"beacon/internal/gather"
)

func TestResolveArtifacts_DependencyWiring(t *testing.T) {
	sym := gather.NewSymbol("ProducerArtifact")
	producer := &stubGatherer{meta: gather.Meta{
		SupportedModes: gather.AllModes,
		Symbol:         sym,
	}}
	dependent := &stubGatherer{meta: gather.Meta{
		SupportedModes: gather.AllModes,
		Dependencies:   map[string]gather.Symbol{"producer": sym},
	}}

	defns, err := resolveArtifacts([]*ArtifactConfig{
		{ID: "Producer", Instance: producer},
		{ID: "Dependent", Instance: dependent},
	}, NewRegistry())
	if err != nil {
		t.Fatalf("resolveArtifacts: %v", err)
	}

	if diff := cmp.Diff([]string{"Producer", "Dependent"}, artifactIDs(defns)); diff != "" {
		t.Fatalf("artifact order mismatch (-want +got):\n%s", diff)
	}
	wantDeps := map[string]Dependency{"producer": {ID: "Producer"}}
	if diff := cmp.Diff(wantDeps, defns[1].Dependencies); diff != "" {
		t.Errorf("dependency wiring mismatch (-want +got):\n%s", diff)
	}
	if defns[0].Dependencies != nil {
		t.Errorf("producer dependencies = %v, want nil", defns[0].Dependencies)
	}
}

func TestResolveArtifacts_DependencyMustBeDeclaredEarlier(t *testing.T) {
	sym := gather.NewSymbol("ProducerArtifact")
	producer := &stubGatherer{meta: gather.Meta{
		SupportedModes: gather.AllModes,
		Symbol:         sym,
	}}
	dependent := &stubGatherer{meta: gather.Meta{
		SupportedModes: gather.AllModes,
		Dependencies:   map[string]gather.Symbol{"producer": sym},
	}}

	// Dependent declared first: the producer's symbol is not yet in scope.
	_, err := resolveArtifacts([]*ArtifactConfig{
		{ID: "Dependent", Instance: dependent},
		{ID: "Producer", Instance: producer},
	}, NewRegistry())
	if !errors.Is(err, ErrDependencyOrder) {
		t.Fatalf("got err %v, want ErrDependencyOrder", err)
	}
	for _, want := range []string{"Dependent", "producer", "ProducerArtifact"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestResolveArtifacts_PhaseCompatibility(t *testing.T) {
	nav := []gather.Mode{gather.ModeNavigation}
	timespanOnly := []gather.Mode{gather.ModeTimespan}
	snapshotOnly := []gather.Mode{gather.ModeSnapshot}

	cases := []struct {
		name      string
		producer  []gather.Mode
		dependent []gather.Mode
		wantErr   bool
	}{
		{"navigation on navigation", nav, nav, false},
		{"navigation on timespan", timespanOnly, nav, false},
		{"navigation on snapshot", snapshotOnly, nav, false},
		{"timespan on timespan", timespanOnly, timespanOnly, false},
		{"snapshot on snapshot", snapshotOnly, snapshotOnly, false},
		{"timespan on navigation", nav, timespanOnly, true},
		{"timespan on snapshot", snapshotOnly, timespanOnly, true},
		{"snapshot on navigation", nav, snapshotOnly, true},
		{"snapshot on timespan", timespanOnly, snapshotOnly, true},
		{"timespan on all modes", gather.AllModes, timespanOnly, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sym := gather.NewSymbol("Producer")
			producer := &stubGatherer{meta: gather.Meta{
				SupportedModes: tc.producer,
				Symbol:         sym,
			}}
			dependent := &stubGatherer{meta: gather.Meta{
				SupportedModes: tc.dependent,
				Dependencies:   map[string]gather.Symbol{"producer": sym},
			}}
			_, err := resolveArtifacts([]*ArtifactConfig{
				{ID: "Producer", Instance: producer},
				{ID: "Dependent", Instance: dependent},
			}, NewRegistry())
			if tc.wantErr && !errors.Is(err, ErrDependencyDirection) {
				t.Errorf("got err %v, want ErrDependencyDirection", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected err %v", err)
			}
		})
	}
}

func TestResolveArtifacts_PriorityArtifactsSortLast(t *testing.T) {
	g := func() *stubGatherer {
		return &stubGatherer{meta: gather.Meta{SupportedModes: gather.AllModes}}
	}
	defns, err := resolveArtifacts([]*ArtifactConfig{
		{ID: "FullPageScreenshot", Instance: g()},
		{ID: "First", Instance: g()},
		{ID: "BFCacheFailures", Instance: g()},
		{ID: "Second", Instance: g()},
	}, NewRegistry())
	if err != nil {
		t.Fatalf("resolveArtifacts: %v", err)
	}
	want := []string{"First", "Second", "FullPageScreenshot", "BFCacheFailures"}
	if diff := cmp.Diff(want, artifactIDs(defns)); diff != "" {
		t.Errorf("resolution order mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveArtifacts_DuplicateID(t *testing.T) {
	g := func() *stubGatherer {
		return &stubGatherer{meta: gather.Meta{SupportedModes: gather.AllModes}}
	}
	_, err := resolveArtifacts([]*ArtifactConfig{
		{ID: "Twin", Instance: g()},
		{ID: "Twin", Instance: g()},
	}, NewRegistry())
	if !errors.Is(err, ErrDuplicateArtifact) {
		t.Errorf("got err %v, want ErrDuplicateArtifact", err)
	}
}

func TestResolveArtifacts_RejectsAbstractBase(t *testing.T) {
	_, err := resolveArtifacts([]*ArtifactConfig{
		{ID: "Abstract", Instance: &gather.Base{}},
	}, NewRegistry())
	if !errors.Is(err, ErrGathererShape) {
		t.Errorf("got err %v, want ErrGathererShape", err)
	}
}

func TestResolveArtifacts_RejectsModelessGatherer(t *testing.T) {
	_, err := resolveArtifacts([]*ArtifactConfig{
		{ID: "Modeless", Instance: &stubGatherer{}},
	}, NewRegistry())
	if !errors.Is(err, ErrGathererShape) {
		t.Errorf("got err %v, want ErrGathererShape", err)
	}
}

func TestResolveArtifacts_UnknownGathererName(t *testing.T) {
	_, err := resolveArtifacts([]*ArtifactConfig{
		{ID: "Missing", Gatherer: "NoSuchGatherer"},
	}, NewRegistry())
	if !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("got err %v, want ErrComponentNotFound", err)
	}
}

func TestResolveArtifacts_NilDeclarations(t *testing.T) {
	defns, err := resolveArtifacts(nil, NewRegistry())
	if err != nil {
		t.Fatalf("resolveArtifacts(nil): %v", err)
	}
	if defns != nil {
		t.Errorf("got %v, want nil", defns)
	}
}
