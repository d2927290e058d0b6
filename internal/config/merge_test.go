package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeFragment_ArrayDedupe(t *testing.T) {
	got, err := mergeFragment([]any{1, 2, 3}, []any{2, 3, 4}, false)
	if err != nil {
		t.Fatalf("mergeFragment: %v", err)
	}
	want := []any{1, 2, 3, 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged array mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFragment_ArrayDedupeIsStructural(t *testing.T) {
	base := []any{map[string]any{"id": "a", "weight": 1}}
	ext := []any{
		map[string]any{"id": "a", "weight": 1},
		map[string]any{"id": "a", "weight": 2},
	}
	got, err := mergeFragment(base, ext, false)
	if err != nil {
		t.Fatalf("mergeFragment: %v", err)
	}
	want := []any{
		map[string]any{"id": "a", "weight": 1},
		map[string]any{"id": "a", "weight": 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged array mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFragment_OverwriteArraysReplacesWholesale(t *testing.T) {
	got, err := mergeFragment([]any{1, 2, 3}, []any{9}, true)
	if err != nil {
		t.Fatalf("mergeFragment: %v", err)
	}
	if diff := cmp.Diff([]any{9}, got); diff != "" {
		t.Errorf("merged array mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFragment_SettingsBranchOverwritesArrays(t *testing.T) {
	base := map[string]any{
		"settings": map[string]any{"skipAudits": []any{"a", "b"}},
		"tags":     []any{"x"},
	}
	ext := map[string]any{
		"settings": map[string]any{"skipAudits": []any{"c"}},
		"tags":     []any{"y"},
	}
	got, err := mergeFragment(base, ext, false)
	if err != nil {
		t.Fatalf("mergeFragment: %v", err)
	}
	want := map[string]any{
		"settings": map[string]any{"skipAudits": []any{"c"}},
		"tags":     []any{"x", "y"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged map mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFragment_NilSides(t *testing.T) {
	ext := map[string]any{"k": "v"}
	got, err := mergeFragment(nil, ext, false)
	if err != nil {
		t.Fatalf("mergeFragment(nil, ext): %v", err)
	}
	if diff := cmp.Diff(ext, got); diff != "" {
		t.Errorf("nil base mismatch (-want +got):\n%s", diff)
	}

	base := []any{1}
	got, err = mergeFragment(base, nil, false)
	if err != nil {
		t.Fatalf("mergeFragment(base, nil): %v", err)
	}
	if diff := cmp.Diff(base, got); diff != "" {
		t.Errorf("nil extension mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFragment_ScalarReplaces(t *testing.T) {
	got, err := mergeFragment("old", "new", false)
	if err != nil {
		t.Fatalf("mergeFragment: %v", err)
	}
	if got != "new" {
		t.Errorf("got %v, want %q", got, "new")
	}
}

func TestMergeFragment_ShapeMismatch(t *testing.T) {
	cases := []struct {
		name      string
		base, ext any
	}{
		{"sequence over scalar", "scalar", []any{1}},
		{"sequence over map", map[string]any{}, []any{1}},
		{"map over scalar", 7, map[string]any{"k": "v"}},
		{"map over sequence", []any{1}, map[string]any{"k": "v"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mergeFragment(tc.base, tc.ext, false)
			if !errors.Is(err, ErrFragmentShape) {
				t.Errorf("got err %v, want ErrFragmentShape", err)
			}
		})
	}
}

func TestMergeFragment_NestedShapeErrorNamesKey(t *testing.T) {
	base := map[string]any{"outer": map[string]any{"inner": "scalar"}}
	ext := map[string]any{"outer": map[string]any{"inner": []any{1}}}
	_, err := mergeFragment(base, ext, false)
	if !errors.Is(err, ErrFragmentShape) {
		t.Fatalf("got err %v, want ErrFragmentShape", err)
	}
	if want := `"inner"`; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not name the offending key %s", err, want)
	}
}

func TestMergeFragment_DisjointKeysAssociative(t *testing.T) {
	a := map[string]any{"a": 1}
	b := map[string]any{"b": 2}
	c := map[string]any{"c": 3}

	ab, err := mergeFragment(a, b, false)
	if err != nil {
		t.Fatalf("merge a+b: %v", err)
	}
	left, err := mergeFragment(ab, c, false)
	if err != nil {
		t.Fatalf("merge (a+b)+c: %v", err)
	}

	bc, err := mergeFragment(b, c, false)
	if err != nil {
		t.Fatalf("merge b+c: %v", err)
	}
	right, err := mergeFragment(a, bc, false)
	if err != nil {
		t.Fatalf("merge a+(b+c): %v", err)
	}

	if diff := cmp.Diff(left, right); diff != "" {
		t.Errorf("associativity broken on disjoint keys (-left +right):\n%s", diff)
	}
}

func TestMergeOptionMaps(t *testing.T) {
	base := map[string]any{"a": 1, "b": 2}
	ext := map[string]any{"b": 20, "c": 30}
	got := mergeOptionMaps(base, ext)
	want := map[string]any{"a": 1, "b": 20, "c": 30}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("option merge mismatch (-want +got):\n%s", diff)
	}
	if got := mergeOptionMaps(nil, nil); got != nil {
		t.Errorf("mergeOptionMaps(nil, nil) = %v, want nil", got)
	}
}

func TestMergeArtifactConfigs(t *testing.T) {
	base := []*ArtifactConfig{
		{ID: "A", Gatherer: "GathererA"},
		{ID: "B", Gatherer: "GathererB"},
	}
	ext := []*ArtifactConfig{
		{ID: "B", Gatherer: "GathererB2"},
		{ID: "C", Gatherer: "GathererC"},
	}
	got := mergeArtifactConfigs(base, ext)

	ids := make([]string, 0, len(got))
	gatherers := make(map[string]string, len(got))
	for _, a := range got {
		ids = append(ids, a.ID)
		gatherers[a.ID] = a.Gatherer
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, ids); diff != "" {
		t.Errorf("artifact id order mismatch (-want +got):\n%s", diff)
	}
	if gatherers["B"] != "GathererB2" {
		t.Errorf("B gatherer = %q, want extension's %q", gatherers["B"], "GathererB2")
	}
}

func TestMergeAuditConfigs_DropsStructuralDuplicates(t *testing.T) {
	base := []*AuditConfig{{Path: "a"}, {Path: "b", Options: map[string]any{"k": 1}}}
	ext := []*AuditConfig{
		{Path: "a"},                                  // exact duplicate, dropped
		{Path: "b", Options: map[string]any{"k": 2}}, // same path, new options, kept
		{Path: "c"},
	}
	got := mergeAuditConfigs(base, ext)
	paths := make([]string, 0, len(got))
	for _, a := range got {
		paths = append(paths, a.Path)
	}
	if diff := cmp.Diff([]string{"a", "b", "b", "c"}, paths); diff != "" {
		t.Errorf("audit path order mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeCategories(t *testing.T) {
	base := map[string]*Category{
		"perf": {
			Title:     "Performance",
			AuditRefs: []*AuditRef{{ID: "a", Weight: 1}},
		},
	}
	ext := map[string]*Category{
		"perf": {
			Title: "Speed",
			AuditRefs: []*AuditRef{
				{ID: "a", Weight: 1}, // duplicate ref, dropped
				{ID: "b", Weight: 2},
			},
		},
		"novel": {Title: "Novel"},
	}
	got := mergeCategories(base, ext)

	perf := got["perf"]
	if perf.Title != "Speed" {
		t.Errorf("title = %q, want extension's %q", perf.Title, "Speed")
	}
	if diff := cmp.Diff([]string{"a", "b"}, refIDs(perf)); diff != "" {
		t.Errorf("audit ref mismatch (-want +got):\n%s", diff)
	}
	if _, ok := got["novel"]; !ok {
		t.Error("novel category missing from merge")
	}
	// Base must not be mutated.
	if len(base["perf"].AuditRefs) != 1 {
		t.Errorf("base category mutated: %d refs", len(base["perf"].AuditRefs))
	}
}

func TestMergeStringLists(t *testing.T) {
	got := mergeStringLists([]string{"a", "b"}, []string{"b", "c", "a"})
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("list union mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeConfigFragment(t *testing.T) {
	base := &Config{
		Settings:  map[string]any{"skipAudits": []any{"a"}},
		Audits:    []*AuditConfig{{Path: "a"}},
		Plugins:   []string{"beacon-plugin-x"},
		Artifacts: []*ArtifactConfig{{ID: "A", Gatherer: "GathererA"}},
	}
	ext := &Config{
		Settings: map[string]any{"skipAudits": []any{"b"}},
		Audits:   []*AuditConfig{{Path: "b"}},
		Plugins:  []string{"beacon-plugin-y"},
	}
	got, err := mergeConfigFragment(base, ext)
	if err != nil {
		t.Fatalf("mergeConfigFragment: %v", err)
	}
	// Settings arrays are absolute overrides, never a union.
	if diff := cmp.Diff([]any{"b"}, got.Settings["skipAudits"]); diff != "" {
		t.Errorf("skipAudits mismatch (-want +got):\n%s", diff)
	}
	if len(got.Audits) != 2 {
		t.Errorf("audits = %d, want 2", len(got.Audits))
	}
	if diff := cmp.Diff([]string{"beacon-plugin-x", "beacon-plugin-y"}, got.Plugins); diff != "" {
		t.Errorf("plugin mismatch (-want +got):\n%s", diff)
	}
}
