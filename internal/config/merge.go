package config

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// mergeFragment deep-merges an extension config fragment into a base
// fragment and returns the merged tree. Fragments are the map/slice/scalar
// trees YAML produces.
//
// Rules:
//   - nil base: the extension wins unchanged.
//   - nil extension: the base wins unchanged.
//   - slice extension: with overwriteArrays the extension replaces the base
//     wholesale; otherwise the base must also be a slice and extension items
//     that are not structurally equal to any base item are appended, base
//     order first, novel items in extension order.
//   - map extension: the base must be a map; keys merge recursively. The
//     literal key "settings" forces overwriteArrays for that branch, since
//     settings arrays such as skipAudits are a full override, never a union.
//   - any other extension value replaces the base.
//
// A shape mismatch between base and extension is a hard error.
func mergeFragment(base, extension any, overwriteArrays bool) (any, error) {
	if base == nil {
		return extension, nil
	}
	if extension == nil {
		return base, nil
	}

	switch ext := extension.(type) {
	case []any:
		if overwriteArrays {
			return ext, nil
		}
		baseSlice, ok := base.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected sequence but base is %T", ErrFragmentShape, base)
		}
		merged := append([]any{}, baseSlice...)
		for _, item := range ext {
			if !containsEqual(baseSlice, item) {
				merged = append(merged, item)
			}
		}
		return merged, nil

	case map[string]any:
		baseMap, ok := base.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected map but base is %T", ErrFragmentShape, base)
		}
		merged := make(map[string]any, len(baseMap)+len(ext))
		for k, v := range baseMap {
			merged[k] = v
		}
		for k, v := range ext {
			// Settings arrays are absolute overrides for this branch only.
			overwrite := overwriteArrays || k == "settings"
			m, err := mergeFragment(merged[k], v, overwrite)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			merged[k] = m
		}
		return merged, nil

	default:
		return extension, nil
	}
}

// containsEqual reports whether items holds a structurally-equal twin of
// item. Equality is deep: order-sensitive for nested slices, key-set
// equality for nested maps.
func containsEqual(items []any, item any) bool {
	for _, existing := range items {
		if cmp.Equal(existing, item) {
			return true
		}
	}
	return false
}

// mergeSettingsMaps merges extension settings over base settings with
// forced array overwrite, the only legal semantics inside the settings
// sub-tree.
func mergeSettingsMaps(base, extension map[string]any) (map[string]any, error) {
	merged, err := mergeFragment(anyMap(base), anyMap(extension), true)
	if err != nil {
		return nil, err
	}
	if merged == nil {
		return map[string]any{}, nil
	}
	return merged.(map[string]any), nil
}

// anyMap massages a typed nil map into a nil any so mergeFragment's
// nil-handling applies.
func anyMap(m map[string]any) any {
	if m == nil {
		return nil
	}
	return m
}

// mergeOptionMaps shallow-merges audit option maps: last writer wins on
// conflicting keys. Used when duplicate audit declarations collapse into
// one definition.
func mergeOptionMaps(base, extension map[string]any) map[string]any {
	if base == nil && extension == nil {
		return nil
	}
	merged := make(map[string]any, len(base)+len(extension))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extension {
		merged[k] = v
	}
	return merged
}

// mergeArtifactConfigs merges keyed artifact declarations: declarations
// sharing an id collapse into one (the extension's gatherer reference wins),
// novel ids append in extension order.
func mergeArtifactConfigs(base, extension []*ArtifactConfig) []*ArtifactConfig {
	if base == nil {
		return extension
	}
	merged := append([]*ArtifactConfig{}, base...)
	index := make(map[string]int, len(base))
	for i, a := range base {
		index[a.ID] = i
	}
	for _, ext := range extension {
		if i, ok := index[ext.ID]; ok {
			merged[i] = mergeArtifactConfig(merged[i], ext)
			continue
		}
		index[ext.ID] = len(merged)
		merged = append(merged, ext)
	}
	return merged
}

func mergeArtifactConfig(base, ext *ArtifactConfig) *ArtifactConfig {
	out := &ArtifactConfig{ID: base.ID, Gatherer: base.Gatherer, Instance: base.Instance}
	if ext.Gatherer != "" {
		out.Gatherer = ext.Gatherer
		out.Instance = nil
	}
	if ext.Instance != nil {
		out.Instance = ext.Instance
		out.Gatherer = ext.Gatherer
	}
	return out
}

// mergeAuditConfigs appends extension audit declarations that are not
// structurally equal to an existing base declaration. Duplicate paths are
// allowed here; resolveAudits collapses them and merges their options.
func mergeAuditConfigs(base, extension []*AuditConfig) []*AuditConfig {
	if base == nil {
		return extension
	}
	merged := append([]*AuditConfig{}, base...)
	for _, ext := range extension {
		dup := false
		for _, b := range base {
			if auditConfigEqual(b, ext) {
				dup = true
				break
			}
		}
		if !dup {
			merged = append(merged, ext)
		}
	}
	return merged
}

func auditConfigEqual(a, b *AuditConfig) bool {
	if a.Implementation != nil || b.Implementation != nil {
		return a.Implementation == b.Implementation && cmp.Equal(a.Options, b.Options)
	}
	return a.Path == b.Path && cmp.Equal(a.Options, b.Options)
}

// mergeCategories merges extension categories over base categories key by
// key. Shared keys merge field-wise: non-zero extension scalars replace,
// audit refs union with structural de-dupe.
func mergeCategories(base, extension map[string]*Category) map[string]*Category {
	if base == nil {
		return extension
	}
	merged := make(map[string]*Category, len(base)+len(extension))
	for id, c := range base {
		merged[id] = c
	}
	for id, ext := range extension {
		b, ok := merged[id]
		if !ok {
			merged[id] = ext
			continue
		}
		merged[id] = mergeCategory(b, ext)
	}
	return merged
}

func mergeCategory(base, ext *Category) *Category {
	out := *base
	if ext.Title != "" {
		out.Title = ext.Title
	}
	if ext.Description != "" {
		out.Description = ext.Description
	}
	if ext.ManualDescription != "" {
		out.ManualDescription = ext.ManualDescription
	}
	if ext.SupportedModes != nil {
		out.SupportedModes = ext.SupportedModes
	}
	refs := append([]*AuditRef{}, base.AuditRefs...)
	for _, r := range ext.AuditRefs {
		dup := false
		for _, existing := range base.AuditRefs {
			if cmp.Equal(existing, r) {
				dup = true
				break
			}
		}
		if !dup {
			refs = append(refs, r)
		}
	}
	out.AuditRefs = refs
	return &out
}

// mergeGroups merges extension groups over base groups; shared ids are
// replaced by the extension's group.
func mergeGroups(base, extension map[string]*Group) map[string]*Group {
	if base == nil {
		return extension
	}
	merged := make(map[string]*Group, len(base)+len(extension))
	for id, g := range base {
		merged[id] = g
	}
	for id, g := range extension {
		merged[id] = g
	}
	return merged
}

// mergeStringLists unions two string lists preserving base order and
// appending novel extension entries.
func mergeStringLists(base, extension []string) []string {
	merged := append([]string{}, base...)
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extension {
		if !seen[s] {
			seen[s] = true
			merged = append(merged, s)
		}
	}
	return merged
}

// mergeConfigFragment merges an extension config over a base config using
// the per-field semantics above. The base is not mutated.
func mergeConfigFragment(base, extension *Config) (*Config, error) {
	if base == nil {
		return extension, nil
	}
	if extension == nil {
		return base, nil
	}
	settings, err := mergeSettingsMaps(base.Settings, extension.Settings)
	if err != nil {
		return nil, fmt.Errorf("merge settings: %w", err)
	}
	return &Config{
		Extends:    base.Extends,
		Settings:   settings,
		Artifacts:  mergeArtifactConfigs(base.Artifacts, extension.Artifacts),
		Audits:     mergeAuditConfigs(base.Audits, extension.Audits),
		Categories: mergeCategories(base.Categories, extension.Categories),
		Groups:     mergeGroups(base.Groups, extension.Groups),
		Plugins:    mergeStringLists(base.Plugins, extension.Plugins),
	}, nil
}
