package config

import "beacon/internal/gather"

// cloneAnyTree structurally copies a map/slice/scalar fragment tree.
// Scalars are copied by value; anything that is not a plain map or slice
// (a live implementation reference, say) is carried through as-is.
func cloneAnyTree(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneAnyTree(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneAnyTree(val)
		}
		return out
	default:
		return v
	}
}

func cloneSettingsMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return cloneAnyTree(m).(map[string]any)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// cloneConfig deep-copies a config so resolution never mutates caller
// state. Gatherer instances and audit implementations are live references
// and are carried through shallowly.
func cloneConfig(cfg *Config) *Config {
	if cfg == nil {
		return nil
	}
	out := &Config{
		Extends:  cfg.Extends,
		Settings: cloneSettingsMap(cfg.Settings),
		Plugins:  cloneStrings(cfg.Plugins),
	}
	for _, a := range cfg.Artifacts {
		c := *a
		out.Artifacts = append(out.Artifacts, &c)
	}
	for _, a := range cfg.Audits {
		c := *a
		if a.Options != nil {
			c.Options = cloneAnyTree(a.Options).(map[string]any)
		}
		out.Audits = append(out.Audits, &c)
	}
	if cfg.Categories != nil {
		out.Categories = make(map[string]*Category, len(cfg.Categories))
		for id, cat := range cfg.Categories {
			out.Categories[id] = cloneCategory(cat)
		}
	}
	if cfg.Groups != nil {
		out.Groups = make(map[string]*Group, len(cfg.Groups))
		for id, g := range cfg.Groups {
			c := *g
			out.Groups[id] = &c
		}
	}
	return out
}

func cloneCategory(cat *Category) *Category {
	c := *cat
	c.SupportedModes = append([]gather.Mode(nil), cat.SupportedModes...)
	c.AuditRefs = nil
	for _, r := range cat.AuditRefs {
		ref := *r
		c.AuditRefs = append(c.AuditRefs, &ref)
	}
	return &c
}
