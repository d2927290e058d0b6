package config

import (
	"fmt"
	"log/slog"

	"beacon/internal/gather"
	"beacon/internal/logging"
)

// ResolveOptions carries everything resolution needs besides the config
// itself. A zero value resolves the default config for navigation with the
// core registry.
type ResolveOptions struct {
	// GatherMode selects the lifecycle the plan must run under.
	// Defaults to navigation.
	GatherMode gather.Mode

	// Flags is the flat CLI-style override map. Unknown keys are dropped
	// during flag cleaning; the "plugins" key adds plugins after the
	// config-declared ones.
	Flags map[string]any

	// ConfigDir roots plugin lookups at the config file's directory.
	ConfigDir string

	// Registry supplies gatherer and audit implementations. Nil means the
	// core registry of built-ins.
	Registry *Registry

	// Logger receives soft warnings. Nil means the component default.
	Logger *slog.Logger
}

// Resolve turns a declarative config into the validated, filtered
// ResolvedConfig the runner consumes. Resolution is strictly sequential:
// working copy → extends → plugins → settings → artifacts → audits →
// validate → filter by mode → filter by explicit filters. Any failure
// aborts the whole call; no partial ResolvedConfig is ever returned.
//
// The returned warnings hold non-fatal findings (unknown filter entries);
// they are also logged as they occur.
func Resolve(cfg *Config, opts ResolveOptions) (*ResolvedConfig, *logging.Warnings, error) {
	mode := opts.GatherMode
	if mode == "" {
		mode = gather.ModeNavigation
	}
	if !mode.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown gather mode %q", ErrSettings, mode)
	}
	reg := opts.Registry
	if reg == nil {
		reg = CoreRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = logging.New("config")
	}
	warnings := logging.NewWarnings(log)

	working, err := resolveWorkingCopy(cfg)
	if err != nil {
		return nil, nil, err
	}

	working, err = mergePlugins(working, opts.ConfigDir, pluginsFromFlags(opts.Flags))
	if err != nil {
		return nil, nil, err
	}

	settings, err := resolveSettings(working.Settings, opts.Flags)
	if err != nil {
		return nil, nil, err
	}

	artifacts, err := resolveArtifacts(working.Artifacts, reg)
	if err != nil {
		return nil, nil, err
	}

	audits, err := resolveAudits(working.Audits, reg)
	if err != nil {
		return nil, nil, err
	}

	resolved := &ResolvedConfig{
		Settings:   settings,
		Artifacts:  artifacts,
		Audits:     audits,
		Categories: working.Categories,
		Groups:     working.Groups,
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, nil, err
	}

	resolved = filterByGatherMode(resolved, mode)
	resolved = filterByExplicitFilters(resolved, warnings)

	log.Debug("config resolved",
		slog.String("mode", string(mode)),
		slog.Int("artifacts", len(resolved.Artifacts)),
		slog.Int("audits", len(resolved.Audits)),
		slog.Int("categories", len(resolved.Categories)))

	return resolved, warnings, nil
}

// resolveWorkingCopy deep-clones the caller's config and applies the
// extends rule: a nil config means the default config, the sentinel value
// merges the config over the default, anything else is an error.
func resolveWorkingCopy(cfg *Config) (*Config, error) {
	if cfg == nil {
		return DefaultConfig(), nil
	}
	working := cloneConfig(cfg)
	switch working.Extends {
	case "":
		return working, nil
	case ExtendsDefault:
		merged, err := mergeConfigFragment(DefaultConfig(), working)
		if err != nil {
			return nil, err
		}
		merged.Extends = working.Extends
		return merged, nil
	default:
		return nil, fmt.Errorf("%w: %q (only %q is supported)", ErrInvalidExtends, working.Extends, ExtendsDefault)
	}
}

func pluginsFromFlags(flags map[string]any) []string {
	if flags == nil {
		return nil
	}
	switch v := flags["plugins"].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, p := range v {
			if s, ok := p.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
