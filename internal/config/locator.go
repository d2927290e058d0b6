package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"beacon/internal/audit"
	"beacon/internal/gather"
)

// PluginPrefix is the mandatory prefix for plugin names.
const PluginPrefix = "beacon-plugin-"

// Registry is the component lookup capability the resolver depends on in
// place of dynamic module loading: core (built-in) components plus any
// caller-supplied extras, consulted in that order.
type Registry struct {
	coreGatherers  map[string]func() gather.Gatherer
	coreAudits     map[string]audit.Audit
	extraGatherers map[string]func() gather.Gatherer
	extraAudits    map[string]audit.Audit
}

// NewRegistry returns a registry with no components. Use CoreRegistry for
// one pre-populated with the built-ins.
func NewRegistry() *Registry {
	return &Registry{
		coreGatherers:  map[string]func() gather.Gatherer{},
		coreAudits:     map[string]audit.Audit{},
		extraGatherers: map[string]func() gather.Gatherer{},
		extraAudits:    map[string]audit.Audit{},
	}
}

// RegisterGatherer adds a caller-supplied gatherer constructor under name.
func (r *Registry) RegisterGatherer(name string, ctor func() gather.Gatherer) {
	r.extraGatherers[name] = ctor
}

// RegisterAudit adds a caller-supplied audit implementation under path.
func (r *Registry) RegisterAudit(path string, a audit.Audit) {
	r.extraAudits[path] = a
}

func (r *Registry) registerCoreGatherer(name string, ctor func() gather.Gatherer) {
	r.coreGatherers[name] = ctor
}

func (r *Registry) registerCoreAudit(path string, a audit.Audit) {
	r.coreAudits[path] = a
}

// Gatherer resolves a gatherer by name, core registry first. The error
// enumerates every registry consulted.
func (r *Registry) Gatherer(name string) (gather.Gatherer, error) {
	if ctor, ok := r.coreGatherers[name]; ok {
		return ctor(), nil
	}
	if ctor, ok := r.extraGatherers[name]; ok {
		return ctor(), nil
	}
	return nil, fmt.Errorf("%w: gatherer %q (tried: core registry, user registry)", ErrComponentNotFound, name)
}

// Audit resolves an audit by path, core registry first.
func (r *Registry) Audit(path string) (audit.Audit, error) {
	if a, ok := r.coreAudits[path]; ok {
		return a, nil
	}
	if a, ok := r.extraAudits[path]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: audit %q (tried: core registry, user registry)", ErrComponentNotFound, path)
}

// assertValidPluginName enforces the naming convention and the no-collision
// rule before any plugin file is read.
func assertValidPluginName(cfg *Config, name string) error {
	if !strings.HasPrefix(name, PluginPrefix) {
		return fmt.Errorf("%w: %q does not start with %q", ErrPluginName, name, PluginPrefix)
	}
	if cfg.Categories != nil {
		if _, exists := cfg.Categories[name]; exists {
			return fmt.Errorf("%w: %q collides with an existing category id", ErrPluginName, name)
		}
	}
	return nil
}

// resolvePluginPath locates a plugin's config fragment file through the
// layered search: the name as a literal path, rooted at the working
// directory, the working directory joined with the name, rooted at the
// config file's directory, and the config directory's own plugins tree.
// The error for a miss enumerates every location tried.
func resolvePluginPath(name, configDir string) (string, error) {
	cwd, _ := os.Getwd()
	candidates := []string{
		pluginFile(name),
		filepath.Join(cwd, pluginFile(name)),
		filepath.Join(cwd, name, pluginFile(name)),
	}
	if configDir != "" {
		candidates = append(candidates,
			filepath.Join(configDir, pluginFile(name)),
			filepath.Join(configDir, "plugins", name, pluginFile(name)),
		)
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: plugin %q (tried: %s)",
		ErrComponentNotFound, name, strings.Join(candidates, ", "))
}

func pluginFile(name string) string {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return name
	}
	return name + ".yaml"
}

// loadPlugin reads and parses one plugin config fragment.
func loadPlugin(name, configDir string) (*Config, error) {
	path, err := resolvePluginPath(name, configDir)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plugin %q: %w", name, err)
	}
	frag, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("plugin %q: %w", name, err)
	}
	if frag.Extends != "" || len(frag.Plugins) > 0 {
		return nil, fmt.Errorf("%w: plugin %q may not extend or declare plugins", ErrPluginName, name)
	}
	return frag, nil
}

// mergePlugins resolves each declared plugin (config-declared before
// flag-declared, de-duplicated by name) and merges its fragment into the
// working config in declaration order.
func mergePlugins(cfg *Config, configDir string, flagPlugins []string) (*Config, error) {
	names := mergeStringLists(cfg.Plugins, flagPlugins)
	for _, name := range names {
		if err := assertValidPluginName(cfg, name); err != nil {
			return nil, err
		}
		frag, err := loadPlugin(name, configDir)
		if err != nil {
			return nil, err
		}
		merged, err := mergeConfigFragment(cfg, frag)
		if err != nil {
			return nil, fmt.Errorf("merge plugin %q: %w", name, err)
		}
		cfg = merged
	}
	return cfg, nil
}

// resolveGatherer turns an artifact's gatherer reference into a concrete
// definition, whether given as a live instance or a registry name.
func resolveGatherer(reg *Registry, ac *ArtifactConfig) (*GathererDefn, error) {
	if ac.Instance != nil {
		return &GathererDefn{Path: ac.Gatherer, Instance: ac.Instance}, nil
	}
	if ac.Gatherer == "" {
		return nil, fmt.Errorf("%w: artifact %q declares no gatherer", ErrGathererShape, ac.ID)
	}
	g, err := reg.Gatherer(ac.Gatherer)
	if err != nil {
		return nil, err
	}
	return &GathererDefn{Path: ac.Gatherer, Instance: g}, nil
}
