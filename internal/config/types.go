// Package config is the constraint-satisfaction and merge engine at the
// center of beacon: it merges partial config fragments (defaults, user
// config, flags, plugins), resolves gatherer and audit references through a
// registry, builds and validates the artifact dependency graph, and filters
// the result by gather mode and explicit user filters into the
// ResolvedConfig the runner consumes.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"beacon/internal/audit"
	"beacon/internal/gather"
)

// ExtendsDefault is the only recognized extends sentinel. Single inheritance
// from the default config is deliberate; any other value is a hard error.
const ExtendsDefault = "beacon:default"

// Config is the user-authored (or default) declarative description of what
// to measure. It is deep-cloned on entry to resolution so callers never see
// their input mutated.
type Config struct {
	Extends    string               `yaml:"extends,omitempty"`
	Settings   map[string]any       `yaml:"settings,omitempty"`
	Artifacts  []*ArtifactConfig    `yaml:"artifacts,omitempty"`
	Audits     []*AuditConfig       `yaml:"audits,omitempty"`
	Categories map[string]*Category `yaml:"categories,omitempty"`
	Groups     map[string]*Group    `yaml:"groups,omitempty"`
	Plugins    []string             `yaml:"plugins,omitempty"`
}

// ArtifactConfig declares one artifact: its id and the gatherer producing
// it, referenced by registry name or supplied as a live instance.
type ArtifactConfig struct {
	ID       string `yaml:"id"`
	Gatherer string `yaml:"gatherer,omitempty"`

	// Instance is set by programmatic configs; never populated from YAML.
	Instance gather.Gatherer `yaml:"-"`
}

// AuditConfig declares one audit by registry path or live implementation,
// with optional audit options.
type AuditConfig struct {
	Path    string         `yaml:"path,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`

	// Implementation is set by programmatic configs; never populated from YAML.
	Implementation audit.Audit `yaml:"-"`
}

// UnmarshalYAML accepts either a bare string (the audit path) or a mapping
// with path and options.
func (a *AuditConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&a.Path)
	}
	type plain AuditConfig
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*a = AuditConfig(p)
	return nil
}

// AuditRef points a category at one audit with a scoring weight and an
// optional display group.
type AuditRef struct {
	ID     string  `yaml:"id"`
	Weight float64 `yaml:"weight"`
	Group  string  `yaml:"group,omitempty"`
}

// Category is a user-facing grouping of audits whose weighted scores roll up
// into one aggregate score.
type Category struct {
	Title             string        `yaml:"title"`
	Description       string        `yaml:"description,omitempty"`
	ManualDescription string        `yaml:"manualDescription,omitempty"`
	SupportedModes    []gather.Mode `yaml:"supportedModes,omitempty"`
	AuditRefs         []*AuditRef   `yaml:"auditRefs"`
}

// Group titles a cluster of audits inside a category's report section.
type Group struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
}

// GathererDefn wraps a resolved gatherer instance with the path it was
// resolved from.
type GathererDefn struct {
	Path     string
	Instance gather.Gatherer
}

// Dependency names the artifact that satisfies one of a gatherer's declared
// dependency edges.
type Dependency struct {
	ID string
}

// ArtifactDefn is a fully resolved artifact declaration. Dependencies is nil
// for gatherers that declare none.
type ArtifactDefn struct {
	ID           string
	Gatherer     *GathererDefn
	Dependencies map[string]Dependency
}

// AuditDefn is a fully resolved audit declaration.
type AuditDefn struct {
	Path           string
	Implementation audit.Audit
	Options        map[string]any
}

// ResolvedConfig is the terminal snapshot of resolution: the validated,
// mode- and filter-pruned execution plan. It is produced once per run and
// must be treated as immutable by its consumer.
type ResolvedConfig struct {
	Settings   *Settings
	Artifacts  []*ArtifactDefn
	Audits     []*AuditDefn
	Categories map[string]*Category
	Groups     map[string]*Group
}

// ParseYAML decodes a user config document.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
