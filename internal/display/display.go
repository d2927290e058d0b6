// Package display is the human-facing projection of a ResolvedConfig and
// of run results. The projection strips non-serializable fields (live
// gatherer and audit implementations, empty option maps); it is for output
// only and is never fed back into resolution.
package display

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"beacon/internal/config"
	"beacon/internal/format"
	"beacon/internal/runner"
)

// PrintableArtifact is one artifact row of the projection.
type PrintableArtifact struct {
	ID           string            `yaml:"id"`
	Gatherer     string            `yaml:"gatherer"`
	Dependencies map[string]string `yaml:"dependencies,omitempty"`
}

// PrintableAudit is one audit row of the projection.
type PrintableAudit struct {
	ID      string         `yaml:"id"`
	Path    string         `yaml:"path"`
	Title   string         `yaml:"title"`
	Options map[string]any `yaml:"options,omitempty"`
}

// PrintableConfig is the redacted snapshot of a ResolvedConfig.
type PrintableConfig struct {
	Settings   *config.Settings            `yaml:"settings"`
	Artifacts  []PrintableArtifact         `yaml:"artifacts"`
	Audits     []PrintableAudit            `yaml:"audits"`
	Categories map[string]*config.Category `yaml:"categories"`
	Groups     map[string]*config.Group    `yaml:"groups"`
}

// Printable projects a ResolvedConfig for output, dropping implementation
// references and empty options.
func Printable(rc *config.ResolvedConfig) *PrintableConfig {
	out := &PrintableConfig{
		Settings:   rc.Settings,
		Categories: rc.Categories,
		Groups:     rc.Groups,
	}
	for _, a := range rc.Artifacts {
		pa := PrintableArtifact{ID: a.ID, Gatherer: a.Gatherer.Path}
		if pa.Gatherer == "" {
			pa.Gatherer = fmt.Sprintf("%T", a.Gatherer.Instance)
		}
		if len(a.Dependencies) > 0 {
			pa.Dependencies = make(map[string]string, len(a.Dependencies))
			for name, dep := range a.Dependencies {
				pa.Dependencies[name] = dep.ID
			}
		}
		out.Artifacts = append(out.Artifacts, pa)
	}
	for _, d := range rc.Audits {
		pa := PrintableAudit{
			ID:    d.Implementation.Meta().ID,
			Path:  d.Path,
			Title: d.Implementation.Meta().Title,
		}
		if len(d.Options) > 0 {
			pa.Options = d.Options
		}
		out.Audits = append(out.Audits, pa)
	}
	return out
}

// YAML renders the projection as a YAML document.
func (p *PrintableConfig) YAML() (string, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("render config: %w", err)
	}
	return string(data), nil
}

// Tables renders the projection as terminal tables.
func (p *PrintableConfig) Tables(mode format.Mode) string {
	var b strings.Builder

	artifacts := format.NewTable(mode)
	artifacts.Header("Artifact", "Gatherer", "Dependencies")
	for _, a := range p.Artifacts {
		deps := make([]string, 0, len(a.Dependencies))
		for name, id := range a.Dependencies {
			deps = append(deps, name+" -> "+id)
		}
		sort.Strings(deps)
		artifacts.Row(a.ID, a.Gatherer, strings.Join(deps, ", "))
	}
	b.WriteString("Artifacts\n")
	b.WriteString(artifacts.String())
	b.WriteString("\n\n")

	audits := format.NewTable(mode)
	audits.Header("Audit", "Title")
	for _, a := range p.Audits {
		audits.Row(a.ID, a.Title)
	}
	b.WriteString("Audits\n")
	b.WriteString(audits.String())
	b.WriteString("\n\n")

	categories := format.NewTable(mode)
	categories.Header("Category", "Title", "Audits")
	for _, id := range sortedKeys(p.Categories) {
		cat := p.Categories[id]
		refs := make([]string, 0, len(cat.AuditRefs))
		for _, r := range cat.AuditRefs {
			refs = append(refs, r.ID)
		}
		categories.Row(id, cat.Title, strings.Join(refs, ", "))
	}
	b.WriteString("Categories\n")
	b.WriteString(categories.String())
	b.WriteString("\n")
	return b.String()
}

// AuditResults renders every audit outcome of a run as a table.
func AuditResults(res *runner.Result, mode format.Mode) string {
	t := format.NewTable(mode)
	t.Header("", "Audit", "Score", "Value")
	t.RightAlign(3)
	for _, id := range sortedKeys(res.Audits) {
		r := res.Audits[id]
		value := r.DisplayValue
		if value == "" && r.NumericUnit == "ms" {
			value = format.FmtMillis(r.NumericValue)
		}
		t.Row(format.PassMark(r.Score), id, format.FmtScore(r.Score), format.Truncate(value, 60))
	}
	return t.String()
}

// Scores renders a run's category scores as a table.
func Scores(res *runner.Result, mode format.Mode) string {
	t := format.NewTable(mode)
	t.Header("Category", "Score")
	t.RightAlign(2)
	for _, id := range sortedKeys(res.Categories) {
		cat := res.Categories[id]
		t.Row(cat.Title, fmt.Sprintf("%3.0f", cat.Score*100))
	}
	return t.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
