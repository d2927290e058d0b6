package wiring

import (
	"fmt"
	"os"
	"path/filepath"

	"beacon/internal/config"
	"beacon/internal/display"
	"beacon/internal/gather"
)

// Run executes the full plan flow: parse config → Resolve → project → write.
// configPath may be empty, which resolves the default config. The printable
// plan is written to planPath as YAML. Returned warnings are the non-fatal
// findings collected during resolution.
func Run(configPath string, mode gather.Mode, flags map[string]any, reg *config.Registry, planPath string) ([]string, error) {
	var cfg *config.Config
	var configDir string
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		cfg, err = config.ParseYAML(data)
		if err != nil {
			return nil, err
		}
		configDir = filepath.Dir(configPath)
	}

	rc, warnings, err := config.Resolve(cfg, config.ResolveOptions{
		GatherMode: mode,
		Flags:      flags,
		ConfigDir:  configDir,
		Registry:   reg,
	})
	if err != nil {
		return nil, err
	}

	doc, err := display.Printable(rc).YAML()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(planPath, []byte(doc), 0o644); err != nil {
		return nil, fmt.Errorf("write plan: %w", err)
	}
	return warnings.Messages(), nil
}
