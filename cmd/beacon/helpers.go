package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"beacon/internal/config"
	"beacon/internal/gather"
)

// configFlags are the flags shared by run and print-config.
type configFlags struct {
	configPath     string
	mode           string
	formFactor     string
	locale         string
	plugins        []string
	onlyCategories []string
	onlyAudits     []string
	skipAudits     []string
}

// overrides builds the flat CLI override map the settings resolver cleans
// and merges. Only explicitly set flags appear, so config-declared values
// survive unless the user overrode them.
func (f *configFlags) overrides() map[string]any {
	flags := map[string]any{}
	if f.formFactor != "" {
		flags["formFactor"] = f.formFactor
		if f.formFactor == "desktop" {
			flags["screenEmulation"] = map[string]any{
				"mobile": false, "width": 1350, "height": 940, "deviceScaleFactor": 1.0, "disabled": false,
			}
			flags["throttling"] = map[string]any{"cpuSlowdownMultiplier": 1.0}
		}
	}
	if f.locale != "" {
		flags["locale"] = f.locale
	}
	if len(f.plugins) > 0 {
		flags["plugins"] = f.plugins
	}
	if len(f.onlyCategories) > 0 {
		flags["onlyCategories"] = toAny(f.onlyCategories)
	}
	if len(f.onlyAudits) > 0 {
		flags["onlyAudits"] = toAny(f.onlyAudits)
	}
	if len(f.skipAudits) > 0 {
		flags["skipAudits"] = toAny(f.skipAudits)
	}
	return flags
}

// toAny widens a string slice for the fragment merger, which operates on
// YAML-shaped trees.
func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// loadConfig reads the user config file, if any, and returns it with the
// directory plugin resolution roots at.
func (f *configFlags) loadConfig() (*config.Config, string, error) {
	if f.configPath == "" {
		return nil, "", nil
	}
	data, err := os.ReadFile(f.configPath)
	if err != nil {
		return nil, "", fmt.Errorf("read config: %w", err)
	}
	cfg, err := config.ParseYAML(data)
	if err != nil {
		return nil, "", err
	}
	return cfg, filepath.Dir(f.configPath), nil
}

func (f *configFlags) gatherMode() (gather.Mode, error) {
	if f.mode == "" {
		return gather.ModeNavigation, nil
	}
	m := gather.Mode(f.mode)
	if !m.Valid() {
		return "", fmt.Errorf("unknown mode %q (want navigation, timespan, or snapshot)", f.mode)
	}
	return m, nil
}

// register adds the shared config flags to a command's flag set.
func (f *configFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&f.mode, "mode", "navigation", "gather mode: navigation, timespan, or snapshot")
	fs.StringVar(&f.formFactor, "form-factor", "", "override form factor: mobile or desktop")
	fs.StringVar(&f.locale, "locale", "", "override locale")
	fs.StringSliceVar(&f.plugins, "plugins", nil, "plugins to load after config-declared ones")
	fs.StringSliceVar(&f.onlyCategories, "only-categories", nil, "run only these categories")
	fs.StringSliceVar(&f.onlyAudits, "only-audits", nil, "run only these audits")
	fs.StringSliceVar(&f.skipAudits, "skip-audits", nil, "skip these audits")
}
