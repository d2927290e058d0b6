package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ThrottlingSettings describes the simulated network and CPU regime.
type ThrottlingSettings struct {
	RTTMs                  float64 `yaml:"rttMs"`
	ThroughputKbps         float64 `yaml:"throughputKbps"`
	RequestLatencyMs       float64 `yaml:"requestLatencyMs"`
	DownloadThroughputKbps float64 `yaml:"downloadThroughputKbps"`
	UploadThroughputKbps   float64 `yaml:"uploadThroughputKbps"`
	CPUSlowdownMultiplier  float64 `yaml:"cpuSlowdownMultiplier"`
}

// ScreenEmulationSettings describes the emulated viewport.
type ScreenEmulationSettings struct {
	Mobile            bool    `yaml:"mobile"`
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	DeviceScaleFactor float64 `yaml:"deviceScaleFactor"`
	Disabled          bool    `yaml:"disabled"`
}

// Settings is the fully resolved, typed settings object. It is decoded from
// the canonical settings map only after defaults, user settings, and flag
// overrides have merged.
type Settings struct {
	Output                    string                   `yaml:"output"`
	Locale                    string                   `yaml:"locale"`
	MaxWaitForFCP             int                      `yaml:"maxWaitForFcp"`
	MaxWaitForLoad            int                      `yaml:"maxWaitForLoad"`
	BlankPage                 string                   `yaml:"blankPage"`
	FormFactor                string                   `yaml:"formFactor"`
	ThrottlingMethod          string                   `yaml:"throttlingMethod"`
	Throttling                *ThrottlingSettings      `yaml:"throttling"`
	ScreenEmulation           *ScreenEmulationSettings `yaml:"screenEmulation"`
	EmulatedUserAgent         string                   `yaml:"emulatedUserAgent"`
	Channel                   string                   `yaml:"channel"`
	DisableStorageReset       bool                     `yaml:"disableStorageReset"`
	DisableFullPageScreenshot bool                     `yaml:"disableFullPageScreenshot"`
	DebugNavigation           bool                     `yaml:"debugNavigation"`
	BlockedURLPatterns        []string                 `yaml:"blockedUrlPatterns"`
	ExtraHeaders              map[string]string        `yaml:"extraHeaders"`
	OnlyAudits                []string                 `yaml:"onlyAudits"`
	OnlyCategories            []string                 `yaml:"onlyCategories"`
	SkipAudits                []string                 `yaml:"skipAudits"`
}

// lookupLocale matches the requested locales against the supported set and
// always lands on a member of it: exact match first, then primary-subtag
// match, then the default. Empty candidates are skipped.
func lookupLocale(requested ...string) string {
	for _, want := range requested {
		if want == "" {
			continue
		}
		for _, have := range supportedLocales {
			if strings.EqualFold(want, have) {
				return have
			}
		}
		primary, _, _ := strings.Cut(want, "-")
		for _, have := range supportedLocales {
			havePrimary, _, _ := strings.Cut(have, "-")
			if strings.EqualFold(primary, havePrimary) {
				return have
			}
		}
	}
	return DefaultLocale
}

// environmentLocale reads the conventional locale environment variables.
func environmentLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			v, _, _ = strings.Cut(v, ".")
			return strings.ReplaceAll(v, "_", "-")
		}
	}
	return ""
}

// cleanFlags filters a flat override map down to keys present in the
// canonical defaults. Unknown flags are dropped silently.
func cleanFlags(flags map[string]any) map[string]any {
	if flags == nil {
		return nil
	}
	known := defaultSettingsMap()
	cleaned := make(map[string]any, len(flags))
	for k, v := range flags {
		if _, ok := known[k]; ok {
			cleaned[k] = v
		}
	}
	return cleaned
}

// resolveSettings merges canonical defaults, config-declared settings, and
// flag overrides into one validated Settings value. User settings and flags
// are absolute overrides: their arrays replace rather than union.
func resolveSettings(userSettings, flags map[string]any) (*Settings, error) {
	locale := lookupLocale(
		stringAt(flags, "locale"),
		stringAt(userSettings, "locale"),
		environmentLocale(),
	)

	merged := defaultSettingsMap()
	var err error
	if merged, err = mergeSettingsMaps(merged, userSettings); err != nil {
		return nil, fmt.Errorf("merge config settings: %w", err)
	}
	if merged, err = mergeSettingsMaps(merged, cleanFlags(flags)); err != nil {
		return nil, fmt.Errorf("merge flag settings: %w", err)
	}

	// The locale decided up front is authoritative over merge order.
	merged["locale"] = locale

	// A boolean true means "emulate the canonical UA for the form factor".
	switch ua := merged["emulatedUserAgent"].(type) {
	case bool:
		if ua {
			if stringAt(merged, "formFactor") == "desktop" {
				merged["emulatedUserAgent"] = desktopUserAgent
			} else {
				merged["emulatedUserAgent"] = mobileUserAgent
			}
		} else {
			merged["emulatedUserAgent"] = ""
		}
	}

	settings, err := decodeSettings(merged)
	if err != nil {
		return nil, err
	}
	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// decodeSettings converts the merged settings map into the typed struct via
// the YAML codec, the same serializer config files arrive through.
func decodeSettings(m map[string]any) (*Settings, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &s, nil
}

func stringAt(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
