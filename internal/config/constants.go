package config

// Throttling presets. The mobile preset models a slow 4G connection on a
// mid-tier device; the desktop preset models a dense 4G / cable connection
// with no CPU slowdown.
const (
	mobileSlow4GRTTMs            = 150.0
	mobileSlow4GThroughputKbps   = 1638.4
	desktopDense4GRTTMs          = 40.0
	desktopDense4GThroughputKbps = 10240.0
)

func mobileSlow4GThrottling() map[string]any {
	return map[string]any{
		"rttMs":                  mobileSlow4GRTTMs,
		"throughputKbps":         mobileSlow4GThroughputKbps,
		"requestLatencyMs":       mobileSlow4GRTTMs * 3.75,
		"downloadThroughputKbps": mobileSlow4GThroughputKbps * 0.9,
		"uploadThroughputKbps":   675.0,
		"cpuSlowdownMultiplier":  4.0,
	}
}

func desktopDense4GThrottling() map[string]any {
	return map[string]any{
		"rttMs":                  desktopDense4GRTTMs,
		"throughputKbps":         desktopDense4GThroughputKbps,
		"requestLatencyMs":       0.0,
		"downloadThroughputKbps": 0.0,
		"uploadThroughputKbps":   0.0,
		"cpuSlowdownMultiplier":  1.0,
	}
}

// Screen emulation metrics per form factor.
func mobileScreenEmulation() map[string]any {
	return map[string]any{
		"mobile":            true,
		"width":             412,
		"height":            823,
		"deviceScaleFactor": 1.75,
		"disabled":          false,
	}
}

func desktopScreenEmulation() map[string]any {
	return map[string]any{
		"mobile":            false,
		"width":             1350,
		"height":            940,
		"deviceScaleFactor": 1.0,
		"disabled":          false,
	}
}

// Canonical emulated user agents, substituted when the emulatedUserAgent
// setting is left as boolean true.
const (
	mobileUserAgent  = "Mozilla/5.0 (Linux; Android 11; moto g power (2022)) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Mobile Safari/537.36"
	desktopUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
)

// supportedLocales is the closed set locale matching resolves into.
var supportedLocales = []string{
	"en-US", "en-GB", "de", "es", "fr", "ja", "ko", "pt", "ru", "zh",
}

// DefaultLocale is the fallback when no requested locale matches.
const DefaultLocale = "en-US"

// defaultSettingsMap is the canonical settings tree. Every recognized
// settings key appears here; flag cleaning drops any key absent from this
// map. Values are the map/slice/scalar shapes the fragment merger operates
// on; the typed Settings struct is decoded only after merging completes.
func defaultSettingsMap() map[string]any {
	return map[string]any{
		"output":                    "report",
		"locale":                    DefaultLocale,
		"maxWaitForFcp":             30000,
		"maxWaitForLoad":            45000,
		"blankPage":                 "about:blank",
		"formFactor":                "mobile",
		"throttlingMethod":          "simulate",
		"throttling":                mobileSlow4GThrottling(),
		"screenEmulation":           mobileScreenEmulation(),
		"emulatedUserAgent":         true,
		"channel":                   "cli",
		"disableStorageReset":       false,
		"disableFullPageScreenshot": false,
		"debugNavigation":           false,
		"blockedUrlPatterns":        nil,
		"extraHeaders":              nil,
		"onlyAudits":                nil,
		"onlyCategories":            nil,
		"skipAudits":                nil,
	}
}

// gatherModeOrdinals orders the lifecycles for phase-compatibility checks:
// a navigation run subsumes both other lifecycles, so it sits highest.
var gatherModeOrdinals = map[string]int{
	"timespan":   0,
	"snapshot":   1,
	"navigation": 2,
}

// artifactResolutionPriority forces destructive or order-sensitive
// gatherers to the end of the resolved artifact list. All unlisted
// artifacts keep declaration order at priority 0.
var artifactResolutionPriority = map[string]int{
	"FullPageScreenshot": 1,
	"BFCacheFailures":    1,
}

// baseArtifactIDs are always present at audit time regardless of config;
// audits may require them without an artifact declaration.
var baseArtifactIDs = []string{"GatherContext", "URL", "HostUserAgent", "Timing"}

// filterResistantAuditIDs always survive explicit audit filtering. The set
// is configurable and currently empty.
var filterResistantAuditIDs = []string{}
