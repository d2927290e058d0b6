// Package gather defines the gatherer contract: the lifecycle modes a
// gatherer supports, the opaque dependency symbols it exports and consumes,
// and the driver handle built-in gatherers use to talk to the browser.
package gather

// Mode is the lifecycle under which artifact collection runs.
type Mode string

const (
	// ModeNavigation loads a page from scratch and observes the full load.
	ModeNavigation Mode = "navigation"
	// ModeTimespan observes an already-loaded page over a user-defined span.
	ModeTimespan Mode = "timespan"
	// ModeSnapshot inspects the page in its current state, no time passes.
	ModeSnapshot Mode = "snapshot"
)

// AllModes lists every gather mode. Gatherers that work everywhere declare
// exactly this set.
var AllModes = []Mode{ModeNavigation, ModeTimespan, ModeSnapshot}

// Valid reports whether m is one of the three known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeNavigation, ModeTimespan, ModeSnapshot:
		return true
	}
	return false
}

// SupportsMode reports whether mode appears in modes.
func SupportsMode(modes []Mode, mode Mode) bool {
	for _, m := range modes {
		if m == mode {
			return true
		}
	}
	return false
}
