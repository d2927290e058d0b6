package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Init configures the global slog default with the given level and format.
// If w is nil, os.Stderr is used. Format must be "text" or "json".
func Init(level slog.Level, format string, w ...io.Writer) {
	var writer io.Writer = os.Stderr
	if len(w) > 0 && w[0] != nil {
		writer = w[0]
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(writer, opts)
	default:
		handler = slog.NewTextHandler(writer, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// New returns a logger with a "component" attribute for module-scoped logging.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}

// Warnings collects non-fatal warning messages emitted during a single
// config resolution or run, in addition to logging them as they occur.
// Safe for concurrent use.
type Warnings struct {
	mu   sync.Mutex
	log  *slog.Logger
	msgs []string
}

// NewWarnings returns a collector that logs through the given logger.
// A nil logger falls back to a component-scoped default.
func NewWarnings(log *slog.Logger) *Warnings {
	if log == nil {
		log = New("warnings")
	}
	return &Warnings{log: log}
}

// Warnf records a formatted warning and logs it at WARN level.
// A nil collector discards the warning (still logged via the default logger).
func (w *Warnings) Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w == nil {
		slog.Warn(msg)
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msg)
	w.log.Warn(msg)
}

// Messages returns a copy of all warnings recorded so far.
func (w *Warnings) Messages() []string {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.msgs))
	copy(out, w.msgs)
	return out
}
