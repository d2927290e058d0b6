package gather

import (
	"context"
	"errors"

	"github.com/chromedp/chromedp"
)

// ErrNoDriver is returned by browser-backed gatherers when the gather
// context carries no driver (e.g. in offline tests).
var ErrNoDriver = errors.New("gather: no browser driver attached")

// Driver wraps a chromedp browser-tab context. One Driver is owned by one
// run; gatherers receive it through Context and must not retain it.
type Driver struct {
	tab context.Context
}

// NewDriver wraps an existing chromedp tab context.
func NewDriver(tab context.Context) *Driver {
	return &Driver{tab: tab}
}

// Run executes chromedp actions against the tab.
func (d *Driver) Run(actions ...chromedp.Action) error {
	if d == nil || d.tab == nil {
		return ErrNoDriver
	}
	return chromedp.Run(d.tab, actions...)
}

// Evaluate runs a JavaScript expression in the page and unmarshals the
// result into out.
func (d *Driver) Evaluate(expr string, out any) error {
	return d.Run(chromedp.Evaluate(expr, out))
}

// Tab exposes the underlying chromedp context for gatherers that need to
// register protocol event listeners.
func (d *Driver) Tab() context.Context {
	if d == nil {
		return nil
	}
	return d.tab
}
