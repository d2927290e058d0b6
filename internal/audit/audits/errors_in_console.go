// Package audits holds the built-in audit implementations registered in
// the core registry under their meta ids.
package audits

import (
	"context"
	"fmt"

	"beacon/internal/audit"
	"beacon/internal/gather"
	"beacon/internal/gather/gatherers"
)

// ErrorsInConsole fails when the page logged errors or threw uncaught
// exceptions during the observed span.
type ErrorsInConsole struct {
	audit.Unimplemented
}

func (*ErrorsInConsole) Meta() audit.Meta {
	return audit.Meta{
		ID:                "errors-in-console",
		Title:             "No browser errors logged to the console",
		FailureTitle:      "Browser errors were logged to the console",
		Description:       "Errors logged to the console indicate unresolved problems from network failures or other browser concerns.",
		RequiredArtifacts: []string{"ConsoleMessages"},
		SupportedModes:    []gather.Mode{gather.ModeNavigation, gather.ModeTimespan},
	}
}

func (*ErrorsInConsole) Audit(_ context.Context, actx *audit.Context) (*audit.Result, error) {
	msgs, _ := actx.Artifacts["ConsoleMessages"].([]gatherers.ConsoleMessage)
	var errs []gatherers.ConsoleMessage
	for _, m := range msgs {
		if m.Level == "error" {
			errs = append(errs, m)
		}
	}
	res := audit.Binary(len(errs) == 0)
	if len(errs) > 0 {
		res.DisplayValue = fmt.Sprintf("%d errors", len(errs))
		res.Details = errs
	}
	return res, nil
}
