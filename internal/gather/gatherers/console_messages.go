// Package gatherers holds the built-in gatherer implementations registered
// in the core registry. Artifact ids and registry names match the Go type
// names.
package gatherers

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"beacon/internal/gather"
)

// ConsoleMessage is one entry logged to the page's console, including
// uncaught exceptions.
type ConsoleMessage struct {
	Source string `json:"source"`
	Level  string `json:"level"`
	Text   string `json:"text"`
	URL    string `json:"url,omitempty"`
}

// ConsoleMessages collects console API calls and thrown exceptions over the
// observed span.
type ConsoleMessages struct {
	gather.Base

	mu   sync.Mutex
	msgs []ConsoleMessage
}

// NewConsoleMessages returns an empty collector.
func NewConsoleMessages() gather.Gatherer { return &ConsoleMessages{} }

func (c *ConsoleMessages) Meta() gather.Meta {
	return gather.Meta{
		SupportedModes: []gather.Mode{gather.ModeNavigation, gather.ModeTimespan},
	}
}

// StartInstrumentation subscribes to runtime console and exception events
// for the rest of the tab's lifetime.
func (c *ConsoleMessages) StartInstrumentation(ctx context.Context, gctx *gather.Context) error {
	tab := gctx.Driver.Tab()
	if tab == nil {
		return gather.ErrNoDriver
	}
	chromedp.ListenTarget(tab, func(ev any) {
		switch e := ev.(type) {
		case *runtime.EventConsoleAPICalled:
			c.append(ConsoleMessage{
				Source: "console-api",
				Level:  string(e.Type),
				Text:   firstArgText(e.Args),
			})
		case *runtime.EventExceptionThrown:
			msg := ConsoleMessage{Source: "exception", Level: "error"}
			if d := e.ExceptionDetails; d != nil {
				msg.Text = d.Text
				msg.URL = d.URL
				if d.Exception != nil && d.Exception.Description != "" {
					msg.Text = d.Exception.Description
				}
			}
			c.append(msg)
		}
	})
	return gctx.Driver.Run(runtime.Enable())
}

func (c *ConsoleMessages) StopInstrumentation(context.Context, *gather.Context) error {
	return nil
}

// GetArtifact returns the messages observed so far.
func (c *ConsoleMessages) GetArtifact(context.Context, *gather.Context) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ConsoleMessage, len(c.msgs))
	copy(out, c.msgs)
	return out, nil
}

func (c *ConsoleMessages) append(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func firstArgText(args []*runtime.RemoteObject) string {
	for _, a := range args {
		if a == nil {
			continue
		}
		if len(a.Value) > 0 {
			return string(a.Value)
		}
		if a.Description != "" {
			return a.Description
		}
	}
	return ""
}
