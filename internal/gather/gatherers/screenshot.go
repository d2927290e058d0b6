package gatherers

import (
	"context"

	"github.com/chromedp/chromedp"

	"beacon/internal/gather"
)

// FullPageScreenshotArtifact is the final full-height capture of the page.
type FullPageScreenshotArtifact struct {
	Data   []byte `json:"data"`
	Format string `json:"format"`
}

// FullPageScreenshot captures the whole page. It scrolls and resizes the
// viewport to do so, which disturbs the page; the resolver therefore sorts
// it after all ordinary artifacts.
type FullPageScreenshot struct {
	gather.Base
}

// NewFullPageScreenshot returns the gatherer.
func NewFullPageScreenshot() gather.Gatherer { return &FullPageScreenshot{} }

func (*FullPageScreenshot) Meta() gather.Meta {
	return gather.Meta{SupportedModes: gather.AllModes}
}

func (*FullPageScreenshot) GetArtifact(_ context.Context, gctx *gather.Context) (any, error) {
	var buf []byte
	if err := gctx.Driver.Run(chromedp.FullScreenshot(&buf, 80)); err != nil {
		return nil, err
	}
	return FullPageScreenshotArtifact{Data: buf, Format: "png"}, nil
}
