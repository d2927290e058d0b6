package gatherers

import (
	"context"

	"beacon/internal/gather"
)

// MetaElement is one <meta> tag plus the document title rides alongside in
// the MetaElements artifact.
type MetaElement struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// MetaElementsArtifact carries the document's meta tags and title.
type MetaElementsArtifact struct {
	Title string        `json:"title"`
	Metas []MetaElement `json:"metas"`
}

// MetaElements reads the document title and every meta tag.
type MetaElements struct {
	gather.Base
}

// NewMetaElements returns the gatherer.
func NewMetaElements() gather.Gatherer { return &MetaElements{} }

func (*MetaElements) Meta() gather.Meta {
	return gather.Meta{
		SupportedModes: []gather.Mode{gather.ModeNavigation, gather.ModeSnapshot},
	}
}

func (*MetaElements) GetArtifact(_ context.Context, gctx *gather.Context) (any, error) {
	const expr = `({
		title: document.title,
		metas: Array.from(document.querySelectorAll('head meta')).map(m => ({
			name: (m.name || m.getAttribute('property') || '').toLowerCase(),
			content: m.content || '',
		})),
	})`
	var out MetaElementsArtifact
	if err := gctx.Driver.Evaluate(expr, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DOMStatsArtifact summarizes DOM size and shape.
type DOMStatsArtifact struct {
	TotalElements int `json:"totalElements"`
	MaxDepth      int `json:"maxDepth"`
	MaxChildren   int `json:"maxChildren"`
}

// DOMStats walks the DOM in-page and reports element count, depth, and the
// widest parent.
type DOMStats struct {
	gather.Base
}

// NewDOMStats returns the gatherer.
func NewDOMStats() gather.Gatherer { return &DOMStats{} }

func (*DOMStats) Meta() gather.Meta {
	return gather.Meta{
		SupportedModes: []gather.Mode{gather.ModeNavigation, gather.ModeSnapshot},
	}
}

func (*DOMStats) GetArtifact(_ context.Context, gctx *gather.Context) (any, error) {
	const expr = `(() => {
		let total = 0, maxDepth = 0, maxChildren = 0;
		const walk = (node, depth) => {
			total++;
			if (depth > maxDepth) maxDepth = depth;
			if (node.childElementCount > maxChildren) maxChildren = node.childElementCount;
			for (const child of node.children) walk(child, depth + 1);
		};
		walk(document.documentElement, 0);
		return {totalElements: total, maxDepth, maxChildren};
	})()`
	var out DOMStatsArtifact
	if err := gctx.Driver.Evaluate(expr, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ImageElement is one <img> in the document.
type ImageElement struct {
	Src           string `json:"src"`
	Alt           string `json:"alt"`
	HasAlt        bool   `json:"hasAlt"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	HasSizeAttrs  bool   `json:"hasSizeAttrs"`
	Loading       string `json:"loading"`
	InViewport    bool   `json:"inViewport"`
}

// ImageElements collects every image with the attributes the image audits
// score on.
type ImageElements struct {
	gather.Base
}

// NewImageElements returns the gatherer.
func NewImageElements() gather.Gatherer { return &ImageElements{} }

func (*ImageElements) Meta() gather.Meta {
	return gather.Meta{
		SupportedModes: []gather.Mode{gather.ModeNavigation, gather.ModeSnapshot},
	}
}

func (*ImageElements) GetArtifact(_ context.Context, gctx *gather.Context) (any, error) {
	const expr = `Array.from(document.querySelectorAll('img')).map(img => {
		const rect = img.getBoundingClientRect();
		return {
			src: img.currentSrc || img.src || '',
			alt: img.getAttribute('alt') || '',
			hasAlt: img.hasAttribute('alt'),
			width: Math.round(rect.width),
			height: Math.round(rect.height),
			hasSizeAttrs: img.hasAttribute('width') && img.hasAttribute('height'),
			loading: img.getAttribute('loading') || '',
			inViewport: rect.top < window.innerHeight && rect.bottom > 0,
		};
	})`
	var out []ImageElement
	if err := gctx.Driver.Evaluate(expr, &out); err != nil {
		return nil, err
	}
	return out, nil
}
