package gatherers

import (
	"context"

	"beacon/internal/gather"
)

// ScriptsSymbol is the dependency handle later-declared artifacts use to
// consume the Scripts artifact.
var ScriptsSymbol = gather.NewSymbol("Scripts")

// Script is one script in the page, inline or external.
type Script struct {
	URL          string `json:"url"`
	Inline       bool   `json:"inline"`
	Length       int    `json:"length"`
	SourceMapURL string `json:"sourceMapURL"`
}

// Scripts collects the page's scripts along with any declared source map
// URL.
type Scripts struct {
	gather.Base
}

// NewScripts returns the gatherer.
func NewScripts() gather.Gatherer { return &Scripts{} }

func (*Scripts) Meta() gather.Meta {
	return gather.Meta{
		SupportedModes: []gather.Mode{gather.ModeNavigation, gather.ModeTimespan},
		Symbol:         ScriptsSymbol,
	}
}

func (*Scripts) GetArtifact(_ context.Context, gctx *gather.Context) (any, error) {
	const expr = `Array.from(document.scripts).map(s => {
		const text = s.src ? '' : (s.text || '');
		const m = text.match(/\/\/[#@]\s*sourceMappingURL=(\S+)/);
		return {
			url: s.src || '',
			inline: !s.src,
			length: text.length,
			sourceMapURL: m ? m[1] : '',
		};
	})`
	var out []Script
	if err := gctx.Driver.Evaluate(expr, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SourceMapRecord pairs a script with its declared source map, if any.
type SourceMapRecord struct {
	ScriptURL    string `json:"scriptUrl"`
	SourceMapURL string `json:"sourceMapUrl"`
	Missing      bool   `json:"missing"`
}

// SourceMaps derives source-map records from the Scripts artifact; it is
// the canonical example of a symbol-keyed artifact dependency.
type SourceMaps struct {
	gather.Base
}

// NewSourceMaps returns the gatherer.
func NewSourceMaps() gather.Gatherer { return &SourceMaps{} }

func (*SourceMaps) Meta() gather.Meta {
	return gather.Meta{
		SupportedModes: []gather.Mode{gather.ModeNavigation, gather.ModeTimespan},
		Dependencies:   map[string]gather.Symbol{"scripts": ScriptsSymbol},
	}
}

func (*SourceMaps) GetArtifact(_ context.Context, gctx *gather.Context) (any, error) {
	scripts, _ := gctx.Dependencies["scripts"].([]Script)
	records := make([]SourceMapRecord, 0, len(scripts))
	for _, s := range scripts {
		if s.Inline && s.Length == 0 {
			continue
		}
		records = append(records, SourceMapRecord{
			ScriptURL:    s.URL,
			SourceMapURL: s.SourceMapURL,
			Missing:      s.SourceMapURL == "" && !s.Inline,
		})
	}
	return records, nil
}
