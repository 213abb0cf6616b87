package pipeline

import (
	"context"
	"time"

	"github.com/vadim-stepanov/grid/pkg/layout"
	"github.com/vadim-stepanov/grid/pkg/observability"
	"github.com/vadim-stepanov/grid/pkg/render"
	"github.com/vadim-stepanov/grid/pkg/render/sink"
)

// RenderFromLayout renders the layout in every requested format and
// returns artifacts keyed by format name.
func RenderFromLayout(ctx context.Context, l layout.Layout, arr layout.Arrangement, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, name := range opts.Formats {
		var format render.Format
		format, err = render.ParseFormat(name)
		if err != nil {
			break
		}
		var data []byte
		data, err = renderFormat(format, l, arr, opts)
		if err != nil {
			break
		}
		artifacts[name] = data
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(format render.Format, l layout.Layout, arr layout.Arrangement, opts Options) ([]byte, error) {
	switch format {
	case render.FormatJSON:
		return sink.RenderJSON(l, sink.WithJSONArrangement(arr))
	case render.FormatText:
		textOpts := []sink.TextOption{sink.WithTextWidth(opts.TextWidth)}
		if !opts.Labels {
			textOpts = append(textOpts, sink.WithoutTextLabels())
		}
		return sink.RenderText(l, textOpts...), nil
	default:
		svgOpts := []sink.SVGOption{sink.WithScale(opts.Scale)}
		if opts.Labels {
			svgOpts = append(svgOpts, sink.WithLabels())
		}
		return sink.RenderSVG(l, svgOpts...), nil
	}
}
