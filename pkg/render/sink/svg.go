package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/vadim-stepanov/grid/pkg/layout"
)

// defaultPalette cycles across blocks in ID order.
var defaultPalette = []string{
	"#4e79a7", "#f28e2b", "#59a14f", "#e15759",
	"#b07aa1", "#76b7b2", "#edc948", "#9c755f",
}

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	scale      float64
	background string
	palette    []string
}

// WithLabels draws each block's ID centered inside its rectangle.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithScale multiplies the rendered width and height attributes. The
// viewBox is unaffected, so coordinates stay in layout units.
func WithScale(s float64) SVGOption {
	return func(r *svgRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithBackground fills the canvas with the given CSS color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithPalette replaces the default block fill colors.
func WithPalette(colors []string) SVGOption {
	return func(r *svgRenderer) {
		if len(colors) > 0 {
			r.palette = colors
		}
	}
}

// RenderSVG renders the layout as an SVG document. Blocks are emitted in
// ID order so output is deterministic. The viewBox covers the content
// size, which in scroll mode may exceed the bounding box.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1, palette: defaultPalette}
	for _, opt := range opts {
		opt(&r)
	}

	blocks := slices.Clone(l.Blocks)
	slices.SortFunc(blocks, func(a, b layout.Block) int {
		return cmp.Compare(a.ID, b.ID)
	})

	width, height := canvasSize(l)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width*r.scale, height*r.scale)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			width, height, escapeXML(r.background))
	}

	for i, b := range blocks {
		fill := r.palette[i%len(r.palette)]
		fmt.Fprintf(&buf, `  <rect id="block-%s" class="block" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#333" stroke-width="1"/>`+"\n",
			escapeXML(b.ID), b.X, b.Y, b.Width, b.Height, fill)
	}

	if r.labels {
		for _, b := range blocks {
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="12" fill="#fff">%s</text>`+"\n",
				b.X+b.Width/2, b.Y+b.Height/2, escapeXML(b.ID))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// canvasSize picks the larger of bounding and content per axis so
// scrollable overhang is never clipped.
func canvasSize(l layout.Layout) (float64, float64) {
	return max(l.Width, l.ContentWidth), max(l.Height, l.ContentHeight)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
