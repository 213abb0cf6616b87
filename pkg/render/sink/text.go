package sink

import (
	"bytes"
	"cmp"
	"math"
	"slices"

	"github.com/vadim-stepanov/grid/pkg/layout"
)

// Character cells are roughly twice as tall as wide; the vertical scale
// compensates so boxes keep their aspect ratio.
const textAspect = 0.5

// TextOption configures text rendering via [RenderText].
type TextOption func(*textRenderer)

type textRenderer struct {
	width  int
	labels bool
}

// WithTextWidth sets the canvas width in characters. The default is 80.
func WithTextWidth(cols int) TextOption {
	return func(r *textRenderer) {
		if cols >= 8 {
			r.width = cols
		}
	}
}

// WithoutTextLabels suppresses block IDs inside the boxes.
func WithoutTextLabels() TextOption { return func(r *textRenderer) { r.labels = false } }

// RenderText renders the layout as an ASCII diagram: the content area is
// scaled onto a character canvas and each block is drawn as a box.
// Blocks are drawn in ID order, so when boxes touch, the later ID wins
// the shared border.
func RenderText(l layout.Layout, opts ...TextOption) []byte {
	r := textRenderer{width: 80, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	contentW, contentH := canvasSize(l)
	if contentW <= 0 || contentH <= 0 || len(l.Blocks) == 0 {
		return []byte("(empty layout)\n")
	}

	scaleX := float64(r.width-1) / contentW
	scaleY := scaleX * textAspect
	rows := int(math.Round(contentH*scaleY)) + 1
	if rows < 3 {
		rows = 3
	}

	canvas := make([][]byte, rows)
	for i := range canvas {
		canvas[i] = bytes.Repeat([]byte{' '}, r.width)
	}

	blocks := slices.Clone(l.Blocks)
	slices.SortFunc(blocks, func(a, b layout.Block) int {
		return cmp.Compare(a.ID, b.ID)
	})

	for _, b := range blocks {
		drawBox(canvas, b, scaleX, scaleY, r.labels)
	}

	var buf bytes.Buffer
	for _, line := range canvas {
		buf.Write(bytes.TrimRight(line, " "))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func drawBox(canvas [][]byte, b layout.Block, scaleX, scaleY float64, label bool) {
	rows, cols := len(canvas), len(canvas[0])

	x0 := clamp(int(math.Round(b.X*scaleX)), 0, cols-1)
	x1 := clamp(int(math.Round((b.X+b.Width)*scaleX)), 0, cols-1)
	y0 := clamp(int(math.Round(b.Y*scaleY)), 0, rows-1)
	y1 := clamp(int(math.Round((b.Y+b.Height)*scaleY)), 0, rows-1)

	// Degenerate boxes still get a visible outline.
	if x1 <= x0 {
		x1 = min(x0+1, cols-1)
	}
	if y1 <= y0 {
		y1 = min(y0+1, rows-1)
	}

	for x := x0; x <= x1; x++ {
		canvas[y0][x] = '-'
		canvas[y1][x] = '-'
	}
	for y := y0; y <= y1; y++ {
		canvas[y][x0] = '|'
		canvas[y][x1] = '|'
	}
	canvas[y0][x0], canvas[y0][x1] = '+', '+'
	canvas[y1][x0], canvas[y1][x1] = '+', '+'

	if !label {
		return
	}
	// Center the ID on the middle row, truncated to the interior.
	interior := x1 - x0 - 1
	if interior < 1 || y1-y0 < 2 {
		return
	}
	text := b.ID
	if len(text) > interior {
		text = text[:interior]
	}
	y := (y0 + y1) / 2
	x := x0 + 1 + (interior-len(text))/2
	copy(canvas[y][x:], text)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
