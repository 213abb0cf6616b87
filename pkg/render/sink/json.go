package sink

import (
	"cmp"
	"encoding/json"
	"slices"

	"github.com/vadim-stepanov/grid/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	arrangement *layout.Arrangement
	compact     bool
}

// WithJSONArrangement attaches the placement pass, enriching each block
// with the grid cell it occupies. Without this, blocks carry only pixel
// bounds.
func WithJSONArrangement(a layout.Arrangement) JSONOption {
	return func(r *jsonRenderer) { r.arrangement = &a }
}

// WithJSONCompact emits single-line JSON instead of indented output.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Flow          string      `json:"flow"`
	Mode          string      `json:"mode"`
	Width         float64     `json:"width"`
	Height        float64     `json:"height"`
	ContentWidth  float64     `json:"content_width"`
	ContentHeight float64     `json:"content_height"`
	FixedTracks   int         `json:"fixed_tracks,omitempty"`
	Blocks        []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	ID     string    `json:"id"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Cell   *jsonCell `json:"cell,omitempty"`
}

type jsonCell struct {
	Row     int `json:"row"`
	Col     int `json:"col"`
	RowSpan int `json:"row_span"`
	ColSpan int `json:"col_span"`
}

// RenderJSON exports the layout as a JSON document. This is the primary
// data interchange format, enabling:
//
//   - Integration with external rendering front ends
//   - Caching resolved layouts for fast re-rendering
//   - Round-trip workflows (resolve once, restyle many times)
//
// Blocks are emitted in ID order so output is deterministic. RenderJSON
// returns an error only if JSON marshaling fails. It does not modify l
// and is safe to call concurrently.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Flow:          l.Flow,
		Mode:          l.Mode,
		Width:         l.Width,
		Height:        l.Height,
		ContentWidth:  l.ContentWidth,
		ContentHeight: l.ContentHeight,
		Blocks:        buildJSONBlocks(l, r.arrangement),
	}
	if r.arrangement != nil {
		out.FixedTracks = r.arrangement.FixedTracks
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONBlocks(l layout.Layout, arr *layout.Arrangement) []jsonBlock {
	cells := make(map[string]jsonCell)
	if arr != nil {
		for _, it := range arr.Items {
			cells[it.ID] = jsonCell{
				Row:     it.Row,
				Col:     it.Col,
				RowSpan: it.RowSpan,
				ColSpan: it.ColSpan,
			}
		}
	}

	blocks := make([]jsonBlock, 0, len(l.Blocks))
	for _, b := range l.Blocks {
		jb := jsonBlock{
			ID:     b.ID,
			X:      b.X,
			Y:      b.Y,
			Width:  b.Width,
			Height: b.Height,
		}
		if cell, ok := cells[b.ID]; ok {
			jb.Cell = &cell
		}
		blocks = append(blocks, jb)
	}
	slices.SortFunc(blocks, func(a, b jsonBlock) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return blocks
}
