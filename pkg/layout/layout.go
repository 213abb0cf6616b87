// Package layout defines the canonical serialization formats for grid
// arrangements and resolved layouts.
//
// These are the interchange documents of the toolkit: the CLI writes
// them to disk between pipeline stages, the HTTP API returns them, and
// the cache stores them. The formats are human-readable JSON designed
// for round-trip fidelity: arrange → export → re-import → reposition
// produces identical results.
package layout

import (
	"encoding/json"
	"os"

	"github.com/vadim-stepanov/grid/pkg/errors"
	"github.com/vadim-stepanov/grid/pkg/grid"
)

// =============================================================================
// Arrangement - Placement Serialization
// =============================================================================

// Item is one placed item in a serialized arrangement: its starting cell
// and the number of tracks it spans on each axis.
type Item struct {
	ID      string `json:"id"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	RowSpan int    `json:"row_span"`
	ColSpan int    `json:"col_span"`
}

// Arrangement is the serialization format for a placement pass.
type Arrangement struct {
	Flow          string `json:"flow"`
	FixedTracks   int    `json:"fixed_tracks"`
	GrowingTracks int    `json:"growing_tracks"`
	Items         []Item `json:"items"`
}

// FromArrangement converts a computed arrangement to its serialization
// format. Items appear in placement order.
func FromArrangement(a *grid.Arrangement, flow grid.Flow) Arrangement {
	out := Arrangement{
		Flow:          flow.String(),
		FixedTracks:   a.FixedTracks(),
		GrowingTracks: a.GrowingTracks(),
		Items:         make([]Item, 0, a.Len()),
	}
	for _, it := range a.Items() {
		out.Items = append(out.Items, Item{
			ID:      it.ID,
			Row:     it.Start.Row,
			Col:     it.Start.Col,
			RowSpan: it.RowSpan(),
			ColSpan: it.ColSpan(),
		})
	}
	return out
}

// ToGrid rebuilds the computed arrangement, re-validating the no-overlap
// and fixed-axis-bound invariants.
func (a Arrangement) ToGrid() (*grid.Arrangement, grid.Flow, error) {
	flow, err := grid.ParseFlow(a.Flow)
	if err != nil {
		return nil, flow, err
	}
	items := make([]grid.ArrangedItem, len(a.Items))
	for i, it := range a.Items {
		if it.RowSpan < 1 || it.ColSpan < 1 {
			return nil, flow, errors.New(errors.ErrCodeInvalidInput,
				"item %q: spans must be >= 1", it.ID)
		}
		items[i] = grid.ArrangedItem{
			ID:    it.ID,
			Start: grid.Point{Row: it.Row, Col: it.Col},
			End:   grid.Point{Row: it.Row + it.RowSpan - 1, Col: it.Col + it.ColSpan - 1},
		}
	}
	arr, err := grid.NewArrangement(flow, a.FixedTracks, items)
	return arr, flow, err
}

// MarshalArrangement serializes an Arrangement to pretty-printed JSON.
func MarshalArrangement(a Arrangement) ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// UnmarshalArrangement deserializes JSON bytes into an Arrangement.
func UnmarshalArrangement(data []byte) (Arrangement, error) {
	var a Arrangement
	if err := json.Unmarshal(data, &a); err != nil {
		return Arrangement{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal arrangement")
	}
	return a, nil
}

// WriteArrangementFile writes an Arrangement to a JSON file.
func WriteArrangementFile(a Arrangement, path string) error {
	data, err := MarshalArrangement(a)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadArrangementFile reads an Arrangement from a JSON file.
func ReadArrangementFile(path string) (Arrangement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Arrangement{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return UnmarshalArrangement(data)
}

// =============================================================================
// Layout - Resolved Geometry Serialization
// =============================================================================

// Block is one positioned item in a resolved layout.
type Block struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout is the serialization format for a resolution pass: final bounds
// per item plus the total content size. ContentWidth/ContentHeight may
// exceed Width/Height in scroll mode; that overhang is the scrollable
// extent.
type Layout struct {
	Flow          string  `json:"flow"`
	Mode          string  `json:"mode"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	ContentWidth  float64 `json:"content_width"`
	ContentHeight float64 `json:"content_height"`
	Blocks        []Block `json:"blocks"`
}

// FromPositions converts a resolution result to its serialization format.
func FromPositions(p *grid.Positions, bounding grid.Size, mode grid.ContentMode, flow grid.Flow) Layout {
	out := Layout{
		Flow:          flow.String(),
		Mode:          mode.String(),
		Width:         bounding.Width,
		Height:        bounding.Height,
		ContentWidth:  p.ContentSize.Width,
		ContentHeight: p.ContentSize.Height,
		Blocks:        make([]Block, len(p.Items)),
	}
	for i, it := range p.Items {
		out.Blocks[i] = Block{
			ID:     it.ID,
			X:      it.Bounds.X,
			Y:      it.Bounds.Y,
			Width:  it.Bounds.Width,
			Height: it.Bounds.Height,
		}
	}
	return out
}

// MarshalLayout serializes a Layout to pretty-printed JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal layout")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
