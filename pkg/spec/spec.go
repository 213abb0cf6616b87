// Package spec parses grid spec files: the TOML documents that describe
// a grid container, its tracks, and the items to place.
//
// A spec file looks like:
//
//	[grid]
//	tracks = 3            # fixed track count
//	flow = "rows"         # rows (default) or columns
//	mode = "fill"         # fill (default) or scroll
//	width = 800
//	height = 600
//	span_policy = "drop"  # drop (default), clamp, or error
//
//	[[track]]
//	fixed = 50.0
//
//	[[track]]
//	fraction = 1.0
//
//	[[item]]
//	id = "sidebar"
//	row_span = 2
//	col_span = 1
//	width = 120           # intrinsic size, used in scroll mode
//	height = 300
//
// Missing spans default to 1. The number of [[track]] entries must match
// the fixed track count.
package spec

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/vadim-stepanov/grid/pkg/errors"
	"github.com/vadim-stepanov/grid/pkg/grid"
)

// Spec is a parsed and validated grid spec: all inputs a layout pass
// needs, in core types.
type Spec struct {
	FixedTracks int
	Flow        grid.Flow
	Mode        grid.ContentMode
	Policy      grid.SpanPolicy
	Bounding    grid.Size
	Tracks      []grid.TrackSize
	Preferences []grid.SpanPreference
	Intrinsics  []grid.PositionedItem
}

// specFile mirrors the TOML document structure.
type specFile struct {
	Grid   gridSection    `toml:"grid"`
	Tracks []trackSection `toml:"track"`
	Items  []itemSection  `toml:"item"`
}

type gridSection struct {
	Tracks     int     `toml:"tracks"`
	Flow       string  `toml:"flow"`
	Mode       string  `toml:"mode"`
	SpanPolicy string  `toml:"span_policy"`
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
}

type trackSection struct {
	Fixed    *float64 `toml:"fixed"`
	Fraction *float64 `toml:"fraction"`
}

type itemSection struct {
	ID      string  `toml:"id"`
	RowSpan int     `toml:"row_span"`
	ColSpan int     `toml:"col_span"`
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
}

// Load reads and parses a spec file from disk.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "read %s", path)
	}
	return Parse(data)
}

// Parse parses a TOML spec document and validates it.
func Parse(data []byte) (*Spec, error) {
	var file specFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode spec")
	}
	return build(file)
}

func build(file specFile) (*Spec, error) {
	flow, err := grid.ParseFlow(file.Grid.Flow)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "grid.flow")
	}
	mode, err := grid.ParseContentMode(file.Grid.Mode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "grid.mode")
	}
	policy, err := grid.ParseSpanPolicy(file.Grid.SpanPolicy)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec, err, "grid.span_policy")
	}

	if file.Grid.Tracks <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidSpec,
			"grid.tracks must be > 0, got %d", file.Grid.Tracks)
	}
	if len(file.Tracks) != file.Grid.Tracks {
		return nil, errors.New(errors.ErrCodeInvalidSpec,
			"spec declares %d tracks but has %d [[track]] entries",
			file.Grid.Tracks, len(file.Tracks))
	}
	// Width and height may be omitted; callers supply their own bounding
	// size in that case.
	if file.Grid.Width < 0 || file.Grid.Height < 0 {
		return nil, errors.New(errors.ErrCodeInvalidSpec,
			"grid.width and grid.height must not be negative")
	}

	tracks := make([]grid.TrackSize, len(file.Tracks))
	for i, t := range file.Tracks {
		switch {
		case t.Fixed != nil && t.Fraction != nil:
			return nil, errors.New(errors.ErrCodeInvalidSpec,
				"track %d sets both fixed and fraction", i)
		case t.Fixed != nil:
			tracks[i] = grid.Fixed(*t.Fixed)
		case t.Fraction != nil:
			tracks[i] = grid.Fraction(*t.Fraction)
		default:
			return nil, errors.New(errors.ErrCodeInvalidSpec,
				"track %d sets neither fixed nor fraction", i)
		}
	}

	s := &Spec{
		FixedTracks: file.Grid.Tracks,
		Flow:        flow,
		Mode:        mode,
		Policy:      policy,
		Bounding:    grid.Size{Width: file.Grid.Width, Height: file.Grid.Height},
		Tracks:      tracks,
		Preferences: make([]grid.SpanPreference, 0, len(file.Items)),
		Intrinsics:  make([]grid.PositionedItem, 0, len(file.Items)),
	}

	seen := make(map[string]struct{}, len(file.Items))
	for i, it := range file.Items {
		if it.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "item %d has no id", i)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "duplicate item id %q", it.ID)
		}
		seen[it.ID] = struct{}{}

		rowSpan, colSpan := it.RowSpan, it.ColSpan
		if rowSpan == 0 {
			rowSpan = 1
		}
		if colSpan == 0 {
			colSpan = 1
		}

		s.Preferences = append(s.Preferences, grid.SpanPreference{
			ID: it.ID, RowSpan: rowSpan, ColSpan: colSpan,
		})
		s.Intrinsics = append(s.Intrinsics, grid.PositionedItem{
			ID:     it.ID,
			Bounds: grid.Rect{Width: it.Width, Height: it.Height},
		})
	}

	return s, nil
}
