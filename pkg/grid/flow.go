package grid

import "github.com/vadim-stepanov/grid/pkg/errors"

// Flow selects the auto-placement traversal order by choosing which grid
// axis is fixed (bounded by the caller-supplied track count) and which
// grows to fit content. The fixed axis always advances fastest during
// placement.
type Flow int

const (
	// FlowRows fills the grid row by row: the column count is fixed and
	// rows are added as needed.
	FlowRows Flow = iota

	// FlowColumns fills the grid column by column: the row count is fixed
	// and columns are added as needed.
	FlowColumns
)

// Flow names used in spec files, CLI flags, and serialized layouts.
const (
	flowNameRows    = "rows"
	flowNameColumns = "columns"
)

// ParseFlow converts a flow name ("rows" or "columns") to a Flow.
func ParseFlow(s string) (Flow, error) {
	switch s {
	case flowNameRows, "":
		return FlowRows, nil
	case flowNameColumns:
		return FlowColumns, nil
	default:
		return FlowRows, errors.New(errors.ErrCodeInvalidFlow,
			"invalid flow: %q (must be rows or columns)", s)
	}
}

// String returns the flow name.
func (f Flow) String() string {
	if f == FlowColumns {
		return flowNameColumns
	}
	return flowNameRows
}

// Fixed returns p's coordinate along the fixed axis.
func (f Flow) Fixed(p Point) int {
	if f == FlowColumns {
		return p.Row
	}
	return p.Col
}

// Growing returns p's coordinate along the growing axis.
func (f Flow) Growing(p Point) int {
	if f == FlowColumns {
		return p.Col
	}
	return p.Row
}

// At builds the Point at the given fixed/growing coordinates.
func (f Flow) At(fixed, growing int) Point {
	if f == FlowColumns {
		return Point{Row: fixed, Col: growing}
	}
	return Point{Row: growing, Col: fixed}
}

// Spans splits an item's row/column spans into its fixed-axis and
// growing-axis spans.
func (f Flow) Spans(rowSpan, colSpan int) (fixed, growing int) {
	if f == FlowColumns {
		return rowSpan, colSpan
	}
	return colSpan, rowSpan
}

// FixedLength returns s's extent along the fixed axis.
func (f Flow) FixedLength(s Size) float64 {
	if f == FlowColumns {
		return s.Height
	}
	return s.Width
}

// GrowingLength returns s's extent along the growing axis.
func (f Flow) GrowingLength(s Size) float64 {
	if f == FlowColumns {
		return s.Width
	}
	return s.Height
}

// SizeOf builds a Size from fixed/growing axis lengths.
func (f Flow) SizeOf(fixed, growing float64) Size {
	if f == FlowColumns {
		return Size{Width: growing, Height: fixed}
	}
	return Size{Width: fixed, Height: growing}
}

// RectOf builds a Rect from fixed/growing axis offsets and extents. For
// FlowRows the fixed axis is horizontal; for FlowColumns it is vertical.
func (f Flow) RectOf(fixedOffset, growingOffset, fixedExtent, growingExtent float64) Rect {
	if f == FlowColumns {
		return Rect{X: growingOffset, Y: fixedOffset, Width: growingExtent, Height: fixedExtent}
	}
	return Rect{X: fixedOffset, Y: growingOffset, Width: fixedExtent, Height: growingExtent}
}
