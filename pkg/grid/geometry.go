package grid

import "math"

// Point is an integer coordinate in grid space. Row 0, Col 0 is the
// origin; rows grow downward and columns grow to the right.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Size is a width/height pair in layout units (typically pixels).
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is a positioned rectangle: origin plus size, in a single
// coordinate space with the origin at the top-left.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// round snaps a coordinate to the nearest whole unit. Emitted bounds are
// always rounded so adjacent items meet without sub-unit seams.
func round(v float64) float64 { return math.Round(v) }
