package grid_test

import (
	"fmt"

	"github.com/vadim-stepanov/grid/pkg/grid"
)

// Arrange a mixed set of span requests on three columns, then resolve
// them into pixel bounds for a 300x200 container.
func Example() {
	prefs := []grid.SpanPreference{
		{ID: "hero", RowSpan: 1, ColSpan: 3},
		{ID: "side", RowSpan: 2, ColSpan: 1},
		{ID: "main", RowSpan: 2, ColSpan: 2},
	}

	arrangement, err := grid.Arrange(prefs, 3, grid.FlowRows)
	if err != nil {
		panic(err)
	}

	items := []grid.PositionedItem{
		{ID: "hero"}, {ID: "side"}, {ID: "main"},
	}
	tracks := []grid.TrackSize{grid.Fixed(60), grid.Fraction(1), grid.Fraction(1)}

	positions, err := grid.Reposition(items, arrangement,
		grid.Size{Width: 300, Height: 200}, tracks, grid.ContentModeFill, grid.FlowRows)
	if err != nil {
		panic(err)
	}

	for _, it := range positions.Items {
		fmt.Printf("%s: x=%.0f y=%.0f w=%.0f h=%.0f\n",
			it.ID, it.Bounds.X, it.Bounds.Y, it.Bounds.Width, it.Bounds.Height)
	}
	// Output:
	// hero: x=0 y=0 w=300 h=67
	// side: x=0 y=67 w=60 h=133
	// main: x=60 y=67 w=240 h=133
}

// An arrangement survives resize passes: recompute bounds without
// re-placing items.
func Example_resize() {
	prefs := []grid.SpanPreference{
		{ID: "a", RowSpan: 1, ColSpan: 1},
		{ID: "b", RowSpan: 1, ColSpan: 1},
	}
	arrangement, _ := grid.Arrange(prefs, 2, grid.FlowRows)
	items := []grid.PositionedItem{{ID: "a"}, {ID: "b"}}
	tracks := []grid.TrackSize{grid.Fraction(1), grid.Fraction(1)}

	for _, width := range []float64{100, 400} {
		positions, _ := grid.Reposition(items, arrangement,
			grid.Size{Width: width, Height: 50}, tracks, grid.ContentModeFill, grid.FlowRows)
		b := positions.Items[1]
		fmt.Printf("width %.0f: b at x=%.0f\n", width, b.Bounds.X)
	}
	// Output:
	// width 100: b at x=50
	// width 400: b at x=200
}
