// Package sink provides output format renderers for resolved layouts.
//
// # Overview
//
// A "sink" transforms a resolved [layout.Layout] into a final output
// format. This package provides renderers for:
//
//   - SVG: vector graphics with one rectangle per block
//   - JSON: layout data export for external tools
//   - Text: ASCII box diagram for terminal inspection
//
// # SVG Output
//
// [RenderSVG] produces an SVG whose viewBox covers the content size, so
// scroll-mode overhang past the bounding box stays visible:
//
//	svg := sink.RenderSVG(l,
//	    sink.WithLabels(),
//	    sink.WithScale(2),
//	)
//
// # JSON Output
//
// [RenderJSON] exports the layout as JSON, optionally enriched with the
// grid cell each block occupies:
//
//	data, err := sink.RenderJSON(l, sink.WithJSONArrangement(arr))
//
// # Text Output
//
// [RenderText] scales the layout onto a character canvas and draws each
// block as a box with its ID inside. Useful for quick terminal checks
// and golden-file tests.
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(l layout.Layout, opts ...FooOption) []byte
//  2. Define option types for configuration
//  3. Register it in render.ParseFormat and internal/cli for CLI support
//
// [layout.Layout]: github.com/vadim-stepanov/grid/pkg/layout.Layout
package sink
