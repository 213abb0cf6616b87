// Package render provides output rendering for resolved layouts.
//
// # Overview
//
// This package defines the output [Format] enumeration and hosts the
// renderers that transform a resolved [layout.Layout] into final
// artifacts. It provides:
//
//   - SVG: scalable vector graphics of the positioned blocks
//   - JSON: layout data export for external tools
//   - Text: ASCII diagram for terminal inspection
//
// The renderers themselves live in the [sink] subpackage:
//
//	svg := sink.RenderSVG(l, sink.WithLabels())
//	data, err := sink.RenderJSON(l)
//	txt := sink.RenderText(l, sink.WithTextWidth(100))
//
// # Adding New Formats
//
//  1. Add a Format constant here and teach [ParseFormat] about it
//  2. Create a renderer in sink: func RenderFoo(l layout.Layout, opts ...FooOption) []byte
//  3. Register it in the pipeline's render stage and in internal/cli
//
// [layout.Layout]: github.com/vadim-stepanov/grid/pkg/layout.Layout
// [sink]: github.com/vadim-stepanov/grid/pkg/render/sink
package render
