package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vadim-stepanov/grid/pkg/layout"
)

func testLayout() layout.Layout {
	return layout.Layout{
		Flow:          "rows",
		Mode:          "fill",
		Width:         300,
		Height:        200,
		ContentWidth:  300,
		ContentHeight: 200,
		Blocks: []layout.Block{
			{ID: "b", X: 0, Y: 100, Width: 300, Height: 100},
			{ID: "a", X: 0, Y: 0, Width: 300, Height: 100},
		},
	}
}

// ============================================================================
// SVG
// ============================================================================

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	if !strings.Contains(svg, `viewBox="0 0 300.0 200.0"`) {
		t.Errorf("missing viewBox, got:\n%s", svg)
	}
	if !strings.Contains(svg, `width="300" height="200"`) {
		t.Errorf("missing width/height attributes, got:\n%s", svg)
	}
	for _, id := range []string{"block-a", "block-b"} {
		if !strings.Contains(svg, `id="`+id+`"`) {
			t.Errorf("missing rect for %s", id)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("document not closed")
	}
}

func TestRenderSVGLabels(t *testing.T) {
	plain := string(RenderSVG(testLayout()))
	labeled := string(RenderSVG(testLayout(), WithLabels()))

	if strings.Contains(plain, "<text") {
		t.Error("labels rendered without WithLabels")
	}
	if !strings.Contains(labeled, "<text") {
		t.Error("WithLabels did not render text elements")
	}
}

func TestRenderSVGScale(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithScale(2)))

	// The viewBox stays in layout units; only the canvas scales.
	if !strings.Contains(svg, `viewBox="0 0 300.0 200.0"`) {
		t.Errorf("viewBox changed under scaling, got:\n%s", svg)
	}
	if !strings.Contains(svg, `width="600" height="400"`) {
		t.Errorf("canvas not scaled, got:\n%s", svg)
	}
}

func TestRenderSVGBackground(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithBackground("#fafafa")))
	if !strings.Contains(svg, `fill="#fafafa"`) {
		t.Error("background rect not rendered")
	}
}

func TestRenderSVGScrollOverhang(t *testing.T) {
	l := testLayout()
	l.Mode = "scroll"
	l.ContentHeight = 500

	svg := string(RenderSVG(l))
	if !strings.Contains(svg, `viewBox="0 0 300.0 500.0"`) {
		t.Errorf("viewBox does not cover scroll overhang, got:\n%s", svg)
	}
}

func TestRenderSVGEscapesIDs(t *testing.T) {
	l := testLayout()
	l.Blocks[0].ID = `a<b"`

	svg := string(RenderSVG(l, WithLabels()))
	if strings.Contains(svg, `id="block-a<`) {
		t.Error("ID not escaped in attribute")
	}
	if !strings.Contains(svg, "a&lt;b&quot;") {
		t.Errorf("escaped ID missing, got:\n%s", svg)
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	first := RenderSVG(testLayout(), WithLabels())
	second := RenderSVG(testLayout(), WithLabels())
	if !bytes.Equal(first, second) {
		t.Error("same layout produced different SVG")
	}
}

// ============================================================================
// JSON
// ============================================================================

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testLayout())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Width != 300 || out.Height != 200 {
		t.Errorf("bounding = %vx%v, want 300x200", out.Width, out.Height)
	}
	if out.Flow != "rows" || out.Mode != "fill" {
		t.Errorf("flow/mode = %q/%q, want rows/fill", out.Flow, out.Mode)
	}
	if len(out.Blocks) != 2 {
		t.Fatalf("blocks count = %d, want 2", len(out.Blocks))
	}
	// Blocks are sorted by ID regardless of input order.
	if out.Blocks[0].ID != "a" || out.Blocks[1].ID != "b" {
		t.Errorf("block order = [%s %s], want [a b]", out.Blocks[0].ID, out.Blocks[1].ID)
	}
	if out.Blocks[0].Cell != nil {
		t.Error("cell populated without an arrangement")
	}
}

func TestRenderJSONWithArrangement(t *testing.T) {
	arr := layout.Arrangement{
		Flow:          "rows",
		FixedTracks:   1,
		GrowingTracks: 2,
		Items: []layout.Item{
			{ID: "a", Row: 0, Col: 0, RowSpan: 1, ColSpan: 1},
			{ID: "b", Row: 1, Col: 0, RowSpan: 1, ColSpan: 1},
		},
	}

	data, err := RenderJSON(testLayout(), WithJSONArrangement(arr))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.FixedTracks != 1 {
		t.Errorf("FixedTracks = %d, want 1", out.FixedTracks)
	}
	if out.Blocks[1].Cell == nil {
		t.Fatal("cell missing for block b")
	}
	if out.Blocks[1].Cell.Row != 1 || out.Blocks[1].Cell.Col != 0 {
		t.Errorf("cell = (%d,%d), want (1,0)", out.Blocks[1].Cell.Row, out.Blocks[1].Cell.Col)
	}
}

func TestRenderJSONCompact(t *testing.T) {
	data, err := RenderJSON(testLayout(), WithJSONCompact())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if bytes.Contains(data, []byte("\n")) {
		t.Error("compact output contains newlines")
	}
}

// ============================================================================
// TEXT
// ============================================================================

func TestRenderText(t *testing.T) {
	out := string(RenderText(testLayout(), WithTextWidth(41)))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) < 3 {
		t.Fatalf("canvas has %d lines, want >= 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "+") || !strings.HasSuffix(lines[0], "+") {
		t.Errorf("top border missing corners: %q", lines[0])
	}
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Errorf("labels missing:\n%s", out)
	}
	if !strings.Contains(out, "|") {
		t.Errorf("vertical borders missing:\n%s", out)
	}
}

func TestRenderTextWithoutLabels(t *testing.T) {
	out := string(RenderText(testLayout(), WithTextWidth(41), WithoutTextLabels()))
	if strings.Contains(out, "a") || strings.Contains(out, "b") {
		t.Errorf("labels rendered despite WithoutTextLabels:\n%s", out)
	}
}

func TestRenderTextEmpty(t *testing.T) {
	out := string(RenderText(layout.Layout{}))
	if out != "(empty layout)\n" {
		t.Errorf("got %q", out)
	}
}

func TestRenderTextDeterministic(t *testing.T) {
	first := RenderText(testLayout())
	second := RenderText(testLayout())
	if !bytes.Equal(first, second) {
		t.Error("same layout produced different text")
	}
}
