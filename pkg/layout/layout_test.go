package layout

import (
	"testing"

	"github.com/vadim-stepanov/grid/pkg/errors"
	"github.com/vadim-stepanov/grid/pkg/grid"
)

func TestArrangementRoundTrip(t *testing.T) {
	prefs := []grid.SpanPreference{
		{ID: "a", RowSpan: 1, ColSpan: 2},
		{ID: "b", RowSpan: 2, ColSpan: 1},
		{ID: "c", RowSpan: 1, ColSpan: 1},
	}
	arr, err := grid.Arrange(prefs, 3, grid.FlowRows)
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}

	exported := FromArrangement(arr, grid.FlowRows)
	if exported.FixedTracks != 3 {
		t.Errorf("FixedTracks = %d, want 3", exported.FixedTracks)
	}
	if exported.GrowingTracks != arr.GrowingTracks() {
		t.Errorf("GrowingTracks = %d, want %d", exported.GrowingTracks, arr.GrowingTracks())
	}

	rebuilt, flow, err := exported.ToGrid()
	if err != nil {
		t.Fatalf("ToGrid: %v", err)
	}
	if flow != grid.FlowRows {
		t.Errorf("flow = %v, want FlowRows", flow)
	}
	if rebuilt.Len() != arr.Len() || rebuilt.GrowingTracks() != arr.GrowingTracks() {
		t.Errorf("rebuilt arrangement differs: len=%d growing=%d", rebuilt.Len(), rebuilt.GrowingTracks())
	}
	for _, want := range arr.Items() {
		got, ok := rebuilt.Item(want.ID)
		if !ok {
			t.Fatalf("item %q missing after round trip", want.ID)
		}
		if got != want {
			t.Errorf("item %q = %+v, want %+v", want.ID, got, want)
		}
	}
}

func TestToGridRejectsCorruptArrangement(t *testing.T) {
	tests := []struct {
		name     string
		in       Arrangement
		wantCode errors.Code
	}{
		{
			name: "overlapping items",
			in: Arrangement{
				Flow:        "rows",
				FixedTracks: 2,
				Items: []Item{
					{ID: "a", Row: 0, Col: 0, RowSpan: 1, ColSpan: 2},
					{ID: "b", Row: 0, Col: 1, RowSpan: 1, ColSpan: 1},
				},
			},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name: "zero span",
			in: Arrangement{
				Flow:        "rows",
				FixedTracks: 2,
				Items:       []Item{{ID: "a", Row: 0, Col: 0, RowSpan: 0, ColSpan: 1}},
			},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "unknown flow",
			in:       Arrangement{Flow: "spiral", FixedTracks: 2},
			wantCode: errors.ErrCodeInvalidFlow,
		},
		{
			name: "item beyond fixed tracks",
			in: Arrangement{
				Flow:        "rows",
				FixedTracks: 2,
				Items:       []Item{{ID: "a", Row: 0, Col: 1, RowSpan: 1, ColSpan: 2}},
			},
			wantCode: errors.ErrCodeInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.in.ToGrid()
			if err == nil {
				t.Fatal("ToGrid accepted corrupt arrangement")
			}
			if errors.GetCode(err) != tt.wantCode {
				t.Errorf("error code = %q, want %q (%v)", errors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestUnmarshalRejectsCorruptDocuments(t *testing.T) {
	if _, err := UnmarshalArrangement([]byte("{not json")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("UnmarshalArrangement error = %v, want INVALID_INPUT", err)
	}
	if _, err := UnmarshalLayout([]byte("{not json")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("UnmarshalLayout error = %v, want INVALID_INPUT", err)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := Layout{
		Flow:          "rows",
		Mode:          "scroll",
		Width:         300,
		Height:        200,
		ContentWidth:  300,
		ContentHeight: 450,
		Blocks: []Block{
			{ID: "a", X: 0, Y: 0, Width: 150, Height: 220},
			{ID: "b", X: 150, Y: 10, Width: 150, Height: 200},
		},
	}

	path := t.TempDir() + "/layout.json"
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if got.ContentHeight != 450 || len(got.Blocks) != 2 || got.Blocks[1].ID != "b" {
		t.Errorf("round trip lost data: %+v", got)
	}
}
