package grid

import (
	"github.com/vadim-stepanov/grid/pkg/errors"
)

// ContentMode selects how the growing axis is sized during resolution.
type ContentMode int

const (
	// ContentModeFill stretches items so growing-axis tracks exactly
	// partition the bounding size.
	ContentModeFill ContentMode = iota

	// ContentModeScroll keeps each item's natural growing-axis size; the
	// total content size may exceed the bounding size.
	ContentModeScroll
)

// ParseContentMode converts a mode name ("fill" or "scroll") to a
// ContentMode.
func ParseContentMode(s string) (ContentMode, error) {
	switch s {
	case "fill", "":
		return ContentModeFill, nil
	case "scroll":
		return ContentModeScroll, nil
	default:
		return ContentModeFill, errors.New(errors.ErrCodeInvalidMode,
			"invalid content mode: %q (must be fill or scroll)", s)
	}
}

// String returns the mode name.
func (m ContentMode) String() string {
	if m == ContentModeScroll {
		return "scroll"
	}
	return "fill"
}

// PositionedItem pairs an item identity with a rectangle. As input to
// [Reposition] the rectangle holds the item's intrinsic bounds (only the
// growing-axis size is consulted, and only in scroll mode); as output it
// holds the item's final bounds.
type PositionedItem struct {
	ID     string `json:"id"`
	Bounds Rect   `json:"bounds"`
}

// Positions is the result of a resolution pass: final bounds for every
// item found in the arrangement, plus the total content size a
// scrollable container needs.
type Positions struct {
	Items       []PositionedItem `json:"items"`
	ContentSize Size             `json:"content_size"`
}

// Reposition resolves an arrangement into concrete bounds. The fixed
// axis is sized by the per-track rules; the growing axis is sized by the
// content mode: fill divides the bounding length equally among growing
// tracks, scroll gives each track the largest evenly-distributed
// intrinsic size of any item touching it and centers items narrower than
// their spanned tracks. All emitted coordinates are rounded to whole
// units.
//
// Items present in the position list but absent from the arrangement are
// omitted from the result and logged through the configured logger. The
// track list must carry exactly one rule per fixed track; anything else
// fails with DEGENERATE_TRACKS.
func Reposition(items []PositionedItem, arrangement *Arrangement, boundingSize Size, tracks []TrackSize, mode ContentMode, flow Flow, opts ...Option) (*Positions, error) {
	cfg := newConfig(opts)

	if arrangement.FixedTracks() > 0 && len(tracks) != arrangement.FixedTracks() {
		return nil, errors.New(errors.ErrCodeDegenerateTracks,
			"track list has %d entries for %d fixed tracks", len(tracks), arrangement.FixedTracks())
	}

	fixedSizes, err := ResolveTrackSizes(tracks, flow.FixedLength(boundingSize))
	if err != nil {
		return nil, err
	}
	fixedOffsets := prefixSums(fixedSizes)

	growingSizes := resolveGrowingSizes(items, arrangement, boundingSize, mode, flow)
	growingOffsets := prefixSums(growingSizes)

	result := &Positions{
		Items: make([]PositionedItem, 0, len(items)),
	}

	for _, it := range items {
		placed, ok := arrangement.Item(it.ID)
		if !ok {
			cfg.logger.Warn("skipping item missing from arrangement", "item", it.ID)
			continue
		}

		fStart, fEnd := flow.Fixed(placed.Start), flow.Fixed(placed.End)
		gStart, gEnd := flow.Growing(placed.Start), flow.Growing(placed.End)

		fixedOffset := fixedOffsets[fStart]
		fixedExtent := fixedOffsets[fEnd+1] - fixedOffsets[fStart]

		var growingOffset, growingExtent float64
		switch mode {
		case ContentModeScroll:
			spanned := growingOffsets[gEnd+1] - growingOffsets[gStart]
			growingExtent = flow.GrowingLength(Size{Width: it.Bounds.Width, Height: it.Bounds.Height})
			// Center the item within its spanned tracks.
			growingOffset = growingOffsets[gStart] + (spanned-growingExtent)/2
		default:
			growingExtent = growingOffsets[gEnd+1] - growingOffsets[gStart]
			growingOffset = growingOffsets[gStart]
		}

		result.Items = append(result.Items, PositionedItem{
			ID: it.ID,
			Bounds: flow.RectOf(
				round(fixedOffset), round(growingOffset),
				round(fixedExtent), round(growingExtent)),
		})
	}

	result.ContentSize = flow.SizeOf(
		round(flow.FixedLength(boundingSize)),
		round(growingOffsets[len(growingSizes)]))

	return result, nil
}

// resolveGrowingSizes computes one size per growing-axis track. Fill mode
// partitions the bounding length equally; scroll mode takes, per track,
// the maximum evenly-distributed intrinsic contribution of any item
// spanning it.
func resolveGrowingSizes(items []PositionedItem, arrangement *Arrangement, boundingSize Size, mode ContentMode, flow Flow) []float64 {
	count := arrangement.GrowingTracks()
	sizes := make([]float64, count)
	if count == 0 {
		return sizes
	}

	if mode == ContentModeFill {
		per := flow.GrowingLength(boundingSize) / float64(count)
		for i := range sizes {
			sizes[i] = per
		}
		return sizes
	}

	for _, it := range items {
		placed, ok := arrangement.Item(it.ID)
		if !ok {
			continue
		}
		gStart, gEnd := flow.Growing(placed.Start), flow.Growing(placed.End)
		span := float64(gEnd - gStart + 1)
		share := flow.GrowingLength(Size{Width: it.Bounds.Width, Height: it.Bounds.Height}) / span
		for g := gStart; g <= gEnd; g++ {
			if share > sizes[g] {
				sizes[g] = share
			}
		}
	}
	return sizes
}
