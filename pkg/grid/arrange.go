package grid

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vadim-stepanov/grid/pkg/errors"
)

// =============================================================================
// Span Preferences
// =============================================================================

// SpanPreference is one item's placement request: a stable identity plus
// the number of tracks it wants to occupy along each axis. Input order is
// placement priority.
type SpanPreference struct {
	ID      string `json:"id"`
	RowSpan int    `json:"row_span"`
	ColSpan int    `json:"col_span"`
}

// SpanPolicy decides what happens to an item whose fixed-axis span
// exceeds the fixed track count.
type SpanPolicy int

const (
	// SpanPolicyDrop omits the item from the arrangement. Every dropped
	// item is logged at warn level.
	SpanPolicyDrop SpanPolicy = iota

	// SpanPolicyClamp reduces the fixed-axis span to the track count.
	SpanPolicyClamp

	// SpanPolicyError fails the arrangement with OVERSIZED_SPAN.
	SpanPolicyError
)

// ParseSpanPolicy converts a policy name ("drop", "clamp", "error") to a
// SpanPolicy.
func ParseSpanPolicy(s string) (SpanPolicy, error) {
	switch s {
	case "drop", "":
		return SpanPolicyDrop, nil
	case "clamp":
		return SpanPolicyClamp, nil
	case "error":
		return SpanPolicyError, nil
	default:
		return SpanPolicyDrop, errors.New(errors.ErrCodeInvalidInput,
			"invalid span policy: %q (must be drop, clamp, or error)", s)
	}
}

// String returns the policy name.
func (p SpanPolicy) String() string {
	switch p {
	case SpanPolicyClamp:
		return "clamp"
	case SpanPolicyError:
		return "error"
	default:
		return "drop"
	}
}

// =============================================================================
// Arrangement
// =============================================================================

// ArrangedItem is one placed item: the inclusive cell rectangle it
// occupies, from Start to End.
type ArrangedItem struct {
	ID    string `json:"id"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
}

// RowSpan returns the number of rows the item occupies.
func (a ArrangedItem) RowSpan() int { return a.End.Row - a.Start.Row + 1 }

// ColSpan returns the number of columns the item occupies.
func (a ArrangedItem) ColSpan() int { return a.End.Col - a.Start.Col + 1 }

// contains reports whether the item's rectangle covers p.
func (a ArrangedItem) contains(p Point) bool {
	return p.Row >= a.Start.Row && p.Row <= a.End.Row &&
		p.Col >= a.Start.Col && p.Col <= a.End.Col
}

// Arrangement maps item identities to occupied cell rectangles. It is
// produced by [Arrange] and consumed, unmodified, by [Reposition]. No two
// items overlap, and no item extends beyond the fixed track count.
type Arrangement struct {
	items         map[string]ArrangedItem
	order         []string
	fixedTracks   int
	growingTracks int
}

// NewArrangement builds an arrangement from already-placed items,
// validating the no-overlap and fixed-axis-bound invariants. It is the
// entry point for deserialized arrangements; fresh layouts should use
// [Arrange].
func NewArrangement(flow Flow, fixedTracks int, items []ArrangedItem) (*Arrangement, error) {
	a := &Arrangement{
		items:       make(map[string]ArrangedItem, len(items)),
		order:       make([]string, 0, len(items)),
		fixedTracks: fixedTracks,
	}
	occupied := make(map[Point]struct{})
	for _, it := range items {
		if it.End.Row < it.Start.Row || it.End.Col < it.Start.Col {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"item %q: end precedes start", it.ID)
		}
		if flow.Fixed(it.Start) < 0 || flow.Fixed(it.End) >= fixedTracks {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"item %q: outside fixed-axis bounds", it.ID)
		}
		if _, dup := a.items[it.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"duplicate item %q", it.ID)
		}
		for r := it.Start.Row; r <= it.End.Row; r++ {
			for c := it.Start.Col; c <= it.End.Col; c++ {
				p := Point{Row: r, Col: c}
				if _, taken := occupied[p]; taken {
					return nil, errors.New(errors.ErrCodeInvalidInput,
						"item %q overlaps cell (%d,%d)", it.ID, r, c)
				}
				occupied[p] = struct{}{}
			}
		}
		a.items[it.ID] = it
		a.order = append(a.order, it.ID)
		if g := flow.Growing(it.End) + 1; g > a.growingTracks {
			a.growingTracks = g
		}
	}
	return a, nil
}

// Item returns the placed item with the given ID.
func (a *Arrangement) Item(id string) (ArrangedItem, bool) {
	it, ok := a.items[id]
	return it, ok
}

// Items returns all placed items in placement order.
func (a *Arrangement) Items() []ArrangedItem {
	out := make([]ArrangedItem, len(a.order))
	for i, id := range a.order {
		out[i] = a.items[id]
	}
	return out
}

// Len returns the number of placed items.
func (a *Arrangement) Len() int { return len(a.order) }

// FixedTracks returns the track count along the fixed axis.
func (a *Arrangement) FixedTracks() int { return a.fixedTracks }

// GrowingTracks returns the resolved track count along the growing axis:
// one past the highest occupied growing coordinate, or zero when empty.
func (a *Arrangement) GrowingTracks() int { return a.growingTracks }

// ItemAt returns the item occupying the given cell, if any.
func (a *Arrangement) ItemAt(p Point) (ArrangedItem, bool) {
	for _, id := range a.order {
		if it := a.items[id]; it.contains(p) {
			return it, true
		}
	}
	return ArrangedItem{}, false
}

// =============================================================================
// Options
// =============================================================================

// Option configures [Arrange] and [Reposition].
type Option func(*config)

type config struct {
	policy SpanPolicy
	logger *log.Logger
}

// WithSpanPolicy sets the oversized-span policy for [Arrange]. The
// default is SpanPolicyDrop. [Reposition] ignores it.
func WithSpanPolicy(p SpanPolicy) Option {
	return func(c *config) { c.policy = p }
}

// WithLogger sets the logger used for layout diagnostics: dropped or
// clamped spans in [Arrange], unknown items in [Reposition]. Without it,
// diagnostics are discarded.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		policy: SpanPolicyDrop,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// =============================================================================
// Auto-Placement
// =============================================================================

// cell is a grid coordinate in fixed/growing space, used for occupancy
// tracking during placement.
type cell struct{ fixed, growing int }

// Arrange auto-places span preferences into grid cells. Preferences are
// processed in input order with a first-fit raster scan: a cursor starts
// at the origin and advances one fixed-axis step at a time, wrapping to
// the next growing-axis track when the fixed axis is exhausted, until the
// item's full rectangle fits on unoccupied cells. Once an item is placed
// the cursor stays put, so later items never backtrack behind earlier
// ones.
//
// A non-positive fixedTracks yields an empty arrangement, not an error.
// Spans below 1 fail with INVALID_SPAN; spans wider than the fixed axis
// are handled per the configured [SpanPolicy].
func Arrange(prefs []SpanPreference, fixedTracks int, flow Flow, opts ...Option) (*Arrangement, error) {
	cfg := newConfig(opts)

	a := &Arrangement{
		items: make(map[string]ArrangedItem, len(prefs)),
		order: make([]string, 0, len(prefs)),
	}
	if fixedTracks <= 0 {
		return a, nil
	}
	a.fixedTracks = fixedTracks

	occupied := make(map[cell]struct{})
	cursor := cell{}

	for _, pref := range prefs {
		if pref.RowSpan < 1 || pref.ColSpan < 1 {
			return nil, errors.New(errors.ErrCodeInvalidSpan,
				"item %q: spans must be >= 1, got (%d,%d)", pref.ID, pref.RowSpan, pref.ColSpan)
		}
		if _, dup := a.items[pref.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"duplicate item %q", pref.ID)
		}

		fixedSpan, growingSpan := flow.Spans(pref.RowSpan, pref.ColSpan)
		if fixedSpan > fixedTracks {
			switch cfg.policy {
			case SpanPolicyDrop:
				cfg.logger.Warn("dropping item: span exceeds fixed tracks",
					"item", pref.ID, "span", fixedSpan, "tracks", fixedTracks)
				continue
			case SpanPolicyClamp:
				cfg.logger.Warn("clamping item span to fixed tracks",
					"item", pref.ID, "span", fixedSpan, "tracks", fixedTracks)
				fixedSpan = fixedTracks
			case SpanPolicyError:
				return nil, errors.New(errors.ErrCodeOversizedSpan,
					"item %q: fixed-axis span %d exceeds track count %d", pref.ID, fixedSpan, fixedTracks)
			}
		}

		for {
			if cursor.fixed+fixedSpan > fixedTracks {
				cursor.fixed = 0
				cursor.growing++
				continue
			}
			if fits(occupied, cursor, fixedSpan, growingSpan) {
				break
			}
			cursor.fixed++
		}

		for df := 0; df < fixedSpan; df++ {
			for dg := 0; dg < growingSpan; dg++ {
				occupied[cell{cursor.fixed + df, cursor.growing + dg}] = struct{}{}
			}
		}

		item := ArrangedItem{
			ID:    pref.ID,
			Start: flow.At(cursor.fixed, cursor.growing),
			End:   flow.At(cursor.fixed+fixedSpan-1, cursor.growing+growingSpan-1),
		}
		a.items[item.ID] = item
		a.order = append(a.order, item.ID)

		if end := cursor.growing + growingSpan; end > a.growingTracks {
			a.growingTracks = end
		}
	}

	return a, nil
}

// fits reports whether a fixedSpan x growingSpan rectangle anchored at c
// covers only unoccupied cells.
func fits(occupied map[cell]struct{}, c cell, fixedSpan, growingSpan int) bool {
	for df := 0; df < fixedSpan; df++ {
		for dg := 0; dg < growingSpan; dg++ {
			if _, taken := occupied[cell{c.fixed + df, c.growing + dg}]; taken {
				return false
			}
		}
	}
	return true
}
