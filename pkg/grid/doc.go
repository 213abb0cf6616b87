// Package grid computes the placement and pixel geometry of items inside
// a two-dimensional grid container.
//
// Layout happens in two independent phases:
//
//  1. [Arrange] auto-places span requests into grid cells without
//     collision, honoring the flow's traversal order and the fixed track
//     count. The result is an [Arrangement]: a mapping from item ID to an
//     occupied cell rectangle, plus the resolved track counts on both axes.
//  2. [Reposition] resolves an arrangement into concrete bounds given a
//     bounding size, per-track size rules, and a content-fit mode. Fill
//     mode stretches items so growing-axis tracks exactly partition the
//     bounding size; scroll mode keeps natural item sizes and reports a
//     total content size that may exceed the bounds.
//
// Both operations are pure functions over immutable inputs: no shared
// state, no I/O, safe to invoke concurrently on independent inputs.
// Callers that need incremental recomputation re-invoke the affected
// phase; an arrangement can be reused across resize passes without
// re-placing items.
//
// # Axes
//
// The [Flow] selects which of the two grid axes is fixed (bounded by the
// caller-supplied track count) and which grows to fit content. All
// placement and sizing logic works in fixed/growing coordinates and maps
// back to rows and columns through Flow accessors, so the two flows share
// a single code path.
package grid
