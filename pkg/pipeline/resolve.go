package pipeline

import (
	"context"
	"time"

	"github.com/vadim-stepanov/grid/pkg/grid"
	"github.com/vadim-stepanov/grid/pkg/layout"
	"github.com/vadim-stepanov/grid/pkg/observability"
	"github.com/vadim-stepanov/grid/pkg/spec"
)

// ResolveArrangement runs the resolution pass: the arrangement is
// re-validated, then resolved against the spec's bounding size, track
// rules, and content mode.
func ResolveArrangement(ctx context.Context, arr layout.Arrangement, s *spec.Spec, opts Options) (layout.Layout, error) {
	opts.setLoggerDefault()

	ga, flow, err := arr.ToGrid()
	if err != nil {
		return layout.Layout{}, err
	}

	observability.Pipeline().OnResolveStart(ctx, ga.Len(), s.Bounding.Width, s.Bounding.Height)
	start := time.Now()

	positions, err := grid.Reposition(s.Intrinsics, ga, s.Bounding, s.Tracks, s.Mode, flow,
		grid.WithLogger(opts.Logger),
	)

	observability.Pipeline().OnResolveComplete(ctx, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, err
	}

	return layout.FromPositions(positions, s.Bounding, s.Mode, flow), nil
}
