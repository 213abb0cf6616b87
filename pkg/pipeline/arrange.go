package pipeline

import (
	"context"
	"time"

	"github.com/vadim-stepanov/grid/pkg/grid"
	"github.com/vadim-stepanov/grid/pkg/layout"
	"github.com/vadim-stepanov/grid/pkg/observability"
	"github.com/vadim-stepanov/grid/pkg/spec"
)

// ArrangeSpec runs the placement pass for a parsed spec and returns the
// serializable arrangement.
func ArrangeSpec(ctx context.Context, s *spec.Spec, opts Options) (layout.Arrangement, error) {
	opts.setLoggerDefault()

	observability.Pipeline().OnArrangeStart(ctx, len(s.Preferences), s.FixedTracks)
	start := time.Now()

	arr, err := grid.Arrange(s.Preferences, s.FixedTracks, s.Flow,
		grid.WithSpanPolicy(s.Policy),
		grid.WithLogger(opts.Logger),
	)

	placed := 0
	if arr != nil {
		placed = arr.Len()
	}
	observability.Pipeline().OnArrangeComplete(ctx, placed, time.Since(start), err)
	if err != nil {
		return layout.Arrangement{}, err
	}

	return layout.FromArrangement(arr, s.Flow), nil
}
