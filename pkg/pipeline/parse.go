package pipeline

import (
	"github.com/vadim-stepanov/grid/pkg/grid"
	"github.com/vadim-stepanov/grid/pkg/spec"
)

// ParseSpec loads the grid spec named by the options and applies any
// overrides. Parsing is not cached: spec files are local and cheap to
// re-read, and the file is the natural invalidation point.
func ParseSpec(opts Options) (*spec.Spec, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	var (
		s   *spec.Spec
		err error
	)
	if opts.SpecPath != "" {
		s, err = spec.Load(opts.SpecPath)
	} else {
		s, err = spec.Parse([]byte(opts.SpecTOML))
	}
	if err != nil {
		return nil, err
	}

	if err := applyOverrides(s, opts); err != nil {
		return nil, err
	}
	return s, nil
}

// applyOverrides folds option-level overrides into the parsed spec so
// every later stage sees a single source of truth.
func applyOverrides(s *spec.Spec, opts Options) error {
	if opts.Flow != "" {
		flow, err := grid.ParseFlow(opts.Flow)
		if err != nil {
			return err
		}
		s.Flow = flow
	}
	if opts.SpanPolicy != "" {
		policy, err := grid.ParseSpanPolicy(opts.SpanPolicy)
		if err != nil {
			return err
		}
		s.Policy = policy
	}
	if opts.Mode != "" {
		mode, err := grid.ParseContentMode(opts.Mode)
		if err != nil {
			return err
		}
		s.Mode = mode
	}
	if opts.Width > 0 {
		s.Bounding.Width = opts.Width
	}
	if opts.Height > 0 {
		s.Bounding.Height = opts.Height
	}
	if s.Bounding.Width <= 0 {
		s.Bounding.Width = DefaultWidth
	}
	if s.Bounding.Height <= 0 {
		s.Bounding.Height = DefaultHeight
	}
	return nil
}
