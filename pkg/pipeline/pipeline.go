// Package pipeline provides the core layout pipeline.
//
// This package implements the complete parse → arrange → resolve → render
// pipeline that can be used by CLI and API components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: Load and validate a grid spec (TOML)
//  2. Arrange: Place span requests into grid cells
//  3. Resolve: Turn the arrangement into pixel bounds
//  4. Render: Generate output in various formats (SVG, JSON, text)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    SpecPath: "layout.toml",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	s, err := pipeline.ParseSpec(opts)
//	arr, err := runner.Arrange(ctx, s, opts)
//	l, err := runner.Resolve(ctx, arr, s, opts)
//	artifacts, err := runner.Render(ctx, l, arr, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vadim-stepanov/grid/pkg/cache"
	"github.com/vadim-stepanov/grid/pkg/errors"
	"github.com/vadim-stepanov/grid/pkg/layout"
	"github.com/vadim-stepanov/grid/pkg/render"
	"github.com/vadim-stepanov/grid/pkg/spec"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default bounding width in pixels, used when
	// neither the spec nor the options set one.
	DefaultWidth = 800.0

	// DefaultHeight is the default bounding height in pixels.
	DefaultHeight = 600.0

	// DefaultTextWidth is the default character width for text output.
	DefaultTextWidth = 80
)

// DefaultFormat is the default output format.
const DefaultFormat = render.FormatSVG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Spec source: a file path or inline TOML (exactly one required).
	SpecPath string `json:"spec_path,omitempty"`
	SpecTOML string `json:"spec_toml,omitempty"`

	// Placement overrides. Empty values keep what the spec says.
	Flow       string `json:"flow,omitempty"`
	SpanPolicy string `json:"span_policy,omitempty"`

	// Resolution overrides.
	Mode   string  `json:"mode,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options.
	Formats   []string `json:"formats,omitempty"`
	Labels    bool     `json:"labels,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	TextWidth int      `json:"text_width,omitempty"`

	// Refresh skips cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Spec is the parsed grid spec with overrides applied.
	Spec *spec.Spec

	// Arrangement is the placement pass result.
	Arrangement layout.Arrangement

	// ArrangementHash is the content hash of the serialized arrangement.
	ArrangementHash string

	// Layout is the resolution pass result.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ItemCount   int // Items requested in the spec
	PlacedCount int // Items that survived placement
	ArrangeTime time.Duration
	ResolveTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ArrangeHit bool // Whether the arrangement came from cache
	ResolveHit bool // Whether the layout came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for spec loading.
func (o *Options) ValidateForParse() error {
	if o.SpecPath == "" && o.SpecTOML == "" {
		return errors.New(errors.ErrCodeInvalidInput, "spec_path or spec_toml is required")
	}
	if o.SpecPath != "" && o.SpecTOML != "" {
		return errors.New(errors.ErrCodeInvalidInput, "spec_path and spec_toml are mutually exclusive")
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForRender validates formats and sets render defaults.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	for _, f := range o.Formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(DefaultFormat)}
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.TextWidth == 0 {
		o.TextWidth = DefaultTextWidth
	}
	o.setLoggerDefault()
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArrangementKeyOpts returns cache key options for the placement stage.
// The spec carries the effective values after overrides.
func (o *Options) ArrangementKeyOpts(s *spec.Spec) cache.ArrangementKeyOpts {
	return cache.ArrangementKeyOpts{
		FixedTracks: s.FixedTracks,
		Flow:        s.Flow.String(),
		SpanPolicy:  s.Policy.String(),
	}
}

// LayoutKeyOpts returns cache key options for the resolution stage.
func (o *Options) LayoutKeyOpts(s *spec.Spec) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  s.Bounding.Width,
		Height: s.Bounding.Height,
		Mode:   s.Mode.String(),
		Flow:   s.Flow.String(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		Labels:    o.Labels,
		Scale:     o.Scale,
		TextWidth: o.TextWidth,
	}
}
