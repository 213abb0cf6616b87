package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vadim-stepanov/grid/pkg/cache"
	"github.com/vadim-stepanov/grid/pkg/errors"
	"github.com/vadim-stepanov/grid/pkg/layout"
	"github.com/vadim-stepanov/grid/pkg/observability"
	"github.com/vadim-stepanov/grid/pkg/spec"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → arrange → resolve → render pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	s, err := ParseSpec(opts)
	if err != nil {
		return nil, err
	}
	result.Spec = s
	result.Stats.ItemCount = len(s.Preferences)

	// Stage 2: Arrange
	arrangeStart := time.Now()
	arr, arrangeHit, err := r.ArrangeWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	result.Arrangement = arr
	result.Stats.ArrangeTime = time.Since(arrangeStart)
	result.Stats.PlacedCount = len(arr.Items)
	result.CacheInfo.ArrangeHit = arrangeHit

	if data, err := layout.MarshalArrangement(arr); err == nil {
		result.ArrangementHash = cache.Hash(data)
	}

	r.Logger.Info("arranged items",
		"requested", result.Stats.ItemCount,
		"placed", result.Stats.PlacedCount,
		"growing_tracks", arr.GrowingTracks,
		"duration", result.Stats.ArrangeTime)

	// Stage 3: Resolve
	resolveStart := time.Now()
	l, resolveHit, err := r.ResolveWithCacheInfo(ctx, arr, s, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.ResolveTime = time.Since(resolveStart)
	result.CacheInfo.ResolveHit = resolveHit

	r.Logger.Info("resolved layout",
		"blocks", len(l.Blocks),
		"content_width", l.ContentWidth,
		"content_height", l.ContentHeight,
		"duration", result.Stats.ResolveTime)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, arr, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ArrangeWithCacheInfo runs the placement pass with caching and returns
// cache hit info.
func (r *Runner) ArrangeWithCacheInfo(ctx context.Context, s *spec.Spec, opts Options) (layout.Arrangement, bool, error) {
	r.applyLogger(&opts)

	prefsData, err := json.Marshal(s.Preferences)
	if err != nil {
		return layout.Arrangement{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize preferences for cache key")
	}
	cacheKey := r.Keyer.ArrangementKey(cache.Hash(prefsData), opts.ArrangementKeyOpts(s))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := layout.UnmarshalArrangement(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "arrangement")
				return cached, true, nil
			}
			// Corrupt entries fall through to recompute.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "arrangement")

	arr, err := ArrangeSpec(ctx, s, opts)
	if err != nil {
		return layout.Arrangement{}, false, err
	}

	if data, err := layout.MarshalArrangement(arr); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArrangement)
		observability.Cache().OnCacheSet(ctx, "arrangement", len(data))
	}

	return arr, false, nil
}

// Arrange is a convenience wrapper that discards the cache hit info.
func (r *Runner) Arrange(ctx context.Context, s *spec.Spec, opts Options) (layout.Arrangement, error) {
	arr, _, err := r.ArrangeWithCacheInfo(ctx, s, opts)
	return arr, err
}

// ResolveWithCacheInfo runs the resolution pass with caching and returns
// cache hit info.
func (r *Runner) ResolveWithCacheInfo(ctx context.Context, arr layout.Arrangement, s *spec.Spec, opts Options) (layout.Layout, bool, error) {
	r.applyLogger(&opts)

	arrData, err := layout.MarshalArrangement(arr)
	if err != nil {
		return layout.Layout{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize arrangement for cache key")
	}
	sizingData, err := json.Marshal(struct {
		Tracks     any `json:"tracks"`
		Intrinsics any `json:"intrinsics"`
	}{s.Tracks, s.Intrinsics})
	if err != nil {
		return layout.Layout{}, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize track rules for cache key")
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(arrData), cache.Hash(sizingData), opts.LayoutKeyOpts(s))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := layout.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	l, err := ResolveArrangement(ctx, arr, s, opts)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := layout.MarshalLayout(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil
}

// Resolve is a convenience wrapper that discards the cache hit info.
func (r *Runner) Resolve(ctx context.Context, arr layout.Arrangement, s *spec.Spec, opts Options) (layout.Layout, error) {
	l, _, err := r.ResolveWithCacheInfo(ctx, arr, s, opts)
	return l, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache
// hit info. The hit flag reports whether every requested format came
// from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, arr layout.Arrangement, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := layout.MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := RenderFromLayout(ctx, l, arr, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, arr layout.Arrangement, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, arr, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
