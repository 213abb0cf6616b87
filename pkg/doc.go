// Package pkg provides the core libraries for the grid layout toolkit.
//
// # Overview
//
// Grid places span requests onto a two-dimensional track grid and
// resolves the result into pixel bounds. The pkg directory is organized
// into a few main areas:
//
//  1. [grid] - Core layout engine (placement, track sizing, resolution)
//  2. [spec] - TOML spec parsing and validation
//  3. [layout] - Serializable arrangement and layout types
//  4. [pipeline] - Orchestration (parse → arrange → resolve → render)
//  5. [render] - Output formats (SVG, JSON, text)
//  6. [cache] - Content-addressed caching of pipeline stages
//  7. [api] - HTTP API exposing the pipeline
//
// # Architecture
//
// The typical data flow:
//
//	Spec file (TOML)
//	       ↓
//	  [spec] package (parse + validate)
//	       ↓
//	  [grid] package (arrange: items → cells)
//	       ↓
//	  [grid] package (resolve: cells → pixel bounds)
//	       ↓
//	  [render] package (SVG/JSON/text output)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    SpecPath: "layout.toml",
//	    Formats:  []string{"svg"},
//	})
//
// [grid]: github.com/vadim-stepanov/grid/pkg/grid
// [spec]: github.com/vadim-stepanov/grid/pkg/spec
// [layout]: github.com/vadim-stepanov/grid/pkg/layout
// [pipeline]: github.com/vadim-stepanov/grid/pkg/pipeline
// [render]: github.com/vadim-stepanov/grid/pkg/render
// [cache]: github.com/vadim-stepanov/grid/pkg/cache
// [api]: github.com/vadim-stepanov/grid/pkg/api
package pkg
