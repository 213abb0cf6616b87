package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vadim-stepanov/grid/pkg/pipeline"
	"github.com/vadim-stepanov/grid/pkg/render"
)

// renderCommand creates the render command for artifact generation.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
	)
	opts := pipeline.Options{Labels: true}

	cmd := &cobra.Command{
		Use:   "render [spec.toml]",
		Short: "Render a spec as SVG, JSON, or text",
		Long: `Render a spec as SVG, JSON, or text.

The render command runs the full pipeline: items are placed into cells,
resolved into pixel bounds, and drawn in every requested format. One
file is written per format, named after the input spec.

Use --format with a comma-separated list to produce several artifacts
in one run, e.g. --format svg,json,text.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "", "output formats, comma-separated: svg, json, text (default: svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path stem (default: input path without extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Labels, "labels", true, "draw item IDs on blocks")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "SVG scale factor (default: 1)")
	cmd.Flags().IntVar(&opts.TextWidth, "text-width", 0, "character width for text output (default: 80)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "bounding width override")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "bounding height override")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "content mode override: fill or scroll")
	cmd.Flags().StringVar(&opts.Flow, "flow", "", "flow override: rows or columns")
	cmd.Flags().StringVar(&opts.SpanPolicy, "span-policy", "", "oversized span policy override: drop, clamp, or error")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.SpecPath = input
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	stem := output
	if stem == "" {
		stem = outputStem(input, "")
	}

	printSuccess("Rendered %d of %d items", result.Stats.PlacedCount, result.Stats.ItemCount)
	for _, f := range opts.Formats {
		format, err := render.ParseFormat(f)
		if err != nil {
			return err
		}
		path := stem + "." + format.Extension()
		if err := os.WriteFile(path, result.Artifacts[string(format)], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.PlacedCount, result.Arrangement.GrowingTracks, result.CacheInfo.RenderHit)

	return nil
}
