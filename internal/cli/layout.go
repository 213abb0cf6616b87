package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vadim-stepanov/grid/pkg/layout"
	"github.com/vadim-stepanov/grid/pkg/pipeline"
)

// layoutCommand creates the layout command for the resolution pass.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [spec.toml]",
		Short: "Resolve a spec into pixel bounds",
		Long: `Resolve a spec into pixel bounds.

The layout command runs placement and resolution: items are placed into
grid cells, tracks are sized by their rules, and every item receives a
final rectangle. The output is a layout.json file that 'render' turns
into SVG, JSON, or text artifacts.

The bounding size and content mode come from the spec; flags override
them, which is how one arrangement gets resolved at many sizes.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "bounding width override")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "bounding height override")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "content mode override: fill or scroll")
	cmd.Flags().StringVar(&opts.Flow, "flow", "", "flow override: rows or columns")
	cmd.Flags().StringVar(&opts.SpanPolicy, "span-policy", "", "oversized span policy override: drop, clamp, or error")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runLayout runs placement and resolution and writes the layout file.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.SpecPath = input
	opts.Logger = c.Logger

	spec, err := pipeline.ParseSpec(opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Resolving layout...")
	spinner.Start()

	arr, err := runner.Arrange(ctx, spec, opts)
	if err != nil {
		spinner.StopWithError("Arrangement failed")
		return err
	}
	l, cacheHit, err := runner.ResolveWithCacheInfo(ctx, arr, spec, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputStem(input, ".layout.json")
	}
	if err := layout.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Blocks), arr.GrowingTracks, cacheHit)
	printNewline()
	printNextStep("Render", "grid render "+input)

	return nil
}
