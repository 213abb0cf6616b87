package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vadim-stepanov/grid/pkg/layout"
	"github.com/vadim-stepanov/grid/pkg/pipeline"
)

// arrangeCommand creates the arrange command for the placement pass.
func (c *CLI) arrangeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "arrange [spec.toml]",
		Short: "Place a spec's items into grid cells",
		Long: `Place a spec's items into grid cells.

The arrange command reads a grid spec and runs the placement pass: items
are scanned in request order and each takes the first free cell window
that fits its spans. The output is an arrangement.json file that 'layout'
resolves into pixel bounds.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runArrange(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.arrangement.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Flow, "flow", "", "flow override: rows or columns")
	cmd.Flags().StringVar(&opts.SpanPolicy, "span-policy", "", "oversized span policy override: drop, clamp, or error")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runArrange parses the spec, runs placement, and writes the result.
func (c *CLI) runArrange(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, "Arranging items...")
	spinner.Start()

	arr, cacheHit, err := runner.ArrangeWithCacheInfo(ctx, spec, opts)
	if err != nil {
		spinner.StopWithError("Arrangement failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = outputStem(input, ".arrangement.json")
	}
	if err := layout.WriteArrangementFile(arr, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Arranged %d of %d items", len(arr.Items), len(spec.Preferences))
	printFile(outputPath)
	printStats(len(arr.Items), arr.GrowingTracks, cacheHit)
	printNewline()
	printNextStep("Resolve", "grid layout "+input)

	return nil
}
