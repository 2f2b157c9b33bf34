package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/pipeline"
	"github.com/matzehuels/pinmap/pkg/render"
)

// visualizeCommand creates the visualize command for rendering a saved plan.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		scale      float64
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [plan.json]",
		Short: "Render a saved layout plan",
		Long: `Render a saved layout plan.

The visualize command takes a plan.json file (produced by 'layout') and
renders it to SVG, PNG or PDF. The plan holds every canvas and marker
position, so this step only paints.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if _, err := render.ParseFormats(formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], pipeline.Options{
				Formats: formats,
				Scale:   scale,
			}, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&scale, "scale", render.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runVisualize loads the plan and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}
	plan, err := render.UnmarshalPlan(data)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if err := opts.ValidateForRender(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering map...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, plan, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.RenderFormats(),
		input:     basePath("", input),
		output:    output,
	}); err != nil {
		return err
	}
	printPlanStats(plan, cacheHit)
	return nil
}
