package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/pipeline"
	"github.com/matzehuels/pinmap/pkg/render"
)

// layoutCommand creates the layout command for composing a plan.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [file...]",
		Short: "Compose a map layout plan from location files",
		Long: `Compose a map layout plan from location files.

Each CSV or GeoJSON file becomes one location set. The layout command picks
the map area, decides on insets and places every point on a slide canvas.
The output is a plan.json file (same format as 'render -f json') that can be
rendered with the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args, flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.plan.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the sets, composes the plan, and writes output.
func (c *CLI) runLayout(ctx context.Context, inputs []string, flags layoutFlags, output string) error {
	sets, err := pipeline.LoadSets(inputs)
	if err != nil {
		return err
	}
	opts, err := flags.options(sets)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Composing layout...")
	spinner.Start()

	plan, cacheHit, err := runner.PlanWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compose layout: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Composed plan for %d points", opts.PointCount()))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", inputs[0]) + ".plan.json"
	}
	data, err := render.MarshalPlan(plan)
	if err != nil {
		return err
	}
	if err := writeFile(outputPath, data); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printPlanStats(plan, cacheHit)
	printWarnings(plan.Warnings)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. A known format
// extension on output is stripped as well.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(ext); err == nil && ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// printPlanStats prints plan statistics on a single line.
func printPlanStats(plan *layout.Plan, cached bool) {
	printStats([]string{
		fmt.Sprintf("%s (%s)", plan.Region.Area.Name, plan.Projection),
		fmt.Sprintf("%d placed", plan.PlacedCount()),
		fmt.Sprintf("%d excluded", len(plan.Excluded)),
		fmt.Sprintf("%d canvases", len(plan.Canvases)),
	}, cached)
}
