package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pinmap/pkg/pipeline"
	"github.com/matzehuels/pinmap/pkg/render"
)

// renderCommand creates the render command: layout and visualize in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      layoutFlags
		formatsStr string
		output     string
		scale      float64
	)

	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render location files to map images",
		Long: `Render location files to map images.

A shortcut for 'layout' followed by 'visualize'. Each CSV or GeoJSON file
becomes one location set. PNG and PDF output requires rsvg-convert (librsvg).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if _, err := render.ParseFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, flags, formats, output, scale)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&scale, "scale", render.DefaultScale, "PNG resolution multiplier")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, inputs []string, flags layoutFlags, formats []string, output string, scale float64) error {
	sets, err := pipeline.LoadSets(inputs)
	if err != nil {
		return err
	}
	opts, err := flags.options(sets)
	if err != nil {
		return err
	}
	opts.Formats = formats
	opts.Scale = scale
	opts.Logger = c.Logger

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering map...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.RenderFormats(),
		input:     inputs[0],
		output:    output,
	}); err != nil {
		return err
	}
	printPlanStats(result.Plan, result.CacheInfo.PlanHit && result.CacheInfo.RenderHit)
	printWarnings(result.Plan.Warnings)
	return nil
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[render.Format][]byte
	formats   []render.Format
	input     string
	output    string
}

// artifactPaths maps each format to its output file. A single format with
// an explicit output uses that path verbatim; otherwise files are named
// <base>.<format>.
func artifactPaths(p artifactWriteParams) map[render.Format]string {
	paths := make(map[render.Format]string, len(p.formats))
	if len(p.formats) == 1 && p.output != "" {
		paths[p.formats[0]] = p.output
		return paths
	}
	base := basePath(p.output, p.input)
	for _, f := range p.formats {
		paths[f] = base + f.Extension()
	}
	return paths
}

func writeArtifacts(p artifactWriteParams) error {
	paths := artifactPaths(p)
	printSuccess("Rendered %d file(s)", len(p.formats))
	for _, f := range p.formats {
		data, ok := p.artifacts[f]
		if !ok {
			return fmt.Errorf("no %s artifact produced", f)
		}
		if err := writeFile(paths[f], data); err != nil {
			return err
		}
		printFile(paths[f])
	}
	return nil
}
