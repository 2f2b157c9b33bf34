package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/pinmap/pkg/basemap"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/observability"
	"github.com/matzehuels/pinmap/pkg/render"
)

// BaseImages generates the base image of every canvas in plan.
func BaseImages(ctx context.Context, gen basemap.Generator, plan *layout.Plan) (map[layout.CanvasID]basemap.Image, error) {
	images := make(map[layout.CanvasID]basemap.Image, len(plan.Canvases))
	for _, c := range plan.Canvases {
		img, err := gen.Generate(ctx, c.Area, c.Projection)
		if err != nil {
			return nil, fmt.Errorf("base map for %s canvas: %w", c.ID, err)
		}
		images[c.ID] = img
	}
	return images, nil
}

// RenderArtifacts renders plan in every requested format without caching.
// Base images are only generated when an image format is requested.
func RenderArtifacts(ctx context.Context, gen basemap.Generator, plan *layout.Plan, opts Options) (map[render.Format][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	formats := opts.RenderFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, names)
	artifacts, err := renderAll(ctx, gen, plan, formats, opts.Scale)
	observability.Pipeline().OnRenderComplete(ctx, names, time.Since(start), err)
	return artifacts, err
}

func renderAll(ctx context.Context, gen basemap.Generator, plan *layout.Plan, formats []render.Format, scale float64) (map[render.Format][]byte, error) {
	var images map[layout.CanvasID]basemap.Image
	for _, f := range formats {
		if f != render.FormatJSON && gen != nil {
			var err error
			if images, err = BaseImages(ctx, gen, plan); err != nil {
				return nil, err
			}
			break
		}
	}

	artifacts := make(map[render.Format][]byte, len(formats))
	for _, f := range formats {
		data, err := render.Render(plan, images, f, scale)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", f, err)
		}
		artifacts[f] = data
	}
	return artifacts, nil
}
