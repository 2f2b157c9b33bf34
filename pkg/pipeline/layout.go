package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/pinmap/pkg/basemap"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/observability"
)

// ComposePlan runs the layout stage without caching. Canvas aspects come
// from gen; a nil gen uses the projected aspect of each area.
func ComposePlan(ctx context.Context, gen basemap.Generator, opts Options) (*layout.Plan, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	req := opts.Request()
	if gen != nil {
		req.ImageAspect = basemap.AspectFunc(ctx, gen)
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, string(req.Region), string(req.Projection), opts.PointCount())
	plan, err := layout.Compose(req)
	placed, excluded := 0, 0
	if plan != nil {
		placed, excluded = len(plan.Placements), len(plan.Excluded)
	}
	observability.Pipeline().OnLayoutComplete(ctx, string(req.Region), placed, excluded, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	// Configuration fallbacks come first: they explain everything after.
	plan.Warnings = append(append([]layout.Warning(nil), opts.Warnings()...), plan.Warnings...)
	return plan, nil
}
