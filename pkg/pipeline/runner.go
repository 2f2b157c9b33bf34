package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinmap/pkg/basemap"
	"github.com/matzehuels/pinmap/pkg/cache"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/observability"
	"github.com/matzehuels/pinmap/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner holds no per-run state; multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	BaseMaps basemap.Generator
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default one and a nil generator draws cached graticule maps.
func NewRunner(c cache.Cache, keyer cache.Keyer, gen basemap.Generator, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if gen == nil {
		gen = basemap.NewCached(basemap.NewGraticule(), c, keyer).WithLogger(logger)
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		BaseMaps: gen,
		Logger:   logger,
	}
}

// Execute runs layout and render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	plan, planHit, err := r.PlanWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Plan = plan
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.PlanHit = planHit
	result.Stats.Sets = len(opts.Sets)
	result.Stats.Points = opts.PointCount()
	result.Stats.Placed = len(plan.Placements)
	result.Stats.Excluded = len(plan.Excluded)
	result.Stats.Canvases = len(plan.Canvases)

	r.Logger.Info("computed layout",
		"region", plan.Region.Code,
		"variant", plan.Region.Variant,
		"placed", result.Stats.Placed,
		"excluded", result.Stats.Excluded,
		"duration", result.Stats.LayoutTime)
	for _, w := range plan.Warnings {
		r.Logger.Warn(w.Message, "code", w.Code)
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, planHash, renderHit, err := r.render(ctx, plan, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.PlanHash = planHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PlanWithCacheInfo composes a plan with caching and returns cache hit info.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, opts Options) (*layout.Plan, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	inputHash, err := cache.HashJSON(opts.Sets)
	if err != nil {
		return nil, false, fmt.Errorf("hash input: %w", err)
	}
	cacheKey := r.Keyer.PlanKey(inputHash, opts.PlanKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if plan, err := render.UnmarshalPlan(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return plan, true, nil
			}
			// Unreadable entries are recomputed and overwritten.
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	plan, err := ComposePlan(ctx, r.baseMaps(opts), opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := render.MarshalPlan(plan); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan); err != nil {
			opts.Logger.Warn("plan cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}
	return plan, false, nil
}

// Plan is a convenience wrapper that discards the cache hit info.
func (r *Runner) Plan(ctx context.Context, opts Options) (*layout.Plan, error) {
	plan, _, err := r.PlanWithCacheInfo(ctx, opts)
	return plan, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit
// info. The hit is true only when every format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, plan *layout.Plan, opts Options) (map[render.Format][]byte, bool, error) {
	artifacts, _, hit, err := r.render(ctx, plan, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, plan *layout.Plan, opts Options) (map[render.Format][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, plan, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, plan *layout.Plan, opts Options) (map[render.Format][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	planData, err := render.MarshalPlan(plan)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize plan for cache key: %w", err)
	}
	planHash := cache.Hash(planData)

	artifacts := make(map[render.Format][]byte)
	if !opts.Refresh {
		for _, f := range opts.RenderFormats() {
			key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(f))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[f] = data
		}
		if len(artifacts) == len(opts.RenderFormats()) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, planHash, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := RenderArtifacts(ctx, r.baseMaps(opts), plan, opts)
	if err != nil {
		return nil, "", false, err
	}

	for f, data := range rendered {
		key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(f))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("artifact cache write failed", "format", f, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, planHash, false, nil
}

// refresher is implemented by generators that can bypass their cache.
type refresher interface {
	Refreshed() *basemap.Cached
}

// baseMaps returns the generator for one run. Refresh runs regenerate
// cached base maps too.
func (r *Runner) baseMaps(opts Options) basemap.Generator {
	if rf, ok := r.BaseMaps.(refresher); ok && opts.Refresh {
		return rf.Refreshed()
	}
	return r.BaseMaps
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
