// Package pipeline runs the load → layout → render flow shared by the CLI
// and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read location sets from CSV or GeoJSON files
//  2. Layout: resolve the region, pick insets and place every point
//  3. Render: paint base maps and markers (SVG, PNG, PDF, JSON)
//
// Each stage can be run on its own. Layout plans and rendered artifacts are
// cached by content hash; base maps are cached by area and projection.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	sets, err := pipeline.LoadSets(paths)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Region:  "us",
//	    Sets:    sets,
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts[render.FormatSVG]
//
// Unknown region, projection or aspect names never fail a run: they fall
// back to the defaults and the fallback is logged and reported as a plan
// warning.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinmap/pkg/cache"
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/location"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
	"github.com/matzehuels/pinmap/pkg/render"
	"github.com/matzehuels/pinmap/pkg/style"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{string(render.FormatSVG)}

// MaxPoints bounds the number of points in one request.
const MaxPoints = 20000

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run. It doubles as
// the JSON body of API requests.
type Options struct {
	// Layout options
	Region     string         `json:"region,omitempty"`
	Projection string         `json:"projection,omitempty"`
	Aspect     string         `json:"aspect,omitempty"`
	NoInsets   bool           `json:"no_insets,omitempty"`
	Sets       []location.Set `json:"sets"`
	// Style is applied under every set's own style.
	Style style.Override `json:"style,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	region     region.Code
	projection projection.Projection
	aspect     layout.Aspect
	formats    []render.Format
	defaults   style.Style
	warnings   []layout.Warning
	layoutDone bool
	renderDone bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Plan *layout.Plan

	// PlanHash is the content hash of the plan's JSON form.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[render.Format][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sets       int
	Points     int
	Placed     int
	Excluded   int
	Canvases   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether the plan came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults resolves names and applies defaults. Unknown
// region, projection and aspect names fall back with a logged warning;
// bad formats and oversized requests are errors. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// ValidateForLayout resolves the layout settings.
func (o *Options) ValidateForLayout() error {
	if o.layoutDone {
		return nil
	}
	o.setLogger()
	if n := o.PointCount(); n > MaxPoints {
		return errors.New(errors.ErrCodeInvalidInput, "too many points: %d (max %d)", n, MaxPoints)
	}

	o.warnings = nil
	var err error
	o.region, err = region.ParseCode(o.Region)
	if err != nil {
		o.region = region.Unrecognized
	}
	o.fallback(err, "region")
	o.projection, err = projection.Lookup(o.Projection)
	if err != nil {
		if p, srErr := projection.FromSRID(o.Projection); srErr == nil {
			o.projection, err = p, nil
		}
	}
	o.fallback(err, "projection")
	o.aspect, err = layout.ParseAspect(o.Aspect)
	o.fallback(err, "aspect")

	o.defaults, err = style.NewResolver(style.Defaults()).Resolve(o.Style)
	if err != nil {
		o.defaults = style.Defaults()
		o.fallback(err, "style")
	}
	o.layoutDone = true
	return nil
}

// ValidateForRender resolves the render settings.
func (o *Options) ValidateForRender() error {
	if o.renderDone {
		return nil
	}
	o.setLogger()
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	formats, err := render.ParseFormats(o.Formats)
	if err != nil {
		return err
	}
	o.formats = formats
	if o.Scale <= 0 {
		o.Scale = render.DefaultScale
	}
	o.renderDone = true
	return nil
}

// fallback records a recovered configuration error.
func (o *Options) fallback(err error, what string) {
	if err == nil {
		return
	}
	code := errors.GetCodeOr(err, errors.ErrCodeConfiguration)
	o.Logger.Warn("using default "+what, "error", errors.UserMessage(err))
	o.warnings = append(o.warnings, layout.Warning{Code: code, Message: errors.UserMessage(err)})
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// PointCount returns the number of input points over all sets.
func (o *Options) PointCount() int {
	n := 0
	for _, s := range o.Sets {
		n += len(s.Points)
	}
	return n
}

// RenderFormats returns the resolved formats. Valid after
// [Options.ValidateForRender].
func (o *Options) RenderFormats() []render.Format { return o.formats }

// Warnings returns the configuration fallbacks taken during validation.
func (o *Options) Warnings() []layout.Warning { return o.warnings }

// Request builds the layout request. Valid after
// [Options.ValidateForLayout].
func (o *Options) Request() layout.Request {
	return layout.Request{
		Region:     o.region,
		Projection: o.projection,
		Aspect:     o.aspect,
		Insets:     !o.NoInsets,
		Sets:       o.Sets,
		Styles:     style.NewResolver(o.defaults),
	}
}

// PlanKeyOpts returns cache key options for layout.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	styleHash, _ := cache.HashJSON(o.defaults)
	return cache.PlanKeyOpts{
		Region:     string(o.region),
		Projection: string(o.projection),
		Aspect:     string(o.aspect),
		Insets:     !o.NoInsets,
		StyleHash:  styleHash,
	}
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(f render.Format) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: string(f), Frames: true}
	if f == render.FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
