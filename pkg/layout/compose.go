package layout

import (
	"fmt"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/geo"
	"github.com/matzehuels/pinmap/pkg/location"
	"github.com/matzehuels/pinmap/pkg/mapper"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
	"github.com/matzehuels/pinmap/pkg/style"
)

// AspectFunc reports the natural width/height ratio of the base image drawn
// for an area under a projection.
type AspectFunc func(area region.Area, p projection.Projection) (float64, error)

// ProjectedAspect derives the image aspect from the projected corners of
// the area. It fails with DEGENERATE_BOUNDS for zero-area boxes.
func ProjectedAspect(area region.Area, p projection.Projection) (float64, error) {
	a := p.Extent(area.Bounds).Aspect()
	if a == 0 {
		return 0, errors.New(errors.ErrCodeDegenerateBounds, "area %s has no extent under %s", area.Name, p)
	}
	return a, nil
}

// Request is the input of [Compose].
type Request struct {
	Region     region.Code
	Projection projection.Projection
	Aspect     Aspect
	// Insets enables Alaska and Hawaii inset canvases for US maps.
	Insets bool
	Sets   []location.Set
	// Styles resolves per-set overrides. Nil uses the built-in defaults.
	Styles *style.Resolver
	// ImageAspect reports base image aspects. Nil uses ProjectedAspect.
	ImageAspect AspectFunc
	// Transformer projects positions for the canvas mappers. Nil uses
	// projection.Catalog.
	Transformer projection.Transformer
}

type validPoint struct {
	ref  PointRef
	name string
	ll   geo.LatLng
}

type insetSpec struct {
	id     CanvasID
	zone   region.Zone
	corner Corner
}

var insetSpecs = []insetSpec{
	{InsetA, region.ZoneAlaska, TopLeft},
	{InsetB, region.ZoneHawaii, BottomRight},
}

// Compose builds the layout plan for a request. Only a failure to build the
// main canvas is returned as an error.
func Compose(req Request) (*Plan, error) {
	aspectOf := req.ImageAspect
	if aspectOf == nil {
		aspectOf = ProjectedAspect
	}
	resolver := req.Styles
	if resolver == nil {
		resolver = style.NewResolver(style.Defaults())
	}
	if !req.Projection.Valid() {
		req.Projection = projection.Default
	}
	if req.Aspect == "" {
		req.Aspect = DefaultAspect
	}

	plan := &Plan{
		Projection: req.Projection,
		Aspect:     req.Aspect,
		Slide:      req.Aspect.Size(),
		Insets:     req.Insets,
		Assignment: make(map[CanvasID][]PointRef),
		mappers:    make(map[CanvasID]*mapper.Mapper),
		tr:         req.Transformer,
	}

	points := collect(plan, req.Sets, resolver)

	lls := make([]geo.LatLng, len(points))
	for i, p := range points {
		lls[i] = p.ll
	}
	plan.Region = region.Resolve(req.Region, lls)

	mainArea := plan.Region.Area
	withInsets := req.Insets && plan.Region.Code == region.US && plan.Region.Variant.NeedsInsets()
	if withInsets {
		mainArea = region.USContinental
	}

	main, err := plan.addCanvas(Main, mainArea, aspectOf, func(aspect float64) geo.Rect {
		return Fit(plan.Slide, aspect)
	})
	if err != nil {
		return nil, fmt.Errorf("main canvas: %w", err)
	}

	zoneCanvas := map[region.Zone]CanvasID{}
	if withInsets {
		for _, spec := range insetSpecs {
			if !plan.Region.Variant.Has(spec.zone) {
				continue
			}
			area, _ := spec.zone.InsetArea()
			corner := spec.corner
			_, err := plan.addCanvas(spec.id, area, aspectOf, func(aspect float64) geo.Rect {
				return InsetRect(main.Rect, corner, aspect)
			})
			if err != nil {
				plan.warn(errors.GetCodeOr(err, errors.ErrCodeDegenerateBounds),
					"%s canvas (%s) skipped, its points use the main canvas: %s", spec.id, area.Name, errors.UserMessage(err))
				continue
			}
			zoneCanvas[spec.zone] = spec.id
		}
	}

	outside := 0
	for _, p := range points {
		id := Main
		if cid, ok := zoneCanvas[region.Classify(p.ll)]; ok {
			id = cid
		}
		m := plan.mappers[id]
		pos := m.Project(p.ll)
		pl := Placement{
			Ref:      p.ref,
			Canvas:   id,
			Name:     p.name,
			LatLng:   p.ll,
			Position: pos,
			Outside:  !m.Rect().Contains(pos),
		}
		if pl.Outside {
			outside++
		}
		plan.Assignment[id] = append(plan.Assignment[id], p.ref)
		plan.Placements = append(plan.Placements, pl)
	}
	if outside > 0 {
		plan.warn(errors.ErrCodeOutOfFrame, "%d point(s) fall outside their canvas", outside)
	}

	return plan, nil
}

// collect validates every point, records exclusions and resolves set styles.
func collect(plan *Plan, sets []location.Set, resolver *style.Resolver) []validPoint {
	var points []validPoint
	plan.Sets = make([]SetSummary, len(sets))
	for si, set := range sets {
		st, err := resolver.Resolve(set.Style)
		if err != nil {
			st = resolver.Defaults()
			plan.warn(errors.GetCodeOr(err, errors.ErrCodeInvalidInput),
				"set %q uses the default style: %s", set.Name, errors.UserMessage(err))
		}
		plan.Sets[si] = SetSummary{Name: set.Name, Style: st}

		for pi, pt := range set.Points {
			ref := PointRef{Set: si, Index: pi}
			ll, err := pt.LatLng()
			if err != nil {
				plan.Excluded = append(plan.Excluded, Exclusion{
					Ref:    ref,
					Name:   pt.Name,
					Code:   errors.GetCodeOr(err, errors.ErrCodeInvalidCoordinate),
					Reason: errors.UserMessage(err),
				})
				continue
			}
			points = append(points, validPoint{ref: ref, name: pt.Name, ll: ll})
			plan.Sets[si].Points++
		}
	}
	return points
}

// addCanvas measures the image aspect for area, places the canvas with
// place and builds its mapper.
func (p *Plan) addCanvas(id CanvasID, area region.Area, aspectOf AspectFunc, place func(float64) geo.Rect) (Canvas, error) {
	aspect, err := aspectOf(area, p.Projection)
	if err != nil {
		return Canvas{}, err
	}
	c := Canvas{
		ID:          id,
		Area:        area,
		Rect:        place(aspect),
		Projection:  p.Projection,
		ImageAspect: aspect,
	}
	m, err := mapper.NewWithTransformer(area.Bounds, p.Projection, c.Rect, p.tr)
	if err != nil {
		return Canvas{}, err
	}
	p.Canvases = append(p.Canvases, c)
	p.mappers[id] = m
	return c, nil
}
