package layout

import (
	"fmt"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/geo"
	"github.com/matzehuels/pinmap/pkg/mapper"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
	"github.com/matzehuels/pinmap/pkg/style"
)

// CanvasID identifies a canvas within a plan.
type CanvasID string

const (
	Main   CanvasID = "main"
	InsetA CanvasID = "inset_a"
	InsetB CanvasID = "inset_b"
)

// CanvasIDs lists canvas ids in drawing order.
func CanvasIDs() []CanvasID { return []CanvasID{Main, InsetA, InsetB} }

// Canvas is one letterboxed map frame on the slide.
type Canvas struct {
	ID          CanvasID              `json:"id" bson:"id"`
	Area        region.Area           `json:"area" bson:"area"`
	Rect        geo.Rect              `json:"rect" bson:"rect"`
	Projection  projection.Projection `json:"projection" bson:"projection"`
	ImageAspect float64               `json:"image_aspect" bson:"image_aspect"`
}

// Bounds returns the geographic box shown by the canvas.
func (c Canvas) Bounds() geo.Bounds { return c.Area.Bounds }

// PointRef addresses one input point: the set's index in the request and
// the point's index in that set.
type PointRef struct {
	Set   int `json:"set" bson:"set"`
	Index int `json:"index" bson:"index"`
}

func (r PointRef) String() string { return fmt.Sprintf("%d/%d", r.Set, r.Index) }

// Placement is a point projected onto its canvas.
type Placement struct {
	Ref      PointRef   `json:"ref" bson:"ref"`
	Canvas   CanvasID   `json:"canvas" bson:"canvas"`
	Name     string     `json:"name,omitempty" bson:"name,omitempty"`
	LatLng   geo.LatLng `json:"latlng" bson:"latlng"`
	Position geo.Point  `json:"position" bson:"position"`
	// Outside is set when the position falls outside the canvas rect.
	Outside bool `json:"outside,omitempty" bson:"outside,omitempty"`
}

// Exclusion records a point that was left out of the partition.
type Exclusion struct {
	Ref    PointRef    `json:"ref" bson:"ref"`
	Name   string      `json:"name,omitempty" bson:"name,omitempty"`
	Code   errors.Code `json:"code" bson:"code"`
	Reason string      `json:"reason" bson:"reason"`
}

// Warning is a recovered problem worth reporting.
type Warning struct {
	Code    errors.Code `json:"code" bson:"code"`
	Message string      `json:"message" bson:"message"`
}

// SetSummary describes one location set in the plan.
type SetSummary struct {
	Name   string      `json:"name" bson:"name"`
	Style  style.Style `json:"style" bson:"style"`
	Points int         `json:"points" bson:"points"`
}

// Plan is the result of [Compose].
type Plan struct {
	Region     region.Resolution     `json:"region" bson:"region"`
	Projection projection.Projection `json:"projection" bson:"projection"`
	Aspect     Aspect                `json:"aspect" bson:"aspect"`
	Slide      geo.Size              `json:"slide" bson:"slide"`
	Insets     bool                  `json:"insets" bson:"insets"`
	Sets       []SetSummary          `json:"sets" bson:"sets"`
	Canvases   []Canvas              `json:"canvases" bson:"canvases"`
	// Assignment partitions the valid input points by canvas.
	Assignment map[CanvasID][]PointRef `json:"assignment" bson:"assignment"`
	Placements []Placement             `json:"placements" bson:"placements"`
	Excluded   []Exclusion             `json:"excluded,omitempty" bson:"excluded,omitempty"`
	Warnings   []Warning               `json:"warnings,omitempty" bson:"warnings,omitempty"`

	mappers map[CanvasID]*mapper.Mapper
	tr      projection.Transformer
}

// Canvas returns the canvas with the given id.
func (p *Plan) Canvas(id CanvasID) (Canvas, bool) {
	for _, c := range p.Canvases {
		if c.ID == id {
			return c, true
		}
	}
	return Canvas{}, false
}

// Mapper returns the coordinate mapper of a canvas. Plans decoded from JSON
// or BSON need [Plan.Rebuild] first.
func (p *Plan) Mapper(id CanvasID) (*mapper.Mapper, bool) {
	m, ok := p.mappers[id]
	return m, ok
}

// Rebuild recreates the canvas mappers from the serialized canvases.
func (p *Plan) Rebuild() error {
	p.mappers = make(map[CanvasID]*mapper.Mapper, len(p.Canvases))
	for _, c := range p.Canvases {
		m, err := mapper.NewWithTransformer(c.Area.Bounds, c.Projection, c.Rect, p.tr)
		if err != nil {
			return fmt.Errorf("rebuild %s canvas: %w", c.ID, err)
		}
		p.mappers[c.ID] = m
	}
	return nil
}

// PlacementsOn returns the placements on one canvas in input order.
func (p *Plan) PlacementsOn(id CanvasID) []Placement {
	var out []Placement
	for _, pl := range p.Placements {
		if pl.Canvas == id {
			out = append(out, pl)
		}
	}
	return out
}

// Style returns the resolved style of the set a placement belongs to.
func (p *Plan) Style(ref PointRef) style.Style {
	if ref.Set >= 0 && ref.Set < len(p.Sets) {
		return p.Sets[ref.Set].Style
	}
	return style.Defaults()
}

// PlacedCount returns the number of partitioned points.
func (p *Plan) PlacedCount() int {
	n := 0
	for _, refs := range p.Assignment {
		n += len(refs)
	}
	return n
}

func (p *Plan) warn(code errors.Code, format string, args ...any) {
	p.Warnings = append(p.Warnings, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}
