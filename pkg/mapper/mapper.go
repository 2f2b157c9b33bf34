// Package mapper converts geographic positions to output coordinates inside
// one canvas rectangle.
//
// A [Mapper] is built from a geographic box, a projection and the output
// rectangle the box is drawn into. Projecting a position is a linear
// interpolation in projected space:
//
//	xRel = (px - west) / (east - west)
//	yRel = (north - py) / (north - south)
//
// North maps to the top of the rectangle, so y grows as projected y
// shrinks. No clamping is applied: positions outside the box land outside
// the rectangle and the caller decides what to do with them.
//
// Positions are projected through a [projection.Transformer] keyed by the
// projection's spatial reference id; [New] uses [projection.Catalog].
package mapper

import (
	"math"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/geo"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/unit"
)

// Mapper maps positions into a fixed rectangle. It is immutable and safe
// for concurrent use.
type Mapper struct {
	bounds     geo.Bounds
	projection projection.Projection
	rect       geo.Rect
	extent     projection.Extent
	tr         projection.Transformer
	srid       string
}

// New builds a mapper on the built-in catalog transformer. It fails with
// DEGENERATE_BOUNDS when the projected box has zero width or height, and
// with INVALID_INPUT when bounds or rect break their invariants.
func New(bounds geo.Bounds, p projection.Projection, rect geo.Rect) (*Mapper, error) {
	return NewWithTransformer(bounds, p, rect, projection.Catalog{})
}

// NewWithTransformer is [New] with a caller-supplied transformer. Errors
// from the transformer while projecting the box corners are returned
// unchanged.
func NewWithTransformer(bounds geo.Bounds, p projection.Projection, rect geo.Rect, tr projection.Transformer) (*Mapper, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if err := rect.Validate(); err != nil {
		return nil, err
	}
	if tr == nil {
		tr = projection.Catalog{}
	}
	ext, err := projection.TransformExtent(tr, p.SRID(), bounds)
	if err != nil {
		return nil, err
	}
	if ext.East == ext.West || ext.North == ext.South {
		return nil, errors.New(errors.ErrCodeDegenerateBounds,
			"projected bounds have zero area (%s, x %.3f..%.3f, y %.3f..%.3f)",
			p, ext.West, ext.East, ext.South, ext.North)
	}
	return &Mapper{bounds: bounds, projection: p, rect: rect, extent: ext, tr: tr, srid: p.SRID()}, nil
}

// Bounds returns the geographic box.
func (m *Mapper) Bounds() geo.Bounds { return m.bounds }

// Projection returns the projection used.
func (m *Mapper) Projection() projection.Projection { return m.projection }

// Rect returns the output rectangle.
func (m *Mapper) Rect() geo.Rect { return m.rect }

// Extent returns the projected corners of the box.
func (m *Mapper) Extent() projection.Extent { return m.extent }

// Relative returns the normalized position of ll inside the box. Both
// fractions are NaN when the transformer rejects the position.
func (m *Mapper) Relative(ll geo.LatLng) (x, y unit.Fraction) {
	px, py, err := m.tr.Forward(m.srid, ll.Lng.Float(), ll.Lat.Float())
	if err != nil {
		return unit.Fraction(math.NaN()), unit.Fraction(math.NaN())
	}
	x = unit.Fraction((px - m.extent.West) / (m.extent.East - m.extent.West))
	y = unit.Fraction((m.extent.North - py) / (m.extent.North - m.extent.South))
	return x, y
}

// Project returns the output position of ll.
func (m *Mapper) Project(ll geo.LatLng) geo.Point {
	xr, yr := m.Relative(ll)
	return geo.Point{
		X: m.rect.Left + xr.Of(m.rect.Width),
		Y: m.rect.Top + yr.Of(m.rect.Height),
	}
}

// Inside reports whether ll projects into the rectangle.
func (m *Mapper) Inside(ll geo.LatLng) bool {
	return m.rect.Contains(m.Project(ll))
}
