// Package geo defines the geometric value types shared by the layout engine:
// geographic bounding boxes, output rectangles and the points living in each
// space.
//
// Geographic values are expressed in [unit.Degrees], output values in
// [unit.Inches]. The two never mix; converting between them is the job of
// package mapper.
package geo

import (
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/unit"
)

// LatLng is a WGS84 position.
type LatLng struct {
	Lat unit.Degrees `json:"lat" bson:"lat"`
	Lng unit.Degrees `json:"lng" bson:"lng"`
}

// Bounds is a rectangle in geographic coordinates.
//
// East and West are not normalized across the antimeridian: a box that
// crosses 180° is not representable.
type Bounds struct {
	North unit.Degrees `json:"north" bson:"north"`
	South unit.Degrees `json:"south" bson:"south"`
	East  unit.Degrees `json:"east" bson:"east"`
	West  unit.Degrees `json:"west" bson:"west"`
}

// Validate reports an error unless North > South.
func (b Bounds) Validate() error {
	if !(b.North > b.South) {
		return errors.New(errors.ErrCodeInvalidInput, "bounds north %v must be greater than south %v", b.North, b.South)
	}
	return nil
}

// Contains reports whether ll lies inside b, edges included.
func (b Bounds) Contains(ll LatLng) bool {
	return ll.Lat <= b.North && ll.Lat >= b.South && ll.Lng <= b.East && ll.Lng >= b.West
}

// Center returns the midpoint of b in degrees.
func (b Bounds) Center() LatLng {
	return LatLng{Lat: (b.North + b.South) / 2, Lng: (b.East + b.West) / 2}
}

// Size is a width/height pair in output units.
type Size struct {
	Width  unit.Inches `json:"width" bson:"width"`
	Height unit.Inches `json:"height" bson:"height"`
}

// Aspect returns Width/Height, or 0 for a zero height.
func (s Size) Aspect() float64 {
	if s.Height == 0 {
		return 0
	}
	return s.Width.Float() / s.Height.Float()
}

// Rect is an axis-aligned rectangle in output units. Top grows downwards.
type Rect struct {
	Left   unit.Inches `json:"left" bson:"left"`
	Top    unit.Inches `json:"top" bson:"top"`
	Width  unit.Inches `json:"width" bson:"width"`
	Height unit.Inches `json:"height" bson:"height"`
}

// Validate reports an error unless Width and Height are both positive.
func (r Rect) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "rect size %vx%v must be positive", r.Width, r.Height)
	}
	return nil
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() unit.Inches { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() unit.Inches { return r.Top + r.Height }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// Point is a position in output units.
type Point struct {
	X unit.Inches `json:"x" bson:"x"`
	Y unit.Inches `json:"y" bson:"y"`
}
