// Package location holds the named points pinmap lays out and reads them
// from CSV and GeoJSON files.
//
// Coordinates are optional on purpose. A row without a usable latitude or
// longitude is kept as a [Point] with a nil field so the layout can report
// it as excluded instead of the reader failing the whole file.
package location

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/geo"
	"github.com/matzehuels/pinmap/pkg/style"
	"github.com/matzehuels/pinmap/pkg/unit"
)

// Point is a named position. Lat and Lng are nil when missing.
type Point struct {
	Lat  *float64 `json:"lat" bson:"lat"`
	Lng  *float64 `json:"lng" bson:"lng"`
	Name string   `json:"name,omitempty" bson:"name,omitempty"`
}

// At builds a point with both coordinates set.
func At(lat, lng float64, name string) Point {
	return Point{Lat: &lat, Lng: &lng, Name: name}
}

// LatLng validates p and returns its position. A nil coordinate fails with
// MISSING_COORDINATE; a non-finite value, a latitude outside [-90, 90] or
// a longitude outside [-180, 180] fails with INVALID_COORDINATE.
func (p Point) LatLng() (geo.LatLng, error) {
	if p.Lat == nil || p.Lng == nil {
		return geo.LatLng{}, errors.New(errors.ErrCodeMissingCoordinate, "point %q has no %s", p.Name, missing(p))
	}
	lat, lng := *p.Lat, *p.Lng
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return geo.LatLng{}, errors.New(errors.ErrCodeInvalidCoordinate, "point %q has a non-finite coordinate", p.Name)
	}
	if lat < -90 || lat > 90 {
		return geo.LatLng{}, errors.New(errors.ErrCodeInvalidCoordinate, "point %q latitude %v outside [-90, 90]", p.Name, lat)
	}
	if lng < -180 || lng > 180 {
		return geo.LatLng{}, errors.New(errors.ErrCodeInvalidCoordinate, "point %q longitude %v outside [-180, 180]", p.Name, lng)
	}
	return geo.LatLng{Lat: unit.Degrees(lat), Lng: unit.Degrees(lng)}, nil
}

func missing(p Point) string {
	switch {
	case p.Lat == nil && p.Lng == nil:
		return "coordinates"
	case p.Lat == nil:
		return "latitude"
	}
	return "longitude"
}

// Set is an ordered group of points sharing one style.
type Set struct {
	Name   string         `json:"name" bson:"name"`
	Points []Point        `json:"points" bson:"points"`
	Style  style.Override `json:"style,omitempty" bson:"style,omitempty"`
}

// Valid returns the positions of every point that passes validation.
func (s Set) Valid() []geo.LatLng {
	out := make([]geo.LatLng, 0, len(s.Points))
	for _, p := range s.Points {
		if ll, err := p.LatLng(); err == nil {
			out = append(out, ll)
		}
	}
	return out
}

// Extent returns the bounding box of every valid point across sets. ok is
// false when there are none.
func Extent(sets ...Set) (b geo.Bounds, ok bool) {
	var mp orb.MultiPoint
	for _, s := range sets {
		for _, ll := range s.Valid() {
			mp = append(mp, orb.Point{ll.Lng.Float(), ll.Lat.Float()})
		}
	}
	if len(mp) == 0 {
		return geo.Bounds{}, false
	}
	bound := mp.Bound()
	return geo.Bounds{
		North: unit.Degrees(bound.Top()),
		South: unit.Degrees(bound.Bottom()),
		East:  unit.Degrees(bound.Right()),
		West:  unit.Degrees(bound.Left()),
	}, true
}
