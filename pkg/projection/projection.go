package projection

import (
	"math"
	"strings"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/geo"
)

// EarthRadius is the sphere radius in metres shared by all transforms.
const EarthRadius = 6378137.0

// Projection names a supported projection.
type Projection string

const (
	WebMercator Projection = "web_mercator"
	Robinson    Projection = "robinson"
	EqualEarth  Projection = "equal_earth"
)

// Default is used for empty or unknown names.
const Default = WebMercator

var all = []Projection{WebMercator, Robinson, EqualEarth}

// All returns every supported projection in catalog order.
func All() []Projection {
	out := make([]Projection, len(all))
	copy(out, all)
	return out
}

// SRID returns the spatial reference identifier.
func (p Projection) SRID() string {
	switch p {
	case WebMercator:
		return "EPSG:3857"
	case Robinson:
		return "ESRI:54030"
	case EqualEarth:
		return "EPSG:8857"
	}
	return ""
}

// Label returns a display name.
func (p Projection) Label() string {
	switch p {
	case WebMercator:
		return "Web Mercator"
	case Robinson:
		return "Robinson"
	case EqualEarth:
		return "Equal Earth"
	}
	return string(p)
}

// Valid reports whether p is in the catalog.
func (p Projection) Valid() bool {
	return p.SRID() != ""
}

// Cylindrical reports whether meridians project to vertical lines, i.e.
// projected x depends on longitude only.
func (p Projection) Cylindrical() bool {
	return p == WebMercator
}

// Forward projects a WGS84 position to planar metres. Projections outside
// the catalog behave like [Default].
func (p Projection) Forward(ll geo.LatLng) (x, y float64) {
	return Forward(p, ll.Lng.Float(), ll.Lat.Float())
}

// Forward projects (lng, lat) in degrees with p.
func Forward(p Projection, lng, lat float64) (x, y float64) {
	switch p {
	case Robinson:
		return robinson(lng, lat)
	case EqualEarth:
		return equalEarth(lng, lat)
	}
	return mercator(lng, lat)
}

// Lookup resolves a projection name. Matching ignores case and accepts
// dashes for underscores. Empty names yield [Default] without error;
// unknown names yield [Default] and a CONFIGURATION error.
func Lookup(name string) (Projection, error) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if name == "" {
		return Default, nil
	}
	if p := Projection(name); p.Valid() {
		return p, nil
	}
	return Default, errors.New(errors.ErrCodeConfiguration, "unknown projection %q, using %s", name, Default)
}

// FromSRID resolves a spatial reference identifier such as "EPSG:3857".
// Unknown identifiers yield [Default] and a CONFIGURATION error.
func FromSRID(srid string) (Projection, error) {
	for _, p := range all {
		if strings.EqualFold(p.SRID(), strings.TrimSpace(srid)) {
			return p, nil
		}
	}
	return Default, errors.New(errors.ErrCodeConfiguration, "unknown spatial reference %q, using %s", srid, Default.SRID())
}

// Extent projects the corners of b and returns the planar box.
func (p Projection) Extent(b geo.Bounds) Extent {
	w, s := Forward(p, b.West.Float(), b.South.Float())
	e, n := Forward(p, b.East.Float(), b.North.Float())
	return Extent{West: w, South: s, East: e, North: n}
}

// Extent is a box in projected metres.
type Extent struct {
	West, South, East, North float64
}

// Width returns East - West.
func (e Extent) Width() float64 { return e.East - e.West }

// Height returns North - South.
func (e Extent) Height() float64 { return e.North - e.South }

// Aspect returns Width/Height, or 0 for a degenerate extent.
func (e Extent) Aspect() float64 {
	if e.Height() == 0 || e.Width() == 0 {
		return 0
	}
	return math.Abs(e.Width() / e.Height())
}
