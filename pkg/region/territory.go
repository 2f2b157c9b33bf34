package region

import (
	"github.com/matzehuels/pinmap/pkg/geo"
	"github.com/matzehuels/pinmap/pkg/unit"
)

// Territory thresholds. A position is in the Alaska zone when
// lat > AlaskaMinLat and lng < AlaskaMaxLng, and in the Hawaii zone when
// lat < HawaiiMaxLat and lng < HawaiiMaxLng.
const (
	AlaskaMinLat unit.Degrees = 51.0
	AlaskaMaxLng unit.Degrees = -130.0
	HawaiiMaxLat unit.Degrees = 22.0
	HawaiiMaxLng unit.Degrees = -155.0
)

// Zone is the territory a position belongs to.
type Zone int

const (
	ZoneContinental Zone = iota
	ZoneAlaska           // territory A, northern inset
	ZoneHawaii           // territory B, southern inset
)

func (z Zone) String() string {
	switch z {
	case ZoneAlaska:
		return "alaska"
	case ZoneHawaii:
		return "hawaii"
	}
	return "continental"
}

// InsetArea returns the inset box for an outlying zone.
func (z Zone) InsetArea() (Area, bool) {
	switch z {
	case ZoneAlaska:
		return AlaskaInset, true
	case ZoneHawaii:
		return HawaiiInset, true
	}
	return Area{}, false
}

// Classify assigns a position to its territory zone.
func Classify(ll geo.LatLng) Zone {
	switch {
	case ll.Lat > AlaskaMinLat && ll.Lng < AlaskaMaxLng:
		return ZoneAlaska
	case ll.Lat < HawaiiMaxLat && ll.Lng < HawaiiMaxLng:
		return ZoneHawaii
	}
	return ZoneContinental
}

// Variant says which outlying territories a US layout must show.
type Variant string

const (
	Continental Variant = "continental"
	WithAlaska  Variant = "with_alaska"
	WithHawaii  Variant = "with_hawaii"
	Full        Variant = "full"
)

// Has reports whether the variant includes the zone.
func (v Variant) Has(z Zone) bool {
	switch z {
	case ZoneAlaska:
		return v == WithAlaska || v == Full
	case ZoneHawaii:
		return v == WithHawaii || v == Full
	}
	return true
}

// NeedsInsets reports whether any outlying territory is present.
func (v Variant) NeedsInsets() bool { return v != Continental }

// Area returns the fixed US box for the variant.
func (v Variant) Area() Area {
	switch v {
	case WithAlaska:
		return USWithAlaska
	case WithHawaii:
		return USWithHawaii
	case Full:
		return USFull
	}
	return USContinental
}

// DetectVariant derives the variant from the zones the points fall into.
// An empty slice yields [Continental].
func DetectVariant(points []geo.LatLng) Variant {
	var alaska, hawaii bool
	for _, p := range points {
		switch Classify(p) {
		case ZoneAlaska:
			alaska = true
		case ZoneHawaii:
			hawaii = true
		}
		if alaska && hawaii {
			return Full
		}
	}
	switch {
	case alaska:
		return WithAlaska
	case hawaii:
		return WithHawaii
	}
	return Continental
}

// Resolution is the outcome of resolving a region against input points.
type Resolution struct {
	Code    Code    `json:"code" bson:"code"`
	Variant Variant `json:"variant" bson:"variant"`
	Area    Area    `json:"area" bson:"area"`
}

// Resolve picks the area to show. Only [US] inspects the points; every
// other code returns its fixed area with variant [Continental]. Codes
// outside the catalog resolve to the continental US frame without looking
// at the points.
func Resolve(code Code, points []geo.LatLng) Resolution {
	if !code.Valid() {
		return Resolution{Code: US, Variant: Continental, Area: USContinental}
	}
	if code != US {
		return Resolution{Code: code, Variant: Continental, Area: code.FixedArea()}
	}
	v := DetectVariant(points)
	return Resolution{Code: code, Variant: v, Area: v.Area()}
}

func bounds(north, south, east, west float64) geo.Bounds {
	return geo.Bounds{
		North: unit.Degrees(north),
		South: unit.Degrees(south),
		East:  unit.Degrees(east),
		West:  unit.Degrees(west),
	}
}
