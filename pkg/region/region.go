package region

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/geo"
)

// Code identifies a supported region.
type Code string

const (
	US           Code = "us"
	NorthAmerica Code = "north_america"
	SouthAmerica Code = "south_america"
	Brazil       Code = "brazil"
	Europe       Code = "europe"
	UK           Code = "uk"
	China        Code = "china"
	Asia         Code = "asia"
	World        Code = "world"
)

// Default is the region used when none or an unknown one is requested.
const Default = US

// Unrecognized stands in for a region name that failed to parse. Like any
// code outside the catalog, [Resolve] maps it to [USContinental].
const Unrecognized Code = "unrecognized"

var codes = []Code{US, NorthAmerica, SouthAmerica, Brazil, Europe, UK, China, Asia, World}

// All returns every supported region code in declaration order.
func All() []Code {
	out := make([]Code, len(codes))
	copy(out, codes)
	return out
}

// Label returns a human-readable name for the region.
func (c Code) Label() string {
	switch c {
	case US:
		return "United States"
	case NorthAmerica:
		return "North America"
	case SouthAmerica:
		return "South America"
	case Brazil:
		return "Brazil"
	case Europe:
		return "Europe"
	case UK:
		return "United Kingdom"
	case China:
		return "China"
	case Asia:
		return "Asia"
	case World:
		return "World"
	}
	return string(c)
}

// Valid reports whether c is one of the supported codes.
func (c Code) Valid() bool {
	for _, k := range codes {
		if k == c {
			return true
		}
	}
	return false
}

// ParseCode parses a region name. Matching ignores case and accepts dashes
// for underscores. An empty string yields [Default] without error; an
// unknown name yields [Default] and a CONFIGURATION error.
func ParseCode(s string) (Code, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if s == "" {
		return Default, nil
	}
	if c := Code(s); c.Valid() {
		return c, nil
	}
	return Default, errors.New(errors.ErrCodeConfiguration, "unknown region %q, using %s", s, Default)
}

// Area is a named geographic rectangle.
type Area struct {
	Name   string     `json:"name" bson:"name"`
	Bounds geo.Bounds `json:"bounds" bson:"bounds"`
}

func (a Area) String() string {
	b := a.Bounds
	return fmt.Sprintf("%s(N%.2f S%.2f E%.2f W%.2f)", a.Name, b.North, b.South, b.East, b.West)
}

func area(name string, north, south, east, west float64) Area {
	return Area{Name: name, Bounds: bounds(north, south, east, west)}
}

// Fixed areas. Arguments are north, south, east, west.
var (
	USContinental = area("us_continental", 49.5, 24.5, -66, -125)
	USWithAlaska  = area("us_with_alaska", 71.5, 24.5, -66, -170)
	USWithHawaii  = area("us_with_hawaii", 49.5, 18.5, -66, -161)
	USFull        = area("us_full", 71.5, 18.5, -66, -170)

	AlaskaInset = area("alaska", 71.5, 51, -130, -170)
	HawaiiInset = area("hawaii", 22.5, 18.5, -154.5, -160.5)

	NorthAmericaArea = area("north_america", 72, 7, -52, -168)
	SouthAmericaArea = area("south_america", 13, -56, -34, -82)
	BrazilArea       = area("brazil", 5.5, -34, -34.5, -74)
	EuropeArea       = area("europe", 71, 34, 45, -25)
	UKArea           = area("uk", 61, 49.8, 1.8, -8.7)
	ChinaArea        = area("china", 53.6, 18, 135, 73.5)
	AsiaArea         = area("asia", 60, -11, 150, 60)
	WorldArea        = area("world", 85, -60, 180, -180)
)

// FixedArea returns the point-independent area of c. For [US] it is the
// continental box.
func (c Code) FixedArea() Area {
	switch c {
	case US:
		return USContinental
	case NorthAmerica:
		return NorthAmericaArea
	case SouthAmerica:
		return SouthAmericaArea
	case Brazil:
		return BrazilArea
	case Europe:
		return EuropeArea
	case UK:
		return UKArea
	case China:
		return ChinaArea
	case Asia:
		return AsiaArea
	case World:
		return WorldArea
	}
	return USContinental
}

// Areas returns every named area, including US variants and inset boxes.
func Areas() []Area {
	return []Area{
		USContinental, USWithAlaska, USWithHawaii, USFull,
		AlaskaInset, HawaiiInset,
		NorthAmericaArea, SouthAmericaArea, BrazilArea, EuropeArea,
		UKArea, ChinaArea, AsiaArea, WorldArea,
	}
}

// AreaByName finds a named area from [Areas].
func AreaByName(name string) (Area, bool) {
	for _, a := range Areas() {
		if a.Name == name {
			return a, true
		}
	}
	return Area{}, false
}
