package mapper

import (
	"math"
	"testing"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/geo"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
	"github.com/matzehuels/pinmap/pkg/unit"
)

const eps = 1e-9

func ll(lat, lng float64) geo.LatLng {
	return geo.LatLng{Lat: unit.Degrees(lat), Lng: unit.Degrees(lng)}
}

func near(a, b unit.Inches) bool { return math.Abs(a.Float()-b.Float()) < eps }

func TestNewErrors(t *testing.T) {
	rect := geo.Rect{Width: 10, Height: 5}
	tests := []struct {
		name   string
		bounds geo.Bounds
		rect   geo.Rect
		code   errors.Code
	}{
		{"inverted bounds", geo.Bounds{North: 10, South: 20, East: 10, West: 0}, rect, errors.ErrCodeInvalidInput},
		{"zero rect", region.USContinental.Bounds, geo.Rect{Width: 0, Height: 5}, errors.ErrCodeInvalidInput},
		{"zero longitude span", geo.Bounds{North: 10, South: 0, East: 5, West: 5}, rect, errors.ErrCodeDegenerateBounds},
		{"collapsed by clamp", geo.Bounds{North: 89.9, South: 86, East: 10, West: 0}, rect, errors.ErrCodeDegenerateBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.bounds, projection.WebMercator, tt.rect)
			if err == nil {
				t.Fatalf("New() = %v, want error", m)
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestEdgesMapToRectEdges(t *testing.T) {
	rect := geo.Rect{Left: 0.5, Top: 0.4165, Width: 13.333, Height: 6.667}
	for _, a := range region.Areas() {
		t.Run(a.Name, func(t *testing.T) {
			m, err := New(a.Bounds, projection.WebMercator, rect)
			if err != nil {
				t.Fatal(err)
			}
			b := a.Bounds
			mid := (b.East + b.West) / 2
			midLat := (b.North + b.South) / 2
			if p := m.Project(geo.LatLng{Lat: b.North, Lng: mid}); !near(p.Y, rect.Top) {
				t.Errorf("north edge y = %v, want %v", p.Y, rect.Top)
			}
			if p := m.Project(geo.LatLng{Lat: b.South, Lng: b.West}); !near(p.Y, rect.Bottom()) {
				t.Errorf("south edge y = %v, want %v", p.Y, rect.Bottom())
			}
			if p := m.Project(geo.LatLng{Lat: midLat, Lng: b.West}); !near(p.X, rect.Left) {
				t.Errorf("west edge x = %v, want %v", p.X, rect.Left)
			}
			if p := m.Project(geo.LatLng{Lat: b.North, Lng: b.East}); !near(p.X, rect.Right()) {
				t.Errorf("east edge x = %v, want %v", p.X, rect.Right())
			}
		})
	}
}

func TestPseudoCylindricalCorners(t *testing.T) {
	rect := geo.Rect{Width: 4, Height: 3}
	b := region.EuropeArea.Bounds
	for _, p := range []projection.Projection{projection.Robinson, projection.EqualEarth} {
		m, err := New(b, p, rect)
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		sw := m.Project(geo.LatLng{Lat: b.South, Lng: b.West})
		ne := m.Project(geo.LatLng{Lat: b.North, Lng: b.East})
		if !near(sw.X, 0) || !near(sw.Y, 3) || !near(ne.X, 4) || !near(ne.Y, 0) {
			t.Errorf("%s: corners sw=%v ne=%v", p, sw, ne)
		}
	}
}

func TestMonotonic(t *testing.T) {
	rect := geo.Rect{Width: 10, Height: 6}
	for _, p := range projection.All() {
		m, err := New(region.USContinental.Bounds, p, rect)
		if err != nil {
			t.Fatal(err)
		}
		prev := m.Project(ll(20, -100))
		for lat := 21.0; lat <= 55; lat++ {
			cur := m.Project(ll(lat, -100))
			if cur.Y >= prev.Y {
				t.Fatalf("%s: y not decreasing at lat %v", p, lat)
			}
			prev = cur
		}
		prev = m.Project(ll(40, -130))
		for lng := -129.0; lng <= -60; lng++ {
			cur := m.Project(ll(40, lng))
			if cur.X <= prev.X {
				t.Fatalf("%s: x not increasing at lng %v", p, lng)
			}
			prev = cur
		}
	}
}

func TestNoClamping(t *testing.T) {
	m, err := New(region.USContinental.Bounds, projection.WebMercator, geo.Rect{Width: 10, Height: 6})
	if err != nil {
		t.Fatal(err)
	}
	honolulu := ll(21.3, -157.8)
	p := m.Project(honolulu)
	if p.X >= 0 || p.Y <= 6 {
		t.Errorf("Project(honolulu) = %v, want left of and below the rect", p)
	}
	if m.Inside(honolulu) {
		t.Error("Inside(honolulu) = true")
	}
	xr, yr := m.Relative(honolulu)
	if xr >= 0 || yr <= 1 {
		t.Errorf("Relative(honolulu) = %v, %v", xr, yr)
	}
}

func TestDeterministic(t *testing.T) {
	m, err := New(region.WorldArea.Bounds, projection.EqualEarth, geo.Rect{Width: 10, Height: 5})
	if err != nil {
		t.Fatal(err)
	}
	a := m.Project(ll(48.8566, 2.3522))
	b := m.Project(ll(48.8566, 2.3522))
	if a != b {
		t.Errorf("Project not deterministic: %v vs %v", a, b)
	}
}

// plateCarree projects degrees straight to planar units for any id.
type plateCarree struct{ calls int }

func (p *plateCarree) Forward(_ string, lng, lat float64) (float64, float64, error) {
	p.calls++
	return lng, lat, nil
}

type rejectAll struct{}

func (rejectAll) Forward(srid string, _, _ float64) (float64, float64, error) {
	return 0, 0, errors.New(errors.ErrCodeUnsupported, "no transform for %s", srid)
}

func TestNewWithTransformer(t *testing.T) {
	tr := &plateCarree{}
	b := geo.Bounds{North: 10, South: 0, East: 20, West: 0}
	m, err := NewWithTransformer(b, projection.WebMercator, geo.Rect{Width: 20, Height: 10}, tr)
	if err != nil {
		t.Fatal(err)
	}
	if tr.calls != 2 {
		t.Errorf("corner transforms = %d, want 2", tr.calls)
	}
	p := m.Project(ll(5, 5))
	if !near(p.X, 5) || !near(p.Y, 5) {
		t.Errorf("Project = %+v, want (5, 5) under plate carree", p)
	}
	if tr.calls != 3 {
		t.Errorf("transforms after Project = %d, want 3", tr.calls)
	}
}

func TestNewWithTransformerErrors(t *testing.T) {
	rect := geo.Rect{Width: 4, Height: 3}
	_, err := NewWithTransformer(region.USContinental.Bounds, projection.WebMercator, rect, rejectAll{})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("rejecting transformer: error = %v, want UNSUPPORTED", err)
	}
	_, err = New(region.USContinental.Bounds, projection.Projection("gnomonic"), rect)
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("projection without srid: error = %v, want CONFIGURATION", err)
	}
}
