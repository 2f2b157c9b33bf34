package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/geo"
	"github.com/matzehuels/pinmap/pkg/unit"
)

func approx(a, b unit.Inches) bool { return math.Abs(a.Float()-b.Float()) < 1e-3 }

func TestFit(t *testing.T) {
	wide := Widescreen.Size()
	tests := []struct {
		name   string
		slide  geo.Size
		aspect float64
		want   geo.Rect
	}{
		{"wide image on widescreen", wide, 2.0, geo.Rect{Left: 0, Top: 0.4165, Width: 13.333, Height: 6.6665}},
		{"tall image on widescreen", wide, 1.0, geo.Rect{Left: 2.9165, Top: 0, Width: 7.5, Height: 7.5}},
		{"exact fit", wide, 13.333 / 7.5, geo.Rect{Left: 0, Top: 0, Width: 13.333, Height: 7.5}},
		{"standard slide", Standard.Size(), 2.0, geo.Rect{Left: 0, Top: 1.25, Width: 10, Height: 5}},
		{"zero aspect fills slide", wide, 0, geo.Rect{Width: 13.333, Height: 7.5}},
		{"negative aspect fills slide", wide, -3, geo.Rect{Width: 13.333, Height: 7.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.slide, tt.aspect)
			if !approx(got.Left, tt.want.Left) || !approx(got.Top, tt.want.Top) ||
				!approx(got.Width, tt.want.Width) || !approx(got.Height, tt.want.Height) {
				t.Errorf("Fit() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFitNeverCropsOrStretches(t *testing.T) {
	for _, slide := range []geo.Size{Widescreen.Size(), Standard.Size()} {
		for _, aspect := range []float64{0.3, 0.75, 1, 1.333, 1.7777, 2, 3.5, 10} {
			r := Fit(slide, aspect)
			if r.Left < -1e-9 || r.Top < -1e-9 || r.Right() > slide.Width+1e-9 || r.Bottom() > slide.Height+1e-9 {
				t.Errorf("Fit(%v, %v) = %+v escapes slide", slide, aspect, r)
			}
			if math.Abs(r.Size().Aspect()-aspect) > 1e-9 {
				t.Errorf("Fit(%v, %v) aspect = %v", slide, aspect, r.Size().Aspect())
			}
			if !approx(r.Left*2+r.Width, slide.Width) || !approx(r.Top*2+r.Height, slide.Height) {
				t.Errorf("Fit(%v, %v) = %+v not centered", slide, aspect, r)
			}
		}
	}
}

func TestInsetRect(t *testing.T) {
	main := geo.Rect{Left: 1, Top: 0.5, Width: 10, Height: 6}

	a := InsetRect(main, TopLeft, 2)
	if !approx(a.Width, 2) || !approx(a.Height, 1) || !approx(a.Left, 1.2) || !approx(a.Top, 0.7) {
		t.Errorf("TopLeft = %+v", a)
	}

	b := InsetRect(main, BottomRight, 0.5)
	if !approx(b.Width, 2) || !approx(b.Height, 4) {
		t.Errorf("BottomRight size = %+v", b)
	}
	if !approx(b.Right(), main.Right()-InsetPadding) || !approx(b.Bottom(), main.Bottom()-InsetPadding) {
		t.Errorf("BottomRight anchor = %+v", b)
	}

	fallback := InsetRect(main, TopLeft, 0)
	if math.Abs(fallback.Size().Aspect()-main.Size().Aspect()) > 1e-9 {
		t.Errorf("zero aspect should use main aspect, got %v", fallback.Size().Aspect())
	}
}

func TestParseAspect(t *testing.T) {
	tests := []struct {
		in      string
		want    Aspect
		wantErr bool
	}{
		{"widescreen", Widescreen, false},
		{"16:9", Widescreen, false},
		{"Standard", Standard, false},
		{"4:3", Standard, false},
		{"", Widescreen, false},
		{"cinema", Widescreen, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAspect(tt.in)
			if got != tt.want || (err != nil) != tt.wantErr {
				t.Errorf("ParseAspect(%q) = %v, %v", tt.in, got, err)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Errorf("code = %v", errors.GetCode(err))
			}
		})
	}
}
