package geo

import (
	"testing"

	"github.com/matzehuels/pinmap/pkg/errors"
)

func TestBoundsValidate(t *testing.T) {
	tests := []struct {
		name    string
		b       Bounds
		wantErr bool
	}{
		{"valid", Bounds{North: 49.5, South: 24.5, East: -66, West: -125}, false},
		{"equal", Bounds{North: 10, South: 10, East: 1, West: 0}, true},
		{"inverted", Bounds{North: 10, South: 20, East: 1, West: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate() code = %v", errors.GetCode(err))
			}
		})
	}
}

func TestRectValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Rect
		wantErr bool
	}{
		{"valid", Rect{Width: 1, Height: 1}, false},
		{"zero width", Rect{Width: 0, Height: 1}, true},
		{"negative height", Rect{Width: 1, Height: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.r.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{Left: 1, Top: 2, Width: 3, Height: 4}
	if r.Right() != 4 || r.Bottom() != 6 {
		t.Errorf("Right/Bottom = %v/%v, want 4/6", r.Right(), r.Bottom())
	}
	if !r.Contains(Point{X: 4, Y: 6}) {
		t.Error("Contains(corner) = false")
	}
	if r.Contains(Point{X: 0.5, Y: 3}) {
		t.Error("Contains(outside) = true")
	}
}

func TestBoundsContainsAndCenter(t *testing.T) {
	b := Bounds{North: 10, South: -10, East: 20, West: -20}
	if !b.Contains(LatLng{Lat: 0, Lng: 0}) {
		t.Error("Contains(origin) = false")
	}
	if b.Contains(LatLng{Lat: 11, Lng: 0}) {
		t.Error("Contains(north of box) = true")
	}
	if c := b.Center(); c.Lat != 0 || c.Lng != 0 {
		t.Errorf("Center() = %+v", c)
	}
}

func TestSizeAspect(t *testing.T) {
	if got := (Size{Width: 10, Height: 5}).Aspect(); got != 2 {
		t.Errorf("Aspect() = %v, want 2", got)
	}
	if got := (Size{Width: 10}).Aspect(); got != 0 {
		t.Errorf("Aspect() zero height = %v, want 0", got)
	}
}
