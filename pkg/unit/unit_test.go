package unit

import (
	"math"
	"testing"
)

func TestInchesPointsRoundTrip(t *testing.T) {
	tests := []struct {
		in   Inches
		want Points
	}{
		{0, 0},
		{1, 72},
		{0.2, 14.4},
		{13.333, 959.976},
	}

	for _, tt := range tests {
		got := tt.in.Points()
		if math.Abs(got.Float()-tt.want.Float()) > 1e-9 {
			t.Errorf("%v.Points() = %v, want %v", tt.in, got, tt.want)
		}
		if back := got.Inches(); math.Abs(back.Float()-tt.in.Float()) > 1e-9 {
			t.Errorf("%v.Inches() = %v, want %v", got, back, tt.in)
		}
	}
}

func TestFractionOf(t *testing.T) {
	if got := Fraction(0.5).Of(10); got != 5 {
		t.Errorf("Fraction(0.5).Of(10) = %v, want 5", got)
	}
	if got := Fraction(-0.25).Of(8); got != -2 {
		t.Errorf("Fraction(-0.25).Of(8) = %v, want -2", got)
	}
}

func TestStrings(t *testing.T) {
	if s := Inches(0.2).String(); s != "0.200in" {
		t.Errorf("Inches.String() = %q", s)
	}
	if s := Points(10).String(); s != "10.0pt" {
		t.Errorf("Points.String() = %q", s)
	}
}
