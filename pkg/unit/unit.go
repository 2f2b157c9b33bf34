// Package unit defines the unit-tagged numeric types used throughout pinmap.
//
// Geographic angles, output lengths, typographic sizes and normalized
// positions are all float64 underneath, which makes them easy to mix up.
// Each gets its own named type here so the compiler rejects, for example,
// adding a latitude to a slide offset. Conversions between units are
// explicit methods.
package unit

import "fmt"

// PointsPerInch is the typographic conversion factor.
const PointsPerInch = 72.0

// Degrees is a geographic angle in decimal degrees (WGS84).
type Degrees float64

// Inches is a length in output (slide) units.
type Inches float64

// Points is a typographic length (1/72 inch), used for stroke widths and
// font sizes.
type Points float64

// Fraction is a normalized position, 0 at the start edge and 1 at the end
// edge of a rectangle. Values outside [0, 1] are legal and mean "outside".
type Fraction float64

// Float returns the raw value.
func (d Degrees) Float() float64 { return float64(d) }

// Float returns the raw value.
func (i Inches) Float() float64 { return float64(i) }

// Float returns the raw value.
func (p Points) Float() float64 { return float64(p) }

// Float returns the raw value.
func (f Fraction) Float() float64 { return float64(f) }

// Points converts an output length to typographic points.
func (i Inches) Points() Points { return Points(float64(i) * PointsPerInch) }

// Inches converts a typographic length to output length units.
func (p Points) Inches() Inches { return Inches(float64(p) / PointsPerInch) }

// Of scales a length by the fraction.
func (f Fraction) Of(length Inches) Inches { return Inches(float64(f) * float64(length)) }

func (d Degrees) String() string  { return fmt.Sprintf("%.4f°", float64(d)) }
func (i Inches) String() string   { return fmt.Sprintf("%.3fin", float64(i)) }
func (p Points) String() string   { return fmt.Sprintf("%.1fpt", float64(p)) }
func (f Fraction) String() string { return fmt.Sprintf("%.4f", float64(f)) }
