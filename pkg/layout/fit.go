package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/geo"
	"github.com/matzehuels/pinmap/pkg/unit"
)

// Inset sizing relative to the main canvas.
const (
	InsetScale   = 0.2
	InsetPadding = unit.Inches(0.2)
)

// Aspect names a slide format.
type Aspect string

const (
	Widescreen Aspect = "widescreen"
	Standard   Aspect = "standard"
)

// DefaultAspect is used for empty or unknown formats.
const DefaultAspect = Widescreen

// Aspects lists every slide format.
func Aspects() []Aspect { return []Aspect{Widescreen, Standard} }

// Size returns the slide dimensions.
func (a Aspect) Size() geo.Size {
	switch a {
	case Standard:
		return geo.Size{Width: 10, Height: 7.5}
	}
	return geo.Size{Width: 13.333, Height: 7.5}
}

// ParseAspect resolves a slide format name. "16:9" and "4:3" are accepted
// as aliases. Unknown names yield [DefaultAspect] and a CONFIGURATION error.
func ParseAspect(s string) (Aspect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "widescreen", "16:9":
		return Widescreen, nil
	case "standard", "4:3":
		return Standard, nil
	}
	return DefaultAspect, errors.New(errors.ErrCodeConfiguration, "unknown aspect %q, using %s", s, DefaultAspect)
}

// Fit letterboxes an image of the given aspect into the slide: full width
// if the height fits, otherwise full height, centered on the other axis.
// A non-positive or non-finite aspect uses the slide's own aspect.
func Fit(slide geo.Size, imageAspect float64) geo.Rect {
	if !(imageAspect > 0) || math.IsInf(imageAspect, 0) {
		imageAspect = slide.Aspect()
	}
	w := slide.Width
	h := unit.Inches(w.Float() / imageAspect)
	if h > slide.Height {
		h = slide.Height
		w = unit.Inches(h.Float() * imageAspect)
	}
	return geo.Rect{
		Left:   (slide.Width - w) / 2,
		Top:    (slide.Height - h) / 2,
		Width:  w,
		Height: h,
	}
}

// Corner selects where an inset is anchored on the main canvas.
type Corner int

const (
	TopLeft Corner = iota
	BottomRight
)

// InsetRect sizes an inset to [InsetScale] of the main width at the inset's
// aspect and anchors it [InsetPadding] inside the given corner. A
// non-positive aspect uses the main canvas aspect.
func InsetRect(main geo.Rect, corner Corner, insetAspect float64) geo.Rect {
	if !(insetAspect > 0) || math.IsInf(insetAspect, 0) {
		insetAspect = main.Size().Aspect()
	}
	w := unit.Inches(main.Width.Float() * InsetScale)
	h := unit.Inches(w.Float() / insetAspect)

	r := geo.Rect{Width: w, Height: h}
	switch corner {
	case BottomRight:
		r.Left = main.Left + main.Width - w - InsetPadding
		r.Top = main.Top + main.Height - h - InsetPadding
	default:
		r.Left = main.Left + InsetPadding
		r.Top = main.Top + InsetPadding
	}
	return r
}
