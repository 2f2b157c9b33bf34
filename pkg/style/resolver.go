package style

import (
	"math"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/unit"
)

// Resolver fills partial styles from a fixed default.
type Resolver struct {
	defaults Style
}

// NewResolver returns a resolver over a copy of defaults.
func NewResolver(defaults Style) *Resolver {
	return &Resolver{defaults: defaults}
}

// Defaults returns the resolver's default style.
func (r *Resolver) Defaults() Style { return r.defaults }

// Resolve returns the default style with every field present in o applied.
// Malformed colors fail with INVALID_COLOR; non-positive sizes fail with
// INVALID_INPUT.
func (r *Resolver) Resolve(o Override) (Style, error) {
	s := r.defaults

	for _, c := range []struct {
		in  *string
		out *RGB
	}{
		{o.Color, &s.Color},
		{o.OutlineColor, &s.OutlineColor},
		{o.LabelTextColor, &s.LabelTextColor},
		{o.LabelBgColor, &s.LabelBgColor},
	} {
		if c.in == nil {
			continue
		}
		v, err := ParseHex(*c.in)
		if err != nil {
			return Style{}, err
		}
		*c.out = v
	}

	if o.Shape != nil {
		s.Shape = ParseShape(*o.Shape)
	}
	if o.Size != nil {
		if !finite(*o.Size) || *o.Size <= 0 {
			return Style{}, errors.New(errors.ErrCodeInvalidInput, "marker size must be positive, got %v", *o.Size)
		}
		s.Size = unit.Inches(*o.Size)
	}
	if o.OutlineWidth != nil {
		if !finite(*o.OutlineWidth) || *o.OutlineWidth < 0 {
			return Style{}, errors.New(errors.ErrCodeInvalidInput, "outline width must not be negative, got %v", *o.OutlineWidth)
		}
		s.OutlineWidth = unit.Points(*o.OutlineWidth)
	}
	if o.LabelFontSize != nil {
		if !finite(*o.LabelFontSize) || *o.LabelFontSize <= 0 {
			return Style{}, errors.New(errors.ErrCodeInvalidInput, "label font size must be positive, got %v", *o.LabelFontSize)
		}
		s.LabelFontSize = unit.Points(*o.LabelFontSize)
	}

	setBool(&s.ShowFill, o.ShowFill)
	setBool(&s.ShowOutline, o.ShowOutline)
	setBool(&s.ShowShadow, o.ShowShadow)
	setBool(&s.ShowLabels, o.ShowLabels)
	setBool(&s.LabelBold, o.LabelBold)

	return s, nil
}

// finite rejects NaN and infinities, which TOML presets can spell.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
