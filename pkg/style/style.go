package style

import (
	"strings"

	"github.com/matzehuels/pinmap/pkg/unit"
)

// Shape is a marker outline.
type Shape string

const (
	Circle   Shape = "circle"
	Square   Shape = "square"
	Triangle Shape = "triangle"
	Star     Shape = "star"
)

// Shapes lists every supported shape.
func Shapes() []Shape { return []Shape{Circle, Square, Triangle, Star} }

// ParseShape maps a name to a shape. Unknown names yield [Circle].
func ParseShape(s string) Shape {
	switch sh := Shape(strings.ToLower(strings.TrimSpace(s))); sh {
	case Circle, Square, Triangle, Star:
		return sh
	}
	return Circle
}

// Style is a fully specified marker style.
type Style struct {
	Color          RGB         `json:"markerColor" bson:"marker_color"`
	Shape          Shape       `json:"markerShape" bson:"marker_shape"`
	Size           unit.Inches `json:"markerSize" bson:"marker_size"`
	ShowFill       bool        `json:"showFill" bson:"show_fill"`
	OutlineColor   RGB         `json:"outlineColor" bson:"outline_color"`
	OutlineWidth   unit.Points `json:"outlineWidth" bson:"outline_width"`
	ShowOutline    bool        `json:"showOutline" bson:"show_outline"`
	ShowShadow     bool        `json:"showShadow" bson:"show_shadow"`
	ShowLabels     bool        `json:"showLabels" bson:"show_labels"`
	LabelFontSize  unit.Points `json:"labelFontSize" bson:"label_font_size"`
	LabelTextColor RGB         `json:"labelTextColor" bson:"label_text_color"`
	LabelBgColor   RGB         `json:"labelBgColor" bson:"label_bg_color"`
	LabelBold      bool        `json:"labelBold" bson:"label_bold"`
}

// Defaults returns the built-in default style.
func Defaults() Style {
	return Style{
		Color:          RGB{0xdc, 0x35, 0x45},
		Shape:          Circle,
		Size:           0.2,
		ShowFill:       true,
		OutlineColor:   RGB{0xff, 0xff, 0xff},
		OutlineWidth:   1,
		ShowOutline:    true,
		ShowShadow:     false,
		ShowLabels:     true,
		LabelFontSize:  10,
		LabelTextColor: RGB{0x00, 0x00, 0x00},
		LabelBgColor:   RGB{0xff, 0xff, 0xff},
		LabelBold:      true,
	}
}

// Override is a partial style. Nil fields are unset.
type Override struct {
	Color          *string  `json:"markerColor,omitempty" toml:"markerColor" bson:"marker_color,omitempty"`
	Shape          *string  `json:"markerShape,omitempty" toml:"markerShape" bson:"marker_shape,omitempty"`
	Size           *float64 `json:"markerSize,omitempty" toml:"markerSize" bson:"marker_size,omitempty"`
	ShowFill       *bool    `json:"showFill,omitempty" toml:"showFill" bson:"show_fill,omitempty"`
	OutlineColor   *string  `json:"outlineColor,omitempty" toml:"outlineColor" bson:"outline_color,omitempty"`
	OutlineWidth   *float64 `json:"outlineWidth,omitempty" toml:"outlineWidth" bson:"outline_width,omitempty"`
	ShowOutline    *bool    `json:"showOutline,omitempty" toml:"showOutline" bson:"show_outline,omitempty"`
	ShowShadow     *bool    `json:"showShadow,omitempty" toml:"showShadow" bson:"show_shadow,omitempty"`
	ShowLabels     *bool    `json:"showLabels,omitempty" toml:"showLabels" bson:"show_labels,omitempty"`
	LabelFontSize  *float64 `json:"labelFontSize,omitempty" toml:"labelFontSize" bson:"label_font_size,omitempty"`
	LabelTextColor *string  `json:"labelTextColor,omitempty" toml:"labelTextColor" bson:"label_text_color,omitempty"`
	LabelBgColor   *string  `json:"labelBgColor,omitempty" toml:"labelBgColor" bson:"label_bg_color,omitempty"`
	LabelBold      *bool    `json:"labelBold,omitempty" toml:"labelBold" bson:"label_bold,omitempty"`
}

// IsZero reports whether no field is set.
func (o Override) IsZero() bool {
	return o == Override{}
}

// Merge returns o with every field set in top replacing its value.
func (o Override) Merge(top Override) Override {
	pick(&o.Color, top.Color)
	pick(&o.Shape, top.Shape)
	pick(&o.Size, top.Size)
	pick(&o.ShowFill, top.ShowFill)
	pick(&o.OutlineColor, top.OutlineColor)
	pick(&o.OutlineWidth, top.OutlineWidth)
	pick(&o.ShowOutline, top.ShowOutline)
	pick(&o.ShowShadow, top.ShowShadow)
	pick(&o.ShowLabels, top.ShowLabels)
	pick(&o.LabelFontSize, top.LabelFontSize)
	pick(&o.LabelTextColor, top.LabelTextColor)
	pick(&o.LabelBgColor, top.LabelBgColor)
	pick(&o.LabelBold, top.LabelBold)
	return o
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}
