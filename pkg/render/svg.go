package render

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/pinmap/pkg/basemap"
	"github.com/matzehuels/pinmap/pkg/geo"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/style"
	"github.com/matzehuels/pinmap/pkg/unit"
)

// Label box geometry.
const (
	labelGap     = unit.Inches(0.1)
	labelHeight  = unit.Inches(0.4)
	labelWidth   = unit.Inches(2)
	labelMargin  = unit.Points(5)
	labelBorder  = unit.Points(0.5)
	insetBorder  = unit.Points(0.75)
	starInnerRel = 0.382
)

var labelBorderColor = style.RGB{R: 200, G: 200, B: 200}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background  style.RGB
	insetFrames bool
	labels      bool
	fontFamily  string
}

// WithBackground sets the slide background color.
func WithBackground(c style.RGB) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithoutInsetFrames hides the border drawn around inset canvases.
func WithoutInsetFrames() SVGOption { return func(r *svgRenderer) { r.insetFrames = false } }

// WithoutLabels suppresses every label regardless of set styles.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithFontFamily sets the label font family.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		background:  style.RGB{R: 0xff, G: 0xff, B: 0xff},
		insetFrames: true,
		labels:      true,
		fontFamily:  "Helvetica, Arial, sans-serif",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws plan onto a slide. images holds the base image per canvas;
// canvases without one are left blank.
func RenderSVG(plan *layout.Plan, images map[layout.CanvasID]basemap.Image, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := plan.Slide.Width.Points(), plan.Slide.Height.Points()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.3fin" height="%.3fin">`+"\n",
		w, h, plan.Slide.Width.Float(), plan.Slide.Height.Float())
	renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n", w, h, r.background.Hex())

	for _, c := range plan.Canvases {
		r.renderCanvas(&buf, c, images[c.ID])
	}
	// Markers first, then labels, so no marker covers a label.
	for _, c := range plan.Canvases {
		for _, p := range plan.PlacementsOn(c.ID) {
			renderMarker(&buf, p.Position, plan.Style(p.Ref))
		}
	}
	if r.labels {
		for _, c := range plan.Canvases {
			for _, p := range plan.PlacementsOn(c.ID) {
				s := plan.Style(p.Ref)
				if s.ShowLabels && p.Name != "" {
					r.renderLabel(&buf, p.Position, p.Name, s)
				}
			}
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <filter id="marker-shadow" x="-50%" y="-50%" width="200%" height="200%">
      <feDropShadow dx="1.5" dy="1.5" stdDeviation="1.2" flood-color="#000000" flood-opacity="0.45"/>
    </filter>
  </defs>
`)
}

func (r svgRenderer) renderCanvas(buf *bytes.Buffer, c layout.Canvas, img basemap.Image) {
	x, y := c.Rect.Left.Points(), c.Rect.Top.Points()
	w, h := c.Rect.Width.Points(), c.Rect.Height.Points()
	fmt.Fprintf(buf, `  <g id="canvas-%s">`+"\n", c.ID)
	if len(img.PNG) > 0 {
		fmt.Fprintf(buf, `    <image x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="none" xlink:href="data:image/png;base64,%s"/>`+"\n",
			x, y, w, h, base64.StdEncoding.EncodeToString(img.PNG))
	}
	if c.ID != layout.Main && r.insetFrames {
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="#808080" stroke-width="%.2f"/>`+"\n",
			x, y, w, h, insetBorder.Float())
	}
	buf.WriteString("  </g>\n")
}

func renderMarker(buf *bytes.Buffer, at geo.Point, s style.Style) {
	cx, cy := at.X.Points().Float(), at.Y.Points().Float()
	half := s.Size.Points().Float() / 2

	attrs := paintAttrs(s)
	switch s.Shape {
	case style.Square:
		fmt.Fprintf(buf, `  <rect class="marker" x="%.2f" y="%.2f" width="%.2f" height="%.2f"%s/>`+"\n",
			cx-half, cy-half, 2*half, 2*half, attrs)
	case style.Triangle:
		fmt.Fprintf(buf, `  <polygon class="marker" points="%.2f,%.2f %.2f,%.2f %.2f,%.2f"%s/>`+"\n",
			cx, cy-half, cx+half, cy+half, cx-half, cy+half, attrs)
	case style.Star:
		fmt.Fprintf(buf, `  <polygon class="marker" points="%s"%s/>`+"\n", starPoints(cx, cy, half), attrs)
	default:
		fmt.Fprintf(buf, `  <circle class="marker" cx="%.2f" cy="%.2f" r="%.2f"%s/>`+"\n", cx, cy, half, attrs)
	}
}

func paintAttrs(s style.Style) string {
	fill := "none"
	if s.ShowFill {
		fill = s.Color.Hex()
	}
	out := fmt.Sprintf(` fill="%s"`, fill)
	if s.ShowOutline && s.OutlineWidth > 0 {
		out += fmt.Sprintf(` stroke="%s" stroke-width="%.2f"`, s.OutlineColor.Hex(), s.OutlineWidth.Float())
	} else {
		out += ` stroke="none"`
	}
	if s.ShowShadow {
		out += ` filter="url(#marker-shadow)"`
	}
	return out
}

// starPoints returns a five-pointed star with its top point up.
func starPoints(cx, cy, outer float64) string {
	inner := outer * starInnerRel
	var buf bytes.Buffer
	for i := 0; i < 10; i++ {
		rad := outer
		if i%2 == 1 {
			rad = inner
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/5
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%.2f,%.2f", cx+rad*math.Cos(angle), cy+rad*math.Sin(angle))
	}
	return buf.String()
}

// renderLabel draws the name box to the right of the marker, vertically
// centered on it.
func (r svgRenderer) renderLabel(buf *bytes.Buffer, at geo.Point, name string, s style.Style) {
	x := (at.X + s.Size/2 + labelGap).Points().Float()
	y := (at.Y - labelHeight/2).Points().Float()
	w, h := labelWidth.Points().Float(), labelHeight.Points().Float()

	fmt.Fprintf(buf, `  <rect class="label" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x, y, w, h, s.LabelBgColor.Hex(), labelBorderColor.Hex(), labelBorder.Float())

	weight := "normal"
	if s.LabelBold {
		weight = "bold"
	}
	text := fitLabel(name, s.LabelFontSize)
	fmt.Fprintf(buf, `  <text class="label-text" x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" font-weight="%s" fill="%s" dominant-baseline="central">%s</text>`+"\n",
		x+labelMargin.Float(), y+h/2, escapeXML(r.fontFamily), s.LabelFontSize.Float(), weight, s.LabelTextColor.Hex(), escapeXML(text))
}

// fitLabel truncates name to the characters that fit the label box at the
// given font size, assuming an average glyph width of 0.55em.
func fitLabel(name string, fontSize unit.Points) string {
	avail := labelWidth.Points().Float() - 2*labelMargin.Float()
	limit := int(avail / (fontSize.Float() * 0.55))
	runes := []rune(name)
	if limit < 4 || len(runes) <= limit {
		return name
	}
	return string(runes[:limit-3]) + "..."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
