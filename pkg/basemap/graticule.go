package basemap

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/pinmap/pkg/cache"
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/observability"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
	"github.com/matzehuels/pinmap/pkg/style"
)

// DefaultWidth is the pixel width of generated images.
const DefaultWidth = 2000

// maxHeight caps tall images (very narrow areas) at a sane pixel count.
const maxHeight = 8000

// segments is the number of straight pieces per graticule line. Meridians
// are curved under pseudo-cylindrical projections; cylindrical ones draw
// every graticule line as a single segment.
const segments = 64

// Graticule draws background, graticule, labels and frame.
type Graticule struct {
	Width      int
	Background style.RGB
	Lines      style.RGB
	Frame      style.RGB
	Labels     bool
	// Transformer projects graticule vertices. Nil uses projection.Catalog.
	Transformer projection.Transformer
}

// GraticuleOption configures a [Graticule].
type GraticuleOption func(*Graticule)

// WithWidth sets the pixel width.
func WithWidth(px int) GraticuleOption { return func(g *Graticule) { g.Width = px } }

// WithColors sets background, line and frame colors.
func WithColors(bg, lines, frame style.RGB) GraticuleOption {
	return func(g *Graticule) { g.Background, g.Lines, g.Frame = bg, lines, frame }
}

// WithTransformer projects through tr instead of the built-in catalog.
func WithTransformer(tr projection.Transformer) GraticuleOption {
	return func(g *Graticule) { g.Transformer = tr }
}

// WithoutLabels disables degree labels.
func WithoutLabels() GraticuleOption { return func(g *Graticule) { g.Labels = false } }

// NewGraticule returns a generator with default colors at [DefaultWidth].
func NewGraticule(opts ...GraticuleOption) *Graticule {
	g := &Graticule{
		Width:      DefaultWidth,
		Background: style.RGB{R: 0xf4, G: 0xf1, B: 0xea},
		Lines:      style.RGB{R: 0xc8, G: 0xc8, B: 0xc8},
		Frame:      style.RGB{R: 0x80, G: 0x80, B: 0x80},
		Labels:     true,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.Width <= 0 {
		g.Width = DefaultWidth
	}
	if g.Transformer == nil {
		g.Transformer = projection.Catalog{}
	}
	return g
}

// KeyOpts identifies the generator settings in cache keys.
func (g *Graticule) KeyOpts() cache.BaseMapKeyOpts {
	name := fmt.Sprintf("graticule:%s:%s:%s:%t:%T", g.Background, g.Lines, g.Frame, g.Labels, g.Transformer)
	return cache.BaseMapKeyOpts{Width: g.Width, Generator: name}
}

// Generate renders the area. The image height is Width divided by the
// projected aspect of the area, rounded to whole pixels.
func (g *Graticule) Generate(ctx context.Context, area region.Area, p projection.Projection) (img Image, err error) {
	start := time.Now()
	defer func() {
		observability.BaseMap().OnBaseMapGenerated(ctx, area.Name, string(p), img.Width, img.Height, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	if err := area.Bounds.Validate(); err != nil {
		return Image{}, err
	}
	tr := g.Transformer
	if tr == nil {
		tr = projection.Catalog{}
	}
	ext, err := projection.TransformExtent(tr, p.SRID(), area.Bounds)
	if err != nil {
		return Image{}, err
	}
	aspect := ext.Aspect()
	if aspect == 0 {
		return Image{}, errors.New(errors.ErrCodeDegenerateBounds, "area %s has no extent under %s", area.Name, p)
	}

	w := g.Width
	if w <= 0 {
		w = DefaultWidth
	}
	h := int(math.Round(float64(w) / aspect))
	if h < 1 {
		h = 1
	}
	if h > maxHeight {
		return Image{}, errors.New(errors.ErrCodeDegenerateBounds, "area %s is too narrow to draw (%dx%d)", area.Name, w, h)
	}

	pj := pixelProjector{tr: tr, srid: p.SRID(), ext: ext, w: float64(w), h: float64(h), straight: p.Cylindrical()}
	dc := gg.NewContext(w, h)
	dc.SetRGB255(int(g.Background.R), int(g.Background.G), int(g.Background.B))
	dc.Clear()

	b := area.Bounds
	west, east := b.West.Float(), b.East.Float()
	south, north := b.South.Float(), b.North.Float()
	lngStep := gridStep(east - west)
	latStep := gridStep(north - south)

	dc.SetRGB255(int(g.Lines.R), int(g.Lines.G), int(g.Lines.B))
	dc.SetLineWidth(math.Max(1, float64(w)/1000))
	for lng := math.Ceil(west/lngStep) * lngStep; lng <= east; lng += lngStep {
		pj.polyline(dc, lng, south, lng, north)
	}
	for lat := math.Ceil(south/latStep) * latStep; lat <= north; lat += latStep {
		pj.polyline(dc, west, lat, east, lat)
	}
	dc.Stroke()

	if g.Labels {
		dc.SetFontFace(basicfont.Face7x13)
		for lat := math.Ceil(south/latStep) * latStep; lat <= north; lat += latStep {
			x, y := pj.pixel(west, lat)
			dc.DrawStringAnchored(latLabel(lat), x+4, y-2, 0, 0)
		}
		for lng := math.Ceil(west/lngStep) * lngStep; lng <= east; lng += lngStep {
			x, y := pj.pixel(lng, south)
			dc.DrawStringAnchored(lngLabel(lng), x+2, y-4, 0, 0)
		}
	}

	dc.SetRGB255(int(g.Frame.R), int(g.Frame.G), int(g.Frame.B))
	dc.SetLineWidth(math.Max(2, float64(w)/500))
	pj.polyline(dc, west, north, east, north)
	pj.polyline(dc, east, north, east, south)
	pj.polyline(dc, east, south, west, south)
	pj.polyline(dc, west, south, west, north)
	dc.Stroke()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return Image{}, fmt.Errorf("encode base map: %w", err)
	}
	return Image{PNG: buf.Bytes(), Width: w, Height: h}, nil
}

// pixelProjector maps geographic positions to image pixels through the
// projected extent, north up.
type pixelProjector struct {
	tr   projection.Transformer
	srid string
	ext  projection.Extent
	w, h float64
	// straight is set when meridians and parallels project to lines.
	straight bool
}

func (pj pixelProjector) steps() int {
	if pj.straight {
		return 1
	}
	return segments
}

// pixel returns NaN coordinates for positions the transformer rejects.
func (pj pixelProjector) pixel(lng, lat float64) (float64, float64) {
	x, y, err := pj.tr.Forward(pj.srid, lng, lat)
	if err != nil {
		return math.NaN(), math.NaN()
	}
	px := (x - pj.ext.West) / pj.ext.Width() * pj.w
	py := (pj.ext.North - y) / pj.ext.Height() * pj.h
	return px, py
}

// polyline adds a sampled line between two positions to the current path.
func (pj pixelProjector) polyline(dc *gg.Context, lng0, lat0, lng1, lat1 float64) {
	dc.NewSubPath()
	n := pj.steps()
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x, y := pj.pixel(lng0+(lng1-lng0)*t, lat0+(lat1-lat0)*t)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
}

// gridStep picks a graticule spacing giving a handful of lines over span
// degrees.
func gridStep(span float64) float64 {
	switch {
	case span >= 120:
		return 30
	case span >= 40:
		return 10
	case span >= 15:
		return 5
	case span >= 4:
		return 1
	default:
		return 0.5
	}
}

func latLabel(lat float64) string {
	switch {
	case lat > 0:
		return trimDegrees(lat) + "N"
	case lat < 0:
		return trimDegrees(-lat) + "S"
	default:
		return "0"
	}
}

func lngLabel(lng float64) string {
	switch {
	case lng > 0:
		return trimDegrees(lng) + "E"
	case lng < 0:
		return trimDegrees(-lng) + "W"
	default:
		return "0"
	}
}

func trimDegrees(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
