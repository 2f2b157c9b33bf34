package basemap

import (
	"bytes"
	"context"
	"image"
	_ "image/png"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
)

// Image is an encoded base-map picture.
type Image struct {
	PNG    []byte `json:"-"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Aspect returns Width/Height, or 0 for an empty image.
func (i Image) Aspect() float64 {
	if i.Width <= 0 || i.Height <= 0 {
		return 0
	}
	return float64(i.Width) / float64(i.Height)
}

// Generator produces the base image of an area.
type Generator interface {
	Generate(ctx context.Context, area region.Area, p projection.Projection) (Image, error)
}

// GeneratorFunc adapts a function to [Generator].
type GeneratorFunc func(ctx context.Context, area region.Area, p projection.Projection) (Image, error)

func (f GeneratorFunc) Generate(ctx context.Context, area region.Area, p projection.Projection) (Image, error) {
	return f(ctx, area, p)
}

// Decode reads the dimensions of an encoded PNG.
func Decode(data []byte) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode base map")
	}
	if format != "png" {
		return Image{}, errors.New(errors.ErrCodeInvalidFormat, "base map is %s, want png", format)
	}
	return Image{PNG: data, Width: cfg.Width, Height: cfg.Height}, nil
}

// AspectFunc returns a function reporting the aspect of the images gen
// produces. It generates (or loads) each image once per call, so pairing it
// with [Cached] keeps layout and rendering on the same pixels.
func AspectFunc(ctx context.Context, gen Generator) func(region.Area, projection.Projection) (float64, error) {
	return func(area region.Area, p projection.Projection) (float64, error) {
		img, err := gen.Generate(ctx, area, p)
		if err != nil {
			return 0, err
		}
		if img.Aspect() == 0 {
			return 0, errors.New(errors.ErrCodeDegenerateBounds, "base map for %s is empty", area.Name)
		}
		return img.Aspect(), nil
	}
}
