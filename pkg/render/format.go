package render

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pinmap/pkg/basemap"
	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
)

// Format is an output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Formats lists every supported format.
func Formats() []Format { return []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON} }

// ParseFormat resolves a format name or file extension.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case FormatSVG, FormatPNG, FormatPDF, FormatJSON:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", s)
}

// ParseFormats resolves a list of names, dropping duplicates.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool, len(names))
	out := make([]Format, 0, len(names))
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string { return "." + string(f) }

// ContentType returns the MIME type.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/json"
}

// NeedsConverter reports whether the format goes through rsvg-convert.
func (f Format) NeedsConverter() bool { return f == FormatPNG || f == FormatPDF }

// Render produces one artifact. scale only applies to PNG.
func Render(plan *layout.Plan, images map[layout.CanvasID]basemap.Image, f Format, scale float64, opts ...SVGOption) ([]byte, error) {
	switch f {
	case FormatJSON:
		return MarshalPlan(plan)
	case FormatSVG:
		return RenderSVG(plan, images, opts...), nil
	case FormatPNG:
		return ToPNG(RenderSVG(plan, images, opts...), scale)
	case FormatPDF:
		return ToPDF(RenderSVG(plan, images, opts...))
	}
	return nil, fmt.Errorf("unsupported format: %s", f)
}
