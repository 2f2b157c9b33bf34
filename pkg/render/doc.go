// Package render turns a layout plan into slide artwork.
//
// # SVG
//
// [RenderSVG] writes a slide-sized SVG document. Each canvas paints its base
// image stretched over the canvas rectangle, then every placement draws its
// marker and optional label with the style resolved for its location set.
// Coordinates are emitted in points (72 per inch) so font sizes and outline
// widths keep their nominal size:
//
//	svg := render.RenderSVG(plan, images, render.WithBackground(style.MustHex("#ffffff")))
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg):
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [Render] dispatches on a [Format] and [MarshalPlan] produces the JSON form
// of a plan.
package render
