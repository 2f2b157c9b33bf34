// Package basemap produces the raster image painted underneath each canvas.
//
// A [Generator] turns a geographic area and a projection into a PNG whose
// width/height ratio equals the projected aspect of the area. The layout
// engine sizes canvases from that ratio, so a marker placed by package
// mapper lands on the same spot of the picture.
//
// [Graticule] draws a plain background, projected graticule lines, degree
// labels and the area frame with fogleman/gg. It needs no map data and is
// deterministic, which makes its output safe to cache forever:
//
//	gen := basemap.NewCached(basemap.NewGraticule(), c, cache.NewDefaultKeyer())
//	img, err := gen.Generate(ctx, region.USContinental, projection.WebMercator)
//
// [Cached] wraps any generator with package cache. Two callers racing on
// the same key both generate and both write identical bytes.
package basemap
