// Package projection is the catalog of map projections pinmap supports and
// their forward transforms from WGS84 to planar metres.
//
// The catalog is closed: [WebMercator] (EPSG:3857), [Robinson] (ESRI:54030)
// and [EqualEarth] (EPSG:8857). Every transform is pure and deterministic,
// on a sphere of radius [EarthRadius]:
//
//	x, y := projection.Robinson.Forward(geo.LatLng{Lat: 48.85, Lng: 2.35})
//
// Web Mercator is delegated to github.com/paulmach/orb/project. Latitudes
// are clamped to the EPSG:3857 validity range first, so the poles map to a
// finite value. Robinson interpolates the published 5° table. Equal Earth
// uses its closed-form polynomial.
//
// Callers that only know a spatial reference identifier go through the
// [Transformer] interface; [Catalog] is the default implementation.
package projection
