// Package region is the static catalog of geographic areas pinmap can show.
//
// A region is identified by a closed [Code]. Every code maps to a fixed
// [Area] except "us", whose area depends on the input points: points in the
// outlying territories (Alaska, Hawaii) widen the box to one of four
// [Variant]s.
//
// # Territory classification
//
// [Classify] is the single place where a position is assigned to a [Zone].
// The thresholds are policy constants, not polygons; positions near a
// threshold may be misclassified. Replacing the thresholds with true
// containment tests only touches Classify.
//
//	zone := region.Classify(geo.LatLng{Lat: 60, Lng: -140}) // region.ZoneAlaska
//
// # Resolution
//
//	res := region.Resolve(region.US, points)
//	fmt.Println(res.Variant, res.Area.Bounds)
//
// Unknown codes never fail hard: [ParseCode] returns [US] together with a
// CONFIGURATION error the caller logs and otherwise ignores, and [Resolve]
// shows the continental US frame for any code outside the catalog.
package region
