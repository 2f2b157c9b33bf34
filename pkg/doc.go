// Package pkg holds the pinmap libraries.
//
// pinmap places geographic point sets onto presentation slides: it picks the
// map region, decides which off-continent insets are needed, letterboxes
// every canvas onto the slide and projects each point to its final position
// in inches.
//
// # Layout
//
//   - [unit], [geo]: value types (degrees, inches, points, bounds, rects)
//   - [region]: named regions, fixed areas and the US territory rules
//   - [projection]: Web Mercator, Robinson and Equal Earth transforms
//   - [mapper]: geographic position → canvas position
//   - [style]: marker styles, overrides and TOML presets
//   - [location]: CSV and GeoJSON ingest
//   - [layout]: the compositor producing a [layout.Plan]
//   - [basemap], [render]: base images and slide artwork
//   - [cache], [store]: cached bytes and archived plans
//   - [pipeline]: load → layout → render with caching
//   - [observability]: hooks for metrics
//
// # Data Flow
//
//	CSV / GeoJSON
//	     ↓
//	[location] sets
//	     ↓
//	[layout] plan  ←  [region], [projection], [mapper], [style]
//	     ↓
//	[render] SVG / PNG / PDF / JSON  ←  [basemap]
//
// [unit]: github.com/matzehuels/pinmap/pkg/unit
// [geo]: github.com/matzehuels/pinmap/pkg/geo
// [region]: github.com/matzehuels/pinmap/pkg/region
// [projection]: github.com/matzehuels/pinmap/pkg/projection
// [mapper]: github.com/matzehuels/pinmap/pkg/mapper
// [style]: github.com/matzehuels/pinmap/pkg/style
// [location]: github.com/matzehuels/pinmap/pkg/location
// [layout]: github.com/matzehuels/pinmap/pkg/layout
// [layout.Plan]: github.com/matzehuels/pinmap/pkg/layout#Plan
// [basemap]: github.com/matzehuels/pinmap/pkg/basemap
// [render]: github.com/matzehuels/pinmap/pkg/render
// [cache]: github.com/matzehuels/pinmap/pkg/cache
// [store]: github.com/matzehuels/pinmap/pkg/store
// [pipeline]: github.com/matzehuels/pinmap/pkg/pipeline
// [observability]: github.com/matzehuels/pinmap/pkg/observability
package pkg
