// Package layout composes the canvases of a map slide and assigns every
// input point to exactly one of them.
//
// # Canvases
//
// A plan has one main canvas and, for US maps with outlying-territory
// points, up to two inset canvases:
//
//   - [Main] shows the resolved region. When insets are drawn it is pinned
//     to the continental box so Alaska and Hawaii do not distort it.
//   - [InsetA] shows Alaska in the top-left corner of the main canvas.
//   - [InsetB] shows Hawaii in the bottom-right corner.
//
// The main canvas is letterboxed into the slide with [Fit]: the base image
// keeps its aspect ratio and is centered, never cropped or stretched. Insets
// are sized by [InsetRect] to a fifth of the main width at their own image
// aspect. Insets are not checked for collisions with each other.
//
// # Partition
//
// Every valid point lands on exactly one canvas. Points in an outlying zone
// go to that zone's inset when it exists and fall back to the main canvas
// otherwise, where they may project outside the frame. Points with missing
// or invalid coordinates are listed in [Plan.Excluded] and never partitioned.
//
// # Failure isolation
//
// A degenerate main canvas fails [Compose]. A degenerate inset is dropped
// with a warning and its points move to the main canvas. A set with an
// unusable style is drawn with the default style and a warning.
//
// Compose is pure and safe to call concurrently.
package layout
