package projection

import "github.com/matzehuels/pinmap/pkg/geo"

// Transformer projects WGS84 coordinates for a spatial reference id.
type Transformer interface {
	Forward(srid string, lng, lat float64) (x, y float64, err error)
}

// Catalog is the built-in [Transformer]. It supports exactly the three
// catalog projections and rejects other identifiers.
type Catalog struct{}

// Forward implements [Transformer].
func (Catalog) Forward(srid string, lng, lat float64) (x, y float64, err error) {
	p, err := FromSRID(srid)
	if err != nil {
		return 0, 0, err
	}
	x, y = Forward(p, lng, lat)
	return x, y, nil
}

var _ Transformer = Catalog{}

// TransformExtent projects the south-west and north-east corners of b
// through tr. A nil tr uses [Catalog].
func TransformExtent(tr Transformer, srid string, b geo.Bounds) (Extent, error) {
	if tr == nil {
		tr = Catalog{}
	}
	w, s, err := tr.Forward(srid, b.West.Float(), b.South.Float())
	if err != nil {
		return Extent{}, err
	}
	e, n, err := tr.Forward(srid, b.East.Float(), b.North.Float())
	if err != nil {
		return Extent{}, err
	}
	return Extent{West: w, South: s, East: e, North: n}, nil
}
