package location

import (
	"encoding/json"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/matzehuels/pinmap/pkg/errors"
)

// ReadGeoJSON reads points from a GeoJSON FeatureCollection. Point features
// map directly; any other geometry is represented by the center of its
// bounding box. The name comes from the "name" property, then "title".
// Features without geometry become points with no coordinates.
func ReadGeoJSON(r io.Reader) ([]Point, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read geojson")
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse geojson")
	}
	if probe.Type != "FeatureCollection" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "geojson must be a FeatureCollection, got %q", probe.Type)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse geojson")
	}

	points := make([]Point, 0, len(fc.Features))
	for _, f := range fc.Features {
		p := Point{Name: featureName(f)}
		if f.Geometry != nil {
			var c orb.Point
			if pt, ok := f.Geometry.(orb.Point); ok {
				c = pt
			} else {
				c = f.Geometry.Bound().Center()
			}
			lng, lat := c.Lon(), c.Lat()
			p.Lat, p.Lng = &lat, &lng
		}
		points = append(points, p)
	}
	return points, nil
}

func featureName(f *geojson.Feature) string {
	for _, key := range []string{"name", "title"} {
		if s := f.Properties.MustString(key, ""); s != "" {
			return s
		}
	}
	return ""
}
