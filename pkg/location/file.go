package location

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/pinmap/pkg/errors"
)

// Read dispatches on the file name's extension: .csv is read as CSV,
// .geojson and .json as GeoJSON.
func Read(name string, r io.Reader) ([]Point, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		return ReadCSV(r)
	case ".geojson", ".json":
		return ReadGeoJSON(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported location file %q: want .csv, .geojson or .json", name)
	}
}

// ReadFile reads the file at path with [Read].
func ReadFile(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(path, f)
}

// ReadSet reads a file into a set named after the file's base name.
func ReadSet(path string) (Set, error) {
	points, err := ReadFile(path)
	if err != nil {
		return Set{}, err
	}
	base := filepath.Base(path)
	return Set{Name: strings.TrimSuffix(base, filepath.Ext(base)), Points: points}, nil
}
