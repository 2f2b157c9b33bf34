package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/location"
)

// LoadSets reads one location set per file. Sets are named after their
// files.
func LoadSets(paths []string) ([]location.Set, error) {
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one location file is required")
	}
	sets := make([]location.Set, 0, len(paths))
	for _, p := range paths {
		set, err := location.ReadSet(p)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// ReadUpload reads a client-supplied file. The filename is validated
// before its extension picks the parser.
func ReadUpload(filename string, r io.Reader) (location.Set, error) {
	if err := errors.ValidateUploadFilename(filename); err != nil {
		return location.Set{}, err
	}
	points, err := location.Read(filename, r)
	if err != nil {
		return location.Set{}, err
	}
	return location.Set{Name: trimExt(filename), Points: points}, nil
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
