package location

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/pinmap/pkg/errors"
)

var (
	latColumns  = []string{"lat", "latitude"}
	lngColumns  = []string{"lng", "lon", "long", "longitude"}
	nameColumns = []string{"name", "label", "title"}
)

// ReadCSV reads points from CSV with a header row. Column names are
// matched case-insensitively; latitude and longitude columns are required,
// a name column is optional. Empty or unparsable coordinate cells produce
// points with a nil coordinate.
func ReadCSV(r io.Reader) ([]Point, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv header")
	}

	columns := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := columns[col]; !dup {
			columns[col] = i
		}
	}

	latCol, lngCol, nameCol := find(columns, latColumns), find(columns, lngColumns), find(columns, nameColumns)
	if latCol < 0 || lngCol < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv needs lat and lng columns, got %v", header)
	}

	var points []Point
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read csv")
		}
		if blank(record) {
			continue
		}
		p := Point{
			Lat: parseCoord(cell(record, latCol)),
			Lng: parseCoord(cell(record, lngCol)),
		}
		if nameCol >= 0 {
			p.Name = strings.TrimSpace(cell(record, nameCol))
		}
		points = append(points, p)
	}
	return points, nil
}

func find(columns map[string]int, names []string) int {
	for _, n := range names {
		if i, ok := columns[n]; ok {
			return i
		}
	}
	return -1
}

func cell(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseCoord(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
