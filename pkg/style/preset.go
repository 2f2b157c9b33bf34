package style

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pinmap/pkg/errors"
)

// LoadPreset reads a TOML style preset. Keys use the same names as the
// JSON form:
//
//	markerColor = "#0d6efd"
//	markerShape = "star"
//	showLabels = false
func LoadPreset(path string) (Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Override{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read style preset %s", path)
	}
	o, err := ParsePreset(data)
	if err != nil {
		return Override{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse style preset %s", path)
	}
	return o, nil
}

// ParsePreset decodes a TOML preset. Unknown keys are rejected.
func ParsePreset(data []byte) (Override, error) {
	var o Override
	md, err := toml.Decode(string(data), &o)
	if err != nil {
		return Override{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Override{}, errors.New(errors.ErrCodeInvalidFormat, "unknown style key %q", undecoded[0].String())
	}
	return o, nil
}
