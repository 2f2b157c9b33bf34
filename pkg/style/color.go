package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/pinmap/pkg/errors"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string { return c.Hex() }

// MarshalText encodes the color as "#rrggbb".
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText parses any form accepted by [ParseHex].
func (c *RGB) UnmarshalText(text []byte) error {
	v, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseHex parses "#rrggbb", "rrggbb" or "#rgb". Anything else is an
// INVALID_COLOR error.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return RGB{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q: want #rrggbb or #rgb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, errors.New(errors.ErrCodeInvalidColor, "invalid hex color %q: bad digits", s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustHex is ParseHex for literals known to be valid.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
