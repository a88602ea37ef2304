package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/arloliu/fitview/dataset"
	"github.com/arloliu/fitview/errs"
)

// Palette maps series names to hex colors such as "#2563eb".
type Palette map[string]string

// FallbackColor is used for series missing from a palette.
const FallbackColor = "#6b7280"

// DefaultPalette returns the built-in series colors.
func DefaultPalette() Palette {
	return Palette{
		dataset.ColumnTerp: "#2563eb",
		dataset.ColumnYak:  "#f59e0b",
	}
}

// Hex returns the hex color of a series, falling back to FallbackColor.
func (p Palette) Hex(series string) string {
	if hex, ok := p[series]; ok {
		return hex
	}

	return FallbackColor
}

// Color resolves the color of a series.
func (p Palette) Color(series string) (color.RGBA, error) {
	return ParseHexColor(p.Hex(series))
}

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", errs.ErrInvalidColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", errs.ErrInvalidColor, s)
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
