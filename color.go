package floodfill

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// colorEpsilon is the per-channel tolerance used by Equal.
// It is far below one 8-bit step (1/255), so any visible difference
// between two colors still counts as a difference.
const colorEpsilon = 1e-6

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Components are not premultiplied.
type RGBA struct {
	R, G, B, A float64
}

// RGBA implements the color.Color interface.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	return c.Color().RGBA()
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	if c, ok := c.(RGBA); ok {
		return c
	}
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA{
		R: float64(n.R) / 65535,
		G: float64(n.G) / 65535,
		B: float64(n.B) / 65535,
		A: float64(n.A) / 65535,
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// RGBA2 creates a color from RGBA components.
func RGBA2(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// Equal reports whether c and other are the same color within a small
// tolerance on every channel, alpha included.
func (c RGBA) Equal(other RGBA) bool {
	return math.Abs(c.R-other.R) <= colorEpsilon &&
		math.Abs(c.G-other.G) <= colorEpsilon &&
		math.Abs(c.B-other.B) <= colorEpsilon &&
		math.Abs(c.A-other.A) <= colorEpsilon
}

// Luma601 returns the Rec. 601 luma of the color.
func (c RGBA) Luma601() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Luma709 returns the Rec. 709 luma of the color.
func (c RGBA) Luma709() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// colorful returns the RGB part of c as a go-colorful color.
func (c RGBA) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// String returns the color as "#rrggbb", or "#rrggbbaa" if it is not opaque.
func (c RGBA) String() string {
	s := c.colorful().Clamped().Hex()
	if a := uint8(clamp255(c.A*255 + 0.5)); a != 255 {
		s += fmt.Sprintf("%02x", a)
	}
	return s
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RRGGBB", "RRGGBBAA", with or without a leading '#'.
// Malformed input yields opaque black; use ParseColor to detect errors.
func Hex(hex string) RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		return Black
	}
	return c
}

// ParseColor parses a color name ("red", "white", ...) or a hex string.
func ParseColor(s string) (RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")

	alpha := 1.0
	if len(hex) == 8 {
		var a uint8
		if _, err := fmt.Sscanf(hex[6:], "%02x", &a); err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	}
	if len(hex) != 3 && len(hex) != 6 {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return RGBA{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Cyan        = RGB(0, 1, 1)
	Magenta     = RGB(1, 0, 1)
	Transparent = RGBA2(0, 0, 0, 0)
)

var namedColors = map[string]RGBA{
	"black":       Black,
	"white":       White,
	"red":         Red,
	"green":       Green,
	"blue":        Blue,
	"yellow":      Yellow,
	"cyan":        Cyan,
	"magenta":     Magenta,
	"transparent": Transparent,
}
