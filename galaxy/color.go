package galaxy

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB triple with components in [0,1].
type Color struct {
	R, G, B float64
}

// ParseHex parses a "#rrggbb" (or "#rgb") string.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return Color(c), nil
}

// MustParseHex is like ParseHex but panics on error. Only for literals.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the "#rrggbb" form.
func (c Color) Hex() string {
	return colorful.Color(c).Clamped().Hex()
}

// Lerp interpolates componentwise in RGB space. t=0 yields c, t=1 yields to.
func (c Color) Lerp(to Color, t float64) Color {
	return Color(colorful.Color(c).BlendRgb(colorful.Color(to), t))
}

// Clamped returns the color with each component limited to [0,1].
func (c Color) Clamped() Color {
	return Color(colorful.Color(c).Clamped())
}

// RGBA8 returns the color as 8-bit channels with full alpha.
func (c Color) RGBA8() (r, g, b, a uint8) {
	r, g, b = colorful.Color(c).Clamped().RGB255()
	return r, g, b, 255
}
