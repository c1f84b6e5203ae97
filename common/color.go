package common

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a linear RGBA color with straight (non-premultiplied) alpha.
type Color struct {
	R, G, B, A float32
}

var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
)

// Hex builds an opaque color from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
		A: 1,
	}
}

// ParseHex parses "#rrggbb", "rrggbb" or "#rrggbbaa".
//
// Parameters:
//   - s: the hex string
//
// Returns:
//   - Color: the parsed color
//   - error: error if the string is not a valid hex color
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(s) == 6 {
		return Hex(uint32(v)), nil
	}
	c := Hex(uint32(v >> 8))
	c.A = float32(v&0xff) / 255
	return c, nil
}

// Mul returns the component-wise product of two colors.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Add returns the component-wise sum of two colors.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Lerp interpolates every channel between c and o.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{Lerp(c.R, o.R, t), Lerp(c.G, o.G, t), Lerp(c.B, o.B, t), Lerp(c.A, o.A, t)}
}

// Luminance returns the Rec. 709 relative luminance of the rgb channels.
func (c Color) Luminance() float32 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Over composites c over dst with normal alpha blending:
// rgb = src.rgb*src.a + dst.rgb*(1-src.a), a = src.a + dst.a*(1-src.a).
func (c Color) Over(dst Color) Color {
	ia := 1 - c.A
	return Color{
		R: c.R*c.A + dst.R*ia,
		G: c.G*c.A + dst.G*ia,
		B: c.B*c.A + dst.B*ia,
		A: c.A + dst.A*ia,
	}
}

// Clamped returns c with every channel clamped to [0, 1].
func (c Color) Clamped() Color {
	return Color{Clamp(c.R, 0, 1), Clamp(c.G, 0, 1), Clamp(c.B, 0, 1), Clamp(c.A, 0, 1)}
}

// RGBA8 converts the clamped color to 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	c = c.Clamped()
	return uint8(c.R*255 + 0.5), uint8(c.G*255 + 0.5), uint8(c.B*255 + 0.5), uint8(c.A*255 + 0.5)
}
