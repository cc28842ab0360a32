package gradient

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied sRGB color with channels in [0,1]
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// Transparent is the neutral fallback color
var Transparent = Color{}

// RGB creates an opaque color
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns the color with opacity a
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// ScaleAlpha returns the color with its opacity multiplied by f
func (c Color) ScaleAlpha(f float64) Color {
	c.A *= f
	return c
}

// RGBA implements image/color.Color (alpha-premultiplied, 16-bit)
func (c Color) RGBA() (r, g, b, a uint32) {
	alpha := clamp01(c.A)
	r = uint32(math.Round(clamp01(c.R) * alpha * 0xffff))
	g = uint32(math.Round(clamp01(c.G) * alpha * 0xffff))
	b = uint32(math.Round(clamp01(c.B) * alpha * 0xffff))
	a = uint32(math.Round(alpha * 0xffff))
	return
}

// Hex formats the color as #rrggbb, or #rrggbbaa when not fully opaque
func (c Color) Hex() string {
	hex := colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
	if c.A >= 1 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, uint8(math.Round(clamp01(c.A)*255)))
}

// Flatten composites the color over an opaque background
func (c Color) Flatten(background Color) Color {
	a := clamp01(c.A)
	return Color{
		R: c.R*a + background.R*(1-a),
		G: c.G*a + background.G*(1-a),
		B: c.B*a + background.B*(1-a),
		A: 1,
	}
}

// ParseHex parses #rrggbb, #rgb or #rrggbbaa
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)

	alpha := 1.0
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

// MustParseHex is ParseHex that panics on error, for color literals
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic("MustParseHex: " + err.Error())
	}
	return c
}

// ParseStops parses a list of hex colors into gradient stops
func ParseStops(hexes []string) ([]Color, error) {
	stops := make([]Color, 0, len(hexes))
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, fmt.Errorf("gradient stop %d: %w", i, err)
		}
		stops = append(stops, c)
	}
	return stops, nil
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
