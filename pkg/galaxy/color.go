package galaxy

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB triple with components in [0, 1].
type Color struct {
	R, G, B float32
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}, nil
}

// MustHex is ParseHex for compile-time constants; it panics on malformed input.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the colour as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

// Lerp blends c towards to by t. t is clamped to [0, 1]; the endpoints are
// returned exactly.
func (c Color) Lerp(to Color, t float32) Color {
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return to
	}
	return Color{
		R: c.R*(1-t) + to.R*t,
		G: c.G*(1-t) + to.G*t,
		B: c.B*(1-t) + to.B*t,
	}
}

// Array returns the components in GL uniform layout.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
