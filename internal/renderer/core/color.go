package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	// G and B are ignored in indexed mode.
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack   = Color{R: 0, G: 0, B: 0}
	ColorWhite   = Color{R: 255, G: 255, B: 255}
	ColorRed     = Color{R: 255, G: 0, B: 0}
	ColorGreen   = Color{R: 0, G: 255, B: 0}
	ColorBlue    = Color{R: 0, G: 0, B: 255}
	ColorYellow  = Color{R: 255, G: 255, B: 0}
	ColorCyan    = Color{R: 0, G: 255, B: 255}
	ColorMagenta = Color{R: 255, G: 0, B: 255}
	ColorGray    = Color{R: 128, G: 128, B: 128}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Indexed: false}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex creates a color from a hex string ("#RGB" or "#RRGGBB").
func ColorFromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	cf, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := cf.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// ParseColor parses a color from a string. Accepted forms:
// a W3C/ANSI color name ("red", "rebeccapurple"), hex ("#f00",
// "#ff0000"), "rgb(r,g,b)" with decimal components, "default",
// or a bare palette index ("123").
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Color{}, fmt.Errorf("empty color string")
	}
	if name == "default" || name == "none" {
		return ColorDefault, nil
	}
	if strings.HasPrefix(name, "#") {
		return ColorFromHex(name)
	}
	if strings.HasPrefix(name, "rgb(") && strings.HasSuffix(name, ")") {
		return parseRGBFunc(name)
	}
	if tc, ok := tcell.ColorNames[name]; ok {
		hex := tc.Hex()
		return Color{
			R: uint8(hex >> 16),
			G: uint8(hex >> 8),
			B: uint8(hex),
		}, nil
	}
	if idx, err := strconv.ParseUint(name, 10, 8); err == nil {
		return ColorFromIndex(uint8(idx)), nil
	}
	return Color{}, fmt.Errorf("unknown color %q", s)
}

func parseRGBFunc(s string) (Color, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("invalid rgb() color %q", s)
	}
	var vals [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid rgb() component in %q: %w", s, err)
		}
		vals[i] = uint8(v)
	}
	return Color{R: vals[0], G: vals[1], B: vals[2]}, nil
}

// IsDefault returns true if this is the default/unset color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ToHex returns the hex representation of a true color.
func (c Color) ToHex() string {
	if c.Indexed {
		return ""
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Lighten returns a lighter version of the color.
func (c Color) Lighten(amount float64) Color {
	if c.Indexed || c.Default {
		return c
	}
	return fromColorful(c.toColorful().BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, amount))
}

// Darken returns a darker version of the color.
func (c Color) Darken(amount float64) Color {
	if c.Indexed || c.Default {
		return c
	}
	return fromColorful(c.toColorful().BlendRgb(colorful.Color{}, amount))
}

// Blend blends two colors together. amount 0 returns c, 1 returns other.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Indexed || other.Indexed || c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	return fromColorful(c.toColorful().BlendRgb(other.toColorful(), amount))
}
