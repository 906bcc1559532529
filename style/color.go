// Package style holds the color and text style values used to draw the
// status bar.
package style

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is a straight (non-premultiplied) RGBA color with each channel in
// [0, 1].
type Color struct {
	R, G, B, A float64
}

// FromPacked decodes a 0xRRGGBBAA value.
func FromPacked(u uint32) Color {
	return Color{
		R: float64(u>>24&0xff) / 0xff,
		G: float64(u>>16&0xff) / 0xff,
		B: float64(u>>8&0xff) / 0xff,
		A: float64(u>>0&0xff) / 0xff,
	}
}

// Packed encodes c as 0xRRGGBBAA. Channels outside [0, 1] are clamped.
func (c Color) Packed() uint32 {
	return uint32(channel8(c.R))<<24 |
		uint32(channel8(c.G))<<16 |
		uint32(channel8(c.B))<<8 |
		uint32(channel8(c.A))<<0
}

// RGB24 returns the 24-bit 0xRRGGBB value, dropping alpha. X11 core
// drawing on a TrueColor visual takes pixels in this form.
func (c Color) RGB24() uint32 {
	return c.Packed() >> 8
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{
		R: channel8(c.R),
		G: channel8(c.G),
		B: channel8(c.B),
		A: channel8(c.A),
	}.RGBA()
}

// String formats c as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%08x", c.Packed())
}

// ParseHex parses "#rrggbb", "#rrggbbaa" or "0xrrggbbaa". A missing alpha
// channel means fully opaque.
func ParseHex(s string) (Color, error) {
	h := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(h, "#"):
		h = h[1:]
	case strings.HasPrefix(h, "0x"), strings.HasPrefix(h, "0X"):
		h = h[2:]
	default:
		return Color{}, fmt.Errorf("style: color %q: missing # or 0x prefix", s)
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("style: color %q: want 6 or 8 hex digits", s)
	}
	u, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("style: color %q: %w", s, err)
	}
	return FromPacked(uint32(u)), nil
}

func channel8(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 0xff
	}
	return uint8(math.Round(f * 0xff))
}
