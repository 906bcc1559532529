// Package canvas is the drawing capability set a status bar needs. It does
// not rasterize anything itself; backends such as canvas/raster and the
// X11 host implement it.
package canvas

import (
	"errors"

	"github.com/nigeltao/tagwm/style"
)

var (
	ErrUnknownFont = errors.New("canvas: unknown font")
	ErrNoFont      = errors.New("canvas: no font selected")
	ErrClosed      = errors.New("canvas: surface closed")
)

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

// Surface is a window-like area to draw on. Coordinates are relative to
// the current origin, which Translate moves. Drawing may be buffered
// until Flush.
type Surface interface {
	// RegisterFont makes a font available to SelectFont. It fails with
	// ErrUnknownFont if the backend cannot find it.
	RegisterFont(name string) error
	SelectFont(name string, size int) error
	SetColor(c style.Color)
	// Rect fills a rectangle with the current color.
	Rect(x, y, w, h float64)
	// TextExtent measures s in the selected font.
	TextExtent(s string) (w, h float64, err error)
	// Text draws s with its top left corner at (x, y) and returns the
	// advance width.
	Text(s string, x, y float64) (float64, error)
	Translate(dx, dy float64)
	Flush() error
	// Damaged reports whether the surface needs repainting, for example
	// after an expose event, and clears the flag.
	Damaged() bool
	Close() error
}

// Backend creates surfaces.
type Backend interface {
	NewSurface(w, h int) (Surface, error)
	// ScreenSizes reports each screen's size. There is always at least one
	// screen when err is nil.
	ScreenSizes() ([]Size, error)
}
