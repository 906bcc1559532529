package style

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned by New for a point size that is not positive.
var ErrInvalidSize = errors.New("style: invalid point size")

// Padding is the horizontal and vertical space around a piece of text, in
// pixels.
type Padding struct {
	H, V float64
}

// Style describes how text is drawn. The zero Style is not valid; use New.
type Style struct {
	font    string
	size    int
	fg      Color
	bg      Color
	hasBG   bool
	padding Padding
}

// New returns a Style. bg may be nil, meaning no background is painted.
// The font name is not checked here: fonts are resolved when a drawing
// surface registers them.
func New(font string, size int, fg Color, bg *Color, padding Padding) (Style, error) {
	if size <= 0 {
		return Style{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	s := Style{
		font:    font,
		size:    size,
		fg:      fg,
		padding: padding,
	}
	if bg != nil {
		s.bg, s.hasBG = *bg, true
	}
	return s, nil
}

func (s Style) Font() string      { return s.font }
func (s Style) Size() int         { return s.size }
func (s Style) Foreground() Color { return s.fg }
func (s Style) Padding() Padding  { return s.padding }

// Background returns the background color and whether there is one.
func (s Style) Background() (Color, bool) {
	return s.bg, s.hasBG
}
