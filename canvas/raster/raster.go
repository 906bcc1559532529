// Package raster is a software canvas.Backend that draws into in-memory
// RGBA images using golang.org/x/image/font.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/nigeltao/tagwm/canvas"
	"github.com/nigeltao/tagwm/style"
)

// DefaultScreen is the screen size reported when Options.Screens is empty.
var DefaultScreen = canvas.Size{W: 1920, H: 1080}

// builtinFonts name the fixed 7x13 face that needs no font file.
var builtinFonts = map[string]bool{"mono": true, "fixed": true, "basic": true}

// Options configure a Backend.
type Options struct {
	Screens []canvas.Size
	// FontDir holds <name>.ttf or <name>.otf files for fonts other than
	// the builtin ones.
	FontDir string
	// DPI for scalable fonts. Zero means 72, where one point is one pixel.
	DPI float64
	// OnFlush receives the surface image on every Flush.
	OnFlush func(*image.RGBA) error
}

// Backend creates image-backed surfaces.
type Backend struct {
	opts Options
}

var _ canvas.Backend = (*Backend)(nil)

func New(o Options) *Backend {
	if o.DPI <= 0 {
		o.DPI = 72
	}
	return &Backend{opts: o}
}

func (b *Backend) ScreenSizes() ([]canvas.Size, error) {
	if len(b.opts.Screens) == 0 {
		return []canvas.Size{DefaultScreen}, nil
	}
	return append([]canvas.Size(nil), b.opts.Screens...), nil
}

func (b *Backend) NewSurface(w, h int) (canvas.Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: invalid surface size %dx%d", w, h)
	}
	return &Surface{
		backend: b,
		img:     image.NewRGBA(image.Rect(0, 0, w, h)),
		fonts:   map[string]*opentype.Font{},
		faces:   map[faceKey]font.Face{},
	}, nil
}

type faceKey struct {
	name string
	size int
}

// Surface draws into an *image.RGBA.
type Surface struct {
	backend *Backend
	img     *image.RGBA
	// fonts holds registered fonts. Builtin fonts map to nil.
	fonts   map[string]*opentype.Font
	faces   map[faceKey]font.Face
	face    font.Face
	color   style.Color
	ox, oy  float64
	damaged bool
	closed  bool
}

var _ canvas.Surface = (*Surface)(nil)

// Image returns the surface's image. It is live: later drawing changes it.
func (s *Surface) Image() *image.RGBA { return s.img }

// Damage marks the surface as needing a repaint.
func (s *Surface) Damage() { s.damaged = true }

func (s *Surface) RegisterFont(name string) error {
	if s.closed {
		return canvas.ErrClosed
	}
	if _, ok := s.fonts[name]; ok {
		return nil
	}
	if builtinFonts[name] {
		s.fonts[name] = nil
		return nil
	}
	f, err := s.backend.loadFont(name)
	if err != nil {
		return err
	}
	s.fonts[name] = f
	return nil
}

func (b *Backend) loadFont(name string) (*opentype.Font, error) {
	if b.opts.FontDir == "" || name == "" {
		return nil, fmt.Errorf("%w: %q", canvas.ErrUnknownFont, name)
	}
	for _, ext := range []string{".ttf", ".otf"} {
		data, err := os.ReadFile(filepath.Join(b.opts.FontDir, name+ext))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("raster: font %q: %w", name, err)
		}
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q not in %s", canvas.ErrUnknownFont, name, b.opts.FontDir)
}

func (s *Surface) SelectFont(name string, size int) error {
	if s.closed {
		return canvas.ErrClosed
	}
	f, ok := s.fonts[name]
	if !ok {
		return fmt.Errorf("%w: %q is not registered", canvas.ErrUnknownFont, name)
	}
	if f == nil {
		s.face = basicfont.Face7x13
		return nil
	}
	key := faceKey{name, size}
	if face, ok := s.faces[key]; ok {
		s.face = face
		return nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     s.backend.opts.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("raster: font %q at %d: %w", name, size, err)
	}
	s.faces[key] = face
	s.face = face
	return nil
}

func (s *Surface) SetColor(c style.Color) { s.color = c }

func (s *Surface) Rect(x, y, w, h float64) {
	if s.closed {
		return
	}
	r := image.Rect(
		round(s.ox+x), round(s.oy+y),
		round(s.ox+x+w), round(s.oy+y+h),
	)
	draw.Draw(s.img, r, image.NewUniform(s.color), image.Point{}, draw.Over)
}

func (s *Surface) TextExtent(str string) (w, h float64, err error) {
	if s.closed {
		return 0, 0, canvas.ErrClosed
	}
	if s.face == nil {
		return 0, 0, canvas.ErrNoFont
	}
	m := s.face.Metrics()
	return float64(font.MeasureString(s.face, str).Ceil()), float64((m.Ascent + m.Descent).Ceil()), nil
}

func (s *Surface) Text(str string, x, y float64) (float64, error) {
	if s.closed {
		return 0, canvas.ErrClosed
	}
	if s.face == nil {
		return 0, canvas.ErrNoFont
	}
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(s.color),
		Face: s.face,
		Dot:  fixed.P(round(s.ox+x), round(s.oy+y)+s.face.Metrics().Ascent.Ceil()),
	}
	start := d.Dot.X
	d.DrawString(str)
	return float64((d.Dot.X - start).Ceil()), nil
}

func (s *Surface) Translate(dx, dy float64) {
	s.ox += dx
	s.oy += dy
}

func (s *Surface) Flush() error {
	if s.closed {
		return canvas.ErrClosed
	}
	if s.backend.opts.OnFlush != nil {
		return s.backend.opts.OnFlush(s.img)
	}
	return nil
}

func (s *Surface) Damaged() bool {
	d := s.damaged
	s.damaged = false
	return d
}

func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var errs []error
	for _, face := range s.faces {
		errs = append(errs, face.Close())
	}
	s.faces, s.face = nil, nil
	return errors.Join(errs...)
}

func round(f float64) int {
	return int(math.Round(f))
}
