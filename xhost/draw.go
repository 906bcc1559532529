package xhost

import (
	"fmt"
	"strings"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/tagwm/canvas"
	"github.com/nigeltao/tagwm/style"
)

// fontAliases map portable names to core X font patterns.
var fontAliases = map[string]string{
	"mono":  "fixed",
	"fixed": "fixed",
	"basic": "fixed",
}

// xlfdPattern returns the core font pattern for a font name and point
// size. Names that already look like XLFD patterns are used as given.
func xlfdPattern(name string, size int) string {
	if alias, ok := fontAliases[name]; ok {
		return alias
	}
	if strings.HasPrefix(name, "-") {
		return name
	}
	pt := "*"
	if size > 0 {
		pt = fmt.Sprint(size * 10)
	}
	return fmt.Sprintf("-*-%s-medium-r-*-*-*-%s-*-*-*-*-iso10646-1", strings.ToLower(name), pt)
}

// encodeText8 packs s into PolyText8 items of at most 254 bytes each.
func encodeText8(s string) []byte {
	var items []byte
	for len(s) > 0 {
		n := min(len(s), 254)
		items = append(items, byte(n), 0)
		items = append(items, s[:n]...)
		s = s[n:]
	}
	return items
}

func char2b(s string) []xp.Char2b {
	out := make([]xp.Char2b, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = xp.Char2b{Byte2: s[i]}
	}
	return out
}

type backend Session

func (b *backend) ScreenSizes() ([]canvas.Size, error) {
	sizes := make([]canvas.Size, len(b.screens))
	for i, r := range b.screens {
		sizes[i] = canvas.Size{W: r.W, H: r.H}
	}
	return sizes, nil
}

// NewSurface creates an override-redirect window at the top left of the
// first screen.
func (b *backend) NewSurface(w, h int) (canvas.Surface, error) {
	s := (*Session)(b)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("xhost: invalid surface size %dx%d", w, h)
	}
	xWin, err := xp.NewWindowId(s.conn)
	if err != nil {
		return nil, err
	}
	gc, err := xp.NewGcontextId(s.conn)
	if err != nil {
		return nil, err
	}
	origin := s.screens[0]
	if err := xp.CreateWindowChecked(
		s.conn, s.screen.RootDepth, xWin, s.root,
		int16(origin.X), int16(origin.Y), uint16(w), uint16(h), 0,
		xp.WindowClassInputOutput,
		s.screen.RootVisual,
		xp.CwBackPixel|xp.CwOverrideRedirect|xp.CwEventMask,
		[]uint32{
			s.screen.BlackPixel,
			1,
			xp.EventMaskExposure,
		},
	).Check(); err != nil {
		return nil, fmt.Errorf("xhost: create surface: %w", err)
	}
	if err := xp.CreateGCChecked(s.conn, gc, xp.Drawable(xWin), 0, nil).Check(); err != nil {
		xp.DestroyWindow(s.conn, xWin)
		return nil, fmt.Errorf("xhost: create gc: %w", err)
	}
	if err := xp.MapWindowChecked(s.conn, xWin).Check(); err != nil {
		return nil, fmt.Errorf("xhost: map surface: %w", err)
	}
	sf := &surface{
		s:       s,
		xWin:    xWin,
		gc:      gc,
		fonts:   map[string]bool{},
		opened:  map[string]xp.Font{},
		metrics: map[xp.Font]fontMetrics{},
	}
	s.surfaces[xWin] = sf
	return sf, nil
}

type fontMetrics struct {
	ascent, descent int
}

type surface struct {
	s       *Session
	xWin    xp.Window
	gc      xp.Gcontext
	fonts   map[string]bool
	opened  map[string]xp.Font
	metrics map[xp.Font]fontMetrics
	font    xp.Font
	hasFont bool
	ox, oy  float64
	damaged bool
	closed  bool
}

func (f *surface) RegisterFont(name string) error {
	if f.closed {
		return canvas.ErrClosed
	}
	if f.fonts[name] {
		return nil
	}
	if _, err := f.lookup(xlfdPattern(name, 0)); err != nil {
		return err
	}
	f.fonts[name] = true
	return nil
}

// lookup returns the first core font matching pattern.
func (f *surface) lookup(pattern string) (string, error) {
	r, err := xp.ListFonts(f.s.conn, 1, uint16(len(pattern)), pattern).Reply()
	if err != nil {
		return "", err
	}
	if len(r.Names) == 0 {
		return "", fmt.Errorf("%w: no X font matches %q", canvas.ErrUnknownFont, pattern)
	}
	return r.Names[0].Name, nil
}

func (f *surface) SelectFont(name string, size int) error {
	if f.closed {
		return canvas.ErrClosed
	}
	if !f.fonts[name] {
		return fmt.Errorf("%w: %q is not registered", canvas.ErrUnknownFont, name)
	}
	pattern := xlfdPattern(name, size)
	if id, ok := f.opened[pattern]; ok {
		f.font, f.hasFont = id, true
		return nil
	}
	full, err := f.lookup(pattern)
	if err != nil {
		return err
	}
	id, err := xp.NewFontId(f.s.conn)
	if err != nil {
		return err
	}
	if err := xp.OpenFontChecked(f.s.conn, id, uint16(len(full)), full).Check(); err != nil {
		return fmt.Errorf("xhost: open font %q: %w", full, err)
	}
	q, err := xp.QueryFont(f.s.conn, xp.Fontable(id)).Reply()
	if err != nil {
		return fmt.Errorf("xhost: query font %q: %w", full, err)
	}
	f.opened[pattern] = id
	f.metrics[id] = fontMetrics{ascent: int(q.FontAscent), descent: int(q.FontDescent)}
	f.font, f.hasFont = id, true
	f.s.check(xp.ChangeGCChecked(f.s.conn, f.gc, xp.GcFont, []uint32{uint32(id)}))
	return nil
}

func (f *surface) SetColor(c style.Color) {
	if f.closed {
		return
	}
	f.s.check(xp.ChangeGCChecked(f.s.conn, f.gc, xp.GcForeground, []uint32{c.RGB24()}))
}

func (f *surface) Rect(x, y, w, h float64) {
	if f.closed || w <= 0 || h <= 0 {
		return
	}
	f.s.check(xp.PolyFillRectangleChecked(f.s.conn, xp.Drawable(f.xWin), f.gc, []xp.Rectangle{{
		X:      int16(f.ox + x),
		Y:      int16(f.oy + y),
		Width:  uint16(w),
		Height: uint16(h),
	}}))
}

func (f *surface) TextExtent(s string) (w, h float64, err error) {
	if f.closed {
		return 0, 0, canvas.ErrClosed
	}
	if !f.hasFont {
		return 0, 0, canvas.ErrNoFont
	}
	m := f.metrics[f.font]
	if s == "" {
		return 0, float64(m.ascent + m.descent), nil
	}
	r, err := xp.QueryTextExtents(f.s.conn, xp.Fontable(f.font), char2b(s), uint16(len(s))).Reply()
	if err != nil {
		return 0, 0, err
	}
	return float64(r.OverallWidth), float64(m.ascent + m.descent), nil
}

func (f *surface) Text(s string, x, y float64) (float64, error) {
	w, _, err := f.TextExtent(s)
	if err != nil {
		return 0, err
	}
	baseline := f.oy + y + float64(f.metrics[f.font].ascent)
	f.s.check(xp.PolyText8Checked(f.s.conn, xp.Drawable(f.xWin), f.gc,
		int16(f.ox+x), int16(baseline), encodeText8(s)))
	return w, nil
}

func (f *surface) Translate(dx, dy float64) {
	f.ox += dx
	f.oy += dy
}

// Flush waits for the drawing requests made so far and reports the first
// that failed.
func (f *surface) Flush() error {
	if f.closed {
		return canvas.ErrClosed
	}
	return f.s.flushChecks()
}

func (f *surface) Damaged() bool {
	d := f.damaged
	f.damaged = false
	return d
}

func (f *surface) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	delete(f.s.surfaces, f.xWin)
	for _, id := range f.opened {
		f.s.check(xp.CloseFontChecked(f.s.conn, id))
	}
	f.s.check(xp.FreeGCChecked(f.s.conn, f.gc))
	f.s.check(xp.DestroyWindowChecked(f.s.conn, f.xWin))
	return f.s.flushChecks()
}
