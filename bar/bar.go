// Package bar is a status bar hook that shows one segment per workspace
// tag, highlighting the focused tag and dimming empty ones.
package bar

import (
	"context"
	"errors"
	"fmt"

	"pkt.systems/pslog"

	"github.com/nigeltao/tagwm/canvas"
	"github.com/nigeltao/tagwm/hook"
	"github.com/nigeltao/tagwm/style"
	"github.com/nigeltao/tagwm/wm"
)

// Config is everything a Bar draws with.
type Config struct {
	Height    int
	Style     style.Style
	Highlight style.Color
	Empty     style.Color
	Tags      []string
}

// SegmentState is how one tag is shown.
type SegmentState int

const (
	Empty SegmentState = iota
	Occupied
	Focused
)

func (s SegmentState) String() string {
	switch s {
	case Focused:
		return "focused"
	case Occupied:
		return "occupied"
	}
	return "empty"
}

// Segment is one tag as last drawn.
type Segment struct {
	Tag   string
	State SegmentState
}

type phase int

const (
	uninitialized phase = iota
	ready
	terminated
)

// Bar is a hook.Hook. It is driven by the event loop and is not safe for
// concurrent use.
type Bar struct {
	backend canvas.Backend
	cfg     Config
	log     pslog.Logger

	phase    phase
	surface  canvas.Surface
	width    int
	focused  int
	occupied []bool
}

var (
	_ hook.Hook           = (*Bar)(nil)
	_ hook.ClientObserver = (*Bar)(nil)
)

// New returns an uninitialized Bar. Tags must be unique and non-empty.
func New(backend canvas.Backend, cfg Config, log pslog.Logger) (*Bar, error) {
	if backend == nil {
		return nil, errors.New("bar: nil backend")
	}
	if cfg.Height <= 0 {
		return nil, fmt.Errorf("bar: invalid height %d", cfg.Height)
	}
	if cfg.Style.Size() <= 0 {
		return nil, fmt.Errorf("bar: %w", style.ErrInvalidSize)
	}
	seen := make(map[string]bool, len(cfg.Tags))
	for _, t := range cfg.Tags {
		if t == "" || seen[t] {
			return nil, fmt.Errorf("bar: invalid or duplicate tag %q", t)
		}
		seen[t] = true
	}
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	cfg.Tags = append([]string(nil), cfg.Tags...)
	return &Bar{
		backend:  backend,
		cfg:      cfg,
		log:      log.With("hook", "bar"),
		focused:  -1,
		occupied: make([]bool, len(cfg.Tags)),
	}, nil
}

func (b *Bar) Name() string { return "bar" }

// Startup acquires a surface as wide as the first screen and registers the
// style's font.
func (b *Bar) Startup(h wm.Handle) error {
	if b.phase != uninitialized {
		return &hook.InitError{Hook: b.Name(), Err: errors.New("already started")}
	}
	screens, err := b.backend.ScreenSizes()
	if err != nil {
		return &hook.InitError{Hook: b.Name(), Err: err}
	}
	if len(screens) == 0 {
		return &hook.InitError{Hook: b.Name(), Err: errors.New("no screens")}
	}
	b.width = screens[0].W
	surface, err := b.backend.NewSurface(b.width, b.cfg.Height)
	if err != nil {
		return &hook.InitError{Hook: b.Name(), Err: err}
	}
	if err := surface.RegisterFont(b.cfg.Style.Font()); err != nil {
		surface.Close()
		return &hook.InitError{Hook: b.Name(), Err: err}
	}
	b.surface = surface
	b.phase = ready
	b.recompute(h, h.FocusedTag())
	b.redraw()
	return nil
}

func (b *Bar) WorkspaceChange(h wm.Handle, prev, next string) {
	if b.phase != ready {
		return
	}
	b.recompute(h, next)
	b.redraw()
}

func (b *Bar) ClientsChanged(h wm.Handle) {
	if b.phase != ready {
		return
	}
	b.recompute(h, h.FocusedTag())
	b.redraw()
}

func (b *Bar) EventHandled(wm.Handle) {
	if b.phase != ready {
		return
	}
	if b.surface.Damaged() {
		b.redraw()
	}
}

func (b *Bar) Teardown() {
	if b.phase == terminated {
		return
	}
	if b.surface != nil {
		if err := b.surface.Close(); err != nil {
			b.log.Warn("bar surface close failed", "err", err)
		}
		b.surface = nil
	}
	b.phase = terminated
}

// Segments returns the tags in display order with their current state.
func (b *Bar) Segments() []Segment {
	segs := make([]Segment, len(b.cfg.Tags))
	for i, t := range b.cfg.Tags {
		segs[i] = Segment{Tag: t, State: b.stateOf(i)}
	}
	return segs
}

func (b *Bar) stateOf(i int) SegmentState {
	switch {
	case i == b.focused:
		return Focused
	case b.occupied[i]:
		return Occupied
	}
	return Empty
}

func (b *Bar) recompute(h wm.Handle, focusedTag string) {
	b.focused = -1
	for i, t := range b.cfg.Tags {
		if t == focusedTag {
			b.focused = i
		}
		b.occupied[i] = len(h.Clients(t)) != 0
	}
}

// redraw paints the whole strip left to right and flushes it. A segment
// that fails to draw is logged and skipped.
func (b *Bar) redraw() {
	s := b.surface
	if bg, ok := b.cfg.Style.Background(); ok {
		s.SetColor(bg)
		s.Rect(0, 0, float64(b.width), float64(b.cfg.Height))
	}

	x := 0.0
	for i, tag := range b.cfg.Tags {
		w, err := b.drawSegment(tag, b.stateOf(i))
		if err != nil {
			b.log.Warn("bar segment skipped", "tag", tag, "err", err)
		}
		s.Translate(w, 0)
		x += w
	}
	s.Translate(-x, 0)
	if err := s.Flush(); err != nil {
		b.log.Warn("bar flush failed", "err", err)
	}
}

// drawSegment draws one tag at the current origin and returns how far to
// advance. Nothing is advanced if the text cannot be measured.
func (b *Bar) drawSegment(tag string, state SegmentState) (float64, error) {
	s := b.surface
	st := b.cfg.Style
	pad := st.Padding()
	if err := s.SelectFont(st.Font(), st.Size()); err != nil {
		return 0, err
	}
	tw, _, err := s.TextExtent(tag)
	if err != nil {
		return 0, err
	}
	w := tw + 2*pad.H

	fg := st.Foreground()
	bg, hasBG := st.Background()
	switch state {
	case Focused:
		bg, hasBG = b.cfg.Highlight, true
	case Empty:
		fg = b.cfg.Empty
	}
	if hasBG {
		s.SetColor(bg)
		s.Rect(0, 0, w, float64(b.cfg.Height))
	}
	s.SetColor(fg)
	if _, err := s.Text(tag, pad.H, pad.V); err != nil {
		return w, err
	}
	return w, nil
}
