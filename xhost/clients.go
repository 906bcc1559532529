package xhost

import (
	"slices"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/tagwm/wm"
)

// offscreenXY is the most negative X/Y co-ordinate. Windows on hidden tags
// are moved there instead of being unmapped.
const offscreenXY = -1 << 15

type window struct {
	xWin           xp.Window
	rect           xp.Rectangle
	seen           bool
	wmDeleteWindow bool
	wmTakeFocus    bool
}

// placements returns where each visible client goes. Clients missing from
// the result are hidden. A fullscreen client covers the whole screen and
// hides the rest of its tag.
func placements(st *wm.State, area, full wm.Rect) map[wm.ClientID]wm.Rect {
	clients := st.Clients(st.FocusedTag())
	out := make(map[wm.ClientID]wm.Rect, len(clients))
	if id, ok := st.Fullscreen(); ok && slices.Contains(clients, id) {
		out[id] = full
		return out
	}
	rects := wm.Arrange(st.Layout(), area, len(clients), st.MainCount(), st.MainRatio())
	for i, id := range clients {
		out[id] = rects[i]
	}
	return out
}

// tileArea is the first screen less the bar.
func (s *Session) tileArea() wm.Rect {
	r := s.screens[0]
	h := min(s.barHeight, r.H-1)
	r.Y += h
	r.H -= h
	return r
}

func (s *Session) manage(xWin xp.Window, mapRequest bool) {
	id := wm.ClientID(xWin)
	if _, ok := s.windows[id]; !ok {
		w := &window{
			xWin: xWin,
			rect: xp.Rectangle{X: offscreenXY, Y: offscreenXY, Width: 1, Height: 1},
		}
		if prop, err := xp.GetProperty(s.conn, false, xWin, s.atomWMProtocols,
			xp.GetPropertyTypeAny, 0, 64).Reply(); err != nil {
			s.log.Warn("read WM_PROTOCOLS", "window", uint32(xWin), "err", err)
		} else {
			for v := prop.Value; len(v) >= 4; v = v[4:] {
				switch xp.Atom(u32(v)) {
				case s.atomWMDeleteWindow:
					w.wmDeleteWindow = true
				case s.atomWMTakeFocus:
					w.wmTakeFocus = true
				}
			}
		}
		s.check(xp.ChangeWindowAttributesChecked(s.conn, xWin, xp.CwEventMask,
			[]uint32{xp.EventMaskEnterWindow | xp.EventMaskStructureNotify},
		))
		s.windows[id] = w
		s.state.Add(id)
		s.log.Debug("managed window", "window", uint32(xWin))
	}
	if mapRequest {
		s.check(xp.MapWindowChecked(s.conn, xWin))
	}
}

func (s *Session) unmanage(xWin xp.Window) {
	id := wm.ClientID(xWin)
	if _, ok := s.windows[id]; !ok {
		return
	}
	delete(s.windows, id)
	if s.focused == xWin {
		s.focused = 0
	}
	s.state.Remove(id)
	s.log.Debug("unmanaged window", "window", uint32(xWin))
}

// manageExisting adopts windows that were mapped before we started.
func (s *Session) manageExisting() error {
	tree, err := xp.QueryTree(s.conn, s.root).Reply()
	if err != nil {
		return err
	}
	for _, c := range tree.Children {
		if _, ok := s.surfaces[c]; ok {
			continue
		}
		attrs, err := xp.GetWindowAttributes(s.conn, c).Reply()
		if err != nil {
			continue
		}
		if attrs.OverrideRedirect || attrs.MapState == xp.MapStateUnmapped {
			continue
		}
		s.manage(c, false)
	}
	return nil
}

// kill asks the client to close if it supports WM_DELETE_WINDOW, and
// disconnects it otherwise.
func (s *Session) kill(id wm.ClientID) error {
	w, ok := s.windows[id]
	if !ok {
		return wm.ErrNoFocusedClient
	}
	if w.wmDeleteWindow {
		s.sendClientMessage(w.xWin, s.atomWMDeleteWindow)
		return nil
	}
	s.check(xp.KillClientChecked(s.conn, uint32(w.xWin)))
	return nil
}

// apply moves every window to where the state says it should be and gives
// the focused client the input focus.
func (s *Session) apply() {
	placed := placements(s.state, s.tileArea(), s.screens[0])
	for id, w := range s.windows {
		r, ok := placed[id]
		w.configure(s, r, ok)
	}
	if id, ok := s.state.Fullscreen(); ok {
		if w := s.windows[id]; w != nil {
			s.check(xp.ConfigureWindowChecked(s.conn, w.xWin, xp.ConfigWindowStackMode,
				[]uint32{xp.StackModeAbove}))
		}
	}
	var xWin xp.Window
	if id, ok := s.state.FocusedClient(); ok {
		xWin = xp.Window(id)
	}
	if xWin != s.focused {
		s.focus(s.windows[wm.ClientID(xWin)])
		s.focused = xWin
	}
}

func (s *Session) focus(w *window) {
	if w == nil {
		s.check(xp.SetInputFocusChecked(s.conn, xp.InputFocusPointerRoot, s.root, s.eventTime))
		return
	}
	if w.wmTakeFocus {
		s.sendClientMessage(w.xWin, s.atomWMTakeFocus)
		return
	}
	s.check(xp.SetInputFocusChecked(s.conn, xp.InputFocusParent, w.xWin, s.eventTime))
}

func (w *window) configure(s *Session, target wm.Rect, visible bool) {
	mask, values := uint16(0), []uint32(nil)
	r := xp.Rectangle{X: offscreenXY, Y: offscreenXY, Width: w.rect.Width, Height: w.rect.Height}
	if visible {
		r = xp.Rectangle{
			X:      int16(target.X),
			Y:      int16(target.Y),
			Width:  uint16(max(target.W, 1)),
			Height: uint16(max(target.H, 1)),
		}
	}
	if w.seen && w.rect == r {
		return
	}
	w.rect = r
	if r.X != offscreenXY {
		w.seen = true
		mask = xp.ConfigWindowX |
			xp.ConfigWindowY |
			xp.ConfigWindowWidth |
			xp.ConfigWindowHeight |
			xp.ConfigWindowBorderWidth
		values = []uint32{
			uint32(uint16(r.X)),
			uint32(uint16(r.Y)),
			uint32(r.Width),
			uint32(r.Height),
			0,
		}
	} else {
		mask = xp.ConfigWindowX | xp.ConfigWindowY
		values = []uint32{
			uint32(uint16(r.X)),
			uint32(uint16(r.Y)),
		}
	}
	s.check(xp.ConfigureWindowChecked(s.conn, w.xWin, mask, values))
}

// handleConfigureRequest answers a managed window with its current
// geometry, and passes requests from other windows through.
func (s *Session) handleConfigureRequest(e xp.ConfigureRequestEvent) {
	if w, ok := s.windows[wm.ClientID(e.Window)]; ok {
		cne := xp.ConfigureNotifyEvent{
			Event:  w.xWin,
			Window: w.xWin,
			X:      w.rect.X,
			Y:      w.rect.Y,
			Width:  w.rect.Width,
			Height: w.rect.Height,
		}
		s.check(xp.SendEventChecked(s.conn, false, w.xWin,
			xp.EventMaskStructureNotify, string(cne.Bytes())))
		return
	}
	mask, values := configureValues(e)
	s.check(xp.ConfigureWindowChecked(s.conn, e.Window, mask, values))
}

// configureValues copies the fields e asks for, in the order X expects.
func configureValues(e xp.ConfigureRequestEvent) (mask uint16, values []uint32) {
	for _, f := range []struct {
		bit uint16
		v   uint32
	}{
		{xp.ConfigWindowX, uint32(e.X)},
		{xp.ConfigWindowY, uint32(e.Y)},
		{xp.ConfigWindowWidth, uint32(e.Width)},
		{xp.ConfigWindowHeight, uint32(e.Height)},
		{xp.ConfigWindowBorderWidth, uint32(e.BorderWidth)},
		{xp.ConfigWindowSibling, uint32(e.Sibling)},
		{xp.ConfigWindowStackMode, uint32(e.StackMode)},
	} {
		if e.ValueMask&f.bit != 0 {
			mask |= f.bit
			values = append(values, f.v)
		}
	}
	return mask, values
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<0 | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
