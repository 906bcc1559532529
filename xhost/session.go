// Package xhost runs the window manager on an X11 display. It owns the
// connection and the event loop, keeps a wm.State in step with the
// windows on screen, and provides a canvas.Backend that draws with core X
// fonts.
package xhost

import (
	"context"
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"
	"pkt.systems/pslog"

	"github.com/nigeltao/tagwm/canvas"
	"github.com/nigeltao/tagwm/hook"
	"github.com/nigeltao/tagwm/wm"
)

// ErrAnotherWM is returned by Open when the display already has a window
// manager.
var ErrAnotherWM = errors.New("xhost: could not become the window manager; is another window manager running?")

// Options configure a Session.
type Options struct {
	// Display is the X display name. Empty means $DISPLAY.
	Display string
	State   wm.Options
	// BarHeight is kept free at the top of the first screen.
	BarHeight int
	Log       pslog.Logger
}

type checker interface {
	Check() error
}

// Session is a connection to an X server on which this process is the
// window manager.
type Session struct {
	conn   *xgb.Conn
	root   xp.Window
	screen xp.ScreenInfo
	log    pslog.Logger

	atomWMDeleteWindow xp.Atom
	atomWMProtocols    xp.Atom
	atomWMTakeFocus    xp.Atom

	keys      keymap
	screens   []wm.Rect
	barHeight int

	state    *wm.State
	hooks    *hook.Set
	windows  map[wm.ClientID]*window
	surfaces map[xp.Window]*surface
	focused  xp.Window

	checkers  []checker
	eventTime xp.Timestamp
}

// Open connects to the display and becomes its window manager.
func Open(o Options) (*Session, error) {
	log := o.Log
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	conn, err := xgb.NewConnDisplay(o.Display)
	if err != nil {
		return nil, fmt.Errorf("xhost: connect: %w", err)
	}
	s := &Session{
		conn:      conn,
		log:       log,
		barHeight: max(o.BarHeight, 0),
		windows:   map[wm.ClientID]*window{},
		surfaces:  map[xp.Window]*surface{},
	}
	if err := s.init(o); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) init(o Options) error {
	if err := xinerama.Init(s.conn); err != nil {
		return fmt.Errorf("xhost: xinerama: %w", err)
	}
	setup := xp.Setup(s.conn)
	if len(setup.Roots) != 1 {
		return fmt.Errorf("xhost: X setup has unsupported number of roots: %d", len(setup.Roots))
	}
	s.screen = setup.Roots[0]
	s.root = s.screen.Root

	if err := s.becomeTheWM(); err != nil {
		return err
	}
	if err := s.initAtoms(); err != nil {
		return err
	}
	if err := s.initKeyboardMapping(); err != nil {
		return err
	}
	if err := s.initScreens(); err != nil {
		return err
	}

	so := o.State
	so.OnWorkspaceChange = func(prev, next string) {
		if s.hooks != nil {
			s.hooks.WorkspaceChange(s.state, prev, next)
		}
	}
	so.OnClientsChanged = func() {
		if s.hooks != nil {
			s.hooks.ClientsChanged(s.state)
		}
	}
	so.OnKill = s.kill
	state, err := wm.NewState(so)
	if err != nil {
		return err
	}
	s.state = state
	return nil
}

func (s *Session) becomeTheWM() error {
	if err := xp.ChangeWindowAttributesChecked(s.conn, s.root, xp.CwEventMask, []uint32{
		xp.EventMaskSubstructureRedirect |
			xp.EventMaskSubstructureNotify,
	}).Check(); err != nil {
		if _, ok := err.(xp.AccessError); ok {
			return ErrAnotherWM
		}
		return fmt.Errorf("xhost: %w", err)
	}
	return nil
}

func (s *Session) initAtoms() (err error) {
	for _, a := range []struct {
		dst  *xp.Atom
		name string
	}{
		{&s.atomWMDeleteWindow, "WM_DELETE_WINDOW"},
		{&s.atomWMProtocols, "WM_PROTOCOLS"},
		{&s.atomWMTakeFocus, "WM_TAKE_FOCUS"},
	} {
		if *a.dst, err = s.internAtom(a.name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) internAtom(name string) (xp.Atom, error) {
	r, err := xp.InternAtom(s.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("xhost: intern %s: %w", name, err)
	}
	return r.Atom, nil
}

func (s *Session) initScreens() error {
	xine, err := xinerama.QueryScreens(s.conn).Reply()
	if err != nil {
		return fmt.Errorf("xhost: xinerama: %w", err)
	}
	s.screens = s.screens[:0]
	for _, si := range xine.ScreenInfo {
		s.screens = append(s.screens, wm.Rect{
			X: int(si.XOrg), Y: int(si.YOrg),
			W: int(si.Width), H: int(si.Height),
		})
	}
	if len(s.screens) == 0 {
		s.screens = append(s.screens, wm.Rect{
			W: int(s.screen.WidthInPixels),
			H: int(s.screen.HeightInPixels),
		})
	}
	return nil
}

// State returns the window manager state the session keeps.
func (s *Session) State() *wm.State { return s.state }

// Backend returns a canvas.Backend that draws on this display.
func (s *Session) Backend() canvas.Backend { return (*backend)(s) }

// check queues a request whose error is reported after the current event.
func (s *Session) check(c checker) {
	s.checkers = append(s.checkers, c)
}

// flushChecks waits for every queued request and returns their errors.
func (s *Session) flushChecks() error {
	var errs []error
	for i, c := range s.checkers {
		if err := c.Check(); err != nil {
			errs = append(errs, err)
		}
		s.checkers[i] = nil
	}
	s.checkers = s.checkers[:0]
	return errors.Join(errs...)
}

func (s *Session) sendClientMessage(xWin xp.Window, atom xp.Atom) {
	s.check(xp.SendEventChecked(s.conn, false, xWin, xp.EventMaskNoEvent,
		string(xp.ClientMessageEvent{
			Format: 32,
			Window: xWin,
			Type:   s.atomWMProtocols,
			Data: xp.ClientMessageDataUnionData32New([]uint32{
				uint32(atom),
				uint32(s.eventTime),
				0,
				0,
				0,
			}),
		}.Bytes()),
	))
}

// Close closes the connection. Run closes it on return.
func (s *Session) Close() {
	s.conn.Close()
}
