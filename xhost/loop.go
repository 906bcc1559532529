package xhost

import (
	"context"

	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/tagwm/bind"
	"github.com/nigeltao/tagwm/hook"
	"github.com/nigeltao/tagwm/wm"
)

type xEventOrError struct {
	event xgb.Event
	error xgb.Error
}

// Run grabs the keys in t, adopts existing windows, starts hooks and
// processes events until the state stops running or ctx is done. Hooks
// are torn down and the connection is closed before Run returns.
func (s *Session) Run(ctx context.Context, t *bind.Table, d *bind.Dispatcher, hooks ...hook.Hook) error {
	defer s.Close()
	if err := s.grabKeys(t); err != nil {
		return err
	}
	s.hooks = hook.Register(s.state, s.log, hooks...)
	defer s.hooks.Teardown()
	if err := s.manageExisting(); err != nil {
		return err
	}
	s.apply()
	s.logChecks()

	done := make(chan struct{})
	defer close(done)
	eeChan := make(chan xEventOrError)
	go func() {
		for {
			e, err := s.conn.WaitForEvent()
			if e == nil && err == nil {
				close(eeChan)
				return
			}
			select {
			case eeChan <- xEventOrError{e, err}:
			case <-done:
				return
			}
		}
	}()

	s.log.Info("window manager running", "screens", len(s.screens), "bindings", t.Len(), "hooks", s.hooks.Len())
	for s.state.Running() {
		select {
		case <-ctx.Done():
			s.log.Info("window manager stopping", "reason", context.Cause(ctx))
			return nil
		case ee, ok := <-eeChan:
			if !ok {
				s.log.Warn("X connection closed")
				return nil
			}
			if ee.error != nil {
				s.log.Warn("X error", "err", ee.error)
				continue
			}
			s.handle(ee.event, t, d)
		}
		s.apply()
		s.logChecks()
		s.hooks.EventHandled(s.state)
	}
	s.log.Info("window manager exiting")
	return nil
}

func (s *Session) logChecks() {
	if err := s.flushChecks(); err != nil {
		s.log.Warn("X request failed", "err", err)
	}
}

func (s *Session) handle(ev xgb.Event, t *bind.Table, d *bind.Dispatcher) {
	switch e := ev.(type) {
	case xp.ConfigureRequestEvent:
		s.handleConfigureRequest(e)
	case xp.DestroyNotifyEvent:
		s.unmanage(e.Window)
	case xp.EnterNotifyEvent:
		s.eventTime = e.Time
		s.state.Focus(wm.ClientID(e.Event))
	case xp.ExposeEvent:
		if sf := s.surfaces[e.Window]; sf != nil && e.Count == 0 {
			sf.damaged = true
		}
	case xp.KeyPressEvent:
		s.eventTime = e.Time
		s.handleKeyPress(e, t, d)
	case xp.KeyReleaseEvent:
		s.eventTime = e.Time
	case xp.MappingNotifyEvent:
		if e.Request != xp.MappingKeyboard {
			return
		}
		if err := s.initKeyboardMapping(); err != nil {
			s.log.Warn("keyboard mapping", "err", err)
			return
		}
		if err := s.grabKeys(t); err != nil {
			s.log.Warn("regrab keys", "err", err)
		}
	case xp.MapRequestEvent:
		s.manage(e.Window, true)
	case xp.UnmapNotifyEvent:
		// Hidden windows are moved, not unmapped, so this is the client
		// withdrawing itself.
		s.unmanage(e.Window)
	case xp.ClientMessageEvent, xp.ConfigureNotifyEvent, xp.CreateNotifyEvent,
		xp.MapNotifyEvent:
		// No-op.
	default:
		s.log.Debug("unhandled event", "event", ev.String())
	}
}
