package xhost

import (
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/tagwm/bind"
)

const (
	keyLo = 8
	keyHi = 255
)

// keymap holds the unshifted and shifted keysym of every keycode.
type keymap [256][2]bind.Keysym

// lockMasks are the modifiers that must not stop a binding from firing.
var lockMasks = []bind.Modifier{0, bind.ModLock, bind.ModNumLock, bind.ModLock | bind.ModNumLock}

func newKeymap(first, perKeycode int, syms []xp.Keysym) (keymap, error) {
	var k keymap
	if perKeycode < 2 {
		return k, fmt.Errorf("xhost: too few keysyms per keycode: %d", perKeycode)
	}
	for i := first; i <= keyHi; i++ {
		j := (i - first) * perKeycode
		if j+1 >= len(syms) {
			break
		}
		k[i][0] = bind.Keysym(syms[j+0])
		k[i][1] = bind.Keysym(syms[j+1])
	}
	return k, nil
}

// keycode returns the key that produces sym, and whether Shift is needed.
func (k *keymap) keycode(sym bind.Keysym) (code xp.Keycode, shift, ok bool) {
	for i := keyLo; i <= keyHi; i++ {
		if k[i][0] == sym {
			return xp.Keycode(i), false, true
		}
	}
	for i := keyLo; i <= keyHi; i++ {
		if k[i][1] == sym {
			return xp.Keycode(i), true, true
		}
	}
	return 0, false, false
}

// chords returns what a key press means. The first chord uses the key's
// unshifted keysym, so Shift-1 is S-1. If Shift is held the second chord
// uses the shifted keysym without Shift, so Shift-1 is also "!".
func (k *keymap) chords(code xp.Keycode, state uint16) (primary, shifted bind.Chord, hasShifted bool) {
	mods := bind.Modifier(state) & bind.ChordMods
	primary = bind.Chord{Mods: mods, Key: k[code][0]}
	if mods&bind.ModShift == 0 || k[code][1] == 0 {
		return primary, bind.Chord{}, false
	}
	shifted = bind.Chord{Mods: mods &^ bind.ModShift, Key: k[code][1]}
	return primary, shifted, true
}

func (s *Session) initKeyboardMapping() error {
	km, err := xp.GetKeyboardMapping(s.conn, keyLo, keyHi-keyLo+1).Reply()
	if err != nil {
		return fmt.Errorf("xhost: keyboard mapping: %w", err)
	}
	s.keys, err = newKeymap(keyLo, int(km.KeysymsPerKeycode), km.Keysyms)
	return err
}

// grabKeys grabs every chord in t on the root window, with and without
// Caps Lock and Num Lock. Chords with no key on this keyboard are logged
// and skipped.
func (s *Session) grabKeys(t *bind.Table) error {
	if err := xp.UngrabKeyChecked(s.conn, xp.GrabAny, s.root, xp.ModMaskAny).Check(); err != nil {
		return fmt.Errorf("xhost: ungrab keys: %w", err)
	}
	for _, c := range t.Chords() {
		code, shift, ok := s.keys.keycode(c.Key)
		if !ok {
			s.log.Warn("no key for binding", "chord", c.String())
			continue
		}
		mods := c.Mods
		if shift {
			mods |= bind.ModShift
		}
		for _, lock := range lockMasks {
			s.check(xp.GrabKeyChecked(s.conn, false, s.root, uint16(mods|lock), code,
				xp.GrabModeAsync, xp.GrabModeAsync))
		}
	}
	return s.flushChecks()
}

func (s *Session) handleKeyPress(e xp.KeyPressEvent, t *bind.Table, d *bind.Dispatcher) {
	primary, shifted, hasShifted := s.keys.chords(e.Detail, e.State)
	c := primary
	if _, ok := t.Lookup(primary); !ok && hasShifted {
		c = shifted
	}
	if err := d.Dispatch(c, s.state); err != nil {
		s.log.Warn("key binding failed", "chord", c.String(), "err", err)
	}
}
