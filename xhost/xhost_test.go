package xhost

import (
	"bytes"
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/tagwm/bind"
	"github.com/nigeltao/tagwm/wm"
)

// A two-level keyboard: keycode 10 is 1/!, 44 is j/J, 36 is Return.
func testKeymap(t *testing.T) keymap {
	t.Helper()
	const per = 4
	syms := make([]xp.Keysym, (keyHi-keyLo+1)*per)
	set := func(code int, lo, hi bind.Keysym) {
		syms[(code-keyLo)*per+0] = xp.Keysym(lo)
		syms[(code-keyLo)*per+1] = xp.Keysym(hi)
	}
	set(10, '1', '!')
	set(44, 'j', 'J')
	set(36, bind.XKReturn, bind.XKReturn)
	k, err := newKeymap(keyLo, per, syms)
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func TestNewKeymapRejectsNarrowMapping(t *testing.T) {
	if _, err := newKeymap(keyLo, 1, make([]xp.Keysym, 248)); err == nil {
		t.Fatal("expected error for one keysym per keycode")
	}
}

func TestKeycodeLookup(t *testing.T) {
	k := testKeymap(t)
	cases := []struct {
		sym   bind.Keysym
		code  xp.Keycode
		shift bool
		ok    bool
	}{
		{'1', 10, false, true},
		{'!', 10, true, true},
		{'j', 44, false, true},
		{bind.XKReturn, 36, false, true},
		{'z', 0, false, false},
	}
	for _, tc := range cases {
		code, shift, ok := k.keycode(tc.sym)
		if code != tc.code || shift != tc.shift || ok != tc.ok {
			t.Errorf("keycode(%v) = %d, %v, %v; want %d, %v, %v",
				tc.sym, code, shift, ok, tc.code, tc.shift, tc.ok)
		}
	}
}

func TestChordsFromKeyPress(t *testing.T) {
	k := testKeymap(t)
	super := uint16(xp.ModMask4)
	lock := uint16(xp.ModMaskLock | xp.ModMask2)

	p, _, hasShifted := k.chords(44, super|lock)
	if got := p.String(); got != "M-j" || hasShifted {
		t.Fatalf("M-j with locks = %s, %v", got, hasShifted)
	}

	p, s, hasShifted := k.chords(10, super|xp.ModMaskShift)
	if p.String() != "M-S-1" || !hasShifted || s.String() != "M-exclam" {
		t.Fatalf("M-S-1 = %s, %s, %v", p, s, hasShifted)
	}
	want, err := bind.ParseChord("M-S-1")
	if err != nil {
		t.Fatal(err)
	}
	if p != want {
		t.Fatalf("chord %v does not match parsed binding %v", p, want)
	}
}

func TestModifierMasksMatchX(t *testing.T) {
	pairs := []struct {
		m bind.Modifier
		x uint16
	}{
		{bind.ModShift, xp.ModMaskShift},
		{bind.ModLock, xp.ModMaskLock},
		{bind.ModControl, xp.ModMaskControl},
		{bind.ModAlt, xp.ModMask1},
		{bind.ModNumLock, xp.ModMask2},
		{bind.ModSuper, xp.ModMask4},
	}
	for _, p := range pairs {
		if uint16(p.m) != p.x {
			t.Errorf("%v = %#x, X mask is %#x", p.m, uint16(p.m), p.x)
		}
	}
}

func TestPlacements(t *testing.T) {
	st, err := wm.NewState(wm.Options{Tags: []string{"1", "2"}})
	if err != nil {
		t.Fatal(err)
	}
	full := wm.Rect{W: 1000, H: 618}
	area := wm.Rect{Y: 18, W: 1000, H: 600}
	st.Add(1)
	st.Add(2)
	if err := st.FocusTag("2"); err != nil {
		t.Fatal(err)
	}
	st.Add(3)

	got := placements(st, area, full)
	if len(got) != 1 || got[3] != area {
		t.Fatalf("tag 2 placements = %v", got)
	}

	if err := st.FocusTag("1"); err != nil {
		t.Fatal(err)
	}
	got = placements(st, area, full)
	if len(got) != 2 {
		t.Fatalf("tag 1 placements = %v", got)
	}
	if got[1].X != 0 || got[1].W != 600 || got[2].X != 600 || got[2].W != 400 {
		t.Fatalf("main-stack split = %v", got)
	}
	if got[1].Y != 18 || got[1].H != 600 {
		t.Fatalf("bar area not reserved: %v", got[1])
	}

	if err := st.ToggleFullscreen(); err != nil {
		t.Fatal(err)
	}
	got = placements(st, area, full)
	if len(got) != 1 || got[2] != full {
		t.Fatalf("fullscreen placements = %v", got)
	}
}

func TestConfigureValues(t *testing.T) {
	e := xp.ConfigureRequestEvent{
		ValueMask:   xp.ConfigWindowY | xp.ConfigWindowWidth | xp.ConfigWindowStackMode,
		X:           5,
		Y:           7,
		Width:       300,
		StackMode:   xp.StackModeAbove,
		BorderWidth: 9,
	}
	mask, values := configureValues(e)
	if mask != e.ValueMask {
		t.Fatalf("mask = %#x, want %#x", mask, e.ValueMask)
	}
	want := []uint32{7, 300, xp.StackModeAbove}
	if len(values) != len(want) {
		t.Fatalf("values = %v, want %v", values, want)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("values = %v, want %v", values, want)
		}
	}
}

func TestXLFDPattern(t *testing.T) {
	cases := map[string]string{
		"mono":          "fixed",
		"-misc-fixed-*": "-misc-fixed-*",
		"Terminus":      "-*-terminus-medium-r-*-*-*-110-*-*-*-*-iso10646-1",
	}
	for name, want := range cases {
		if got := xlfdPattern(name, 11); got != want {
			t.Errorf("xlfdPattern(%q) = %q, want %q", name, got, want)
		}
	}
	if got := xlfdPattern("Terminus", 0); got != "-*-terminus-medium-r-*-*-*-*-*-*-*-*-iso10646-1" {
		t.Errorf("any size pattern = %q", got)
	}
}

func TestEncodeText8(t *testing.T) {
	if got := encodeText8("ab"); !bytes.Equal(got, []byte{2, 0, 'a', 'b'}) {
		t.Fatalf("encodeText8 = %v", got)
	}
	long := bytes.Repeat([]byte{'x'}, 300)
	got := encodeText8(string(long))
	if len(got) != 304 || got[0] != 254 || got[256] != 46 {
		t.Fatalf("long text split wrong: len %d, items %d and %d", len(got), got[0], got[256])
	}
}

func TestU32(t *testing.T) {
	if got := u32([]byte{0x78, 0x56, 0x34, 0x12}); got != 0x12345678 {
		t.Fatalf("u32 = %#x", got)
	}
}
