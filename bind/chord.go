package bind

import "strings"

// Modifier is a set of held modifier keys. The values match the X11
// modifier mask bits, so a KeyPress state can be masked directly.
type Modifier uint16

const (
	ModShift   Modifier = 1 << 0
	ModLock    Modifier = 1 << 1
	ModControl Modifier = 1 << 2
	ModAlt     Modifier = 1 << 3 // Mod1
	ModNumLock Modifier = 1 << 4 // Mod2
	ModSuper   Modifier = 1 << 6 // Mod4

	// ChordMods are the modifiers that distinguish chords. Lock and
	// NumLock are ignored when matching.
	ChordMods = ModShift | ModControl | ModAlt | ModSuper
)

// modPrefixes is in canonical String order.
var modPrefixes = []struct {
	prefix byte
	mod    Modifier
}{
	{'M', ModSuper},
	{'A', ModAlt},
	{'C', ModControl},
	{'S', ModShift},
}

// Chord is a key pressed while holding a set of modifiers. Key is always
// the unshifted keysym: "M-S-j" is Super+Shift with the 'j' keysym.
type Chord struct {
	Mods Modifier
	Key  Keysym
}

// ParseChord parses an Emacs-style chord such as "M-S-j" or
// "M-A-C-Escape". Modifier prefixes are M (Super), A (Alt), C (Control)
// and S (Shift), in any order. The key is a single printable character or
// an X keysym name. A single uppercase letter means that letter with
// Shift.
func ParseChord(pattern string) (Chord, error) {
	fail := func(reason string) (Chord, error) {
		return Chord{}, &MalformedChordError{Index: -1, Pattern: pattern, Reason: reason}
	}
	if pattern == "" {
		return fail("empty chord")
	}
	var c Chord
	rest := pattern
	for len(rest) > 2 && rest[1] == '-' {
		m, ok := modifierFor(rest[0])
		if !ok {
			return fail("unknown modifier " + rest[:1])
		}
		if c.Mods&m != 0 {
			return fail("duplicate modifier " + rest[:1])
		}
		c.Mods |= m
		rest = rest[2:]
	}
	sym, ok := LookupKeysym(rest)
	if !ok {
		return fail("unknown key " + rest)
	}
	if 'A' <= sym && sym <= 'Z' {
		sym += 'a' - 'A'
		c.Mods |= ModShift
	}
	c.Key = sym
	return c, nil
}

func modifierFor(b byte) (Modifier, bool) {
	for _, p := range modPrefixes {
		if p.prefix == b {
			return p.mod, true
		}
	}
	return 0, false
}

// String returns the canonical form: modifiers in M-A-C-S order, then the
// key name.
func (c Chord) String() string {
	var b strings.Builder
	for _, p := range modPrefixes {
		if c.Mods&p.mod != 0 {
			b.WriteByte(p.prefix)
			b.WriteByte('-')
		}
	}
	b.WriteString(c.Key.String())
	return b.String()
}

// Normalize drops modifiers that do not take part in matching, such as
// Caps Lock and Num Lock.
func (c Chord) Normalize() Chord {
	c.Mods &= ChordMods
	return c
}
