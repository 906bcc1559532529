package bind

import "strconv"

// These constants come from /usr/include/X11/keysymdef.h and
// /usr/include/X11/XF86keysym.h.

// Keysym is an X11 keysym.
type Keysym uint32

const (
	XKISOLeftTab = 0xfe20
	XKBackspace  = 0xff08
	XKTab        = 0xff09
	XKReturn     = 0xff0d
	XKPause      = 0xff13
	XKScrollLock = 0xff14
	XKEscape     = 0xff1b
	XKHome       = 0xff50
	XKLeft       = 0xff51
	XKUp         = 0xff52
	XKRight      = 0xff53
	XKDown       = 0xff54
	XKPageUp     = 0xff55
	XKPageDown   = 0xff56
	XKEnd        = 0xff57
	XKPrint      = 0xff61
	XKInsert     = 0xff63
	XKMenu       = 0xff67
	XKF1         = 0xffbe
	XKShiftL     = 0xffe1
	XKShiftR     = 0xffe2
	XKControlL   = 0xffe3
	XKControlR   = 0xffe4
	XKCapsLock   = 0xffe5
	XKShiftLock  = 0xffe6
	XKMetaL      = 0xffe7
	XKMetaR      = 0xffe8
	XKAltL       = 0xffe9
	XKAltR       = 0xffea
	XKSuperL     = 0xffeb
	XKSuperR     = 0xffec
	XKHyperL     = 0xffed
	XKHyperR     = 0xffee
	XKDelete     = 0xffff

	XKAudioLowerVolume  = 0x1008ff11
	XKAudioMute         = 0x1008ff12
	XKAudioRaiseVolume  = 0x1008ff13
	XKAudioPlay         = 0x1008ff14
	XKAudioStop         = 0x1008ff15
	XKAudioPrev         = 0x1008ff16
	XKAudioNext         = 0x1008ff17
	XKMonBrightnessUp   = 0x1008ff02
	XKMonBrightnessDown = 0x1008ff03
)

// keysymNames maps X keysym names to keysyms. When several names share a
// keysym, the first one listed is the canonical name used by String.
// Letters and digits are handled separately.
var keysymNames = []struct {
	name string
	sym  Keysym
}{
	{"space", ' '},
	{"exclam", '!'},
	{"quotedbl", '"'},
	{"numbersign", '#'},
	{"dollar", '$'},
	{"percent", '%'},
	{"ampersand", '&'},
	{"apostrophe", '\''},
	{"parenleft", '('},
	{"parenright", ')'},
	{"asterisk", '*'},
	{"plus", '+'},
	{"comma", ','},
	{"minus", '-'},
	{"period", '.'},
	{"slash", '/'},
	{"colon", ':'},
	{"semicolon", ';'},
	{"less", '<'},
	{"equal", '='},
	{"greater", '>'},
	{"question", '?'},
	{"at", '@'},
	{"bracketleft", '['},
	{"backslash", '\\'},
	{"bracketright", ']'},
	{"asciicircum", '^'},
	{"underscore", '_'},
	{"grave", '`'},
	{"braceleft", '{'},
	{"bar", '|'},
	{"braceright", '}'},
	{"asciitilde", '~'},

	{"ISO_Left_Tab", XKISOLeftTab},
	{"BackSpace", XKBackspace},
	{"Tab", XKTab},
	{"Return", XKReturn},
	{"Pause", XKPause},
	{"Scroll_Lock", XKScrollLock},
	{"Escape", XKEscape},
	{"Home", XKHome},
	{"Left", XKLeft},
	{"Up", XKUp},
	{"Right", XKRight},
	{"Down", XKDown},
	{"Prior", XKPageUp},
	{"Page_Up", XKPageUp},
	{"Next", XKPageDown},
	{"Page_Down", XKPageDown},
	{"End", XKEnd},
	{"Print", XKPrint},
	{"Insert", XKInsert},
	{"Menu", XKMenu},
	{"Delete", XKDelete},

	{"Shift_L", XKShiftL},
	{"Shift_R", XKShiftR},
	{"Control_L", XKControlL},
	{"Control_R", XKControlR},
	{"Caps_Lock", XKCapsLock},
	{"Shift_Lock", XKShiftLock},
	{"Meta_L", XKMetaL},
	{"Meta_R", XKMetaR},
	{"Alt_L", XKAltL},
	{"Alt_R", XKAltR},
	{"Super_L", XKSuperL},
	{"Super_R", XKSuperR},
	{"Hyper_L", XKHyperL},
	{"Hyper_R", XKHyperR},

	{"XF86AudioLowerVolume", XKAudioLowerVolume},
	{"XF86AudioMute", XKAudioMute},
	{"XF86AudioRaiseVolume", XKAudioRaiseVolume},
	{"XF86AudioPlay", XKAudioPlay},
	{"XF86AudioStop", XKAudioStop},
	{"XF86AudioPrev", XKAudioPrev},
	{"XF86AudioNext", XKAudioNext},
	{"XF86MonBrightnessUp", XKMonBrightnessUp},
	{"XF86MonBrightnessDown", XKMonBrightnessDown},
}

var (
	symByName = map[string]Keysym{}
	nameBySym = map[Keysym]string{}
)

func init() {
	for _, n := range keysymNames {
		symByName[n.name] = n.sym
		if _, ok := nameBySym[n.sym]; !ok {
			nameBySym[n.sym] = n.name
		}
	}
	for i := 0; i < 35; i++ {
		name := "F" + strconv.Itoa(i+1)
		sym := Keysym(XKF1 + i)
		symByName[name] = sym
		nameBySym[sym] = name
	}
}

// LookupKeysym returns the keysym for a key name. A name is a single
// printable ASCII character or an X keysym name such as "Return".
func LookupKeysym(name string) (Keysym, bool) {
	if len(name) == 1 && name[0] > ' ' && name[0] < 0x7f {
		return Keysym(name[0]), true
	}
	sym, ok := symByName[name]
	return sym, ok
}

// String returns the keysym name, or a single character for letters and
// digits.
func (k Keysym) String() string {
	if ('a' <= k && k <= 'z') || ('A' <= k && k <= 'Z') || ('0' <= k && k <= '9') {
		return string(rune(k))
	}
	if name, ok := nameBySym[k]; ok {
		return name
	}
	return "0x" + strconv.FormatUint(uint64(k), 16)
}
