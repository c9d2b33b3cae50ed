// Package keys translates platform key events into X11 keysyms for the RFB
// KeyEvent message, including dead-key composition and legacy keysym shims.
package keys

// Platform (Android) keycodes used by the translator.
const (
	Keycode0           int32 = 7
	KeycodeA           int32 = 29
	KeycodeAltLeft     int32 = 57
	KeycodeAltRight    int32 = 58
	KeycodeShiftLeft   int32 = 59
	KeycodeShiftRight  int32 = 60
	KeycodeTab         int32 = 61
	KeycodeSpace       int32 = 62
	KeycodeEnter       int32 = 66
	KeycodeDel         int32 = 67
	KeycodeMenu        int32 = 82
	KeycodePageUp      int32 = 92
	KeycodePageDown    int32 = 93
	KeycodeEscape      int32 = 111
	KeycodeForwardDel  int32 = 112
	KeycodeCtrlLeft    int32 = 113
	KeycodeCtrlRight   int32 = 114
	KeycodeCapsLock    int32 = 115
	KeycodeScrollLock  int32 = 116
	KeycodeMetaLeft    int32 = 117
	KeycodeMetaRight   int32 = 118
	KeycodeSysRq       int32 = 120
	KeycodeBreak       int32 = 121
	KeycodeMoveHome    int32 = 122
	KeycodeMoveEnd     int32 = 123
	KeycodeInsert      int32 = 124
	KeycodeF1          int32 = 131
	KeycodeNumLock     int32 = 143
	KeycodeNumpad0     int32 = 144
	KeycodeNumpadEnter int32 = 160
)

// Platform meta-state bits for the modifiers that turn a key into a shortcut.
const (
	MetaAltOn  int32 = 0x02
	MetaCtrlOn int32 = 0x1000
	MetaMetaOn int32 = 0x10000
)

// metaShortcut masks the modifiers whose chords are sent by keycode.
const metaShortcut = MetaAltOn | MetaCtrlOn | MetaMetaOn

var keycodeSyms = map[int32]Keysym{
	19:                 Up,
	20:                 Down,
	21:                 Left,
	22:                 Right,
	KeycodeAltLeft:     AltL,
	KeycodeAltRight:    AltR,
	KeycodeShiftLeft:   ShiftL,
	KeycodeShiftRight:  ShiftR,
	KeycodeTab:         Tab,
	KeycodeSpace:       Space,
	KeycodeEnter:       Return,
	KeycodeDel:         BackSpace,
	KeycodeMenu:        Menu,
	KeycodePageUp:      PageUp,
	KeycodePageDown:    PageDown,
	KeycodeEscape:      Escape,
	KeycodeForwardDel:  Delete,
	KeycodeCtrlLeft:    ControlL,
	KeycodeCtrlRight:   ControlR,
	KeycodeCapsLock:    CapsLock,
	KeycodeScrollLock:  ScrollLock,
	KeycodeMetaLeft:    SuperL,
	KeycodeMetaRight:   SuperR,
	KeycodeSysRq:       Print,
	KeycodeBreak:       Pause,
	KeycodeMoveHome:    Home,
	KeycodeMoveEnd:     End,
	KeycodeInsert:      Insert,
	KeycodeNumLock:     NumLock,
	154:                KPDivide,
	155:                KPMultiply,
	156:                KPSubtract,
	157:                KPAdd,
	158:                KPDecimal,
	159:                KPSep,
	KeycodeNumpadEnter: KPEnter,
	161:                KPEqual,
}

func init() {
	for i := int32(0); i < 26; i++ {
		keycodeSyms[KeycodeA+i] = Keysym('a' + i)
	}
	for i := int32(0); i < 10; i++ {
		keycodeSyms[Keycode0+i] = Keysym('0' + i)
		keycodeSyms[KeycodeNumpad0+i] = KP0 + Keysym(i)
	}
	for i := int32(0); i < 12; i++ {
		keycodeSyms[KeycodeF1+i] = F1 + Keysym(i)
	}
}

// keycodeKeysym maps a keycode through the fixed table.
func keycodeKeysym(code int32) (Keysym, bool) {
	k, ok := keycodeSyms[code]
	return k, ok
}

// alwaysByKeycode reports keys whose Unicode value servers mishandle, so
// they are always translated by keycode.
func alwaysByKeycode(code int32) bool {
	switch code {
	case KeycodeEnter, KeycodeTab, KeycodeSpace, KeycodeNumpadEnter:
		return true
	}
	return false
}
