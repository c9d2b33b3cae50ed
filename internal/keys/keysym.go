// Package keys translates platform key events into X11 keysyms for the RFB
// KeyEvent message, including dead-key composition and legacy keysym shims.
package keys

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Keysym is an X11 key symbol as carried by RFB KeyEvent messages.
type Keysym uint32

// NoSymbol means the key has no mapping and nothing may be sent.
const NoSymbol Keysym = 0

// unicodeBase is added to a code point to form a Unicode keysym.
const unicodeBase Keysym = 0x01000000

// Function and modifier keysyms.
const (
	Space      Keysym = 0x0020
	BackSpace  Keysym = 0xff08
	Tab        Keysym = 0xff09
	Return     Keysym = 0xff0d
	Pause      Keysym = 0xff13
	ScrollLock Keysym = 0xff14
	SysReq     Keysym = 0xff15
	Escape     Keysym = 0xff1b
	Home       Keysym = 0xff50
	Left       Keysym = 0xff51
	Up         Keysym = 0xff52
	Right      Keysym = 0xff53
	Down       Keysym = 0xff54
	PageUp     Keysym = 0xff55
	PageDown   Keysym = 0xff56
	End        Keysym = 0xff57
	Print      Keysym = 0xff61
	Insert     Keysym = 0xff63
	Menu       Keysym = 0xff67
	Break      Keysym = 0xff6b
	NumLock    Keysym = 0xff7f
	KPEnter    Keysym = 0xff8d
	KPMultiply Keysym = 0xffaa
	KPAdd      Keysym = 0xffab
	KPSep      Keysym = 0xffac
	KPSubtract Keysym = 0xffad
	KPDecimal  Keysym = 0xffae
	KPDivide   Keysym = 0xffaf
	KP0        Keysym = 0xffb0
	KPEqual    Keysym = 0xffbd
	F1         Keysym = 0xffbe
	ShiftL     Keysym = 0xffe1
	ShiftR     Keysym = 0xffe2
	ControlL   Keysym = 0xffe3
	ControlR   Keysym = 0xffe4
	CapsLock   Keysym = 0xffe5
	MetaL      Keysym = 0xffe7
	MetaR      Keysym = 0xffe8
	AltL       Keysym = 0xffe9
	AltR       Keysym = 0xffea
	SuperL     Keysym = 0xffeb
	SuperR     Keysym = 0xffec
	Delete     Keysym = 0xffff
)

// String formats the keysym as its name when known, else hex.
func (k Keysym) String() string {
	if n, ok := symNames[k]; ok {
		return n
	}
	return fmt.Sprintf("0x%x", uint32(k))
}

// IsLegacyRange reports whether k lies in the pre-Unicode keysym range where
// servers ignore the current Shift state.
func (k Keysym) IsLegacyRange() bool {
	return k >= 0x100 && k <= 0xfffe
}

var nameSyms = map[string]Keysym{
	"space":       Space,
	"BackSpace":   BackSpace,
	"Tab":         Tab,
	"Return":      Return,
	"Pause":       Pause,
	"Scroll_Lock": ScrollLock,
	"Sys_Req":     SysReq,
	"Escape":      Escape,
	"Home":        Home,
	"Left":        Left,
	"Up":          Up,
	"Right":       Right,
	"Down":        Down,
	"Page_Up":     PageUp,
	"Page_Down":   PageDown,
	"End":         End,
	"Print":       Print,
	"Insert":      Insert,
	"Menu":        Menu,
	"Break":       Break,
	"Num_Lock":    NumLock,
	"KP_Enter":    KPEnter,
	"Shift_L":     ShiftL,
	"Shift_R":     ShiftR,
	"Control_L":   ControlL,
	"Control_R":   ControlR,
	"Caps_Lock":   CapsLock,
	"Meta_L":      MetaL,
	"Meta_R":      MetaR,
	"Alt_L":       AltL,
	"Alt_R":       AltR,
	"Super_L":     SuperL,
	"Super_R":     SuperR,
	"Delete":      Delete,
}

var symNames = map[Keysym]string{}

func init() {
	for i := 0; i < 12; i++ {
		nameSyms[fmt.Sprintf("F%d", i+1)] = F1 + Keysym(i)
	}
	for n, k := range nameSyms {
		symNames[k] = n
	}
}

// ParseName resolves an X11 keysym name ("Menu", "F5", "Page_Up"), a single
// character ("a"), or a hex literal ("0xff67").
func ParseName(s string) (Keysym, bool) {
	if k, ok := nameSyms[s]; ok {
		return k, true
	}
	if strings.HasPrefix(s, "0x") {
		var v uint32
		if _, err := fmt.Sscanf(s, "0x%x", &v); err == nil && v != 0 {
			return Keysym(v), true
		}
		return NoSymbol, false
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if k := unicodeKeysym(r); k != NoSymbol {
			return k, true
		}
	}
	return NoSymbol, false
}

// unicodeKeysym maps a code point without legacy substitution: Latin-1
// directly, control characters to their function keys, everything else to
// the Unicode keysym range.
func unicodeKeysym(r rune) Keysym {
	switch {
	case r == '\r' || r == '\n':
		return Return
	case r == '\t':
		return Tab
	case r == '\b':
		return BackSpace
	case r == 0x1b:
		return Escape
	case r == 0x7f:
		return Delete
	case r < 0x20, r >= 0x80 && r < 0xa0:
		return NoSymbol
	case r < 0x100:
		return Keysym(r)
	case !utf8.ValidRune(r):
		return NoSymbol
	default:
		return unicodeBase + Keysym(r)
	}
}
