// Package keys translates platform key events into X11 keysyms for the RFB
// KeyEvent message, including dead-key composition and legacy keysym shims.
package keys

// CombiningAccent is the flag the platform sets on a key's Unicode value when
// the key is a dead key. The low bits carry the accent character.
const CombiningAccent = 0x80000000

const combiningMask = 0x7fffffff

// accent describes one diacritic: its combining mark (used for
// composition), the spacing keysym sent when the accent is typed literally,
// and the X dead keysym.
type accent struct {
	mark    rune
	literal Keysym
	dead    Keysym
}

var accents = []accent{
	{mark: 0x0300, literal: 0x0060, dead: 0xfe50}, // grave
	{mark: 0x0301, literal: 0x00b4, dead: 0xfe51}, // acute
	{mark: 0x0302, literal: 0x005e, dead: 0xfe52}, // circumflex
	{mark: 0x0303, literal: 0x007e, dead: 0xfe53}, // tilde
	{mark: 0x0304, literal: 0x00af, dead: 0xfe54}, // macron
	{mark: 0x0306, literal: 0x01a2, dead: 0xfe55}, // breve
	{mark: 0x0307, literal: 0x01ff, dead: 0xfe56}, // dot above
	{mark: 0x0308, literal: 0x00a8, dead: 0xfe57}, // diaeresis
	{mark: 0x030a, literal: 0x00b0, dead: 0xfe58}, // ring above
	{mark: 0x030b, literal: 0x01bd, dead: 0xfe59}, // double acute
	{mark: 0x030c, literal: 0x01b7, dead: 0xfe5a}, // caron
	{mark: 0x0327, literal: 0x00b8, dead: 0xfe5b}, // cedilla
	{mark: 0x0328, literal: 0x01b2, dead: 0xfe5c}, // ogonek
}

// spacingAccents maps the spacing forms a dead key may report to the
// combining mark.
var spacingAccents = map[rune]rune{
	'`':    0x0300,
	0x00b4: 0x0301,
	'^':    0x0302,
	0x02c6: 0x0302,
	'~':    0x0303,
	0x02dc: 0x0303,
	0x00af: 0x0304,
	0x02d8: 0x0306,
	0x02d9: 0x0307,
	0x00a8: 0x0308,
	'"':    0x0308,
	0x00b0: 0x030a,
	0x02da: 0x030a,
	0x02dd: 0x030b,
	0x02c7: 0x030c,
	0x00b8: 0x0327,
	0x02db: 0x0328,
}

var accentByMark = func() map[rune]accent {
	m := make(map[rune]accent, len(accents))
	for _, a := range accents {
		m[a.mark] = a
	}
	return m
}()

// lookupAccent resolves a dead-key character (combining or spacing form).
func lookupAccent(r rune) (accent, bool) {
	if a, ok := accentByMark[r]; ok {
		return a, true
	}
	if mark, ok := spacingAccents[r]; ok {
		return accentByMark[mark], true
	}
	return accent{}, false
}

// decodeUnicode splits a platform Unicode value into the character and
// whether it arrived as a dead key. A bare combining mark also counts as a
// dead key.
func decodeUnicode(u int32) (rune, bool) {
	v := uint32(u)
	if v&CombiningAccent != 0 {
		return rune(v & combiningMask), true
	}
	r := rune(v)
	_, isMark := accentByMark[r]
	return r, isMark
}
