// Package keys translates platform key events into X11 keysyms for the RFB
// KeyEvent message, including dead-key composition and legacy keysym shims.
package keys

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Action is the platform key event action.
type Action uint8

const (
	// ActionDown is a key press (or an auto-repeat of one).
	ActionDown Action = iota
	// ActionUp is a key release.
	ActionUp
	// ActionMultiple carries repeated presses or a committed character string.
	ActionMultiple
)

// Event is one raw platform key event.
type Event struct {
	Action     Action
	Keycode    int32
	Unicode    int32
	MetaState  int32
	Repeat     int32
	Characters string
}

// Stroke is one KeyEvent to send: a keysym and its direction.
type Stroke struct {
	Sym  Keysym
	Down bool
}

// Translator turns key events into strokes. Every Down it emits is matched by
// exactly one Up, either immediately (taps) or when the physical key is
// released. It is not safe for concurrent use.
type Translator struct {
	legacy  bool
	pending []accent
	pressed map[int32][]Keysym
}

// NewTranslator returns a translator. In legacy mode dead keys are composed
// locally and legacy keysyms are preferred; otherwise dead keysyms are passed
// through for the server to compose.
func NewTranslator(legacy bool) *Translator {
	return &Translator{legacy: legacy, pressed: make(map[int32][]Keysym)}
}

// Pending reports whether a dead key is waiting for its base character.
func (t *Translator) Pending() bool {
	return len(t.pending) > 0
}

// OnKeyEvent translates one key event. An empty result means no symbol.
func (t *Translator) OnKeyEvent(ev Event) []Stroke {
	switch ev.Action {
	case ActionUp:
		return t.release(ev.Keycode)
	case ActionMultiple:
		if ev.Characters != "" {
			return t.OnMultiCharInput(ev.Characters)
		}
		var out []Stroke
		down := ev
		down.Action = ActionDown
		for i := int32(0); i < ev.Repeat; i++ {
			out = append(out, t.OnKeyEvent(down)...)
			out = append(out, t.release(ev.Keycode)...)
		}
		return out
	case ActionDown:
		if held, ok := t.pressed[ev.Keycode]; ok {
			return append(strokes(held, false), strokes(held, true)...)
		}
		out, held := t.translate(ev)
		if len(held) > 0 {
			t.pressed[ev.Keycode] = held
		}
		return out
	}
	return nil
}

// OnMultiCharInput translates committed IME text. Each grapheme cluster is
// normalized and sent as taps; clusters that compose to one code point become
// a single keysym.
func (t *Translator) OnMultiCharInput(text string) []Stroke {
	out := t.flushAccents()
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		for _, r := range norm.NFC.String(g.Str()) {
			out = append(out, t.tap(r)...)
		}
	}
	return out
}

// ReleaseAll emits Up strokes for every key still held and drops any pending
// accent. Used when the input stream ends.
func (t *Translator) ReleaseAll() []Stroke {
	var out []Stroke
	for code, held := range t.pressed {
		out = append(out, strokes(held, false)...)
		delete(t.pressed, code)
	}
	t.pending = nil
	return out
}

// translate resolves a key press, returning the strokes to send now and the
// keysyms left held until release.
func (t *Translator) translate(ev Event) ([]Stroke, []Keysym) {
	if alwaysByKeycode(ev.Keycode) {
		sym, _ := keycodeKeysym(ev.Keycode)
		if !t.Pending() {
			return press(sym)
		}
		out := t.flushAccents()
		if ev.Keycode == KeycodeSpace {
			return out, nil
		}
		down, held := press(sym)
		return append(out, down...), held
	}
	// With Ctrl, Alt or Meta held the platform character is unreliable
	// (often a control code), so the base keysym of the key is sent.
	if ev.Unicode != 0 && ev.MetaState&metaShortcut != 0 {
		if sym, ok := keycodeKeysym(ev.Keycode); ok {
			out := t.flushAccents()
			down, held := press(sym)
			return append(out, down...), held
		}
	}
	if ev.Unicode != 0 {
		r, dead := decodeUnicode(ev.Unicode)
		if dead {
			return t.onAccent(r)
		}
		return t.onChar(r)
	}
	sym, ok := keycodeKeysym(ev.Keycode)
	if !ok {
		return nil, nil
	}
	return press(sym)
}

// onAccent handles a dead key.
func (t *Translator) onAccent(r rune) ([]Stroke, []Keysym) {
	a, ok := lookupAccent(r)
	if !ok {
		return nil, nil
	}
	if !t.legacy {
		return press(a.dead)
	}
	// Repeating the latest accent escapes the whole stack as literals.
	if n := len(t.pending); n > 0 && t.pending[n-1].mark == a.mark {
		return t.flushAccents(), nil
	}
	t.pending = append(t.pending, a)
	return nil, nil
}

// onChar handles an ordinary character, composing it with a pending accent
// when possible.
func (t *Translator) onChar(r rune) ([]Stroke, []Keysym) {
	if !t.Pending() {
		return t.charStrokes(r)
	}
	if unicode.IsSpace(r) {
		return t.flushAccents(), nil
	}
	if c, ok := compose(r, t.pending); ok {
		t.pending = nil
		return t.tap(c), nil
	}
	out := t.flushAccents()
	more, held := t.charStrokes(r)
	return append(out, more...), held
}

// charStrokes presses the keysym for r. Uppercase legacy keysyms are sent as
// a Shift-bracketed tap instead of being held.
func (t *Translator) charStrokes(r rune) ([]Stroke, []Keysym) {
	sym := t.runeKeysym(r)
	if sym == NoSymbol {
		return nil, nil
	}
	if needsShift(sym, r) {
		return shifted(sym), nil
	}
	return press(sym)
}

// tap sends r as a complete press and release.
func (t *Translator) tap(r rune) []Stroke {
	sym := t.runeKeysym(r)
	if sym == NoSymbol {
		return nil
	}
	if needsShift(sym, r) {
		return shifted(sym)
	}
	return []Stroke{{Sym: sym, Down: true}, {Sym: sym}}
}

// flushAccents types every pending accent literally and clears the state.
func (t *Translator) flushAccents() []Stroke {
	var out []Stroke
	for _, a := range t.pending {
		out = append(out, Stroke{Sym: a.literal, Down: true}, Stroke{Sym: a.literal})
	}
	t.pending = nil
	return out
}

// release emits Up strokes for the keysyms held by a keycode.
func (t *Translator) release(code int32) []Stroke {
	held, ok := t.pressed[code]
	if !ok {
		return nil
	}
	delete(t.pressed, code)
	return strokes(held, false)
}

// runeKeysym maps a code point, preferring legacy keysyms in legacy mode.
func (t *Translator) runeKeysym(r rune) Keysym {
	if t.legacy && r >= 0x100 {
		if k, ok := legacyKeysym(r); ok {
			return k
		}
	}
	return unicodeKeysym(r)
}

// compose folds base and the pending marks into one precomposed character.
func compose(base rune, pending []accent) (rune, bool) {
	if !unicode.IsLetter(base) {
		return 0, false
	}
	buf := make([]rune, 0, len(pending)+1)
	buf = append(buf, base)
	for _, a := range pending {
		buf = append(buf, a.mark)
	}
	s := norm.NFC.String(string(buf))
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}

// needsShift reports whether sym must be bracketed by a synthetic Shift.
func needsShift(sym Keysym, r rune) bool {
	return sym.IsLegacyRange() && unicode.IsUpper(r)
}

// shifted returns a Shift-bracketed tap of sym.
func shifted(sym Keysym) []Stroke {
	return []Stroke{
		{Sym: ShiftL, Down: true},
		{Sym: sym, Down: true},
		{Sym: sym},
		{Sym: ShiftL},
	}
}

// press returns the Down strokes for sym and marks it held.
func press(sym Keysym) ([]Stroke, []Keysym) {
	return []Stroke{{Sym: sym, Down: true}}, []Keysym{sym}
}

// strokes returns one stroke per keysym; releases go in reverse order.
func strokes(syms []Keysym, down bool) []Stroke {
	out := make([]Stroke, 0, len(syms))
	if down {
		for _, s := range syms {
			out = append(out, Stroke{Sym: s, Down: true})
		}
		return out
	}
	for i := len(syms) - 1; i >= 0; i-- {
		out = append(out, Stroke{Sym: syms[i]})
	}
	return out
}
