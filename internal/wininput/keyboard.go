//go:build windows

// Package wininput injects dispatched pointer and key events into the local
// Windows desktop.
package wininput

import (
	"fmt"
	"unicode/utf16"

	"github.com/frudas24/rfbinput/internal/keys"
	"github.com/lxn/win"
)

// virtualKeys maps function keysyms to Windows virtual keys.
var virtualKeys = map[keys.Keysym]uint16{
	keys.BackSpace:  win.VK_BACK,
	keys.Tab:        win.VK_TAB,
	keys.Return:     win.VK_RETURN,
	keys.Pause:      win.VK_PAUSE,
	keys.ScrollLock: win.VK_SCROLL,
	keys.Escape:     win.VK_ESCAPE,
	keys.Home:       win.VK_HOME,
	keys.Left:       win.VK_LEFT,
	keys.Up:         win.VK_UP,
	keys.Right:      win.VK_RIGHT,
	keys.Down:       win.VK_DOWN,
	keys.PageUp:     win.VK_PRIOR,
	keys.PageDown:   win.VK_NEXT,
	keys.End:        win.VK_END,
	keys.Print:      win.VK_SNAPSHOT,
	keys.Insert:     win.VK_INSERT,
	keys.Menu:       win.VK_APPS,
	keys.NumLock:    win.VK_NUMLOCK,
	keys.KPEnter:    win.VK_RETURN,
	keys.ShiftL:     win.VK_LSHIFT,
	keys.ShiftR:     win.VK_RSHIFT,
	keys.ControlL:   win.VK_LCONTROL,
	keys.ControlR:   win.VK_RCONTROL,
	keys.CapsLock:   win.VK_CAPITAL,
	keys.AltL:       win.VK_LMENU,
	keys.AltR:       win.VK_RMENU,
	keys.SuperL:     win.VK_LWIN,
	keys.SuperR:     win.VK_RWIN,
	keys.Delete:     win.VK_DELETE,
}

func init() {
	for i := 0; i < 12; i++ {
		virtualKeys[keys.F1+keys.Keysym(i)] = uint16(win.VK_F1 + i)
	}
	for i := 0; i < 10; i++ {
		virtualKeys[keys.KP0+keys.Keysym(i)] = uint16(win.VK_NUMPAD0 + i)
	}
}

// Key presses or releases sym, using a virtual key when one exists and a
// Unicode packet otherwise.
func (w *WinDevice) Key(sym keys.Keysym, down bool) error {
	var up uint32
	if !down {
		up = win.KEYEVENTF_KEYUP
	}
	if vk, ok := virtualKeys[sym]; ok {
		return sendKeyboardInput(win.KEYBDINPUT{WVk: vk, DwFlags: up})
	}
	r, ok := keys.Rune(sym)
	if !ok {
		return fmt.Errorf("no key for keysym %s", sym)
	}
	for _, code := range utf16.Encode([]rune{r}) {
		if err := sendKeyboardInput(win.KEYBDINPUT{WScan: code, DwFlags: win.KEYEVENTF_UNICODE | up}); err != nil {
			return err
		}
	}
	return nil
}
