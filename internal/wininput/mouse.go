//go:build windows

// Package wininput injects dispatched pointer and key events into the local
// Windows desktop.
package wininput

import (
	"fmt"

	"github.com/frudas24/rfbinput/internal/sender"
	"github.com/lxn/win"
)

// mouseeventfHWheel is MOUSEEVENTF_HWHEEL.
const mouseeventfHWheel = 0x01000

// MoveAbs moves the cursor to an absolute virtual-desktop coordinate.
func (w *WinDevice) MoveAbs(x, y int) error {
	dx, dy := mapAbsolute(x, y)
	flags := uint32(win.MOUSEEVENTF_MOVE | win.MOUSEEVENTF_ABSOLUTE | win.MOUSEEVENTF_VIRTUALDESK)
	if err := sendMouseInput(flags, dx, dy, 0); err != nil {
		if win.SetCursorPos(int32(x), int32(y)) {
			return nil
		}
		return err
	}
	return nil
}

// Button presses or releases a mouse button.
func (w *WinDevice) Button(b sender.Button, down bool) error {
	var flags uint32
	switch {
	case b == sender.ButtonLeft && down:
		flags = win.MOUSEEVENTF_LEFTDOWN
	case b == sender.ButtonLeft:
		flags = win.MOUSEEVENTF_LEFTUP
	case b == sender.ButtonRight && down:
		flags = win.MOUSEEVENTF_RIGHTDOWN
	case b == sender.ButtonRight:
		flags = win.MOUSEEVENTF_RIGHTUP
	case b == sender.ButtonMiddle && down:
		flags = win.MOUSEEVENTF_MIDDLEDOWN
	case b == sender.ButtonMiddle:
		flags = win.MOUSEEVENTF_MIDDLEUP
	default:
		return fmt.Errorf("unsupported button %s", b)
	}
	return sendMouseInput(flags, 0, 0, 0)
}

// Wheel scrolls vertically; positive is away from the user.
func (w *WinDevice) Wheel(delta int) error {
	return sendMouseInput(win.MOUSEEVENTF_WHEEL, 0, 0, uint32(int32(delta)))
}

// HWheel scrolls horizontally; positive is to the right.
func (w *WinDevice) HWheel(delta int) error {
	return sendMouseInput(mouseeventfHWheel, 0, 0, uint32(int32(delta)))
}

// mapAbsolute converts screen coordinates to the WinAPI absolute range.
func mapAbsolute(x, y int) (int32, int32) {
	vx := win.GetSystemMetrics(win.SM_XVIRTUALSCREEN)
	vy := win.GetSystemMetrics(win.SM_YVIRTUALSCREEN)
	vw := win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN)
	vh := win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)
	if vw <= 1 {
		vw = 2
	}
	if vh <= 1 {
		vh = 2
	}
	dx := (int64(x) - int64(vx)) * 65535 / int64(vw-1)
	dy := (int64(y) - int64(vy)) * 65535 / int64(vh-1)
	return int32(dx), int32(dy)
}
