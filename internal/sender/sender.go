// Package sender defines the outbound interfaces the input core drives: the
// RFB wire sender and the local view model.
package sender

import (
	"github.com/frudas24/rfbinput/internal/keys"
	"github.com/frudas24/rfbinput/internal/viewport"
)

// Button is an RFB PointerEvent button-mask bit.
type Button uint8

const (
	// ButtonLeft is the primary button.
	ButtonLeft Button = 1 << iota
	// ButtonMiddle is the middle button.
	ButtonMiddle
	// ButtonRight is the secondary button.
	ButtonRight
	// WheelUp is one wheel click up.
	WheelUp
	// WheelDown is one wheel click down.
	WheelDown
	// WheelLeft is one wheel click left.
	WheelLeft
	// WheelRight is one wheel click right.
	WheelRight
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case WheelUp:
		return "wheel-up"
	case WheelDown:
		return "wheel-down"
	case WheelLeft:
		return "wheel-left"
	case WheelRight:
		return "wheel-right"
	default:
		return "none"
	}
}

// Sender is the RFB wire sender. Points are framebuffer coordinates. Calls
// are one-way; the implementation owns ordering and delivery.
type Sender interface {
	SendPointerMove(p viewport.Point)
	SendPointerDown(b Button, p viewport.Point)
	SendPointerUp(b Button, p viewport.Point)
	SendClick(b Button, p viewport.Point)
	SendKeySym(sym keys.Keysym, down bool)
}

// ViewModel receives view-level requests that never reach the wire.
type ViewModel interface {
	RequestZoom(factor, fx, fy float32)
	RequestPan(dx, dy float32)
	RequestFling(vx, vy float32)
}

// Noop discards everything.
type Noop struct{}

// Ensure Noop implements both interfaces.
var (
	_ Sender    = Noop{}
	_ ViewModel = Noop{}
)

// SendPointerMove does nothing.
func (Noop) SendPointerMove(viewport.Point) {}

// SendPointerDown does nothing.
func (Noop) SendPointerDown(Button, viewport.Point) {}

// SendPointerUp does nothing.
func (Noop) SendPointerUp(Button, viewport.Point) {}

// SendClick does nothing.
func (Noop) SendClick(Button, viewport.Point) {}

// SendKeySym does nothing.
func (Noop) SendKeySym(keys.Keysym, bool) {}

// RequestZoom does nothing.
func (Noop) RequestZoom(float32, float32, float32) {}

// RequestPan does nothing.
func (Noop) RequestPan(float32, float32) {}

// RequestFling does nothing.
func (Noop) RequestFling(float32, float32) {}
