// Package sender defines the outbound interfaces the input core drives: the
// RFB wire sender and the local view model.
package sender

import "github.com/frudas24/rfbinput/internal/viewport"

// PointerEvent is one RFB PointerEvent: the full button mask at a position.
type PointerEvent struct {
	X, Y uint16
	Mask uint8
}

// MaskTracker converts button transitions into RFB PointerEvents, which
// always carry the complete set of held buttons.
type MaskTracker struct {
	mask uint8
}

// Mask returns the buttons currently held.
func (m *MaskTracker) Mask() uint8 {
	return m.mask
}

// Move returns a motion event with the current mask.
func (m *MaskTracker) Move(p viewport.Point) PointerEvent {
	return m.event(p)
}

// Down presses b and returns the resulting event.
func (m *MaskTracker) Down(b Button, p viewport.Point) PointerEvent {
	m.mask |= uint8(b)
	return m.event(p)
}

// Up releases b and returns the resulting event.
func (m *MaskTracker) Up(b Button, p viewport.Point) PointerEvent {
	m.mask &^= uint8(b)
	return m.event(p)
}

// Click returns the press and release pair for b.
func (m *MaskTracker) Click(b Button, p viewport.Point) [2]PointerEvent {
	return [2]PointerEvent{m.Down(b, p), m.Up(b, p)}
}

// event clamps p to the 16-bit RFB coordinate range.
func (m *MaskTracker) event(p viewport.Point) PointerEvent {
	return PointerEvent{X: coord(p.X), Y: coord(p.Y), Mask: m.mask}
}

// coord rounds and clamps one coordinate.
func coord(v float32) uint16 {
	switch {
	case v <= 0:
		return 0
	case v >= 65535:
		return 65535
	default:
		return uint16(v + 0.5)
	}
}
