// Package sender defines the outbound interfaces the input core drives: the
// RFB wire sender and the local view model.
package sender

import (
	"github.com/frudas24/rfbinput/internal/keys"
	"github.com/frudas24/rfbinput/internal/viewport"
)

// Tee forwards every call to each Sender in order.
type Tee []Sender

// SendPointerMove forwards a move.
func (t Tee) SendPointerMove(p viewport.Point) {
	for _, s := range t {
		s.SendPointerMove(p)
	}
}

// SendPointerDown forwards a press.
func (t Tee) SendPointerDown(b Button, p viewport.Point) {
	for _, s := range t {
		s.SendPointerDown(b, p)
	}
}

// SendPointerUp forwards a release.
func (t Tee) SendPointerUp(b Button, p viewport.Point) {
	for _, s := range t {
		s.SendPointerUp(b, p)
	}
}

// SendClick forwards a click.
func (t Tee) SendClick(b Button, p viewport.Point) {
	for _, s := range t {
		s.SendClick(b, p)
	}
}

// SendKeySym forwards a key event.
func (t Tee) SendKeySym(sym keys.Keysym, down bool) {
	for _, s := range t {
		s.SendKeySym(sym, down)
	}
}
