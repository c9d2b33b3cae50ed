// Package wininput injects dispatched pointer and key events into the local
// Windows desktop.
package wininput

import (
	"errors"
	"math"

	"github.com/frudas24/rfbinput/internal/keys"
	"github.com/frudas24/rfbinput/internal/sender"
	"github.com/frudas24/rfbinput/internal/viewport"
	log "github.com/sirupsen/logrus"
)

// ErrUnsupported indicates WinAPI input injection is not available.
var ErrUnsupported = errors.New("wininput is only supported on Windows")

// wheelDelta is one wheel notch in WinAPI units.
const wheelDelta = 120

// Device is the platform injection surface.
type Device interface {
	MoveAbs(x, y int) error
	Button(b sender.Button, down bool) error
	Wheel(delta int) error
	HWheel(delta int) error
	Key(sym keys.Keysym, down bool) error
}

// Sender implements sender.Sender on top of a Device. Framebuffer
// coordinates are local screen pixels. Injection errors are logged and
// dropped; the input core has no way to retry them.
type Sender struct {
	dev Device
	log *log.Entry
}

// NewSender returns a Sender driving dev.
func NewSender(dev Device, entry *log.Entry) *Sender {
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}
	return &Sender{dev: dev, log: entry.WithField("component", "wininput")}
}

// SendPointerMove moves the cursor.
func (s *Sender) SendPointerMove(p viewport.Point) {
	s.check("move", s.move(p))
}

// SendPointerDown moves and presses b. Wheel buttons scroll one notch.
func (s *Sender) SendPointerDown(b sender.Button, p viewport.Point) {
	if err := s.move(p); err != nil {
		s.check("move", err)
		return
	}
	if isWheel(b) {
		s.check("wheel", s.wheel(b))
		return
	}
	s.check("button down", s.dev.Button(b, true))
}

// SendPointerUp moves and releases b. Wheel releases are no-ops.
func (s *Sender) SendPointerUp(b sender.Button, p viewport.Point) {
	if err := s.move(p); err != nil {
		s.check("move", err)
	}
	if isWheel(b) {
		return
	}
	s.check("button up", s.dev.Button(b, false))
}

// SendClick presses and releases b.
func (s *Sender) SendClick(b sender.Button, p viewport.Point) {
	s.SendPointerDown(b, p)
	s.SendPointerUp(b, p)
}

// SendKeySym presses or releases sym.
func (s *Sender) SendKeySym(sym keys.Keysym, down bool) {
	s.check("key", s.dev.Key(sym, down))
}

// move positions the cursor at the rounded point.
func (s *Sender) move(p viewport.Point) error {
	return s.dev.MoveAbs(int(math.Round(float64(p.X))), int(math.Round(float64(p.Y))))
}

// wheel scrolls one notch in the direction of b.
func (s *Sender) wheel(b sender.Button) error {
	switch b {
	case sender.WheelUp:
		return s.dev.Wheel(wheelDelta)
	case sender.WheelDown:
		return s.dev.Wheel(-wheelDelta)
	case sender.WheelLeft:
		return s.dev.HWheel(-wheelDelta)
	default:
		return s.dev.HWheel(wheelDelta)
	}
}

// check logs a failed injection.
func (s *Sender) check(op string, err error) {
	if err != nil {
		s.log.WithError(err).WithField("op", op).Warn("injection failed")
	}
}

// isWheel reports whether b is one of the wheel pseudo-buttons.
func isWheel(b sender.Button) bool {
	return b&(sender.WheelUp|sender.WheelDown|sender.WheelLeft|sender.WheelRight) != 0
}
