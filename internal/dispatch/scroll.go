// Package dispatch turns classified gestures, mouse and key events into wire
// and view-model actions according to the user's bindings.
package dispatch

import "github.com/frudas24/rfbinput/internal/sender"

// baseScrollQuantum is the finger travel per wheel click at 160 dpi and
// sensitivity 1.
const baseScrollQuantum = 20

// ScrollAccumulator converts continuous motion into discrete wheel clicks at a
// fixed resolution, independent of the event rate.
type ScrollAccumulator struct {
	Quantum float32
	dx, dy  float32
}

// NewScrollAccumulator returns an accumulator for the given sensitivity and
// display density.
func NewScrollAccumulator(sensitivity, dpi float32) *ScrollAccumulator {
	if sensitivity <= 0 {
		sensitivity = 1
	}
	if dpi <= 0 {
		dpi = 160
	}
	return &ScrollAccumulator{Quantum: baseScrollQuantum * (dpi / 160) / sensitivity}
}

// Add accumulates a delta and returns the wheel clicks it completes. Each
// axis drains independently while its magnitude exceeds one quantum.
func (s *ScrollAccumulator) Add(dx, dy float32) []sender.Button {
	s.dx += dx
	s.dy += dy
	if s.Quantum <= 0 {
		return nil
	}
	var out []sender.Button
	for s.dy > s.Quantum {
		out = append(out, sender.WheelUp)
		s.dy -= s.Quantum
	}
	for s.dy < -s.Quantum {
		out = append(out, sender.WheelDown)
		s.dy += s.Quantum
	}
	for s.dx > s.Quantum {
		out = append(out, sender.WheelLeft)
		s.dx -= s.Quantum
	}
	for s.dx < -s.Quantum {
		out = append(out, sender.WheelRight)
		s.dx += s.Quantum
	}
	return out
}

// Pending returns the undrained remainder.
func (s *ScrollAccumulator) Pending() (dx, dy float32) {
	return s.dx, s.dy
}

// Reset drops the remainder.
func (s *ScrollAccumulator) Reset() {
	s.dx, s.dy = 0, 0
}
