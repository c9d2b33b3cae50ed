// Package testutil provides recording fakes for the outbound interfaces.
package testutil

import (
	"sync"

	"github.com/frudas24/rfbinput/internal/keys"
	"github.com/frudas24/rfbinput/internal/sender"
	"github.com/frudas24/rfbinput/internal/viewport"
)

// Call records a single outbound action.
type Call struct {
	Name   string
	Button sender.Button
	Point  viewport.Point
	Sym    keys.Keysym
	Down   bool
	A, B   float32
	C      float32
}

// FakeSender implements sender.Sender and sender.ViewModel and records
// calls for tests. It is safe for concurrent use.
type FakeSender struct {
	mu    sync.Mutex
	calls []Call
}

// Ensure FakeSender implements the interfaces.
var (
	_ sender.Sender    = (*FakeSender)(nil)
	_ sender.ViewModel = (*FakeSender)(nil)
)

// record appends one call.
func (f *FakeSender) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// Calls returns a copy of the recorded calls.
func (f *FakeSender) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Named returns the recorded calls with the given name.
func (f *FakeSender) Named(name string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears the recorded calls.
func (f *FakeSender) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// SendPointerMove records a pointer move.
func (f *FakeSender) SendPointerMove(p viewport.Point) {
	f.record(Call{Name: "PointerMove", Point: p})
}

// SendPointerDown records a button press.
func (f *FakeSender) SendPointerDown(b sender.Button, p viewport.Point) {
	f.record(Call{Name: "PointerDown", Button: b, Point: p})
}

// SendPointerUp records a button release.
func (f *FakeSender) SendPointerUp(b sender.Button, p viewport.Point) {
	f.record(Call{Name: "PointerUp", Button: b, Point: p})
}

// SendClick records a click.
func (f *FakeSender) SendClick(b sender.Button, p viewport.Point) {
	f.record(Call{Name: "Click", Button: b, Point: p})
}

// SendKeySym records a key event.
func (f *FakeSender) SendKeySym(sym keys.Keysym, down bool) {
	f.record(Call{Name: "KeySym", Sym: sym, Down: down})
}

// RequestZoom records a zoom request.
func (f *FakeSender) RequestZoom(factor, fx, fy float32) {
	f.record(Call{Name: "Zoom", A: factor, B: fx, C: fy})
}

// RequestPan records a pan request.
func (f *FakeSender) RequestPan(dx, dy float32) {
	f.record(Call{Name: "Pan", A: dx, B: dy})
}

// RequestFling records a fling request.
func (f *FakeSender) RequestFling(vx, vy float32) {
	f.record(Call{Name: "Fling", A: vx, B: vy})
}
