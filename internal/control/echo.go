// Package control carries raw client input into the gesture, key and
// dispatch pipeline and echoes the resulting RFB actions back.
package control

import (
	"math"
	"time"

	"github.com/frudas24/rfbinput/internal/keys"
	"github.com/frudas24/rfbinput/internal/sender"
	"github.com/frudas24/rfbinput/internal/viewport"
)

// Emitter delivers one outbound message to the client.
type Emitter func(v any)

// echoSender implements sender.Sender by echoing RFB events to the client.
type echoSender struct {
	emit Emitter
	mask sender.MaskTracker
}

// pointer emits one RFB PointerEvent.
func (e *echoSender) pointer(ev sender.PointerEvent) {
	e.emit(PointerOut{T: OutPointer, X: ev.X, Y: ev.Y, Mask: ev.Mask})
}

// SendPointerMove emits a motion event.
func (e *echoSender) SendPointerMove(p viewport.Point) {
	e.pointer(e.mask.Move(p))
}

// SendPointerDown emits a press.
func (e *echoSender) SendPointerDown(b sender.Button, p viewport.Point) {
	e.pointer(e.mask.Down(b, p))
}

// SendPointerUp emits a release.
func (e *echoSender) SendPointerUp(b sender.Button, p viewport.Point) {
	e.pointer(e.mask.Up(b, p))
}

// SendClick emits a press and a release.
func (e *echoSender) SendClick(b sender.Button, p viewport.Point) {
	for _, ev := range e.mask.Click(b, p) {
		e.pointer(ev)
	}
}

// SendKeySym emits an RFB KeyEvent.
func (e *echoSender) SendKeySym(sym keys.Keysym, down bool) {
	e.emit(KeyOut{T: OutKey, Sym: uint32(sym), Down: down})
}

const (
	flingFriction = 4.0
	flingStop     = 20.0
)

// viewModel applies view requests to the transform. Flings decay
// exponentially and advance on every tick.
type viewModel struct {
	vt       *viewport.Transform
	vx, vy   float32
	lastStep time.Time
}

// RequestZoom zooms around the focus point.
func (m *viewModel) RequestZoom(factor, fx, fy float32) {
	m.stopFling()
	m.vt.ZoomAt(factor, fx, fy)
}

// RequestPan pans by the finger delta.
func (m *viewModel) RequestPan(dx, dy float32) {
	m.stopFling()
	m.vt.Pan(dx, dy)
}

// RequestFling starts momentum panning.
func (m *viewModel) RequestFling(vx, vy float32) {
	m.vx, m.vy = vx, vy
	m.lastStep = time.Time{}
}

// Flinging reports whether momentum panning is active.
func (m *viewModel) Flinging() bool {
	return m.vx != 0 || m.vy != 0
}

// step advances the fling to now.
func (m *viewModel) step(now time.Time) {
	if !m.Flinging() {
		return
	}
	if m.lastStep.IsZero() {
		m.lastStep = now
		return
	}
	dt := float32(now.Sub(m.lastStep).Seconds())
	m.lastStep = now
	if dt <= 0 {
		return
	}
	m.vt.Pan(m.vx*dt, m.vy*dt)
	decay := float32(math.Exp(-flingFriction * float64(dt)))
	m.vx *= decay
	m.vy *= decay
	if math.Hypot(float64(m.vx), float64(m.vy)) < flingStop {
		m.stopFling()
	}
}

// stopFling cancels momentum panning.
func (m *viewModel) stopFling() {
	m.vx, m.vy = 0, 0
}

// viewOut converts a transform snapshot into its outbound message.
func viewOut(s viewport.Snapshot) ViewOut {
	return ViewOut{T: OutView, Scale: s.Scale(), Zoom: s.ZoomScale, PanX: s.PanX, PanY: s.PanY}
}
