// Package dispatch turns classified gestures, mouse and key events into wire
// and view-model actions according to the user's bindings.
package dispatch

import (
	"math"
	"time"

	"github.com/frudas24/rfbinput/internal/accel"
	"github.com/frudas24/rfbinput/internal/config"
	"github.com/frudas24/rfbinput/internal/gesture"
	"github.com/frudas24/rfbinput/internal/keys"
	"github.com/frudas24/rfbinput/internal/sender"
	"github.com/frudas24/rfbinput/internal/viewport"
	log "github.com/sirupsen/logrus"
)

type pointFn func(fb viewport.Point)

type motionFn func(start, cur viewport.Point, dx, dy float32)

// Dispatcher implements gesture.Listener and performs the bound actions. It
// is driven from a single input goroutine.
type Dispatcher struct {
	out   sender.Sender
	view  sender.ViewModel
	vt    *viewport.Transform
	log   *log.Entry
	now   func() time.Time
	curve accel.Curve

	bindings    Bindings
	touchpad    bool
	passthrough bool
	dpi         float32
	noVideo     bool

	points  [gestureCount]pointFn
	motions [gestureCount]motionFn
	keyFns  map[keys.Keysym]pointFn

	scroll   *ScrollAccumulator
	velocity *accel.VelocityTracker
	pointer  viewport.Point
	dragging bool
	held     sender.Button
}

// Ensure Dispatcher implements gesture.Listener.
var _ gesture.Listener = (*Dispatcher)(nil)

// New builds a dispatcher from prefs. Bindings are resolved here once and
// never re-read.
func New(prefs config.Prefs, vt *viewport.Transform, out sender.Sender, view sender.ViewModel, entry *log.Entry) *Dispatcher {
	if out == nil {
		out = sender.Noop{}
	}
	if view == nil {
		view = sender.Noop{}
	}
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}
	d := &Dispatcher{
		out:         out,
		view:        view,
		vt:          vt,
		log:         entry,
		now:         time.Now,
		curve:       accel.DefaultCurve(),
		bindings:    ResolveBindings(prefs.Gestures, entry),
		touchpad:    prefs.GestureStyle == config.StyleTouchpad,
		passthrough: prefs.MousePassthrough,
		dpi:         prefs.DPI,
		noVideo:     prefs.VideoDisabled,
		keyFns:      make(map[keys.Keysym]pointFn),
		scroll:      NewScrollAccumulator(prefs.SwipeSensitivity, prefs.DPI),
		velocity:    accel.NewVelocityTracker(accel.DefaultHorizon),
	}
	for g := Gesture(0); g < gestureCount; g++ {
		a := d.bindings[g]
		if g.isMotion() {
			d.motions[g] = d.motionAction(a)
		} else {
			d.points[g] = d.pointAction(a)
		}
	}
	for name, action := range prefs.KeyBindings {
		sym, ok := keys.ParseName(name)
		if !ok {
			entry.WithField("key", name).Warn("unknown key binding, ignored")
			continue
		}
		a, ok := ParseAction(action)
		if !ok || !a.pointerClass() || a == ActionNone {
			entry.WithFields(log.Fields{"key": name, "action": action}).Warn("invalid key binding action, ignored")
			continue
		}
		d.keyFns[sym] = d.pointAction(a)
	}
	return d
}

// SetNowFunc overrides the clock used for pointer velocity.
func (d *Dispatcher) SetNowFunc(now func() time.Time) {
	if now != nil {
		d.now = now
	}
}

// Bindings returns the resolved gesture bindings.
func (d *Dispatcher) Bindings() Bindings {
	return d.bindings
}

// MousePassthrough reports whether mouse events bypass the gesture engine.
func (d *Dispatcher) MousePassthrough() bool {
	return d.passthrough
}

// Pointer returns the last remote pointer position in framebuffer space.
func (d *Dispatcher) Pointer() viewport.Point {
	return d.pointer
}

// Scroll exposes the remote-scroll accumulator.
func (d *Dispatcher) Scroll() *ScrollAccumulator {
	return d.scroll
}

// OnGestureStart resets per-gesture motion state.
func (d *Dispatcher) OnGestureStart() {
	d.scroll.Reset()
	d.velocity.Reset()
}

// OnGestureStop releases a button held by remote-drag.
func (d *Dispatcher) OnGestureStop(viewport.Point) {
	d.endDrag()
}

// OnTap runs the single_tap binding.
func (d *Dispatcher) OnTap(p viewport.Point) {
	d.runPoint(GestureSingleTap, p)
}

// OnDoubleTap runs the double_tap binding.
func (d *Dispatcher) OnDoubleTap(p viewport.Point) {
	d.runPoint(GestureDoubleTap, p)
}

// OnLongPress runs the long_press binding.
func (d *Dispatcher) OnLongPress(p viewport.Point) {
	d.runPoint(GestureLongPress, p)
}

// OnMultiFingerTap runs the two_finger_tap or three_finger_tap binding.
func (d *Dispatcher) OnMultiFingerTap(p viewport.Point, fingers int) {
	switch fingers {
	case 2:
		d.runPoint(GestureTwoFingerTap, p)
	case 3:
		d.runPoint(GestureThreeFingerTap, p)
	}
}

// OnSwipe runs the swipe binding for the finger count.
func (d *Dispatcher) OnSwipe(fingers int, start, cur viewport.Point, dx, dy float32) {
	switch fingers {
	case 1:
		d.motions[GestureSwipe1](start, cur, dx, dy)
	case 2:
		d.motions[GestureSwipe2](start, cur, dx, dy)
	case 3:
		d.motions[GestureSwipe3](start, cur, dx, dy)
	}
}

// OnDrag runs the drag binding (motion after a long press).
func (d *Dispatcher) OnDrag(start, cur viewport.Point, dx, dy float32) {
	d.motions[GestureDrag](start, cur, dx, dy)
}

// OnDoubleTapSwipe runs the double_tap_swipe binding.
func (d *Dispatcher) OnDoubleTapSwipe(start, cur viewport.Point, dx, dy float32) {
	d.motions[GestureDoubleTapSwipe](start, cur, dx, dy)
}

// OnScale forwards a pinch to the view model.
func (d *Dispatcher) OnScale(factor, fx, fy float32) {
	d.view.RequestZoom(factor, fx, fy)
}

// OnFling continues a pan with momentum when one-finger swipes pan.
func (d *Dispatcher) OnFling(vx, vy float32) {
	if d.bindings[GestureSwipe1] == ActionPan {
		d.view.RequestFling(vx, vy)
	}
}

// OnKeySym sends a key event, or runs its key binding on press.
func (d *Dispatcher) OnKeySym(sym keys.Keysym, down bool) {
	if fn, ok := d.keyFns[sym]; ok {
		if down {
			fn(d.pointer)
		}
		return
	}
	d.out.SendKeySym(sym, down)
}

// OnStrokes sends translated key strokes in order.
func (d *Dispatcher) OnStrokes(strokes []keys.Stroke) {
	for _, s := range strokes {
		d.OnKeySym(s.Sym, s.Down)
	}
}

// OnMouseMove moves the remote pointer to a passthrough mouse position.
func (d *Dispatcher) OnMouseMove(p viewport.Point) {
	fb, ok := d.vt.ToFramebuffer(p)
	if !ok {
		return
	}
	d.pointer = fb
	d.out.SendPointerMove(fb)
}

// OnMouseButton sends a passthrough button transition. A release is always
// delivered for a held button, even outside the framebuffer.
func (d *Dispatcher) OnMouseButton(b sender.Button, down bool, p viewport.Point) {
	fb, ok := d.vt.ToFramebuffer(p)
	if ok {
		d.pointer = fb
	}
	switch {
	case down && ok && d.held&b == 0:
		d.held |= b
		d.out.SendPointerDown(b, fb)
	case !down && d.held&b != 0:
		d.held &^= b
		d.out.SendPointerUp(b, d.pointer)
	}
}

// OnMouseScroll sends wheel clicks for a passthrough scroll. Positive vscroll
// scrolls up, positive hscroll scrolls right.
func (d *Dispatcher) OnMouseScroll(hscroll, vscroll float32, p viewport.Point) {
	fb, ok := d.vt.ToFramebuffer(p)
	if !ok {
		return
	}
	d.pointer = fb
	d.wheel(vscroll, sender.WheelUp, sender.WheelDown, fb)
	d.wheel(hscroll, sender.WheelRight, sender.WheelLeft, fb)
}

// OnStylus handles pen input as absolute pointer control with the primary
// button held while the pen touches.
func (d *Dispatcher) OnStylus(action gesture.Action, p viewport.Point) {
	switch action {
	case gesture.ActionHover, gesture.ActionMove:
		d.OnMouseMove(p)
	case gesture.ActionDown:
		d.OnMouseButton(sender.ButtonLeft, true, p)
	case gesture.ActionUp, gesture.ActionCancel:
		d.OnMouseButton(sender.ButtonLeft, false, p)
	}
}

// Close releases every button still held.
func (d *Dispatcher) Close() {
	d.endDrag()
	for _, b := range []sender.Button{sender.ButtonLeft, sender.ButtonMiddle, sender.ButtonRight} {
		if d.held&b != 0 {
			d.out.SendPointerUp(b, d.pointer)
		}
	}
	d.held = 0
}

// wheel emits one click per notch of v.
func (d *Dispatcher) wheel(v float32, pos, neg sender.Button, fb viewport.Point) {
	if v == 0 {
		return
	}
	b := pos
	if v < 0 {
		b = neg
	}
	n := int(math.Round(math.Abs(float64(v))))
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		d.out.SendClick(b, fb)
	}
}

// runPoint resolves a tap-like gesture's target and runs its binding.
func (d *Dispatcher) runPoint(g Gesture, p viewport.Point) {
	if d.bindings[g] == ActionNone {
		return
	}
	fb, ok := d.target(p)
	if !ok {
		return
	}
	d.points[g](fb)
}

// target maps a viewport point to the framebuffer. In touchpad style the
// remote pointer stays where it is.
func (d *Dispatcher) target(p viewport.Point) (viewport.Point, bool) {
	if d.touchpad {
		return d.pointer, true
	}
	return d.vt.ToFramebuffer(p)
}

// pointAction returns the handler for a tap-class action.
func (d *Dispatcher) pointAction(a Action) pointFn {
	click := func(b sender.Button, n int) pointFn {
		return func(fb viewport.Point) {
			d.pointer = fb
			for i := 0; i < n; i++ {
				d.out.SendClick(b, fb)
			}
		}
	}
	switch a {
	case ActionLeftClick:
		return click(sender.ButtonLeft, 1)
	case ActionDoubleClick:
		return click(sender.ButtonLeft, 2)
	case ActionMiddleClick:
		return click(sender.ButtonMiddle, 1)
	case ActionRightClick:
		return click(sender.ButtonRight, 1)
	case ActionMovePointer:
		return func(fb viewport.Point) {
			d.pointer = fb
			d.out.SendPointerMove(fb)
		}
	default:
		return func(viewport.Point) {}
	}
}

// motionAction returns the handler for a swipe-class action.
func (d *Dispatcher) motionAction(a Action) motionFn {
	switch a {
	case ActionPan:
		return func(_, _ viewport.Point, dx, dy float32) {
			if dx != 0 || dy != 0 {
				d.view.RequestPan(dx, dy)
			}
		}
	case ActionRemoteScroll:
		return d.remoteScroll
	case ActionRemoteDrag:
		return d.remoteDrag
	case ActionMovePointer:
		return d.movePointer
	default:
		return func(_, _ viewport.Point, _, _ float32) {}
	}
}

// remoteScroll quantizes motion into wheel clicks at the gesture start.
func (d *Dispatcher) remoteScroll(start, _ viewport.Point, dx, dy float32) {
	fb, ok := d.target(start)
	if !ok {
		return
	}
	for _, b := range d.scroll.Add(dx, dy) {
		d.out.SendClick(b, fb)
	}
}

// remoteDrag presses the primary button at the start and moves with the finger.
func (d *Dispatcher) remoteDrag(start, cur viewport.Point, dx, dy float32) {
	if !d.dragging {
		fb, ok := d.target(start)
		if !ok {
			return
		}
		d.pointer = fb
		d.dragging = true
		d.out.SendPointerDown(sender.ButtonLeft, fb)
	}
	d.movePointer(start, cur, dx, dy)
}

// movePointer moves the remote pointer: absolutely to the finger in
// touchscreen style, relatively with acceleration in touchpad style.
func (d *Dispatcher) movePointer(_, cur viewport.Point, dx, dy float32) {
	if !d.touchpad {
		fb, ok := d.vt.ToFramebuffer(cur)
		if !ok {
			return
		}
		d.pointer = fb
		d.out.SendPointerMove(fb)
		return
	}
	if dx == 0 && dy == 0 {
		return
	}
	snap := d.vt.Snapshot()
	scale := snap.Scale()
	if scale <= 0 {
		return
	}
	d.velocity.AddSample(cur.X, cur.Y, d.now())
	factor := d.curve.Factor(accel.Speed(d.velocity.Velocity()), d.dpi, snap.ZoomScale, d.noVideo)
	next := d.pointer.Add(dx*factor/scale, dy*factor/scale)
	next.X = clampAxis(next.X, snap.FbWidth)
	next.Y = clampAxis(next.Y, snap.FbHeight)
	if next == d.pointer {
		return
	}
	d.pointer = next
	d.out.SendPointerMove(next)
}

// endDrag releases the remote-drag button if held.
func (d *Dispatcher) endDrag() {
	if !d.dragging {
		return
	}
	d.dragging = false
	d.out.SendPointerUp(sender.ButtonLeft, d.pointer)
}

// clampAxis keeps v inside [0, extent).
func clampAxis(v, extent float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > extent-1:
		return float32(math.Max(0, float64(extent-1)))
	default:
		return v
	}
}
