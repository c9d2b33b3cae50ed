// Package gesture classifies raw pointer streams into tap, double-tap,
// long-press, swipe, drag, pinch and fling gestures.
package gesture

import (
	"time"

	"github.com/frudas24/rfbinput/internal/accel"
	"github.com/frudas24/rfbinput/internal/viewport"
)

// State is the gesture state machine position.
type State uint8

const (
	// StateIdle means no pointer is down.
	StateIdle State = iota
	// StateDown means pointers are down but have not left the touch slop.
	StateDown
	// StateLongPressPending means a single finger was held past the long-press timeout.
	StateLongPressPending
	// StateDragging means the finger moved after a long press.
	StateDragging
	// StateScrolling means pointers moved beyond the slop without a long press.
	StateScrolling
	// StateDoubleTapPending means the second down of a double tap is in progress.
	StateDoubleTapPending
	// StateDoubleTapHeld means the second down was held past the long-press timeout.
	StateDoubleTapHeld
	// StateDoubleTapScrolling means the finger moved during a double tap.
	StateDoubleTapScrolling
	// StateScaling means two fingers are pinching.
	StateScaling
)

var stateNames = [...]string{
	StateIdle:               "idle",
	StateDown:               "down",
	StateLongPressPending:   "long-press-pending",
	StateDragging:           "dragging",
	StateScrolling:          "scrolling",
	StateDoubleTapPending:   "double-tap-pending",
	StateDoubleTapHeld:      "double-tap-held",
	StateDoubleTapScrolling: "double-tap-scrolling",
	StateScaling:            "scaling",
}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Config holds the platform gesture windows and distances.
type Config struct {
	TouchSlop        float32
	DoubleTapSlop    float32
	MultiTapSlop     float32
	LongPressTimeout time.Duration
	DoubleTapTimeout time.Duration
	DoubleTapMinTime time.Duration
	MinFlingVelocity float32
	FlingHorizon     time.Duration
}

// DefaultConfig returns the standard platform timings.
func DefaultConfig() Config {
	return Config{
		TouchSlop:        16,
		DoubleTapSlop:    100,
		MultiTapSlop:     40,
		LongPressTimeout: 500 * time.Millisecond,
		DoubleTapTimeout: 300 * time.Millisecond,
		DoubleTapMinTime: 40 * time.Millisecond,
		MinFlingVelocity: 50,
		FlingHorizon:     100 * time.Millisecond,
	}
}

// Listener receives classified gestures. Points are in viewport space.
type Listener interface {
	OnGestureStart()
	OnGestureStop(p viewport.Point)
	OnTap(p viewport.Point)
	OnDoubleTap(p viewport.Point)
	OnLongPress(p viewport.Point)
	OnMultiFingerTap(p viewport.Point, fingers int)
	OnSwipe(fingers int, start, cur viewport.Point, dx, dy float32)
	OnDrag(start, cur viewport.Point, dx, dy float32)
	OnDoubleTapSwipe(start, cur viewport.Point, dx, dy float32)
	OnScale(factor, fx, fy float32)
	OnFling(vx, vy float32)
}

type pendingTap struct {
	point viewport.Point
	down  time.Time
	up    time.Time
}

// Engine is the composite gesture recognizer. It is driven from a single
// goroutine: OnEvent for raw events and Tick for timeouts.
type Engine struct {
	cfg        Config
	listener   Listener
	classifier *Classifier
	velocity   *accel.VelocityTracker

	state      State
	start      PointSample
	downTime   time.Time
	fingers    int
	maxFingers int
	sumDx      float32
	sumDy      float32
	anchor     viewport.Point
	lastFocus  viewport.Point
	span       float32
	tap        *pendingTap
}

// NewEngine returns an idle engine reporting to l.
func NewEngine(cfg Config, l Listener) *Engine {
	return &Engine{
		cfg:        cfg,
		listener:   l,
		classifier: NewClassifier(),
		velocity:   accel.NewVelocityTracker(cfg.FlingHorizon),
	}
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// MaxFingers returns the largest pointer count seen in the current gesture.
func (e *Engine) MaxFingers() int {
	return e.maxFingers
}

// OnEvent processes one raw motion event. Scroll and hover events are not
// gestures and are ignored here.
func (e *Engine) OnEvent(ev Event) {
	e.Tick(ev.Time)
	switch ev.Action {
	case ActionDown:
		e.onDown(ev)
	case ActionPointerDown:
		e.onPointerChange(ev)
	case ActionPointerUp:
		e.onPointerChange(ev)
	case ActionMove:
		e.onMove(ev)
	case ActionUp:
		e.onUp(ev)
	case ActionCancel:
		e.Cancel()
	}
}

// Tick fires timeouts that have expired by now: single-tap confirmation and
// long-press detection.
func (e *Engine) Tick(now time.Time) {
	if e.tap != nil && now.Sub(e.tap.down) >= e.cfg.DoubleTapTimeout {
		p := e.tap.point
		e.tap = nil
		e.listener.OnTap(p)
	}
	if now.Sub(e.downTime) < e.cfg.LongPressTimeout {
		return
	}
	switch {
	case e.state == StateDown && e.maxFingers <= 1:
		e.state = StateLongPressPending
	case e.state == StateDoubleTapPending:
		e.state = StateDoubleTapHeld
	}
}

// Cancel aborts the gesture and drops any unconfirmed tap.
func (e *Engine) Cancel() {
	e.tap = nil
	if e.state != StateIdle {
		e.listener.OnGestureStop(e.lastFocus)
	}
	e.reset()
}

// onDown starts a gesture, resolving a pending tap into a double tap or a
// confirmed single tap first.
func (e *Engine) onDown(ev Event) {
	if len(ev.Pointers) == 0 {
		return
	}
	if e.state != StateIdle {
		e.Cancel()
	}
	p := ev.Pointers[0]
	pt := p.Point()
	next := StateDown
	if e.tap != nil {
		gap := ev.Time.Sub(e.tap.up)
		if gap >= e.cfg.DoubleTapMinTime && gap <= e.cfg.DoubleTapTimeout && pt.Distance(e.tap.point) <= e.cfg.DoubleTapSlop {
			next = StateDoubleTapPending
		} else {
			e.listener.OnTap(e.tap.point)
		}
		e.tap = nil
	}

	e.state = next
	e.start = p
	e.downTime = ev.Time
	e.fingers = 1
	e.maxFingers = 1
	e.sumDx, e.sumDy = 0, 0
	e.anchor = pt
	e.lastFocus = pt
	e.span = 0
	e.classifier.Reset()
	e.velocity.Reset()
	e.velocity.AddSample(pt.X, pt.Y, ev.Time)
	e.listener.OnGestureStart()
}

// onPointerChange handles extra pointers going down or up mid-gesture.
func (e *Engine) onPointerChange(ev Event) {
	if e.state == StateIdle {
		return
	}
	ps := ev.active()
	e.fingers = len(ps)
	if e.fingers > e.maxFingers {
		e.maxFingers = e.fingers
	}
	focus := centroid(ps)
	e.anchor = focus
	e.lastFocus = focus
	e.span = span(ps)
	e.velocity.Reset()
	e.classifier.OnEvent(ev)
	if ev.Action == ActionPointerDown && (e.state == StateDoubleTapPending || e.state == StateDoubleTapHeld) {
		e.state = StateDown
	}
}

// onMove advances scrolling, dragging and pinching.
func (e *Engine) onMove(ev Event) {
	if e.state == StateIdle || len(ev.Pointers) == 0 {
		return
	}
	focus := centroid(ev.Pointers)
	e.velocity.AddSample(focus.X, focus.Y, ev.Time)
	e.classifier.OnEvent(ev)

	twoFinger := e.fingers == 2 && e.classifier.Active()
	if twoFinger && e.canScale() && e.classifier.Classify() == Scale {
		e.scale(ev.Pointers, focus)
		return
	}
	if twoFinger {
		e.span = span(ev.Pointers)
	}

	start := e.start.Point()
	switch e.state {
	case StateDown, StateLongPressPending, StateDoubleTapPending, StateDoubleTapHeld:
		if focus.Distance(e.anchor) <= e.cfg.TouchSlop {
			return
		}
		e.state = scrollStateFor(e.state)
		if !twoFinger || e.classifier.Classify() == Swipe {
			e.route(start, start, 0, 0)
		}
	case StateScaling:
		return
	}

	dx := focus.X - e.lastFocus.X
	dy := focus.Y - e.lastFocus.Y
	e.lastFocus = focus
	e.sumDx += dx
	e.sumDy += dy
	if twoFinger && e.classifier.Classify() != Swipe {
		return
	}
	e.route(start, focus, dx, dy)
}

// canScale reports whether a pinch may take over the current state.
func (e *Engine) canScale() bool {
	switch e.state {
	case StateDown, StateScrolling, StateScaling:
		return true
	default:
		return false
	}
}

// scale reports the span ratio since the previous move.
func (e *Engine) scale(ps []PointSample, focus viewport.Point) {
	e.state = StateScaling
	next := span(ps)
	if e.span > 0 && next > 0 {
		e.listener.OnScale(next/e.span, focus.X, focus.Y)
	}
	e.span = next
	e.lastFocus = focus
}

// scrollStateFor maps a pre-motion state to its motion state.
func scrollStateFor(s State) State {
	switch s {
	case StateLongPressPending:
		return StateDragging
	case StateDoubleTapPending, StateDoubleTapHeld:
		return StateDoubleTapScrolling
	default:
		return StateScrolling
	}
}

// route sends a scroll delta to the handler matching the current state.
func (e *Engine) route(start, cur viewport.Point, dx, dy float32) {
	switch e.state {
	case StateDoubleTapScrolling:
		e.listener.OnDoubleTapSwipe(start, cur, dx, dy)
	case StateDragging:
		e.listener.OnDrag(start, cur, dx, dy)
	default:
		e.listener.OnSwipe(e.fingers, start, cur, dx, dy)
	}
}

// onUp fires the single terminal action of the gesture, if any.
func (e *Engine) onUp(ev Event) {
	if e.state == StateIdle {
		return
	}
	start := e.start.Point()
	duration := ev.Time.Sub(e.downTime)
	single := e.maxFingers <= 1
	quick := duration < e.cfg.DoubleTapTimeout

	switch e.state {
	case StateDown:
		switch {
		case !single:
			if quick {
				e.listener.OnMultiFingerTap(start, e.maxFingers)
			}
		case quick:
			e.tap = &pendingTap{point: start, down: e.downTime, up: ev.Time}
		default:
			e.listener.OnTap(start)
		}
	case StateLongPressPending:
		if single {
			e.listener.OnLongPress(start)
		}
	case StateDoubleTapPending:
		if single {
			e.listener.OnDoubleTap(start)
		}
	case StateScrolling:
		if !single {
			if quick && withinSlop(e.sumDx, e.sumDy, e.cfg.MultiTapSlop) {
				e.listener.OnMultiFingerTap(start, e.maxFingers)
			}
			break
		}
		vx, vy := e.velocity.Velocity()
		if accel.Speed(vx, vy) >= e.cfg.MinFlingVelocity {
			e.listener.OnFling(vx, vy)
		}
	}

	last := e.lastFocus
	if len(ev.Pointers) > 0 {
		last = ev.Pointers[0].Point()
	}
	e.listener.OnGestureStop(last)
	e.reset()
}

// reset returns to idle, keeping any pending tap.
func (e *Engine) reset() {
	e.state = StateIdle
	e.fingers = 0
	e.maxFingers = 0
	e.sumDx, e.sumDy = 0, 0
	e.span = 0
	e.classifier.Reset()
	e.velocity.Reset()
}

// withinSlop reports whether the accumulated motion stays inside radius.
func withinSlop(dx, dy, radius float32) bool {
	return dx*dx+dy*dy <= radius*radius
}
