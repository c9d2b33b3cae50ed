package gesture

import (
	"testing"
	"time"

	"github.com/frudas24/rfbinput/internal/viewport"
)

var base = time.Unix(1000, 0)

// at returns the base time plus ms milliseconds.
func at(ms int) time.Time {
	return base.Add(time.Duration(ms) * time.Millisecond)
}

// swipeCall is one recorded swipe, drag or double-tap swipe step.
type swipeCall struct {
	kind    string
	fingers int
	start   viewport.Point
	cur     viewport.Point
	dx, dy  float32
}

// recorder is a Listener that records every callback.
type recorder struct {
	starts, stops int
	taps          []viewport.Point
	doubleTaps    []viewport.Point
	longPresses   []viewport.Point
	multiTaps     []int
	swipes        []swipeCall
	scales        []float32
	flings        int
}

// OnGestureStart counts gesture starts.
func (r *recorder) OnGestureStart() {
	r.starts++
}

// OnGestureStop counts gesture stops.
func (r *recorder) OnGestureStop(viewport.Point) {
	r.stops++
}

// OnTap records a confirmed tap.
func (r *recorder) OnTap(p viewport.Point) {
	r.taps = append(r.taps, p)
}

// OnDoubleTap records a double tap.
func (r *recorder) OnDoubleTap(p viewport.Point) {
	r.doubleTaps = append(r.doubleTaps, p)
}

// OnLongPress records a long press.
func (r *recorder) OnLongPress(p viewport.Point) {
	r.longPresses = append(r.longPresses, p)
}

// OnScale records the incremental scale factor.
func (r *recorder) OnScale(f, _, _ float32) {
	r.scales = append(r.scales, f)
}

// OnFling counts flings.
func (r *recorder) OnFling(_, _ float32) {
	r.flings++
}

// OnMultiFingerTap records the finger count.
func (r *recorder) OnMultiFingerTap(_ viewport.Point, n int) {
	r.multiTaps = append(r.multiTaps, n)
}

// OnSwipe records a multi-finger swipe step.
func (r *recorder) OnSwipe(n int, s, c viewport.Point, dx, dy float32) {
	r.swipes = append(r.swipes, swipeCall{kind: "swipe", fingers: n, start: s, cur: c, dx: dx, dy: dy})
}

// OnDrag records a single-finger drag step.
func (r *recorder) OnDrag(s, c viewport.Point, dx, dy float32) {
	r.swipes = append(r.swipes, swipeCall{kind: "drag", start: s, cur: c, dx: dx, dy: dy})
}

// OnDoubleTapSwipe records a double-tap swipe step.
func (r *recorder) OnDoubleTapSwipe(s, c viewport.Point, dx, dy float32) {
	r.swipes = append(r.swipes, swipeCall{kind: "double-tap-swipe", start: s, cur: c, dx: dx, dy: dy})
}

// terminals counts tap-class callbacks.
func (r *recorder) terminals() int {
	return len(r.taps) + len(r.doubleTaps) + len(r.longPresses) + len(r.multiTaps)
}

// touch builds a single-pointer event.
func touch(a Action, x, y float32, ms int) Event {
	return Event{Action: a, Time: at(ms), Pointers: []PointSample{{X: x, Y: y, PointerID: 0, Time: at(ms)}}}
}

// newTestEngine returns an engine wired to a fresh recorder.
func newTestEngine() (*Engine, *recorder) {
	r := &recorder{}
	return NewEngine(DefaultConfig(), r), r
}

// TestTap_ConfirmedAfterDoubleTapWindow verifies a quick tap fires once the window expires.
func TestTap_ConfirmedAfterDoubleTapWindow(t *testing.T) {
	e, r := newTestEngine()
	e.OnEvent(touch(ActionDown, 100, 100, 0))
	e.OnEvent(touch(ActionUp, 100, 100, 60))
	if len(r.taps) != 0 {
		t.Fatalf("expected tap to wait for the double-tap window, got %d", len(r.taps))
	}
	e.Tick(at(299))
	if len(r.taps) != 0 {
		t.Fatalf("expected no tap before the window closes")
	}
	e.Tick(at(300))
	if len(r.taps) != 1 || r.terminals() != 1 {
		t.Fatalf("expected exactly one tap, got %+v", r)
	}
	e.Tick(at(2000))
	if len(r.taps) != 1 {
		t.Fatalf("expected tap not to repeat, got %d", len(r.taps))
	}
}

// TestTap_HeldPastWindowFiresOnUp verifies a held (but not long) press taps immediately on release.
func TestTap_HeldPastWindowFiresOnUp(t *testing.T) {
	e, r := newTestEngine()
	e.OnEvent(touch(ActionDown, 100, 100, 0))
	e.OnEvent(touch(ActionUp, 100, 100, 400))
	if len(r.taps) != 1 || r.terminals() != 1 {
		t.Fatalf("expected tap on release, got %+v", r)
	}
}

// TestDoubleTap_FiresOnceWithoutTap verifies a double tap never also fires a single tap.
func TestDoubleTap_FiresOnceWithoutTap(t *testing.T) {
	e, r := newTestEngine()
	e.OnEvent(touch(ActionDown, 100, 100, 0))
	e.OnEvent(touch(ActionUp, 100, 100, 50))
	e.OnEvent(touch(ActionDown, 110, 105, 150))
	e.OnEvent(touch(ActionUp, 110, 105, 200))
	e.Tick(at(5000))
	if len(r.doubleTaps) != 1 || r.terminals() != 1 {
		t.Fatalf("expected exactly one double tap, got %+v", r)
	}
}

// TestDoubleTap_TooFarIsTwoTaps verifies distant taps are not combined.
func TestDoubleTap_TooFarIsTwoTaps(t *testing.T) {
	e, r := newTestEngine()
	e.OnEvent(touch(ActionDown, 100, 100, 0))
	e.OnEvent(touch(ActionUp, 100, 100, 50))
	e.OnEvent(touch(ActionDown, 600, 600, 150))
	if len(r.taps) != 1 {
		t.Fatalf("expected first tap confirmed by the distant down, got %d", len(r.taps))
	}
	e.OnEvent(touch(ActionUp, 600, 600, 200))
	e.Tick(at(1000))
	if len(r.taps) != 2 || len(r.doubleTaps) != 0 {
		t.Fatalf("expected two taps and no double tap, got %+v", r)
	}
}

// TestLongPress_FiresOnUp verifies a long press is confirmed on release only.
func TestLongPress_FiresOnUp(t *testing.T) {
	e, r := newTestEngine()
	e.OnEvent(touch(ActionDown, 100, 100, 0))
	e.Tick(at(600))
	if e.State() != StateLongPressPending {
		t.Fatalf("expected long-press-pending, got %s", e.State())
	}
	if r.terminals() != 0 {
		t.Fatalf("expected nothing before release, got %+v", r)
	}
	e.OnEvent(touch(ActionUp, 100, 100, 700))
	if len(r.longPresses) != 1 || r.terminals() != 1 {
		t.Fatalf("expected exactly one long press, got %+v", r)
	}
}

// TestLongPress_ThenMoveDrags verifies motion after a long press becomes a drag.
func TestLongPress_ThenMoveDrags(t *testing.T) {
	e, r := newTestEngine()
	e.OnEvent(touch(ActionDown, 100, 100, 0))
	e.OnEvent(touch(ActionMove, 150, 100, 600))
	e.OnEvent(touch(ActionUp, 150, 100, 650))
	if len(r.swipes) != 2 {
		t.Fatalf("expected synthesized start plus one drag, got %+v", r.swipes)
	}
	first, second := r.swipes[0], r.swipes[1]
	if first.kind != "drag" || first.dx != 0 || first.cur != (viewport.Point{X: 100, Y: 100}) {
		t.Fatalf("expected zero-delta drag at touch-down, got %+v", first)
	}
	if second.kind != "drag" || second.dx != 50 {
		t.Fatalf("expected drag including slop distance, got %+v", second)
	}
	if r.terminals() != 0 {
		t.Fatalf("expected no tap-class action after drag, got %+v", r)
	}
}

// TestScroll_SynthesizesStartAndKeepsSlop verifies the first scroll sample carries the slop.
func TestScroll_SynthesizesStartAndKeepsSlop(t *testing.T) {
	e, r := newTestEngine()
	e.OnEvent(touch(ActionDown, 100, 100, 0))
	e.OnEvent(touch(ActionMove, 100, 110, 20))
	if len(r.swipes) != 0 {
		t.Fatalf("expected motion inside slop to be ignored, got %+v", r.swipes)
	}
	e.OnEvent(touch(ActionMove, 100, 130, 40))
	e.OnEvent(touch(ActionMove, 100, 140, 60))
	if len(r.swipes) != 3 {
		t.Fatalf("expected 3 swipe callbacks, got %+v", r.swipes)
	}
	if r.swipes[0].dy != 0 || r.swipes[1].dy != 30 || r.swipes[2].dy != 10 {
		t.Fatalf("unexpected deltas %+v", r.swipes)
	}
	if r.swipes[1].fingers != 1 {
		t.Fatalf("expected one-finger swipe, got %d", r.swipes[1].fingers)
	}
	e.OnEvent(touch(ActionUp, 100, 140, 2000))
	e.Tick(at(5000))
	if r.terminals() != 0 {
		t.Fatalf("expected no tap-class action after scroll, got %+v", r)
	}
}

// TestDoubleTapSwipe_RoutesAndSuppressesDoubleTap verifies motion inside a double tap is routed separately.
func TestDoubleTapSwipe_RoutesAndSuppressesDoubleTap(t *testing.T) {
	e, r := newTestEngine()
	e.OnEvent(touch(ActionDown, 100, 100, 0))
	e.OnEvent(touch(ActionUp, 100, 100, 50))
	e.OnEvent(touch(ActionDown, 100, 100, 150))
	e.OnEvent(touch(ActionMove, 100, 160, 200))
	e.OnEvent(touch(ActionUp, 100, 160, 250))
	if len(r.swipes) == 0 || r.swipes[0].kind != "double-tap-swipe" {
		t.Fatalf("expected double-tap swipe, got %+v", r.swipes)
	}
	e.Tick(at(5000))
	if r.terminals() != 0 {
		t.Fatalf("expected no tap-class action, got %+v", r)
	}
}

// TestDoubleTapHeld_FiresNothing verifies a held second tap neither double-taps nor long-presses.
func TestDoubleTapHeld_FiresNothing(t *testing.T) {
	e, r := newTestEngine()
	e.OnEvent(touch(ActionDown, 100, 100, 0))
	e.OnEvent(touch(ActionUp, 100, 100, 50))
	e.OnEvent(touch(ActionDown, 100, 100, 150))
	e.OnEvent(touch(ActionUp, 100, 100, 900))
	if r.terminals() != 0 {
		t.Fatalf("expected no terminal action, got %+v", r)
	}
}

// twoFinger builds an event carrying both test pointers.
func twoFinger(a Action, p0, p1 viewport.Point, ms int, actionPointer int32) Event {
	return Event{
		Action:        a,
		Time:          at(ms),
		ActionPointer: actionPointer,
		Pointers: []PointSample{
			{X: p0.X, Y: p0.Y, PointerID: 0, Time: at(ms)},
			{X: p1.X, Y: p1.Y, PointerID: 1, Time: at(ms)},
		},
	}
}

// TestTwoFingerTap verifies a quick stationary two-finger touch reports the finger count.
func TestTwoFingerTap(t *testing.T) {
	e, r := newTestEngine()
	p0 := viewport.Point{X: 100, Y: 100}
	p1 := viewport.Point{X: 200, Y: 100}
	e.OnEvent(touch(ActionDown, p0.X, p0.Y, 0))
	e.OnEvent(twoFinger(ActionPointerDown, p0, p1, 20, 1))
	e.OnEvent(twoFinger(ActionMove, p0.Add(2, 1), p1.Add(1, 2), 60, 1))
	e.OnEvent(twoFinger(ActionPointerUp, p0, p1, 100, 1))
	e.OnEvent(touch(ActionUp, p0.X, p0.Y, 120))
	e.Tick(at(5000))
	if len(r.multiTaps) != 1 || r.multiTaps[0] != 2 || r.terminals() != 1 {
		t.Fatalf("expected one two-finger tap, got %+v", r)
	}
}

// TestAngleClassification drives two-finger trajectories and checks which action fires.
func TestAngleClassification(t *testing.T) {
	cases := []struct {
		name      string
		v0, v1    viewport.Point
		wantSwipe bool
		wantScale bool
	}{
		{name: "pinch-out", v0: viewport.Point{X: -10, Y: -10}, v1: viewport.Point{X: 10, Y: 10}, wantScale: true},
		{name: "parallel-down", v0: viewport.Point{X: 0, Y: 10}, v1: viewport.Point{X: 0, Y: 10}, wantSwipe: true},
		{name: "undecided-38deg", v0: viewport.Point{X: -4, Y: 10}, v1: viewport.Point{X: 4, Y: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, r := newTestEngine()
			p0 := viewport.Point{X: 500, Y: 500}
			p1 := viewport.Point{X: 1000, Y: 1000}
			e.OnEvent(touch(ActionDown, p0.X, p0.Y, 0))
			e.OnEvent(twoFinger(ActionPointerDown, p0, p1, 5, 1))
			ms := 5
			for i := 0; i < 30; i++ {
				ms += 10
				p0 = p0.Add(tc.v0.X, tc.v0.Y)
				p1 = p1.Add(tc.v1.X, tc.v1.Y)
				e.OnEvent(twoFinger(ActionMove, p0, p1, ms, 1))
			}
			e.OnEvent(twoFinger(ActionPointerUp, p0, p1, ms+10, 1))
			e.OnEvent(touch(ActionUp, p0.X, p0.Y, ms+20))

			gotSwipe := len(r.swipes) > 0
			gotScale := len(r.scales) > 0
			if gotSwipe != tc.wantSwipe || gotScale != tc.wantScale {
				t.Fatalf("expected swipe=%v scale=%v, got swipe=%v scale=%v", tc.wantSwipe, tc.wantScale, gotSwipe, gotScale)
			}
			if tc.wantScale && r.scales[0] <= 1 {
				t.Fatalf("expected pinch-out factor > 1, got %v", r.scales[0])
			}
			if tc.wantSwipe && r.swipes[len(r.swipes)-1].fingers != 2 {
				t.Fatalf("expected two-finger swipe, got %+v", r.swipes[len(r.swipes)-1])
			}
		})
	}
}

// TestCancel_ResetsEverything verifies cancel drops state and the pending tap.
func TestCancel_ResetsEverything(t *testing.T) {
	e, r := newTestEngine()
	e.OnEvent(touch(ActionDown, 100, 100, 0))
	e.OnEvent(touch(ActionUp, 100, 100, 50))
	e.OnEvent(Event{Action: ActionCancel, Time: at(60)})
	e.Tick(at(1000))
	if r.terminals() != 0 {
		t.Fatalf("expected cancelled tap not to fire, got %+v", r)
	}
	e.OnEvent(touch(ActionDown, 100, 100, 1100))
	e.OnEvent(touch(ActionMove, 100, 200, 1120))
	e.OnEvent(Event{Action: ActionCancel, Time: at(1130)})
	if e.State() != StateIdle {
		t.Fatalf("expected idle after cancel, got %s", e.State())
	}
	if r.starts != r.stops {
		t.Fatalf("expected balanced start/stop, got %d/%d", r.starts, r.stops)
	}
}

// TestFling_FastSwipe verifies a fast single-finger release reports a fling.
func TestFling_FastSwipe(t *testing.T) {
	e, r := newTestEngine()
	e.OnEvent(touch(ActionDown, 100, 100, 0))
	e.OnEvent(touch(ActionMove, 150, 100, 10))
	e.OnEvent(touch(ActionMove, 250, 100, 20))
	e.OnEvent(touch(ActionUp, 250, 100, 30))
	if r.flings != 1 {
		t.Fatalf("expected one fling, got %d", r.flings)
	}
}
