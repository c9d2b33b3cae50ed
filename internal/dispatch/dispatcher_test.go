package dispatch

import (
	"math"
	"testing"
	"time"

	"github.com/frudas24/rfbinput/internal/config"
	"github.com/frudas24/rfbinput/internal/keys"
	"github.com/frudas24/rfbinput/internal/sender"
	"github.com/frudas24/rfbinput/internal/testutil"
	"github.com/frudas24/rfbinput/internal/viewport"
)

// newTestDispatcher builds a dispatcher over a 1000x500 framebuffer shown in
// a 1000x800 viewport (letterboxed by 150px top and bottom).
func newTestDispatcher(t *testing.T, mutate func(*config.Prefs)) (*Dispatcher, *testutil.FakeSender) {
	t.Helper()
	prefs := config.DefaultPrefs()
	if mutate != nil {
		mutate(&prefs)
	}
	vt := viewport.New(prefs.ZoomMin, prefs.ZoomMax)
	vt.SetFramebufferSize(1000, 500)
	vt.SetViewportSize(1000, 800)
	fake := &testutil.FakeSender{}
	return New(prefs, vt, fake, fake, nil), fake
}

// TestResolveBindings_FallsBackToNone verifies unknown and misclassed actions become none.
func TestResolveBindings_FallsBackToNone(t *testing.T) {
	d, _ := newTestDispatcher(t, func(p *config.Prefs) {
		p.Gestures.SingleTap = "pan"
		p.Gestures.DoubleTap = "triple-click"
		p.Gestures.Swipe1 = "right-click"
	})
	b := d.Bindings()
	if b.Of(GestureSingleTap) != ActionNone || b.Of(GestureDoubleTap) != ActionNone || b.Of(GestureSwipe1) != ActionNone {
		t.Fatalf("expected none bindings, got %v %v %v", b.Of(GestureSingleTap), b.Of(GestureDoubleTap), b.Of(GestureSwipe1))
	}
	if b.Of(GestureLongPress) != ActionRightClick {
		t.Fatalf("expected default long press binding, got %v", b.Of(GestureLongPress))
	}
}

// TestParseAction verifies names round-trip through String.
func TestParseAction(t *testing.T) {
	for a := ActionNone; a <= ActionRemoteDrag; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Fatalf("expected %v, got %v (%v)", a, got, ok)
		}
	}
	if _, ok := ParseAction("bogus"); ok {
		t.Fatalf("expected unknown action to fail")
	}
}

// TestTap_ClicksInFramebufferSpace verifies taps are mapped before clicking.
func TestTap_ClicksInFramebufferSpace(t *testing.T) {
	d, fake := newTestDispatcher(t, nil)
	d.OnTap(viewport.Point{X: 100, Y: 200})
	clicks := fake.Named("Click")
	if len(clicks) != 1 || clicks[0].Button != sender.ButtonLeft {
		t.Fatalf("expected one left click, got %+v", clicks)
	}
	if clicks[0].Point != (viewport.Point{X: 100, Y: 50}) {
		t.Fatalf("expected (100,50), got %+v", clicks[0].Point)
	}
}

// TestTap_OutsideFramebufferIsDropped verifies letterbox taps do nothing.
func TestTap_OutsideFramebufferIsDropped(t *testing.T) {
	d, fake := newTestDispatcher(t, nil)
	d.OnTap(viewport.Point{X: 100, Y: 10})
	d.OnLongPress(viewport.Point{X: 100, Y: 790})
	if n := len(fake.Calls()); n != 0 {
		t.Fatalf("expected no calls, got %d", n)
	}
}

// TestDoubleTapAndMultiFingerTap verifies button choice and click counts.
func TestDoubleTapAndMultiFingerTap(t *testing.T) {
	d, fake := newTestDispatcher(t, nil)
	p := viewport.Point{X: 500, Y: 400}
	d.OnDoubleTap(p)
	if n := len(fake.Named("Click")); n != 2 {
		t.Fatalf("expected 2 clicks for double-click, got %d", n)
	}
	fake.Reset()
	d.OnMultiFingerTap(p, 2)
	d.OnMultiFingerTap(p, 3)
	d.OnMultiFingerTap(p, 4)
	clicks := fake.Named("Click")
	if len(clicks) != 2 || clicks[0].Button != sender.ButtonRight || clicks[1].Button != sender.ButtonMiddle {
		t.Fatalf("expected right then middle click, got %+v", clicks)
	}
}

// TestRemoteScroll_Quantization verifies 3.5 quanta produce 3 clicks and leave half pending.
func TestRemoteScroll_Quantization(t *testing.T) {
	d, fake := newTestDispatcher(t, nil)
	q := d.Scroll().Quantum
	start := viewport.Point{X: 500, Y: 400}
	d.OnGestureStart()
	for i := 0; i < 7; i++ {
		d.OnSwipe(2, start, start, 0, q/2)
	}
	clicks := fake.Named("Click")
	if len(clicks) != 3 {
		t.Fatalf("expected 3 wheel clicks, got %d", len(clicks))
	}
	for _, c := range clicks {
		if c.Button != sender.WheelUp {
			t.Fatalf("expected wheel up, got %v", c.Button)
		}
	}
	if _, dy := d.Scroll().Pending(); math.Abs(float64(dy-q/2)) > 1e-4 {
		t.Fatalf("expected %v pending, got %v", q/2, dy)
	}
}

// TestScrollAccumulator_AxesIndependent verifies each axis drains separately.
func TestScrollAccumulator_AxesIndependent(t *testing.T) {
	s := NewScrollAccumulator(2, 160)
	if s.Quantum != 10 {
		t.Fatalf("expected quantum 10, got %v", s.Quantum)
	}
	got := s.Add(-25, 11)
	want := []sender.Button{sender.WheelUp, sender.WheelRight, sender.WheelRight}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

// TestRemoteDrag_DownMoveUp verifies the drag button is released on gesture stop.
func TestRemoteDrag_DownMoveUp(t *testing.T) {
	d, fake := newTestDispatcher(t, nil)
	start := viewport.Point{X: 100, Y: 200}
	d.OnGestureStart()
	d.OnDrag(start, start, 0, 0)
	d.OnDrag(start, start.Add(30, 0), 30, 0)
	d.OnDrag(start, start.Add(60, 0), 30, 0)
	d.OnGestureStop(start.Add(60, 0))
	downs := fake.Named("PointerDown")
	ups := fake.Named("PointerUp")
	if len(downs) != 1 || len(ups) != 1 {
		t.Fatalf("expected one down and one up, got %d/%d", len(downs), len(ups))
	}
	if downs[0].Point != (viewport.Point{X: 100, Y: 50}) {
		t.Fatalf("expected press at drag start, got %+v", downs[0].Point)
	}
	if ups[0].Point != (viewport.Point{X: 160, Y: 50}) {
		t.Fatalf("expected release at last position, got %+v", ups[0].Point)
	}
	d.OnGestureStop(start)
	if len(fake.Named("PointerUp")) != 1 {
		t.Fatalf("expected no second release")
	}
}

// TestPanAndFling verifies pan bindings reach the view model.
func TestPanAndFling(t *testing.T) {
	d, fake := newTestDispatcher(t, nil)
	p := viewport.Point{X: 500, Y: 400}
	d.OnSwipe(1, p, p, 0, 0)
	d.OnSwipe(1, p, p.Add(5, 0), 5, 0)
	d.OnFling(300, 0)
	pans := fake.Named("Pan")
	if len(pans) != 1 || pans[0].A != 5 {
		t.Fatalf("expected one pan of 5, got %+v", pans)
	}
	if len(fake.Named("Fling")) != 1 {
		t.Fatalf("expected fling request")
	}
	d.OnScale(1.5, 10, 20)
	if z := fake.Named("Zoom"); len(z) != 1 || z[0].A != 1.5 {
		t.Fatalf("expected zoom request, got %+v", z)
	}
}

// TestFling_IgnoredWithoutPan verifies fling needs a pan binding.
func TestFling_IgnoredWithoutPan(t *testing.T) {
	d, fake := newTestDispatcher(t, func(p *config.Prefs) { p.Gestures.Swipe1 = "remote-scroll" })
	d.OnFling(300, 0)
	if len(fake.Named("Fling")) != 0 {
		t.Fatalf("expected no fling request")
	}
}

// TestKeyBinding_RunsPointerAction verifies bound keys are swallowed and act on the pointer.
func TestKeyBinding_RunsPointerAction(t *testing.T) {
	d, fake := newTestDispatcher(t, func(p *config.Prefs) {
		p.KeyBindings = map[string]string{"Menu": "right-click", "Nope": "left-click", "F2": "pan"}
	})
	d.OnMouseMove(viewport.Point{X: 300, Y: 300})
	fake.Reset()
	d.OnKeySym(keys.Menu, true)
	d.OnKeySym(keys.Menu, false)
	d.OnKeySym(keys.F1+1, true)
	d.OnKeySym(keys.F1+1, false)
	clicks := fake.Named("Click")
	if len(clicks) != 1 || clicks[0].Button != sender.ButtonRight || clicks[0].Point != (viewport.Point{X: 300, Y: 150}) {
		t.Fatalf("expected right click at pointer, got %+v", clicks)
	}
	if ks := fake.Named("KeySym"); len(ks) != 2 || ks[0].Sym != keys.F1+1 {
		t.Fatalf("expected F2 passthrough, got %+v", ks)
	}
}

// TestMouseButton_ReleaseOutsideStillSent verifies a held button is always released.
func TestMouseButton_ReleaseOutsideStillSent(t *testing.T) {
	d, fake := newTestDispatcher(t, nil)
	d.OnMouseButton(sender.ButtonLeft, true, viewport.Point{X: 10, Y: 400})
	d.OnMouseButton(sender.ButtonLeft, false, viewport.Point{X: 10, Y: 5})
	d.OnMouseButton(sender.ButtonLeft, false, viewport.Point{X: 10, Y: 400})
	if len(fake.Named("PointerDown")) != 1 || len(fake.Named("PointerUp")) != 1 {
		t.Fatalf("expected one down and one up, got %+v", fake.Calls())
	}
}

// TestMouseScroll_Notches verifies wheel notches map to clicks.
func TestMouseScroll_Notches(t *testing.T) {
	d, fake := newTestDispatcher(t, nil)
	d.OnMouseScroll(0, -2, viewport.Point{X: 10, Y: 400})
	d.OnMouseScroll(0.3, 0, viewport.Point{X: 10, Y: 400})
	clicks := fake.Named("Click")
	if len(clicks) != 3 || clicks[0].Button != sender.WheelDown || clicks[2].Button != sender.WheelRight {
		t.Fatalf("expected 2 down and 1 right, got %+v", clicks)
	}
}

// TestTouchpad_RelativeMove verifies touchpad style moves the pointer with acceleration.
func TestTouchpad_RelativeMove(t *testing.T) {
	d, fake := newTestDispatcher(t, func(p *config.Prefs) {
		p.GestureStyle = config.StyleTouchpad
		p.Gestures.Swipe1 = "move-pointer"
	})
	now := time.Unix(100, 0)
	d.SetNowFunc(func() time.Time { return now })
	p := viewport.Point{X: 500, Y: 400}
	d.OnSwipe(1, p, p, 0, 0)
	d.OnSwipe(1, p, p.Add(10, 0), 10, 0)
	moves := fake.Named("PointerMove")
	if len(moves) != 1 {
		t.Fatalf("expected one move, got %+v", moves)
	}
	if got := moves[0].Point.X; math.Abs(float64(got-4)) > 1e-3 {
		t.Fatalf("expected slow move scaled to 4, got %v", got)
	}
	d.OnSwipe(1, p, p.Add(-50, 0), -50, 0)
	if last := fake.Named("PointerMove"); last[len(last)-1].Point.X != 0 {
		t.Fatalf("expected pointer clamped at 0, got %+v", last[len(last)-1].Point)
	}
	d.OnTap(p)
	if c := fake.Named("Click"); len(c) != 1 || c[0].Point != d.Pointer() {
		t.Fatalf("expected tap at pointer, got %+v", c)
	}
}

// TestClose_ReleasesHeldButtons verifies held buttons are released on close.
func TestClose_ReleasesHeldButtons(t *testing.T) {
	d, fake := newTestDispatcher(t, nil)
	d.OnMouseButton(sender.ButtonRight, true, viewport.Point{X: 10, Y: 400})
	start := viewport.Point{X: 100, Y: 200}
	d.OnDoubleTapSwipe(start, start, 0, 0)
	d.Close()
	if len(fake.Named("PointerUp")) != 2 {
		t.Fatalf("expected two releases, got %+v", fake.Calls())
	}
}
