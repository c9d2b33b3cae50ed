package sender

import (
	"testing"

	"github.com/frudas24/rfbinput/internal/keys"
	"github.com/frudas24/rfbinput/internal/viewport"
)

// TestMaskTracker_CarriesHeldButtons verifies events report every held button.
func TestMaskTracker_CarriesHeldButtons(t *testing.T) {
	var m MaskTracker
	p := viewport.Point{X: 10.4, Y: 20.6}
	if ev := m.Down(ButtonLeft, p); ev.Mask != 1 || ev.X != 10 || ev.Y != 21 {
		t.Fatalf("expected left held at (10,21), got %+v", ev)
	}
	if ev := m.Down(ButtonRight, p); ev.Mask != 5 {
		t.Fatalf("expected mask 5, got %d", ev.Mask)
	}
	if ev := m.Up(ButtonLeft, p); ev.Mask != 4 {
		t.Fatalf("expected mask 4, got %d", ev.Mask)
	}
	if ev := m.Move(viewport.Point{X: -3, Y: 70000}); ev.X != 0 || ev.Y != 65535 || ev.Mask != 4 {
		t.Fatalf("expected clamped move with mask 4, got %+v", ev)
	}
}

// TestMaskTracker_ClickRestoresMask verifies a wheel click leaves the mask unchanged.
func TestMaskTracker_ClickRestoresMask(t *testing.T) {
	var m MaskTracker
	m.Down(ButtonLeft, viewport.Point{})
	pair := m.Click(WheelDown, viewport.Point{})
	if pair[0].Mask != uint8(ButtonLeft|WheelDown) || pair[1].Mask != uint8(ButtonLeft) {
		t.Fatalf("expected wheel press/release over held left, got %+v", pair)
	}
	if m.Mask() != uint8(ButtonLeft) {
		t.Fatalf("expected left still held, got %d", m.Mask())
	}
}

// countSender counts calls.
type countSender struct {
	Noop
	keys int
}

// SendKeySym counts a key event.
func (c *countSender) SendKeySym(keys.Keysym, bool) {
	c.keys++
}

// TestTee_ForwardsToAll verifies each sender sees every call.
func TestTee_ForwardsToAll(t *testing.T) {
	a, b := &countSender{}, &countSender{}
	tee := Tee{a, b}
	tee.SendKeySym(keys.Return, true)
	tee.SendKeySym(keys.Return, false)
	tee.SendClick(ButtonLeft, viewport.Point{})
	if a.keys != 2 || b.keys != 2 {
		t.Fatalf("expected 2 keys each, got %d and %d", a.keys, b.keys)
	}
}
