// Package gesture classifies raw pointer streams into tap, double-tap,
// long-press, swipe, drag, pinch and fling gestures.
package gesture

import (
	"math"

	"github.com/frudas24/rfbinput/internal/viewport"
)

const (
	// ScaleAngle is the trajectory divergence above which two fingers pinch.
	ScaleAngle = 45.0
	// SwipeAngle is the trajectory divergence below which two fingers swipe.
	SwipeAngle = 30.0

	minTravel = 8.0
)

// Decision is the outcome of two-finger classification.
type Decision uint8

const (
	// Undecided means neither swipe nor scale may fire.
	Undecided Decision = iota
	// Swipe means both fingers travel in roughly the same direction.
	Swipe
	// Scale means the fingers diverge or converge (pinch).
	Scale
)

// String returns a readable decision name.
func (d Decision) String() string {
	switch d {
	case Swipe:
		return "swipe"
	case Scale:
		return "scale"
	default:
		return "undecided"
	}
}

type finger struct {
	id    int32
	start viewport.Point
	cur   viewport.Point
}

// Classifier decides whether a two-finger gesture is a swipe or a pinch from
// the angle between the fingers' trajectories. It is only active while
// exactly two pointers are down; any pointer change resets it. The first
// Swipe or Scale decision sticks until the reset.
type Classifier struct {
	tracking bool
	fingers  [2]finger
	decision Decision
}

// NewClassifier returns an idle classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// OnEvent feeds one raw event into the classifier.
func (c *Classifier) OnEvent(ev Event) {
	if ev.Action != ActionMove {
		c.Reset()
		if ps := ev.active(); len(ps) == 2 {
			c.track(ps)
		}
		return
	}
	if !c.tracking || len(ev.Pointers) != 2 {
		return
	}
	for _, p := range ev.Pointers {
		for i := range c.fingers {
			if c.fingers[i].id == p.PointerID {
				c.fingers[i].cur = p.Point()
			}
		}
	}
	if c.decision == Undecided {
		c.decision = c.decide()
	}
}

// Classify returns the current decision.
func (c *Classifier) Classify() Decision {
	return c.decision
}

// Active reports whether two fingers are being tracked.
func (c *Classifier) Active() bool {
	return c.tracking
}

// Reset clears all tracking state.
func (c *Classifier) Reset() {
	*c = Classifier{}
}

// track starts a new two-finger trajectory.
func (c *Classifier) track(ps []PointSample) {
	c.tracking = true
	for i := range c.fingers {
		c.fingers[i] = finger{id: ps[i].PointerID, start: ps[i].Point(), cur: ps[i].Point()}
	}
}

// decide compares both trajectory angles. A pivot, where only one finger
// travels, counts as a pinch.
func (c *Classifier) decide() Decision {
	a, b := c.fingers[0], c.fingers[1]
	movedA := a.cur.Distance(a.start) >= minTravel
	movedB := b.cur.Distance(b.start) >= minTravel
	switch {
	case !movedA && !movedB:
		return Undecided
	case movedA != movedB:
		return Scale
	}
	diff := math.Abs(angle(a) - angle(b))
	if diff > 180 {
		diff = 360 - diff
	}
	switch {
	case diff > ScaleAngle:
		return Scale
	case diff < SwipeAngle:
		return Swipe
	default:
		return Undecided
	}
}

// angle returns the trajectory direction in degrees within [0,360).
func angle(f finger) float64 {
	deg := math.Atan2(float64(f.cur.Y-f.start.Y), float64(f.cur.X-f.start.X)) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
