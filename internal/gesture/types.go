// Package gesture classifies raw pointer streams into tap, double-tap,
// long-press, swipe, drag, pinch and fling gestures.
package gesture

import (
	"math"
	"time"

	"github.com/frudas24/rfbinput/internal/viewport"
)

// ToolType identifies what produced a pointer sample.
type ToolType uint8

const (
	// ToolFinger is a finger on a touchscreen.
	ToolFinger ToolType = iota
	// ToolStylus is a pen or stylus.
	ToolStylus
	// ToolMouse is a mouse or trackpad cursor.
	ToolMouse
)

// String returns the protocol name of the tool.
func (t ToolType) String() string {
	switch t {
	case ToolStylus:
		return "stylus"
	case ToolMouse:
		return "mouse"
	default:
		return "finger"
	}
}

// ParseToolType maps a protocol name to a ToolType, defaulting to finger.
func ParseToolType(s string) ToolType {
	switch s {
	case "stylus":
		return ToolStylus
	case "mouse":
		return ToolMouse
	default:
		return ToolFinger
	}
}

// PointSample is a single pointer position.
type PointSample struct {
	X         float32
	Y         float32
	PointerID int32
	Tool      ToolType
	Time      time.Time
}

// Point returns the sample position.
func (p PointSample) Point() viewport.Point {
	return viewport.Point{X: p.X, Y: p.Y}
}

// Action is the kind of raw motion event.
type Action uint8

const (
	// ActionDown is the first pointer touching down.
	ActionDown Action = iota
	// ActionMove is movement of one or more pointers.
	ActionMove
	// ActionUp is the last pointer lifting.
	ActionUp
	// ActionCancel aborts the current gesture.
	ActionCancel
	// ActionPointerDown is an additional pointer touching down.
	ActionPointerDown
	// ActionPointerUp is a non-final pointer lifting.
	ActionPointerUp
	// ActionScroll is a mouse wheel or trackpad scroll.
	ActionScroll
	// ActionHover is pointer movement without contact.
	ActionHover
)

var actionNames = map[string]Action{
	"down":        ActionDown,
	"move":        ActionMove,
	"up":          ActionUp,
	"cancel":      ActionCancel,
	"pointerDown": ActionPointerDown,
	"pointerUp":   ActionPointerUp,
	"scroll":      ActionScroll,
	"hover":       ActionHover,
}

// ParseAction maps a protocol name to an Action.
func ParseAction(s string) (Action, bool) {
	a, ok := actionNames[s]
	return a, ok
}

// String returns the protocol name of the action.
func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return "unknown"
}

// Source identifies the device class that produced an event.
type Source uint8

const (
	// SourceTouchscreen is a direct touch surface.
	SourceTouchscreen Source = iota
	// SourceMouse is a mouse or trackpad.
	SourceMouse
	// SourceStylus is a pen digitizer.
	SourceStylus
)

// Event is a raw motion event. For ActionPointerUp and ActionUp, Pointers
// still contains the lifting pointer, identified by ActionPointer.
type Event struct {
	Action        Action
	Pointers      []PointSample
	ActionPointer int32
	ButtonState   int
	Source        Source
	ScrollX       float32
	ScrollY       float32
	Time          time.Time
}

// active returns the pointers that remain in contact after the event.
func (ev Event) active() []PointSample {
	switch ev.Action {
	case ActionUp, ActionCancel:
		return nil
	case ActionPointerUp:
		out := make([]PointSample, 0, len(ev.Pointers))
		for _, p := range ev.Pointers {
			if p.PointerID != ev.ActionPointer {
				out = append(out, p)
			}
		}
		return out
	default:
		return ev.Pointers
	}
}

// centroid returns the mean position of the pointers.
func centroid(ps []PointSample) viewport.Point {
	if len(ps) == 0 {
		return viewport.Point{}
	}
	var sx, sy float32
	for _, p := range ps {
		sx += p.X
		sy += p.Y
	}
	n := float32(len(ps))
	return viewport.Point{X: sx / n, Y: sy / n}
}

// span returns the average distance of the pointers from their centroid, doubled.
func span(ps []PointSample) float32 {
	if len(ps) < 2 {
		return 0
	}
	c := centroid(ps)
	var sum float64
	for _, p := range ps {
		sum += math.Hypot(float64(p.X-c.X), float64(p.Y-c.Y))
	}
	return float32(2 * sum / float64(len(ps)))
}
