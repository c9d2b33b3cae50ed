// Package dispatch turns classified gestures, mouse and key events into wire
// and view-model actions according to the user's bindings.
package dispatch

import (
	"github.com/frudas24/rfbinput/internal/config"
	log "github.com/sirupsen/logrus"
)

// Action is a bindable behavior.
type Action uint8

const (
	// ActionNone does nothing.
	ActionNone Action = iota
	// ActionLeftClick clicks the primary button.
	ActionLeftClick
	// ActionDoubleClick clicks the primary button twice.
	ActionDoubleClick
	// ActionMiddleClick clicks the middle button.
	ActionMiddleClick
	// ActionRightClick clicks the secondary button.
	ActionRightClick
	// ActionMovePointer moves the remote pointer.
	ActionMovePointer
	// ActionPan pans the local view.
	ActionPan
	// ActionRemoteScroll converts motion into wheel clicks.
	ActionRemoteScroll
	// ActionRemoteDrag holds the primary button while moving.
	ActionRemoteDrag
)

var actionNames = [...]string{
	ActionNone:         "none",
	ActionLeftClick:    "left-click",
	ActionDoubleClick:  "double-click",
	ActionMiddleClick:  "middle-click",
	ActionRightClick:   "right-click",
	ActionMovePointer:  "move-pointer",
	ActionPan:          "pan",
	ActionRemoteScroll: "remote-scroll",
	ActionRemoteDrag:   "remote-drag",
}

// String returns the configuration name of the action.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "none"
}

// ParseAction resolves a configuration name. Unknown names report false.
func ParseAction(s string) (Action, bool) {
	for i, n := range actionNames {
		if n == s {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// pointerClass reports whether a is valid for tap-like gestures.
func (a Action) pointerClass() bool {
	return a <= ActionMovePointer
}

// swipeClass reports whether a is valid for motion gestures.
func (a Action) swipeClass() bool {
	return a == ActionNone || a >= ActionMovePointer
}

// Gesture names a bindable gesture.
type Gesture uint8

// Bindable gestures, in configuration order.
const (
	GestureSingleTap Gesture = iota
	GestureDoubleTap
	GestureLongPress
	GestureTwoFingerTap
	GestureThreeFingerTap
	GestureDrag
	GestureSwipe1
	GestureSwipe2
	GestureSwipe3
	GestureDoubleTapSwipe
	gestureCount
)

var gestureNames = [gestureCount]string{
	GestureSingleTap:      "single_tap",
	GestureDoubleTap:      "double_tap",
	GestureLongPress:      "long_press",
	GestureTwoFingerTap:   "two_finger_tap",
	GestureThreeFingerTap: "three_finger_tap",
	GestureDrag:           "drag",
	GestureSwipe1:         "swipe_1finger",
	GestureSwipe2:         "swipe_2finger",
	GestureSwipe3:         "swipe_3finger",
	GestureDoubleTapSwipe: "double_tap_swipe",
}

// String returns the configuration name of the gesture.
func (g Gesture) String() string {
	if g < gestureCount {
		return gestureNames[g]
	}
	return "unknown"
}

// isMotion reports whether g carries deltas rather than a single point.
func (g Gesture) isMotion() bool {
	return g >= GestureDrag
}

// Bindings is the resolved gesture to action table.
type Bindings [gestureCount]Action

// Of returns the action bound to g.
func (b Bindings) Of(g Gesture) Action {
	if g >= gestureCount {
		return ActionNone
	}
	return b[g]
}

// ResolveBindings parses the configured names once. Unknown names and
// actions invalid for the gesture's class become ActionNone with a warning.
func ResolveBindings(p config.GesturePrefs, entry *log.Entry) Bindings {
	raw := [gestureCount]string{
		GestureSingleTap:      p.SingleTap,
		GestureDoubleTap:      p.DoubleTap,
		GestureLongPress:      p.LongPress,
		GestureTwoFingerTap:   p.TwoFingerTap,
		GestureThreeFingerTap: p.ThreeFingerTap,
		GestureDrag:           p.Drag,
		GestureSwipe1:         p.Swipe1,
		GestureSwipe2:         p.Swipe2,
		GestureSwipe3:         p.Swipe3,
		GestureDoubleTapSwipe: p.DoubleTapSwipe,
	}
	var b Bindings
	for i, name := range raw {
		g := Gesture(i)
		if name == "" {
			continue
		}
		a, ok := ParseAction(name)
		if !ok {
			entry.WithFields(log.Fields{"gesture": g, "action": name}).Warn("unknown action, using none")
			continue
		}
		if (g.isMotion() && !a.swipeClass()) || (!g.isMotion() && !a.pointerClass()) {
			entry.WithFields(log.Fields{"gesture": g, "action": name}).Warn("action not valid for gesture, using none")
			continue
		}
		b[g] = a
	}
	return b
}
