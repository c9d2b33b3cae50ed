// Package control carries raw client input into the gesture, key and
// dispatch pipeline and echoes the resulting RFB actions back.
package control

import (
	"fmt"

	"github.com/frudas24/rfbinput/internal/gesture"
	"github.com/frudas24/rfbinput/internal/keys"
)

// Inbound message types.
const (
	MsgTouch        = "touch"
	MsgKey          = "key"
	MsgText         = "text"
	MsgViewport     = "viewport"
	MsgFramebuffer  = "framebuffer"
	MsgResetZoom    = "resetZoom"
	MsgInputEnabled = "inputEnabled"
)

// Outbound message types.
const (
	OutPointer = "pointer"
	OutKey     = "key"
	OutView    = "view"
)

// Pointer is one contact in a touch message, in viewport pixels.
type Pointer struct {
	ID   int32   `json:"id"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	Tool string  `json:"tool,omitempty"`
}

// Message is an inbound input payload.
type Message struct {
	T             string    `json:"t"`
	Action        string    `json:"action,omitempty"`
	Pointers      []Pointer `json:"pointers,omitempty"`
	ActionPointer int32     `json:"actionPointer,omitempty"`
	Buttons       int       `json:"buttons,omitempty"`
	Source        string    `json:"source,omitempty"`
	ScrollX       float32   `json:"scrollX,omitempty"`
	ScrollY       float32   `json:"scrollY,omitempty"`
	Keycode       int32     `json:"keycode,omitempty"`
	Unicode       int32     `json:"unicode,omitempty"`
	Meta          int32     `json:"meta,omitempty"`
	Repeat        int32     `json:"repeat,omitempty"`
	Text          string    `json:"text,omitempty"`
	W             float32   `json:"w,omitempty"`
	H             float32   `json:"h,omitempty"`
	Enabled       *bool     `json:"enabled,omitempty"`
}

// PointerOut is an RFB PointerEvent echoed to the client.
type PointerOut struct {
	T    string `json:"t"`
	X    uint16 `json:"x"`
	Y    uint16 `json:"y"`
	Mask uint8  `json:"mask"`
}

// KeyOut is an RFB KeyEvent echoed to the client.
type KeyOut struct {
	T    string `json:"t"`
	Sym  uint32 `json:"sym"`
	Down bool   `json:"down"`
}

// ViewOut publishes the view transform after every change.
type ViewOut struct {
	T     string  `json:"t"`
	Scale float32 `json:"scale"`
	Zoom  float32 `json:"zoom"`
	PanX  float32 `json:"panX"`
	PanY  float32 `json:"panY"`
}

// Source names for touch messages.
const (
	SourceTouchscreen = "touchscreen"
	SourceMouse       = "mouse"
	SourceStylus      = "stylus"
)

// gestureEvent converts a touch message into a raw motion event.
func gestureEvent(msg Message) (gesture.Event, error) {
	action, ok := gesture.ParseAction(msg.Action)
	if !ok {
		return gesture.Event{}, fmt.Errorf("unknown touch action %q", msg.Action)
	}
	ev := gesture.Event{
		Action:        action,
		ActionPointer: msg.ActionPointer,
		ButtonState:   msg.Buttons,
		ScrollX:       msg.ScrollX,
		ScrollY:       msg.ScrollY,
		Pointers:      make([]gesture.PointSample, 0, len(msg.Pointers)),
	}
	switch msg.Source {
	case SourceMouse:
		ev.Source = gesture.SourceMouse
	case SourceStylus:
		ev.Source = gesture.SourceStylus
	default:
		ev.Source = gesture.SourceTouchscreen
	}
	for _, p := range msg.Pointers {
		ev.Pointers = append(ev.Pointers, gesture.PointSample{
			X:         p.X,
			Y:         p.Y,
			PointerID: p.ID,
			Tool:      gesture.ParseToolType(p.Tool),
		})
	}
	return ev, nil
}

// keyEvent converts a key message into a platform key event.
func keyEvent(msg Message) (keys.Event, error) {
	ev := keys.Event{
		Keycode:    msg.Keycode,
		Unicode:    msg.Unicode,
		MetaState:  msg.Meta,
		Repeat:     msg.Repeat,
		Characters: msg.Text,
	}
	switch msg.Action {
	case "down":
		ev.Action = keys.ActionDown
	case "up":
		ev.Action = keys.ActionUp
	case "multiple":
		ev.Action = keys.ActionMultiple
	default:
		return keys.Event{}, fmt.Errorf("unknown key action %q", msg.Action)
	}
	return ev, nil
}
