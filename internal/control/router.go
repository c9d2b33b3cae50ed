// Package control carries raw client input into the gesture, key and
// dispatch pipeline and echoes the resulting RFB actions back.
package control

import (
	"fmt"
	"time"

	"github.com/frudas24/rfbinput/internal/config"
	"github.com/frudas24/rfbinput/internal/dispatch"
	"github.com/frudas24/rfbinput/internal/gesture"
	"github.com/frudas24/rfbinput/internal/keys"
	"github.com/frudas24/rfbinput/internal/sender"
	"github.com/frudas24/rfbinput/internal/viewport"
	log "github.com/sirupsen/logrus"
)

// RouterConfig wires a Router.
type RouterConfig struct {
	Prefs config.Prefs
	// Emit receives every outbound message; nil drops them.
	Emit Emitter
	// Enabled gates input messages; nil means always enabled.
	Enabled func() bool
	// Local, when set, also receives every pointer and key event.
	Local sender.Sender
	Log   *log.Entry
}

// Router owns the per-connection input core: view transform, gesture engine,
// key translator and dispatcher. It is not safe for concurrent use; a
// Pipeline drives it from one goroutine.
type Router struct {
	vt         *viewport.Transform
	engine     *gesture.Engine
	translator *keys.Translator
	dispatcher *dispatch.Dispatcher
	view       *viewModel
	enabled    func() bool
	log        *log.Entry
	buttons    int
}

// NewRouter builds the input core for one connection.
func NewRouter(cfg RouterConfig) *Router {
	emit := cfg.Emit
	if emit == nil {
		emit = func(any) {}
	}
	enabled := cfg.Enabled
	if enabled == nil {
		enabled = func() bool { return true }
	}
	entry := cfg.Log
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}

	vt := viewport.New(cfg.Prefs.ZoomMin, cfg.Prefs.ZoomMax)
	vt.SetOnChange(func(s viewport.Snapshot) { emit(viewOut(s)) })
	view := &viewModel{vt: vt}
	var out sender.Sender = &echoSender{emit: emit}
	if cfg.Local != nil {
		out = sender.Tee{out, cfg.Local}
	}
	var vm sender.ViewModel = view
	if entry.Logger.IsLevelEnabled(log.DebugLevel) {
		ls := sender.NewLogSender(out, vm, entry)
		out, vm = ls, ls
	}
	d := dispatch.New(cfg.Prefs, vt, out, vm, entry)
	return &Router{
		vt:         vt,
		engine:     gesture.NewEngine(gesture.DefaultConfig(), d),
		translator: keys.NewTranslator(cfg.Prefs.LegacyKeysyms),
		dispatcher: d,
		view:       view,
		enabled:    enabled,
		log:        entry,
	}
}

// Transform returns the connection's view transform.
func (r *Router) Transform() *viewport.Transform {
	return r.vt
}

// Handle processes one inbound message at time now. Errors describe a
// malformed message; the router state stays consistent.
func (r *Router) Handle(msg Message, now time.Time) error {
	switch msg.T {
	case MsgViewport:
		r.vt.SetViewportSize(msg.W, msg.H)
		return nil
	case MsgFramebuffer:
		r.vt.SetFramebufferSize(msg.W, msg.H)
		return nil
	case MsgResetZoom:
		r.view.stopFling()
		r.vt.ResetZoom()
		return nil
	}
	if !r.enabled() {
		return nil
	}
	switch msg.T {
	case MsgTouch:
		ev, err := gestureEvent(msg)
		if err != nil {
			return err
		}
		ev.Time = now
		for i := range ev.Pointers {
			ev.Pointers[i].Time = now
		}
		r.handleMotion(ev)
		return nil
	case MsgKey:
		ev, err := keyEvent(msg)
		if err != nil {
			return err
		}
		r.dispatcher.OnStrokes(r.translator.OnKeyEvent(ev))
		return nil
	case MsgText:
		r.dispatcher.OnStrokes(r.translator.OnMultiCharInput(msg.Text))
		return nil
	default:
		return fmt.Errorf("unknown message type %q", msg.T)
	}
}

// Tick advances timeouts and momentum.
func (r *Router) Tick(now time.Time) {
	r.engine.Tick(now)
	r.view.step(now)
}

// Close releases every held key and button and aborts the gesture.
func (r *Router) Close() {
	r.engine.Cancel()
	r.dispatcher.OnStrokes(r.translator.ReleaseAll())
	r.dispatcher.Close()
}

// handleMotion routes a motion event by source and by the tool of its
// first pointer; Android reports pens and mice on touchscreen sources too.
func (r *Router) handleMotion(ev gesture.Event) {
	tool := gesture.ToolFinger
	if len(ev.Pointers) > 0 {
		tool = ev.Pointers[0].Tool
	}
	switch {
	case (ev.Source == gesture.SourceStylus || tool == gesture.ToolStylus) && len(ev.Pointers) > 0:
		r.dispatcher.OnStylus(ev.Action, ev.Pointers[0].Point())
	case (ev.Source == gesture.SourceMouse || tool == gesture.ToolMouse) && r.dispatcher.MousePassthrough():
		r.handleMouse(ev)
	case ev.Action == gesture.ActionScroll || ev.Action == gesture.ActionHover:
		// Wheel and hover only make sense for a mouse.
	default:
		if ev.Action == gesture.ActionDown {
			r.view.stopFling()
		}
		r.engine.OnEvent(ev)
	}
}

// mouseButtons maps platform button-state bits to RFB buttons.
var mouseButtons = []struct {
	bit    int
	button sender.Button
}{
	{1, sender.ButtonLeft},
	{2, sender.ButtonRight},
	{4, sender.ButtonMiddle},
}

// handleMouse forwards mouse events, diffing the button state.
func (r *Router) handleMouse(ev gesture.Event) {
	if len(ev.Pointers) == 0 {
		return
	}
	p := ev.Pointers[0].Point()
	switch ev.Action {
	case gesture.ActionScroll:
		r.dispatcher.OnMouseScroll(ev.ScrollX, ev.ScrollY, p)
		return
	case gesture.ActionHover, gesture.ActionMove:
		r.dispatcher.OnMouseMove(p)
	}
	state := ev.ButtonState
	if ev.Action == gesture.ActionCancel {
		state = 0
	}
	for _, mb := range mouseButtons {
		was := r.buttons&mb.bit != 0
		is := state&mb.bit != 0
		if was != is {
			r.dispatcher.OnMouseButton(mb.button, is, p)
		}
	}
	r.buttons = state
}
