// Package sender defines the outbound interfaces the input core drives: the
// RFB wire sender and the local view model.
package sender

import (
	"github.com/frudas24/rfbinput/internal/keys"
	"github.com/frudas24/rfbinput/internal/viewport"
	log "github.com/sirupsen/logrus"
)

// LogSender decorates a Sender and a ViewModel with debug logging.
type LogSender struct {
	Next  Sender
	View  ViewModel
	Entry *log.Entry
}

// NewLogSender wraps next and view, logging through entry.
func NewLogSender(next Sender, view ViewModel, entry *log.Entry) *LogSender {
	if next == nil {
		next = Noop{}
	}
	if view == nil {
		view = Noop{}
	}
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}
	return &LogSender{Next: next, View: view, Entry: entry}
}

// SendPointerMove logs and forwards a move.
func (l *LogSender) SendPointerMove(p viewport.Point) {
	l.Entry.WithFields(log.Fields{"x": p.X, "y": p.Y}).Trace("pointer move")
	l.Next.SendPointerMove(p)
}

// SendPointerDown logs and forwards a button press.
func (l *LogSender) SendPointerDown(b Button, p viewport.Point) {
	l.Entry.WithFields(log.Fields{"button": b, "x": p.X, "y": p.Y}).Debug("pointer down")
	l.Next.SendPointerDown(b, p)
}

// SendPointerUp logs and forwards a button release.
func (l *LogSender) SendPointerUp(b Button, p viewport.Point) {
	l.Entry.WithFields(log.Fields{"button": b, "x": p.X, "y": p.Y}).Debug("pointer up")
	l.Next.SendPointerUp(b, p)
}

// SendClick logs and forwards a click.
func (l *LogSender) SendClick(b Button, p viewport.Point) {
	l.Entry.WithFields(log.Fields{"button": b, "x": p.X, "y": p.Y}).Debug("click")
	l.Next.SendClick(b, p)
}

// SendKeySym logs and forwards a key event.
func (l *LogSender) SendKeySym(sym keys.Keysym, down bool) {
	l.Entry.WithFields(log.Fields{"sym": sym, "down": down}).Debug("key")
	l.Next.SendKeySym(sym, down)
}

// RequestZoom logs and forwards a zoom request.
func (l *LogSender) RequestZoom(factor, fx, fy float32) {
	l.Entry.WithFields(log.Fields{"factor": factor, "fx": fx, "fy": fy}).Trace("zoom")
	l.View.RequestZoom(factor, fx, fy)
}

// RequestPan logs and forwards a pan request.
func (l *LogSender) RequestPan(dx, dy float32) {
	l.Entry.WithFields(log.Fields{"dx": dx, "dy": dy}).Trace("pan")
	l.View.RequestPan(dx, dy)
}

// RequestFling logs and forwards a fling request.
func (l *LogSender) RequestFling(vx, vy float32) {
	l.Entry.WithFields(log.Fields{"vx": vx, "vy": vy}).Debug("fling")
	l.View.RequestFling(vx, vy)
}
