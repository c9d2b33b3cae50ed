// Package signaling negotiates WebRTC peers over a websocket and carries
// input messages on their data channel.
package signaling

import (
	"context"
	"encoding/json"

	"github.com/frudas24/rfbinput/internal/control"
	"github.com/pion/webrtc/v3"
	log "github.com/sirupsen/logrus"
)

// InputLabel is the data channel label that carries input messages.
const InputLabel = "input"

// bindInput runs an input pipeline for the lifetime of dc. Messages use the
// same JSON protocol as the input websocket.
func (s *Server) bindInput(parent context.Context, dc *webrtc.DataChannel, entry *log.Entry) {
	prefs, err := s.loadPrefs()
	if err != nil {
		entry.WithError(err).Error("load prefs")
		_ = dc.Close()
		return
	}
	s.mu.Lock()
	local := s.local
	s.mu.Unlock()
	ctx, cancel := context.WithCancel(parent)
	router := control.NewRouter(control.RouterConfig{
		Prefs: prefs,
		Emit: func(v any) {
			data, err := json.Marshal(v)
			if err != nil {
				return
			}
			if err := dc.SendText(string(data)); err != nil {
				entry.WithError(err).Debug("data channel send")
			}
		},
		Enabled: s.session.InputEnabled,
		Local:   local,
		Log:     entry,
	})
	pipe := control.NewPipeline(router, s.tick, entry)

	dc.OnOpen(func() {
		detach := s.session.AttachInput()
		entry.Info("input channel open")
		go func() {
			pipe.Run(ctx)
			detach()
		}()
	})
	dc.OnClose(func() {
		entry.Info("input channel closed")
		cancel()
	})
	dc.OnMessage(func(m webrtc.DataChannelMessage) {
		var msg control.Message
		if err := json.Unmarshal(m.Data, &msg); err != nil {
			entry.WithError(err).Debug("bad input message")
			return
		}
		if msg.T == control.MsgInputEnabled {
			if msg.Enabled != nil {
				s.session.SetInputEnabled(*msg.Enabled)
			}
			return
		}
		_ = pipe.Submit(ctx, msg)
	})
}
