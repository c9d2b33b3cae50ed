// Package control carries raw client input into the gesture, key and
// dispatch pipeline and echoes the resulting RFB actions back.
package control

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/frudas24/rfbinput/internal/config"
	"github.com/frudas24/rfbinput/internal/sender"
	"github.com/frudas24/rfbinput/internal/session"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// ErrConnActive is returned when a second input connection is attempted.
var ErrConnActive = errors.New("input connection already active")

const writeTimeout = 2 * time.Second

// PrefsLoader returns the preferences for a new connection.
type PrefsLoader func() (config.Prefs, error)

// Server handles the input websocket.
type Server struct {
	mu        sync.Mutex
	upgrader  websocket.Upgrader
	session   *session.Session
	loadPrefs PrefsLoader
	tick      time.Duration
	local     sender.Sender
	conn      *websocket.Conn
	log       *log.Entry
}

// NewServer creates an input websocket server.
func NewServer(sess *session.Session, loadPrefs PrefsLoader, tick time.Duration) *Server {
	return &Server{
		session:   sess,
		loadPrefs: loadPrefs,
		tick:      tick,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log.WithField("component", "ws-input"),
	}
}

// SetLocalSender makes later connections also inject into local.
func (s *Server) SetLocalSender(local sender.Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.local = local
}

// ServeHTTP upgrades the connection and streams input messages into a
// per-connection pipeline.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	prefs, err := s.loadPrefs()
	if err != nil {
		s.log.WithError(err).Error("load prefs")
		http.Error(w, "prefs unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		s.log.WithError(err).Warn("rejecting input connection")
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)
	defer s.session.AttachInput()()

	entry := s.log.WithField("remote", r.RemoteAddr)
	entry.Info("input connected")
	defer entry.Info("input disconnected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	router := NewRouter(RouterConfig{
		Prefs:   prefs,
		Emit:    s.writer(conn, entry),
		Enabled: s.session.InputEnabled,
		Local:   s.localSender(),
		Log:     entry,
	})
	pipe := NewPipeline(router, s.tick, entry)
	go pipe.Run(ctx)
	defer func() {
		cancel()
		<-pipe.Done()
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.T == MsgInputEnabled {
			if msg.Enabled != nil {
				s.session.SetInputEnabled(*msg.Enabled)
			}
			continue
		}
		if err := pipe.Submit(ctx, msg); err != nil {
			return
		}
	}
}

// writer returns an Emitter writing JSON frames. Only the pipeline goroutine
// writes, so frames are never interleaved.
func (s *Server) writer(conn *websocket.Conn, entry *log.Entry) Emitter {
	return func(v any) {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(v); err != nil {
			entry.WithError(err).Debug("write echo")
		}
	}
}

// localSender returns the configured local sink, if any.
func (s *Server) localSender() sender.Sender {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local
}

// acceptConn ensures only one active input connection exists.
func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return ErrConnActive
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection when closed.
func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	_ = conn.Close()
}
