// Package app wires HTTP, signaling, and input state together.
package app

import (
	"errors"
	"sync"
	"time"

	"github.com/frudas24/rfbinput/internal/config"
	"github.com/frudas24/rfbinput/internal/control"
	"github.com/frudas24/rfbinput/internal/session"
	"github.com/frudas24/rfbinput/internal/signaling"
	"github.com/frudas24/rfbinput/internal/wininput"
	log "github.com/sirupsen/logrus"
)

// App coordinates the HTTP API, the input websocket and WebRTC signaling.
type App struct {
	mu        sync.Mutex
	cfg       config.Config
	session   *session.Session
	signaling *signaling.Server
	control   *control.Server
	log       *log.Entry
}

// New creates a new application with its dependencies wired.
func New(cfg config.Config, sess *session.Session, peers *signaling.PeerFactory, policy signaling.ViewerPolicy) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if peers == nil {
		return nil, errors.New("peer factory is required")
	}
	if cfg.PrefsPath == "" {
		return nil, errors.New("prefs path is required")
	}

	app := &App{
		cfg:     cfg,
		session: sess,
		log:     log.WithField("component", "app"),
	}
	tick := time.Duration(cfg.TickMs) * time.Millisecond
	app.signaling = signaling.NewServer(peers, sess, app.Prefs, tick, policy)
	app.control = control.NewServer(sess, app.Prefs, tick)

	if cfg.InputSink == config.SinkLocal {
		dev, err := wininput.NewDevice()
		if err != nil {
			return nil, err
		}
		local := wininput.NewSender(dev, app.log)
		app.control.SetLocalSender(local)
		app.signaling.SetLocalSender(local)
		app.log.Info("local input injection enabled")
	}
	return app, nil
}

// Start checks that the stored preferences load before serving.
func (a *App) Start() error {
	prefs, err := a.Prefs()
	if err != nil {
		return err
	}
	a.log.WithFields(log.Fields{
		"path":   a.cfg.PrefsPath,
		"style":  prefs.GestureStyle,
		"legacy": prefs.LegacyKeysyms,
	}).Info("prefs loaded")
	return nil
}

// Prefs reads the current preferences from disk. Each input connection calls
// it once when it opens.
func (a *App) Prefs() (config.Prefs, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return config.LoadPrefs(a.cfg.PrefsPath)
}

// SavePrefs validates and stores prefs, then asks the WebRTC peer to
// renegotiate so its next input channel picks them up.
func (a *App) SavePrefs(prefs config.Prefs) error {
	a.mu.Lock()
	err := config.SavePrefs(a.cfg.PrefsPath, prefs)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	a.log.WithField("path", a.cfg.PrefsPath).Info("prefs saved")
	a.signaling.NotifyRestart()
	return nil
}

// Signaling returns the signaling websocket handler.
func (a *App) Signaling() *signaling.Server {
	return a.signaling
}

// Control returns the input websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}
