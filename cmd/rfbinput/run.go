// Package main starts the rfbinput server.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/frudas24/rfbinput/internal/app"
	"github.com/frudas24/rfbinput/internal/config"
	"github.com/frudas24/rfbinput/internal/session"
	"github.com/frudas24/rfbinput/internal/signaling"
	log "github.com/sirupsen/logrus"
)

// run wires the application and blocks until shutdown.
func run(debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg.LogLevel, debug); err != nil {
		return err
	}
	logStartup(cfg)

	password := cfg.UIPassword
	if !cfg.PasswordMode {
		password = ""
	}
	sess := session.New(password)

	peers, err := signaling.NewPeerFactory(cfg.ICEServers)
	if err != nil {
		return err
	}

	appInstance, err := app.New(cfg, sess, peers, signaling.ViewerReplace)
	if err != nil {
		return err
	}
	if err := appInstance.Start(); err != nil {
		return err
	}

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux, "")
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// setupLogging applies LOG_LEVEL; -debug overrides it.
func setupLogging(level string, debug bool) error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	if debug {
		lvl = log.DebugLevel
	}
	log.SetLevel(lvl)
	log.WithField("level", lvl.String()).Debug("debug logging enabled")
	return nil
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	log.WithError(err).Error("fatal")
	os.Exit(1)
}

// logStartup prints startup checks and connection info.
func logStartup(cfg config.Config) {
	log.Info("rfbinput starting")
	logEnvStatus(cfg)
	log.WithField("path", cfg.PrefsPath).Info("prefs file")
	if len(cfg.ICEServers) == 0 {
		log.Info("ice servers: none (host candidates only)")
	} else {
		log.WithField("servers", cfg.ICEServers).Info("ice servers")
	}
	logListenStatus(cfg.ListenAddr)
}

// logEnvStatus reports whether a .env file was found and the password mode.
func logEnvStatus(cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		log.Infof("env check: ok (%s)", envPath)
	} else {
		log.Infof("env check: missing (%s)", envPath)
	}
	if cfg.PasswordMode {
		log.Info("env UI_PASSWORD: set")
	} else {
		log.Warn("env PASSWORD_MODE: disabled (dev mode)")
	}
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(addr string) {
	log.Infof("listen addr: %s", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	log.Infof("local url: http://%s", net.JoinHostPort(host, port))
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
