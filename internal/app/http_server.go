// Package app wires HTTP, signaling, and input state together.
package app

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/frudas24/rfbinput/internal/config"
	"github.com/frudas24/rfbinput/internal/session"
	"github.com/frudas24/rfbinput/internal/web"
	log "github.com/sirupsen/logrus"
)

// maxPrefsBody bounds PUT /api/prefs payloads.
const maxPrefsBody = 64 << 10

// RegisterRoutes wires API and static handlers onto the mux.
func (a *App) RegisterRoutes(mux *http.ServeMux, staticDir string) {
	if staticDir == "" {
		staticDir = filepath.Join("internal", "web", "static")
	}

	mux.HandleFunc("/login", a.handleLogin)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/api/state", a.handleState)
	mux.HandleFunc("/api/prefs", a.handlePrefs)
	mux.Handle("/ws/signal", a.Signaling())
	mux.Handle("/ws/input", a.Control())
	mux.HandleFunc("/favicon.ico", handleFavicon)

	mux.Handle("/", staticFileServer(staticDir))
}

type loginRequest struct {
	Password string `json:"password"`
}

type stateResponse struct {
	session.Snapshot
	VideoDisabled bool   `json:"videoDisabled"`
	GestureStyle  string `json:"gestureStyle"`
}

// handleLogin authenticates the session.
func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if !a.session.Authenticate(req.Password) {
		a.log.WithField("remote", r.RemoteAddr).Warn("login rejected")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleLogout clears authentication state.
func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.session.Logout()
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// handleState returns the session snapshot plus the prefs a client needs
// before it connects.
func (a *App) handleState(w http.ResponseWriter, _ *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	prefs, err := a.Prefs()
	if err != nil {
		http.Error(w, "failed to load prefs", http.StatusInternalServerError)
		return
	}
	resp := stateResponse{
		Snapshot:      a.session.Snapshot(),
		VideoDisabled: prefs.VideoDisabled,
		GestureStyle:  prefs.GestureStyle,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// handlePrefs returns the effective prefs on GET and replaces them on PUT.
func (a *App) handlePrefs(w http.ResponseWriter, r *http.Request) {
	if !a.requireAuth(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		prefs, err := a.Prefs()
		if err != nil {
			http.Error(w, "failed to load prefs", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(prefs)
	case http.MethodPut:
		prefs := config.DefaultPrefs()
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPrefsBody)).Decode(&prefs); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if err := prefs.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := a.SavePrefs(prefs); err != nil {
			a.log.WithError(err).Error("save prefs")
			http.Error(w, "failed to save prefs", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(prefs)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// requireAuth returns false and writes an error if the session is not authenticated.
func (a *App) requireAuth(w http.ResponseWriter) bool {
	if !a.session.IsAuthenticated() {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// staticFileServer returns a handler for static assets, preferring disk then embed.
func staticFileServer(staticDir string) http.Handler {
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	embedded, err := web.StaticFS()
	if err != nil {
		log.WithError(err).Warn("static assets unavailable")
		return http.NotFoundHandler()
	}
	return http.FileServer(http.FS(embedded))
}

// handleFavicon avoids noisy 404s for the default browser request.
func handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
