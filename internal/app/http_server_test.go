package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/frudas24/rfbinput/internal/config"
	"github.com/frudas24/rfbinput/internal/session"
	"github.com/frudas24/rfbinput/internal/signaling"
	"github.com/frudas24/rfbinput/internal/wininput"
)

// newTestApp builds an App whose prefs live in a temp dir.
func newTestApp(t *testing.T, sess *session.Session) *App {
	t.Helper()
	peers, err := signaling.NewPeerFactory(nil)
	if err != nil {
		t.Fatalf("peer factory: %v", err)
	}
	cfg := config.Config{
		PrefsPath: filepath.Join(t.TempDir(), "prefs.yaml"),
		TickMs:    16,
	}
	a, err := New(cfg, sess, peers, signaling.ViewerReject)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

// serve runs one request through the registered routes.
func serve(a *App, method, path, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	a.RegisterRoutes(mux, "")
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// TestNew_RequiresSession verifies missing dependencies are rejected.
func TestNew_RequiresSession(t *testing.T) {
	peers, err := signaling.NewPeerFactory(nil)
	if err != nil {
		t.Fatalf("peer factory: %v", err)
	}
	if _, err := New(config.Config{PrefsPath: "x"}, nil, peers, signaling.ViewerReject); err == nil {
		t.Fatalf("expected error without session")
	}
}

// TestNew_LocalSinkUnsupported verifies the local sink fails fast off Windows.
func TestNew_LocalSinkUnsupported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("local injection is available on Windows")
	}
	peers, err := signaling.NewPeerFactory(nil)
	if err != nil {
		t.Fatalf("peer factory: %v", err)
	}
	cfg := config.Config{PrefsPath: "x", InputSink: config.SinkLocal}
	if _, err := New(cfg, session.New(""), peers, signaling.ViewerReject); !errors.Is(err, wininput.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

// TestLogin_Flow verifies login gates the API and logout closes it again.
func TestLogin_Flow(t *testing.T) {
	a := newTestApp(t, session.New("pw"))

	if rec := serve(a, http.MethodGet, "/api/state", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before login, got %d", rec.Code)
	}
	if rec := serve(a, http.MethodPost, "/login", `{"password":"nope"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}
	if rec := serve(a, http.MethodPost, "/login", `{"password":"pw"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for login, got %d", rec.Code)
	}

	rec := serve(a, http.MethodGet, "/api/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for state, got %d", rec.Code)
	}
	var state map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state["authenticated"] != true || state["gestureStyle"] != config.StyleTouchscreen {
		t.Fatalf("unexpected state: %v", state)
	}

	serve(a, http.MethodPost, "/logout", "")
	if rec := serve(a, http.MethodGet, "/api/prefs", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

// TestPrefs_GetDefaults verifies GET returns defaults when no file exists.
func TestPrefs_GetDefaults(t *testing.T) {
	a := newTestApp(t, session.New(""))
	rec := serve(a, http.MethodGet, "/api/prefs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var prefs config.Prefs
	if err := json.Unmarshal(rec.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("decode prefs: %v", err)
	}
	if prefs.Gestures.SingleTap != "left-click" || prefs.DPI != 160 {
		t.Fatalf("unexpected prefs: %+v", prefs)
	}
}

// TestPrefs_PutPersists verifies PUT stores prefs that later loads return.
func TestPrefs_PutPersists(t *testing.T) {
	a := newTestApp(t, session.New(""))
	body := `{"gesture_style":"touchpad","swipe_sensitivity":2,"gestures":{"single_tap":"middle-click"}}`
	rec := serve(a, http.MethodPut, "/api/prefs", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	prefs, err := a.Prefs()
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if prefs.GestureStyle != config.StyleTouchpad || prefs.SwipeSensitivity != 2 {
		t.Fatalf("unexpected prefs: %+v", prefs)
	}
	if prefs.Gestures.SingleTap != "middle-click" {
		t.Fatalf("expected single tap middle-click, got %q", prefs.Gestures.SingleTap)
	}
	if prefs.ZoomMax != 5 {
		t.Fatalf("expected untouched zoom_max 5, got %v", prefs.ZoomMax)
	}
}

// TestPrefs_PutRejectsInvalid verifies validation errors surface as 400.
func TestPrefs_PutRejectsInvalid(t *testing.T) {
	a := newTestApp(t, session.New(""))
	rec := serve(a, http.MethodPut, "/api/prefs", `{"zoom_min":3,"zoom_max":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec := serve(a, http.MethodDelete, "/api/prefs", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

// TestStatic_ServesIndex verifies the embedded client page is served.
func TestStatic_ServesIndex(t *testing.T) {
	a := newTestApp(t, session.New(""))
	mux := http.NewServeMux()
	a.RegisterRoutes(mux, filepath.Join(t.TempDir(), "missing"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("/ws/input")) {
		t.Fatalf("expected index page referencing /ws/input")
	}
}
