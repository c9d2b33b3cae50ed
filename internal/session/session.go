// Package session holds authentication and input state shared by the
// HTTP handlers and the input transports.
package session

import "sync"

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated    bool `json:"authenticated"`
	PasswordRequired bool `json:"passwordRequired"`
	InputEnabled     bool `json:"inputEnabled"`
	ActiveInputs     int  `json:"activeInputs"`
}

// Session holds runtime state for the active viewer.
type Session struct {
	mu            sync.RWMutex
	password      string
	authenticated bool
	inputEnabled  bool
	activeInputs  int
}

// New returns an initialized session. An empty password disables
// authentication.
func New(password string) *Session {
	return &Session{
		password:     password,
		inputEnabled: true,
	}
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.password == "" || (pass != "" && pass == s.password) {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.password == "" || s.authenticated
}

// SetInputEnabled toggles whether inputs are forwarded.
func (s *Session) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputEnabled = enabled
}

// InputEnabled reports whether inputs are forwarded.
func (s *Session) InputEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputEnabled
}

// AttachInput records a new input transport and returns its detach func.
func (s *Session) AttachInput() func() {
	s.mu.Lock()
	s.activeInputs++
	s.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.activeInputs--
			s.mu.Unlock()
		})
	}
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Authenticated:    s.password == "" || s.authenticated,
		PasswordRequired: s.password != "",
		InputEnabled:     s.inputEnabled,
		ActiveInputs:     s.activeInputs,
	}
}
