package session

import "testing"

// TestAuthenticate_Success verifies successful authentication.
func TestAuthenticate_Success(t *testing.T) {
	s := New("secret")
	if !s.Authenticate("secret") {
		t.Fatalf("expected authentication to succeed")
	}
	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated state")
	}
}

// TestAuthenticate_Fail verifies failed authentication.
func TestAuthenticate_Fail(t *testing.T) {
	s := New("secret")
	if s.Authenticate("nope") {
		t.Fatalf("expected authentication to fail")
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected unauthenticated state")
	}
}

// TestLogout verifies logout clears auth state.
func TestLogout(t *testing.T) {
	s := New("secret")
	s.Authenticate("secret")
	s.Logout()
	if s.IsAuthenticated() {
		t.Fatalf("expected unauthenticated state")
	}
}

// TestInputEnabled_Toggle verifies input enabled toggle.
func TestInputEnabled_Toggle(t *testing.T) {
	s := New("secret")
	s.SetInputEnabled(false)
	if s.InputEnabled() {
		t.Fatalf("expected input disabled")
	}
	s.SetInputEnabled(true)
	if !s.InputEnabled() {
		t.Fatalf("expected input enabled")
	}
}

// TestSnapshot verifies snapshot content.
func TestSnapshot(t *testing.T) {
	s := New("secret")
	s.Authenticate("secret")
	s.SetInputEnabled(false)
	detach := s.AttachInput()
	snap := s.Snapshot()
	if !snap.Authenticated || snap.InputEnabled || !snap.PasswordRequired || snap.ActiveInputs != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	detach()
	detach()
	if n := s.Snapshot().ActiveInputs; n != 0 {
		t.Fatalf("expected 0 active inputs, got %d", n)
	}
}

// TestOpenSession verifies an empty password disables authentication.
func TestOpenSession(t *testing.T) {
	s := New("")
	if !s.IsAuthenticated() {
		t.Fatalf("expected open session to be authenticated")
	}
	s.Logout()
	if !s.IsAuthenticated() || s.Snapshot().PasswordRequired {
		t.Fatalf("expected open session to stay authenticated")
	}
}
