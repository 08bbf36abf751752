package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestManager(expiry time.Duration) *SessionManager {
	return NewSessionManager(SessionConfig{
		Secret: "test-secret-do-not-use",
		Expiry: expiry,
		Issuer: "todo-manager-test",
	})
}

func TestSessionRoundTrip(t *testing.T) {
	m := newTestManager(time.Hour)

	token, jti, err := m.Issue(42, "alice", 3)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty JTI")
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.TokenVersion != 3 {
		t.Errorf("claims do not round-trip: %+v", claims)
	}
	if claims.ID != jti {
		t.Errorf("JTI mismatch: claims %q, issued %q", claims.ID, jti)
	}
}

func TestSessionWrongSecret(t *testing.T) {
	m := newTestManager(time.Hour)
	other := NewSessionManager(SessionConfig{
		Secret: "a-different-secret",
		Expiry: time.Hour,
		Issuer: "todo-manager-test",
	})

	token, _, err := m.Issue(1, "bob", 0)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionExpired(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, _, err := m.Issue(1, "carol", 0)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := m.Validate(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestSessionGarbageToken(t *testing.T) {
	m := newTestManager(time.Hour)

	if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
