package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("0123456789abcdef", time.Hour)

	token, err := issuer.Issue("user-42")
	if err != nil {
		t.Fatal(err)
	}
	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != "user-42" {
		t.Fatalf("subject: got %s", userID)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("0123456789abcdef", time.Hour)
	other := NewTokenIssuer("fedcba9876543210", time.Hour)

	token, err := issuer.Issue("user-42")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := issuer.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer("0123456789abcdef", time.Hour)
	issuer.now = func() time.Time { return base }

	token, err := issuer.Issue("user-42")
	if err != nil {
		t.Fatal(err)
	}

	issuer.now = func() time.Time { return base.Add(2 * time.Hour) }
	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(time.Hour)
	store.now = func() time.Time { return base }

	token, err := store.Create("user-42")
	if err != nil {
		t.Fatal(err)
	}
	if userID, ok := store.Resolve(token); !ok || userID != "user-42" {
		t.Fatalf("resolve: got %q, %v", userID, ok)
	}

	store.Destroy(token)
	if _, ok := store.Resolve(token); ok {
		t.Fatal("destroyed session must not resolve")
	}
}

func TestSessionExpiry(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(time.Hour)
	store.now = func() time.Time { return base }

	token, err := store.Create("user-42")
	if err != nil {
		t.Fatal(err)
	}

	store.now = func() time.Time { return base.Add(2 * time.Hour) }
	if _, ok := store.Resolve(token); ok {
		t.Fatal("expired session must not resolve")
	}
}
