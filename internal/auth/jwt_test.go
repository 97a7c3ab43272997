package auth

import (
	"errors"
	"testing"
	"time"
)

func TestTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	token, issuedAt, err := mgr.Generate(42)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if issuedAt.After(time.Now().Add(time.Second)) {
		t.Fatal("expected issue time at or before now")
	}

	claims, err := mgr.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.IssuedAt == nil {
		t.Fatal("expected issued-at claim to be set")
	}
	if claims.ID == "" {
		t.Fatal("expected jti claim to be set")
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestGenerateRequiresUser(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := mgr.Generate(0); err == nil {
		t.Fatal("expected error for zero user id")
	}
}

func TestParseExpiredToken(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token, _, err := mgr.Generate(7)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, err := mgr.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseRejectsForeignToken(t *testing.T) {
	issuing, err := NewManager("secret-one", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verifying, err := NewManager("secret-two", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, _, err := issuing.Generate(7)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err := verifying.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := mgr.Parse("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
