package token

import (
	"errors"
	"testing"
	"time"

	"parcelpro/internal/apperr"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := NewService("test-secret", 24*time.Hour)

	signed, err := svc.Issue("sender@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	email, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if email != "sender@example.com" {
		t.Fatalf("expected embedded email, got %q", email)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	signed, err := svc.Issue("sender@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, apperr.Unauthorized) {
		t.Fatalf("expected Unauthorized for expired token, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewService("secret-a", 24*time.Hour)
	verifier := NewService("secret-b", 24*time.Hour)

	signed, err := issuer.Issue("sender@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, apperr.Unauthorized) {
		t.Fatalf("expected Unauthorized for wrong secret, got %v", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := NewService("test-secret", 24*time.Hour)

	for _, raw := range []string{"", "   ", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, apperr.Unauthorized) {
			t.Fatalf("expected Unauthorized for %q, got %v", raw, err)
		}
	}
}
