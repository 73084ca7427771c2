package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := CheckPassword(hash, "secret-password"); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if err := CheckPassword(hash, "wrong-password"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestSessionTokenOpaque(t *testing.T) {
	a := NewSessionToken()
	b := NewSessionToken()
	if a == b {
		t.Fatalf("tokens must be unique")
	}
	if len(a) < 64 {
		t.Fatalf("token too short: %d", len(a))
	}
}

func TestLoginTicketRoundTrip(t *testing.T) {
	ticket, err := GenerateLoginTicket("secret", "promoter-1", 5*time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	claims, err := ParseLoginTicket("secret", ticket)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.PromoterID != "promoter-1" {
		t.Fatalf("unexpected promoter id %q", claims.PromoterID)
	}
	if _, err := ParseLoginTicket("other-secret", ticket); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestLoginTicketExpiry(t *testing.T) {
	ticket, err := GenerateLoginTicket("secret", "promoter-1", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseLoginTicket("secret", ticket); err == nil {
		t.Fatalf("expected expiry error")
	}
}
