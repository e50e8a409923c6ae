package auth

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateJWT(secret, "alice", "admin", "sess-123", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Username != "alice" {
		t.Errorf("username = %q, want alice", claims.Username)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q, want admin", claims.Role)
	}
	if claims.SessionID != "sess-123" {
		t.Errorf("session_id = %q, want sess-123", claims.SessionID)
	}
}

func TestParseJWTRejects(t *testing.T) {
	token, err := GenerateJWT("right-secret", "alice", "agent", "s", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseJWT("wrong-secret", token); err == nil {
		t.Error("expected error for wrong secret")
	}
	if _, err := ParseJWT("right-secret", "not.a.token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestGenerateJWTDefaultExpiration(t *testing.T) {
	// Non-positive expiration falls back to 8 hours rather than issuing
	// an already expired token.
	token, err := GenerateJWT("s", "alice", "agent", "sess", 0)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ParseJWT("s", token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.ExpiresAt.Before(time.Now().Add(7 * time.Hour)) {
		t.Errorf("expires_at = %s, want about 8h out", claims.ExpiresAt)
	}
}
