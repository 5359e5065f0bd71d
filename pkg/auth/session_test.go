package auth

import (
	"strings"
	"testing"
	"time"
)

func newTestSessionAuth(t *testing.T) *SessionAuth {
	t.Helper()
	sessionAuth, err := NewSessionAuth("test-secret-key-for-sessions", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create session auth: %v", err)
	}
	return sessionAuth
}

func TestNewSessionAuth_RequiresSecret(t *testing.T) {
	if _, err := NewSessionAuth("", time.Hour); err == nil {
		t.Error("Expected error for empty secret")
	}
}

func TestNewSessionAuth_DefaultExpiry(t *testing.T) {
	sessionAuth, err := NewSessionAuth("secret", 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sessionAuth.SessionExpiry != 7*24*time.Hour {
		t.Errorf("Expected 7 day default expiry, got %v", sessionAuth.SessionExpiry)
	}
}

func TestSessionToken_RoundTrip(t *testing.T) {
	sessionAuth := newTestSessionAuth(t)

	token, err := sessionAuth.GenerateSessionToken("user-123", "bill@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	user, err := sessionAuth.VerifySessionToken(token)
	if err != nil {
		t.Fatalf("Failed to verify token: %v", err)
	}
	if user.ID != "user-123" {
		t.Errorf("Expected user ID user-123, got %s", user.ID)
	}
	if user.Email != "bill@example.com" {
		t.Errorf("Expected email bill@example.com, got %s", user.Email)
	}
}

func TestVerifySessionToken_RejectsWrongKey(t *testing.T) {
	sessionAuth := newTestSessionAuth(t)
	other, _ := NewSessionAuth("a-different-secret-key", time.Hour)

	token, err := other.GenerateSessionToken("user-123", "bill@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := sessionAuth.VerifySessionToken(token); err == nil {
		t.Error("Expected verification to fail for token signed with another key")
	}
}

func TestVerifySessionToken_RejectsGarbage(t *testing.T) {
	sessionAuth := newTestSessionAuth(t)
	if _, err := sessionAuth.VerifySessionToken("not-a-jwt"); err == nil {
		t.Error("Expected verification to fail for malformed token")
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	sessionAuth := newTestSessionAuth(t)

	hash, err := sessionAuth.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if !strings.HasPrefix(hash, "argon2id$") {
		t.Errorf("Expected argon2id prefix, got %s", hash)
	}

	ok, err := sessionAuth.VerifyPassword(hash, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Failed to verify password: %v", err)
	}
	if !ok {
		t.Error("Expected correct password to verify")
	}

	ok, err = sessionAuth.VerifyPassword(hash, "wrong password")
	if err != nil {
		t.Fatalf("Failed to verify password: %v", err)
	}
	if ok {
		t.Error("Expected wrong password to fail verification")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	sessionAuth := newTestSessionAuth(t)

	a, _ := sessionAuth.HashPassword("same password")
	b, _ := sessionAuth.HashPassword("same password")
	if a == b {
		t.Error("Expected different salts to produce different hashes")
	}
}

func TestVerifyPassword_RejectsMalformedHash(t *testing.T) {
	sessionAuth := newTestSessionAuth(t)

	if _, err := sessionAuth.VerifyPassword("plaintext", "pw"); err == nil {
		t.Error("Expected error for hash without prefix")
	}
	if _, err := sessionAuth.VerifyPassword("argon2id$onlyonepart", "pw"); err == nil {
		t.Error("Expected error for hash with missing parts")
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid bearer", "Bearer abc123", "abc123", false},
		{"case insensitive scheme", "bearer abc123", "abc123", false},
		{"empty header", "", "", true},
		{"missing token", "Bearer ", "", true},
		{"no scheme", "abc123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ExtractToken(tt.header)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if token != tt.want {
				t.Errorf("Expected token %q, got %q", tt.want, token)
			}
		})
	}
}
