package auth

import (
	"testing"
	"time"
)

func TestAuthToken_RoundTrip(t *testing.T) {
	at := NewAuthToken("test-secret")

	token, err := at.GenerateToken("client-1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	valid, clientID, err := at.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if !valid {
		t.Error("expected token to be valid")
	}
	if clientID != "client-1" {
		t.Errorf("clientID = %s, want client-1", clientID)
	}
}

func TestAuthToken_RejectsWrongSecret(t *testing.T) {
	token, err := NewAuthToken("secret-a").GenerateToken("client-1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if valid, _, err := NewAuthToken("secret-b").VerifyToken(token); err == nil || valid {
		t.Errorf("expected verification failure, got valid=%v err=%v", valid, err)
	}
}

func TestAuthToken_RejectsExpired(t *testing.T) {
	at := NewAuthToken("test-secret").WithTTL(-time.Minute)

	token, err := at.GenerateToken("client-1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if valid, _, err := at.VerifyToken(token); err == nil || valid {
		t.Errorf("expected expired token rejection, got valid=%v err=%v", valid, err)
	}
}

func TestAuthToken_RejectsGarbage(t *testing.T) {
	at := NewAuthToken("test-secret")

	if valid, _, err := at.VerifyToken("not.a.token"); err == nil || valid {
		t.Errorf("expected parse failure, got valid=%v err=%v", valid, err)
	}
}

func TestAuthToken_EmptySecret(t *testing.T) {
	at := NewAuthToken("")

	if _, err := at.GenerateToken("client-1"); err == nil {
		t.Error("expected error for empty secret")
	}
}
