package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash must not equal the raw password")
	}

	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("Expected matching password to verify")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("Expected wrong password to fail")
	}
	if CheckPassword("not-a-hash", "anything") {
		t.Error("Expected garbage hash to fail")
	}
}

func TestSessionTokenRoundtrip(t *testing.T) {
	token, err := NewSessionToken("u1", "secret")
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	uid, err := ParseSessionToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseSessionToken failed: %v", err)
	}
	if uid != "u1" {
		t.Errorf("Expected user u1, got %s", uid)
	}
}

func TestSessionTokenRejection(t *testing.T) {
	token, err := NewSessionToken("u1", "secret")
	if err != nil {
		t.Fatalf("NewSessionToken failed: %v", err)
	}

	expired := jwt.New(jwt.SigningMethodHS256)
	expiredClaims := expired.Claims.(jwt.MapClaims)
	expiredClaims["uid"] = "u1"
	expiredClaims["exp"] = time.Now().Add(-time.Hour).Unix()
	expiredToken, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("Failed to sign expired token: %v", err)
	}

	noUID := jwt.New(jwt.SigningMethodHS256)
	noUID.Claims.(jwt.MapClaims)["exp"] = time.Now().Add(time.Hour).Unix()
	noUIDToken, err := noUID.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("Failed to sign uid-less token: %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "wrong secret", token: token, secret: "other-secret"},
		{name: "malformed token", token: "not.a.token", secret: "secret"},
		{name: "empty token", token: "", secret: "secret"},
		{name: "expired token", token: expiredToken, secret: "secret"},
		{name: "missing uid claim", token: noUIDToken, secret: "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseSessionToken(tt.token, tt.secret); !errors.Is(err, ErrInvalidSession) {
				t.Errorf("Expected ErrInvalidSession, got %v", err)
			}
		})
	}
}
