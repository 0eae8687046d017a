package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSignVerifyRoundtrip(t *testing.T) {
	secret := []byte("test-secret")

	signed, exp, err := Sign(Claims{UserID: "user-1", IsAdmin: true}, secret, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expected expiry in the future")
	}

	claims, err := Verify(signed, secret)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || !claims.IsAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, _, err := Sign(Claims{UserID: "user-1"}, []byte("secret-a"), time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Verify(signed, []byte("secret-b")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	signed, _, err := Sign(Claims{UserID: "user-1"}, secret, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Verify(signed, secret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	if _, err := Verify("not.a.token", []byte("secret")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
