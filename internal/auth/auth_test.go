package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("kisan123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "kisan123") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected mismatch")
	}
}

func TestJWT_SignAndParse(t *testing.T) {
	tok, err := SignJWT(42, "s3cret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	uid, err := ParseJWT(tok, "s3cret")
	if err != nil || uid != 42 {
		t.Fatalf("expected uid 42, got %d err=%v", uid, err)
	}
	if _, err := ParseJWT(tok, "other"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestJWT_Expired(t *testing.T) {
	tok, err := SignJWT(1, "s3cret", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT(tok, "s3cret"); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}
