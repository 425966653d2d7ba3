package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/nestjs-store-microservices/auth-ms/internal/common"
)

func TestSignAndVerify_Success(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("super-secret"), time.Hour)
	userID := "user-123"

	tok, err := codec.Sign(userID)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	claims, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", claims.UserID, userID)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatalf("expected issued/expiry timestamps, got %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Fatalf("expected 1h validity window, got %v", got)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("secret"), -1*time.Second)

	tok, err := codec.Sign("u1")
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	_, err = codec.Verify(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenCodec([]byte("right-secret"), time.Hour).Sign("u2")
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	_, err = NewTokenCodec([]byte("wrong-secret"), time.Hour).Verify(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("k"), time.Hour)
	_, err := codec.Verify("not.a.jwt")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestVerify_TamperedToken(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("k"), time.Hour)
	tok, err := codec.Sign("u3")
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	// flip one byte at a time; every mutation must be rejected
	for i := 0; i < len(tok); i += 7 {
		raw := []byte(tok)
		raw[i] ^= 0x01
		if _, err := codec.Verify(string(raw)); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("expected common.ErrInvalidToken after flipping byte %d, got %v", i, err)
		}
	}
}

func TestSign_UniquePerCall(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("k"), time.Hour)

	a, err := codec.Sign("u4")
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	b, err := codec.Sign("u4")
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct tokens for consecutive mints")
	}
}
