package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTVerifier(t *testing.T) {
	v, err := NewJWTVerifier("segredo")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		tok, err := v.Issue("emb-1", time.Hour)
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		sub, err := v.Verify(tok)
		if err != nil || sub != "emb-1" {
			t.Fatalf("expected emb-1, got %q err=%v", sub, err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		tok, _ := v.Issue("emb-1", -time.Minute)
		if _, err := v.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, _ := NewJWTVerifier("outro")
		tok, _ := other.Issue("emb-1", time.Hour)
		if _, err := v.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("sub claim fallback", func(t *testing.T) {
		tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "tra-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("segredo"))
		sub, err := v.Verify(tok)
		if err != nil || sub != "tra-1" {
			t.Fatalf("expected tra-1, got %q err=%v", sub, err)
		}
	})

	t.Run("missing subject", func(t *testing.T) {
		tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString([]byte("segredo"))
		if _, err := v.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := v.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestNewJWTVerifier_RequiresSecret(t *testing.T) {
	if _, err := NewJWTVerifier(""); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}
