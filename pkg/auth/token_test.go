package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-access-secret"

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	signed := signToken(t, testSecret, &Claims{
		Email: "guest@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := v.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Email != "guest@example.com" {
		t.Errorf("email claim = %q, want %q", claims.Email, "guest@example.com")
	}
}

func TestVerify_EmptyToken(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	if _, err := v.Verify(""); err == nil {
		t.Error("empty token should be rejected")
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	signed := signToken(t, testSecret, &Claims{
		Email: "guest@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	if _, err := v.Verify(signed); err == nil {
		t.Error("expired token should be rejected")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	signed := signToken(t, "some-other-secret", &Claims{
		Email: "guest@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := v.Verify(signed); err == nil {
		t.Error("token signed with a different secret should be rejected")
	}
}

func TestVerify_MissingEmailClaim(t *testing.T) {
	v := NewTokenVerifier(testSecret)
	signed := signToken(t, testSecret, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := v.Verify(signed); err == nil {
		t.Error("token without an email claim should be rejected")
	}
}

func TestVerify_RejectsNonHMAC(t *testing.T) {
	v := NewTokenVerifier(testSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Email: "guest@example.com"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign none-alg token: %v", err)
	}

	if _, err := v.Verify(signed); err == nil {
		t.Error("alg=none token should be rejected")
	}
}
