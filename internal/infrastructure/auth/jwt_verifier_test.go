package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/riskibarqy/fitness-league/internal/usecase"
)

const testSecret = "local-dev-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func validClaims() Claims {
	now := time.Now()
	return Claims{
		Email: "rina@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			Issuer:    "fitness-auth",
			Audience:  jwt.ClaimStrings{"fitness-league"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestJWTVerifier_VerifyAccessToken(t *testing.T) {
	t.Parallel()

	verifier, err := NewJWTVerifier(testSecret, "fitness-auth", "fitness-league")
	if err != nil {
		t.Fatalf("NewJWTVerifier error: %v", err)
	}

	principal, err := verifier.VerifyAccessToken(context.Background(), signToken(t, testSecret, jwt.SigningMethodHS256, validClaims()))
	if err != nil {
		t.Fatalf("VerifyAccessToken error: %v", err)
	}
	if principal.UserID != "user-123" || principal.Email != "rina@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestJWTVerifier_RejectsInvalidTokens(t *testing.T) {
	t.Parallel()

	verifier, err := NewJWTVerifier(testSecret, "fitness-auth", "fitness-league")
	if err != nil {
		t.Fatalf("NewJWTVerifier error: %v", err)
	}

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"

	wrongAudience := validClaims()
	wrongAudience.Audience = jwt.ClaimStrings{"other-app"}

	noSubject := validClaims()
	noSubject.Subject = ""

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name   string
		token  string
		reason string
	}{
		{name: "empty", token: "  ", reason: "token is required"},
		{name: "malformed", token: "not-a-jwt", reason: "malformed token"},
		{name: "expired", token: signToken(t, testSecret, jwt.SigningMethodHS256, expired), reason: "token expired"},
		{name: "wrong secret", token: signToken(t, "other-secret", jwt.SigningMethodHS256, validClaims()), reason: "invalid signature"},
		{name: "wrong algorithm", token: signToken(t, testSecret, jwt.SigningMethodHS512, validClaims()), reason: "invalid signature"},
		{name: "wrong issuer", token: signToken(t, testSecret, jwt.SigningMethodHS256, wrongIssuer), reason: "invalid issuer"},
		{name: "wrong audience", token: signToken(t, testSecret, jwt.SigningMethodHS256, wrongAudience), reason: "invalid audience"},
		{name: "missing expiry", token: signToken(t, testSecret, jwt.SigningMethodHS256, noExpiry), reason: "invalid token"},
		{name: "missing subject", token: signToken(t, testSecret, jwt.SigningMethodHS256, noSubject), reason: "token subject is empty"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := verifier.VerifyAccessToken(context.Background(), tc.token)
			if !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.reason) {
				t.Fatalf("expected reason %q in %q", tc.reason, err.Error())
			}
		})
	}
}

func TestNewJWTVerifier_RequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTVerifier(" ", "", ""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
