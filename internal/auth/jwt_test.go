package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidate(t *testing.T) {
	a := NewJWTAuthenticator("s3cret", "fooddash", time.Minute)

	tok, err := a.GenerateToken("db-trigger", ServiceRole)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := a.ValidateToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := RoleFromToken(parsed); got != ServiceRole {
		t.Errorf("role = %q, want %q", got, ServiceRole)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tok, _ := NewJWTAuthenticator("one", "", time.Minute).GenerateToken("x", "anon")
	if _, err := NewJWTAuthenticator("two", "", time.Minute).ValidateToken(tok); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	claims := jwt.MapClaims{"sub": "x", "role": ServiceRole, "exp": time.Now().Add(-time.Minute).Unix()}
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s"))

	if _, err := NewJWTAuthenticator("s", "", time.Minute).ValidateToken(tok); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestValidateRejectsMissingExpiry(t *testing.T) {
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": ServiceRole}).SignedString([]byte("s"))

	if _, err := NewJWTAuthenticator("s", "", time.Minute).ValidateToken(tok); err == nil {
		t.Fatal("expected error for token without exp")
	}
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	tok, _ := NewJWTAuthenticator("s", "other", time.Minute).GenerateToken("x", ServiceRole)
	if _, err := NewJWTAuthenticator("s", "fooddash", time.Minute).ValidateToken(tok); err == nil {
		t.Fatal("expected issuer error")
	}
}

func TestRoleFromTokenMissingClaim(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"})
	if got := RoleFromToken(tok); got != "" {
		t.Errorf("role = %q", got)
	}
}
