package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/voiceofchrist/churchsite/internal/app/models"
	"golang.org/x/crypto/bcrypt"
)

func testAdmin() *models.Admin {
	return &models.Admin{
		ID:       7,
		Username: "admin",
		Email:    "admin@voiceofchrist.org",
		FullName: "System Administrator",
		IsActive: true,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "churchsite",
		TokenAudience:  "churchsite-admin",
	})

	token, expiresAt, err := svc.GenerateToken(testAdmin())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expiry should be in the future, got %v", expiresAt)
	}

	claims, err := svc.ValidateAndExtractClaims(token)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims: %v", err)
	}
	if claims.AdminID != 7 || claims.Username != "admin" || claims.FullName != "System Administrator" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "7" {
		t.Fatalf("subject = %q", claims.Subject)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Minute})
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.GenerateToken(testAdmin())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService(JWTConfig{SecretKey: "one", AccessTokenExp: time.Hour})
	verifier := NewJWTService(JWTConfig{SecretKey: "two", AccessTokenExp: time.Hour})

	token, _, err := issuer.GenerateToken(testAdmin())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := verifier.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateTokenWrongAudience(t *testing.T) {
	issuer := NewJWTService(JWTConfig{SecretKey: "s", AccessTokenExp: time.Hour, TokenAudience: "a"})
	verifier := NewJWTService(JWTConfig{SecretKey: "s", AccessTokenExp: time.Hour, TokenAudience: "b"})

	token, _, _ := issuer.GenerateToken(testAdmin())
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("token for another audience must be rejected")
	}
}

func TestExtractBearerToken(t *testing.T) {
	if _, err := ExtractBearerToken(""); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("empty header: %v", err)
	}
	if _, err := ExtractBearerToken("Bearer "); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("bare prefix: %v", err)
	}
	tok, err := ExtractBearerToken("Bearer abc.def")
	if err != nil || tok != "abc.def" {
		t.Fatalf("got %q, %v", tok, err)
	}
	tok, _ = ExtractBearerToken("raw")
	if tok != "raw" {
		t.Fatalf("raw header: got %q", tok)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPasswordWithCost("Admin@123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPasswordWithCost: %v", err)
	}
	if !CheckPassword(hash, "Admin@123") {
		t.Fatal("password should match its hash")
	}
	if CheckPassword(hash, "admin@123") {
		t.Fatal("different password must not match")
	}
	if CheckPassword("not-a-hash", "Admin@123") {
		t.Fatal("malformed hash must not match")
	}
}
