package auth

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewTokenService("test-secret", "healthyfamilies-test")

	token, err := svc.GenerateToken("user-123", "bob@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
	}
	if claims.Email != "bob@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "bob@example.com")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", "healthyfamilies-test")

	token, err := svc.GenerateToken("user-123", "bob@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = svc.ValidateToken(token)
	if err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewTokenService("test-secret", "healthyfamilies-test")
	other := NewTokenService("other-secret", "healthyfamilies-test")

	token, err := svc.GenerateToken("user-123", "bob@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", "healthyfamilies-test")

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("expected validation to fail for garbage input")
	}
}

func TestGenerateSignInLink(t *testing.T) {
	svc := NewTokenService("test-secret", "healthyfamilies-test")

	link, err := svc.GenerateSignInLink("new@example.com", "https://app.example.com/join?invitationCode=ABCD1234")
	if err != nil {
		t.Fatalf("GenerateSignInLink failed: %v", err)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link is not a valid URL: %v", err)
	}
	if !strings.HasPrefix(link, "https://app.example.com/join") {
		t.Errorf("link does not preserve the continue URL: %q", link)
	}
	if u.Query().Get("invitationCode") != "ABCD1234" {
		t.Errorf("invitationCode query parameter lost: %q", link)
	}

	oob := u.Query().Get("oob")
	if oob == "" {
		t.Fatal("link is missing the oob token")
	}

	email, err := svc.ValidateSignInLinkToken(oob)
	if err != nil {
		t.Fatalf("ValidateSignInLinkToken failed: %v", err)
	}
	if email != "new@example.com" {
		t.Errorf("token email = %q, want %q", email, "new@example.com")
	}
}

func TestValidateSignInLinkTokenRejectsBearerToken(t *testing.T) {
	svc := NewTokenService("test-secret", "healthyfamilies-test")

	// A bearer token has no sign-in purpose claim and must not pass.
	token, err := svc.GenerateToken("user-123", "bob@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := svc.ValidateSignInLinkToken(token); err == nil {
		t.Error("expected sign-in validation to reject a bearer token")
	}
}
