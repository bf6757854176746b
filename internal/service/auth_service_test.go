package service

import (
	"net/url"
	"testing"
	"time"

	apperrors "healthyfamilies/internal/errors"
)

// oobTokenFromLink extracts the sign-in token from a generated link.
func oobTokenFromLink(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link is not a valid URL: %v", err)
	}
	oob := u.Query().Get("oob")
	if oob == "" {
		t.Fatal("link is missing the oob token")
	}
	return oob
}

func TestRedeemSignInLinkCreatesAccount(t *testing.T) {
	env := newTestEnv(t)

	link, err := env.tokens.GenerateSignInLink("New.Person@Example.com", "http://test.local/join?invitationCode=ABCD1234")
	if err != nil {
		t.Fatalf("GenerateSignInLink failed: %v", err)
	}

	result, err := env.authSvc.RedeemSignInLink(oobTokenFromLink(t, link))
	if err != nil {
		t.Fatalf("RedeemSignInLink failed: %v", err)
	}
	if result.Status != StatusSuccess {
		t.Errorf("status = %q, want %q", result.Status, StatusSuccess)
	}

	// The account is created with the normalized email.
	user, err := env.userRepo.GetUserByEmail("new.person@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if user == nil {
		t.Fatal("account not created on first redemption")
	}
	if result.UserID != user.ID {
		t.Errorf("result userId = %q, want %q", result.UserID, user.ID)
	}

	// The issued token is a usable bearer token for that user.
	claims, err := env.tokens.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("token UserID = %q, want %q", claims.UserID, user.ID)
	}
}

func TestRedeemSignInLinkExistingAccount(t *testing.T) {
	env := newTestEnv(t)
	bob := env.createUser(t, "bob@example.com", "Bob")

	link, err := env.tokens.GenerateSignInLink("bob@example.com", "http://test.local/join?invitationCode=ABCD1234")
	if err != nil {
		t.Fatalf("GenerateSignInLink failed: %v", err)
	}

	result, err := env.authSvc.RedeemSignInLink(oobTokenFromLink(t, link))
	if err != nil {
		t.Fatalf("RedeemSignInLink failed: %v", err)
	}
	if result.UserID != bob {
		t.Errorf("result userId = %q, want the existing account %q", result.UserID, bob)
	}
}

func TestRedeemSignInLinkInvalidToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authSvc.RedeemSignInLink("not-a-token")
	expectKind(t, err, apperrors.KindUnauthenticated)
}

func TestRedeemSignInLinkRejectsBearerToken(t *testing.T) {
	env := newTestEnv(t)
	bob := env.createUser(t, "bob@example.com", "Bob")

	token, err := env.tokens.GenerateToken(bob, "bob@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = env.authSvc.RedeemSignInLink(token)
	expectKind(t, err, apperrors.KindUnauthenticated)
}
