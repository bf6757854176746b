package service

import (
	"fmt"
	"time"

	"healthyfamilies/internal/auth"
	apperrors "healthyfamilies/internal/errors"
	"healthyfamilies/internal/repository"
	"healthyfamilies/internal/validation"

	"github.com/google/uuid"
)

// AuthService redeems emailed sign-in links for bearer tokens
type AuthService struct {
	tokens   *auth.TokenService
	userRepo *repository.UserRepository
	tokenTTL time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(tokens *auth.TokenService, userRepo *repository.UserRepository, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		tokens:   tokens,
		userRepo: userRepo,
		tokenTTL: tokenTTL,
	}
}

// SignInResult carries the bearer token issued for a redeemed link
type SignInResult struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// RedeemSignInLink exchanges the oob token from an emailed sign-in link
// for a bearer token, creating the account on first use. An invitee who
// followed the link can then call the join endpoint with it.
func (s *AuthService) RedeemSignInLink(oobToken string) (*SignInResult, error) {
	email, err := s.tokens.ValidateSignInLinkToken(oobToken)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnauthenticated, "The sign-in link is invalid or has expired.", err)
	}
	email = validation.NormalizeEmail(email)

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.userRepo.CreateUser(uuid.New().String(), email, "")
		if err != nil {
			return nil, err
		}
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue bearer token: %w", err)
	}

	return &SignInResult{
		Status: StatusSuccess,
		Token:  token,
		UserID: user.ID,
	}, nil
}
