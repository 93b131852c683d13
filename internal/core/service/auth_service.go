package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/menumesa/pos-system/internal/core/domain"
	"github.com/menumesa/pos-system/internal/core/ports"
)

// AuthService implements registration, login and token refresh on top of an
// injected credential store, password hasher and token issuer.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates a new account with role "user" and returns the stored
// user together with a fresh access/refresh token pair.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.repo.FindByEmail(ctx, email, false); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:          email,
		Name:           input.Name,
		PasswordHash:   hash,
		Role:           domain.RoleUser,
		RestaurantName: input.RestaurantName,
		Phone:          input.Phone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	result, err := s.issueTokens(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return result, nil
}

// Login verifies the credentials and returns the user with a fresh token
// pair. An unknown email and a wrong password yield the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email), true)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return result, nil
}

// Refresh exchanges a valid refresh token for a new access token. Claims are
// rebuilt from the stored user, so role or email changes made after the
// refresh token was issued take effect without forcing re-login. The refresh
// token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	return s.tokens.IssueAccess(user)
}

func (s *AuthService) issueTokens(user *domain.User) (*ports.AuthResult, error) {
	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return nil, err
	}

	// Strip the hash from the projection handed back to the transport layer.
	sanitized := *user
	sanitized.PasswordHash = ""

	return &ports.AuthResult{
		User:         &sanitized,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// normalizeEmail lowercases the address so uniqueness and lookup are
// case-insensitive regardless of how the client typed it.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
