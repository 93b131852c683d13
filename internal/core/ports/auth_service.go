package ports

import (
	"context"

	"github.com/menumesa/pos-system/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration time.
// Role is not part of it: new accounts always start as RoleUser.
type RegisterInput struct {
	Email          string
	Password       string
	Name           string
	RestaurantName string
	Phone          string
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Refresh exchanges a valid refresh token for a new access token carrying
	// the user's current role and email.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
