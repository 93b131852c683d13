package ports

import (
	"context"

	"github.com/menumesa/pos-system/internal/core/domain"
)

// CreateUserInput carries the fields accepted when creating a user directly.
type CreateUserInput struct {
	Email          string
	Password       string
	Name           string
	Role           domain.Role
	RestaurantName string
	Phone          string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
// A non-nil Password is re-hashed before persistence.
type UpdateUserInput struct {
	Email          *string
	Password       *string
	Name           *string
	RestaurantName *string
	Phone          *string
}

// Pagination describes the page window of a list result.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// UserPage is one page of users plus its pagination metadata.
type UserPage struct {
	Users      []domain.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, page, limit int) (*UserPage, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
