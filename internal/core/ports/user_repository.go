package ports

import (
	"context"

	"github.com/menumesa/pos-system/internal/core/domain"
)

// UserUpdate carries a partial update. Nil fields are left untouched.
type UserUpdate struct {
	Email          *string
	Name           *string
	PasswordHash   *string
	RestaurantName *string
	Phone          *string
}

// UserRepository defines the persistence interface for user records
// (the credential store). The password hash is excluded from results
// unless includePassword is set.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string, includePassword bool) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context, page, limit int) ([]domain.User, int64, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}
