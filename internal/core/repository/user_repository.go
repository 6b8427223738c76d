package repository

import (
	"context"

	"github.com/martijn/secondchance/internal/core/domain"
)

type UserRepository interface {
	// Create returns ErrDuplicate when the email is already taken.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}
