package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// UserRepository defines persistence operations for marketplace accounts.
type UserRepository interface {
	// Create stores user and returns it with its generated ID.
	// Returns domain.ErrUserExists when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
