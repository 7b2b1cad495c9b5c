package ports

import (
	"context"

	"github.com/gigboard/marketplace/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // empty defaults to freelancer
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// TokenClaims is the identity recovered from a valid session token.
type TokenClaims struct {
	UserID string
	Name   string
	Role   string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ParseToken(token string) (*TokenClaims, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
