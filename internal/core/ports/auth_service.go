package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Answer   string
}

// UpdateProfileInput carries optional profile changes; empty fields are kept.
type UpdateProfileInput struct {
	UserID   string
	Name     string
	Password string
	Phone    string
	Address  string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email, answer, newPassword string) error
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// TokenIssuer signs credentials for an authenticated user.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// TokenVerifier checks a credential's signature and expiry and returns the
// subject user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
