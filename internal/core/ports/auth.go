package ports

import (
	"context"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
)

// AuthService implements registration and login. Registration mints the
// opaque principal all per-user data is keyed by.
type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// UserRepository defines persistence for accounts and role assignments.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByPrincipal(ctx context.Context, principal string) (*domain.User, error)
	UpdateRole(ctx context.Context, principal, role string) error
}
