package domain

import (
	"errors"
	"time"
)

// Role is derived from the user store, never from token claims alone.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleGuest = "guest"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

// ValidRole reports whether r is an assignable role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser || r == RoleGuest
}

// User models an authenticated account. Principal is the opaque identity
// every per-user record is partitioned by; it is minted once at
// registration and never changes.
type User struct {
	ID           string    `json:"id"`
	Principal    string    `json:"principal"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
