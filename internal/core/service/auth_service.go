package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// AuthService implements registration and login. Registration mints an
// opaque principal; every per-user record in the system is partitioned by
// it.
type AuthService struct {
	repo            ports.UserRepository
	jwtSecret       string
	tokenTTL        time.Duration
	adminPrincipals map[string]struct{}
}

// NewAuthService builds an AuthService. adminUsernames seeds admin role
// for the named accounts at registration time; afterwards elevation goes
// through AccessResolver.AssignRole only.
func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, adminUsernames []string) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	admins := make(map[string]struct{}, len(adminUsernames))
	for _, u := range adminUsernames {
		admins[u] = struct{}{}
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, adminPrincipals: admins}
}

func (s *AuthService) Register(ctx context.Context, username, password, email string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if _, ok := s.adminPrincipals[username]; ok {
		role = domain.RoleAdmin
	}

	now := time.Now().UTC()
	user := &domain.User{
		Principal:    generatePrincipal(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"principal": user.Principal,
		"role":      user.Role,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generatePrincipal returns a unique principal in the format WV-XXXXXXXXXXXX.
func generatePrincipal() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("WV-%012X", time.Now().UnixNano()&0xFFFFFFFFFFFF)
	}
	return fmt.Sprintf("WV-%012X", b)
}
