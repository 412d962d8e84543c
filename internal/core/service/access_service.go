package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// AccessService resolves roles and read/write permissions. It is the
// single gate in front of every per-identity store. Role and nominee
// state are read from their stores on every check, so a revoked grant or
// demoted role takes effect on the very next call.
type AccessService struct {
	users    ports.UserRepository
	nominees ports.NomineeRepository
	logger   zerolog.Logger
}

func NewAccessService(users ports.UserRepository, nominees ports.NomineeRepository, logger zerolog.Logger) *AccessService {
	return &AccessService{users: users, nominees: nominees, logger: logger}
}

// ResolveRole maps a caller principal to its current role. Unknown or
// empty principals resolve to guest.
func (s *AccessService) ResolveRole(ctx context.Context, caller string) (string, error) {
	if caller == "" {
		return domain.RoleGuest, nil
	}
	user, err := s.users.FindByPrincipal(ctx, caller)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.RoleGuest, nil
		}
		return "", err
	}
	return user.Role, nil
}

// CanRead reports whether caller may read owner's records.
func (s *AccessService) CanRead(ctx context.Context, caller, owner string) (bool, error) {
	if caller == "" || owner == "" {
		return false, nil
	}
	if caller == owner {
		return true, nil
	}

	role, err := s.ResolveRole(ctx, caller)
	if err != nil {
		return false, err
	}
	if role == domain.RoleAdmin {
		return true, nil
	}

	nominee, err := s.nominees.Get(ctx, owner)
	if err != nil {
		if errors.Is(err, domain.ErrNomineeNotFound) {
			return false, nil
		}
		return false, err
	}
	return nominee.Principal == caller, nil
}

// CanWrite reports whether caller may mutate owner's records. Only the
// owner itself may; admin and nominee access is read-only.
func (s *AccessService) CanWrite(ctx context.Context, caller, owner string) (bool, error) {
	return caller != "" && caller == owner, nil
}

// AssignRole sets target's role. Only an existing admin may call it,
// which also covers elevation to admin.
func (s *AccessService) AssignRole(ctx context.Context, caller, target, role string) error {
	callerRole, err := s.ResolveRole(ctx, caller)
	if err != nil {
		return err
	}
	if callerRole != domain.RoleAdmin {
		return domain.ErrUnauthorized
	}
	if !domain.ValidRole(role) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}

	if err := s.users.UpdateRole(ctx, target, role); err != nil {
		return err
	}

	s.logger.Info().Str("caller", caller).Str("target", target).Str("role", role).Msg("role assigned")
	return nil
}
