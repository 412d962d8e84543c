package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// ProfileService implements the per-identity profile store.
type ProfileService struct {
	repo   ports.ProfileRepository
	access ports.AccessResolver
	logger zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, access ports.AccessResolver, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, access: access, logger: logger}
}

// Get returns owner's profile, or domain.ErrProfileNotFound when none was
// ever saved.
func (s *ProfileService) Get(ctx context.Context, caller, owner string) (*domain.UserProfile, error) {
	ok, err := s.access.CanRead(ctx, caller, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.Get(ctx, owner)
}

// Save validates the KYC number formats when present and upserts the
// caller's single profile row. No state changes on a rejected profile.
func (s *ProfileService) Save(ctx context.Context, caller string, profile domain.UserProfile) error {
	ok, err := s.access.CanWrite(ctx, caller, caller)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := profile.Validate(); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, caller, profile); err != nil {
		return err
	}

	s.logger.Info().Str("owner", caller).Msg("profile saved")
	return nil
}
