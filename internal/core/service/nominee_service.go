package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// NomineeService manages the single delegated-read grant per owner.
// Mutations run under the owner's lock so the create-vs-replace check in
// Add cannot race a concurrent write to the same row.
type NomineeService struct {
	repo   ports.NomineeRepository
	access ports.AccessResolver
	locks  *ownerLocks
	logger zerolog.Logger
}

func NewNomineeService(repo ports.NomineeRepository, access ports.AccessResolver, logger zerolog.Logger) *NomineeService {
	return &NomineeService{repo: repo, access: access, locks: newOwnerLocks(), logger: logger}
}

func validateNominee(owner string, n domain.Nominee) error {
	if strings.TrimSpace(n.Principal) == "" {
		return fmt.Errorf("%w: nominee principal is required", domain.ErrValidation)
	}
	if n.Principal == owner {
		return fmt.Errorf("%w: cannot nominate yourself", domain.ErrValidation)
	}
	if strings.TrimSpace(n.Name) == "" {
		return fmt.Errorf("%w: nominee name is required", domain.ErrValidation)
	}
	return nil
}

// Add registers a nominee for the caller. Fails with
// domain.ErrNomineeExists when one is already registered, so create and
// replace intents stay distinguishable.
func (s *NomineeService) Add(ctx context.Context, caller string, nominee domain.Nominee) error {
	if err := validateNominee(caller, nominee); err != nil {
		return err
	}

	release := s.locks.acquire(caller)
	defer release()

	_, err := s.repo.Get(ctx, caller)
	if err == nil {
		return domain.ErrNomineeExists
	}
	if !errors.Is(err, domain.ErrNomineeNotFound) {
		return err
	}

	if err := s.repo.Upsert(ctx, caller, nominee); err != nil {
		return err
	}
	s.logger.Info().Str("owner", caller).Str("nominee", nominee.Principal).Msg("nominee added")
	return nil
}

// Update upserts the caller's nominee row regardless of prior state.
func (s *NomineeService) Update(ctx context.Context, caller string, nominee domain.Nominee) error {
	if err := validateNominee(caller, nominee); err != nil {
		return err
	}

	release := s.locks.acquire(caller)
	defer release()

	if err := s.repo.Upsert(ctx, caller, nominee); err != nil {
		return err
	}
	s.logger.Info().Str("owner", caller).Str("nominee", nominee.Principal).Msg("nominee updated")
	return nil
}

// Remove deletes the caller's grant. The removal is atomic with the
// revocation: the access resolver reads this store live, so the former
// nominee's next read is denied.
func (s *NomineeService) Remove(ctx context.Context, caller string) error {
	release := s.locks.acquire(caller)
	defer release()

	if err := s.repo.Delete(ctx, caller); err != nil {
		return err
	}
	s.logger.Info().Str("owner", caller).Msg("nominee removed")
	return nil
}

// Get returns owner's nominee for any caller allowed to read owner.
func (s *NomineeService) Get(ctx context.Context, caller, owner string) (*domain.Nominee, error) {
	ok, err := s.access.CanRead(ctx, caller, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.Get(ctx, owner)
}

// GetCallerNominee returns the record where caller is the owner, not
// where caller is the nominee. A nominee reaches the owner's data through
// the owner's identity, not through their own nominee record.
func (s *NomineeService) GetCallerNominee(ctx context.Context, caller string) (*domain.Nominee, error) {
	if caller == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.Get(ctx, caller)
}
