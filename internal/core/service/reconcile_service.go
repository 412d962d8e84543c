package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// ReconcileService runs the on-demand statement-of-account pipeline:
// precondition check, external fetch, fingerprint short-circuit, then a
// dedup merge into the caller's ledger.
//
// The external fetch happens before the ledger lock is taken; only the
// merge step in LedgerService.Merge holds it. A failed fetch leaves the
// ledger untouched.
type ReconcileService struct {
	profiles ports.ProfileRepository
	ledger   ports.LedgerService
	source   ports.HoldingsSource
	kyc      ports.KYCSource
	cache    ports.StatementCache
	logger   zerolog.Logger
}

func NewReconcileService(
	profiles ports.ProfileRepository,
	ledger ports.LedgerService,
	source ports.HoldingsSource,
	kyc ports.KYCSource,
	cache ports.StatementCache,
	logger zerolog.Logger,
) *ReconcileService {
	return &ReconcileService{
		profiles: profiles,
		ledger:   ledger,
		source:   source,
		kyc:      kyc,
		cache:    cache,
		logger:   logger,
	}
}

// kycRef loads the caller's profile and enforces the KYC precondition
// before any network access.
func (s *ReconcileService) kycRef(ctx context.Context, caller string) (*ports.KYCRef, error) {
	profile, err := s.profiles.Get(ctx, caller)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrPreconditionFailed
		}
		return nil, err
	}
	if !profile.HasKYC() {
		return nil, domain.ErrPreconditionFailed
	}
	return &ports.KYCRef{Aadhaar: profile.AadhaarNumber, PAN: profile.PANNumber}, nil
}

// FetchHoldings fetches the caller's statement of account and merges it
// into their ledger. A refetch whose canonical fingerprint matches the
// last merged statement skips the merge and reports no changes.
func (s *ReconcileService) FetchHoldings(ctx context.Context, caller string) (*ports.MergeResult, error) {
	if caller == "" {
		return nil, domain.ErrUnauthorized
	}
	kyc, err := s.kycRef(ctx, caller)
	if err != nil {
		return nil, err
	}

	statement, err := s.source.FetchHoldings(ctx, *kyc)
	if err != nil {
		s.logger.Warn().Err(err).Str("owner", caller).Msg("statement fetch failed")
		return nil, err
	}

	// Cache errors are non-fatal: the merge itself is idempotent.
	last, err := s.cache.LastFingerprint(ctx, caller)
	if err != nil {
		s.logger.Warn().Err(err).Str("owner", caller).Msg("fingerprint lookup failed, merging anyway")
	} else if last != "" && last == statement.Fingerprint {
		s.logger.Debug().Str("owner", caller).Msg("statement unchanged, merge skipped")
		return &ports.MergeResult{}, nil
	}

	result, err := s.ledger.Merge(ctx, caller, caller, statement.Holdings)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Remember(ctx, caller, statement.Fingerprint); err != nil {
		s.logger.Warn().Err(err).Str("owner", caller).Msg("failed to cache statement fingerprint")
	}

	s.logger.Info().
		Str("owner", caller).
		Int("added", result.Added).
		Int("updated", result.Updated).
		Msg("holdings reconciled")

	return result, nil
}

// FetchAadhaarDetails returns the locker provider's detail string for the
// caller's saved Aadhaar number. The saved profile stays authoritative;
// nothing is written back.
func (s *ReconcileService) FetchAadhaarDetails(ctx context.Context, caller string) (string, error) {
	if caller == "" {
		return "", domain.ErrUnauthorized
	}
	kyc, err := s.kycRef(ctx, caller)
	if err != nil {
		return "", err
	}
	details, err := s.kyc.FetchAadhaarDetails(ctx, kyc.Aadhaar)
	if err != nil {
		return "", fmt.Errorf("aadhaar details: %w", err)
	}
	return details, nil
}

// FetchPANDetails mirrors FetchAadhaarDetails for the PAN number.
func (s *ReconcileService) FetchPANDetails(ctx context.Context, caller string) (string, error) {
	if caller == "" {
		return "", domain.ErrUnauthorized
	}
	kyc, err := s.kycRef(ctx, caller)
	if err != nil {
		return "", err
	}
	details, err := s.kyc.FetchPANDetails(ctx, kyc.PAN)
	if err != nil {
		return "", fmt.Errorf("pan details: %w", err)
	}
	return details, nil
}
