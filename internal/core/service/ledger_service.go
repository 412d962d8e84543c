package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// LedgerService implements index-addressed CRUD, aggregation and the
// reconciliation merge over per-owner investment ledgers.
//
// Every write runs under the owner's lock and rewrites the owner's dense
// array as a unit, so indices stay 0-based and contiguous and a merge is
// atomic relative to any concurrent manual edit. Reads take a single
// snapshot and do not block writers.
type LedgerService struct {
	repo       ports.LedgerRepository
	access     ports.AccessResolver
	statements ports.StatementCache
	locks      *ownerLocks
	now        func() time.Time
	logger     zerolog.Logger
}

func NewLedgerService(repo ports.LedgerRepository, access ports.AccessResolver, statements ports.StatementCache, logger zerolog.Logger) *LedgerService {
	return &LedgerService{
		repo:       repo,
		access:     access,
		statements: statements,
		locks:      newOwnerLocks(),
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

// forgetStatement drops the owner's cached statement fingerprint. A
// manual mutation means the ledger no longer reflects the last merged
// statement, so an unchanged refetch must merge rather than
// short-circuit. Failure is non-fatal: a stale fingerprint only delays
// re-import until its TTL.
func (s *LedgerService) forgetStatement(ctx context.Context, owner string) {
	if s.statements == nil {
		return
	}
	if err := s.statements.Forget(ctx, owner); err != nil {
		s.logger.Warn().Err(err).Str("owner", owner).Msg("failed to drop statement fingerprint")
	}
}

func (s *LedgerService) checkWrite(ctx context.Context, caller, owner string) error {
	ok, err := s.access.CanWrite(ctx, caller, owner)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthorized
	}
	return nil
}

func (s *LedgerService) checkRead(ctx context.Context, caller, owner string) error {
	ok, err := s.access.CanRead(ctx, caller, owner)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthorized
	}
	return nil
}

// Add validates and appends a record; its index equals the pre-insertion
// length of the owner's ledger.
func (s *LedgerService) Add(ctx context.Context, caller, owner string, inv domain.Investment) error {
	if err := s.checkWrite(ctx, caller, owner); err != nil {
		return err
	}
	if err := inv.Validate(s.now()); err != nil {
		return err
	}

	release := s.locks.acquire(owner)
	defer release()

	investments, err := s.repo.List(ctx, owner)
	if err != nil {
		return err
	}
	if err := s.repo.Replace(ctx, owner, append(investments, inv)); err != nil {
		return err
	}
	s.forgetStatement(ctx, owner)

	s.logger.Info().Str("owner", owner).Str("name", inv.Name).Msg("investment added")
	return nil
}

// Update replaces the record at index in place, preserving its position.
func (s *LedgerService) Update(ctx context.Context, caller, owner string, index int, inv domain.Investment) error {
	if err := s.checkWrite(ctx, caller, owner); err != nil {
		return err
	}
	if err := inv.Validate(s.now()); err != nil {
		return err
	}

	release := s.locks.acquire(owner)
	defer release()

	investments, err := s.repo.List(ctx, owner)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(investments) {
		return domain.ErrIndexOutOfRange
	}
	investments[index] = inv
	if err := s.repo.Replace(ctx, owner, investments); err != nil {
		return err
	}
	s.forgetStatement(ctx, owner)

	return nil
}

// Delete removes the record at index and shifts all subsequent indices
// down by one, keeping the sequence dense.
func (s *LedgerService) Delete(ctx context.Context, caller, owner string, index int) error {
	if err := s.checkWrite(ctx, caller, owner); err != nil {
		return err
	}

	release := s.locks.acquire(owner)
	defer release()

	investments, err := s.repo.List(ctx, owner)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(investments) {
		return domain.ErrIndexOutOfRange
	}
	investments = append(investments[:index], investments[index+1:]...)
	if err := s.repo.Replace(ctx, owner, investments); err != nil {
		return err
	}
	s.forgetStatement(ctx, owner)

	return nil
}

// List returns the owner's full ordered sequence.
func (s *LedgerService) List(ctx context.Context, caller, owner string) ([]domain.Investment, error) {
	if err := s.checkRead(ctx, caller, owner); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, owner)
}

// Summarize recomputes totals from one ledger snapshot. Never cached, so
// it cannot diverge from the ledger after a concurrent mutation; a read
// racing a write returns either the pre- or post-mutation total, never a
// torn value.
func (s *LedgerService) Summarize(ctx context.Context, caller, owner string) (*ports.Summary, error) {
	if err := s.checkRead(ctx, caller, owner); err != nil {
		return nil, err
	}

	investments, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	var summary ports.Summary
	for _, inv := range investments {
		summary.TotalInvested += inv.AmountInvested
		summary.TotalCurrentValue += inv.CurrentValue
	}
	return &summary, nil
}

// Merge folds statement candidates into the owner's ledger. A candidate
// matching an existing entry on (name, category, date) refreshes the
// entry's current value only; anything else is appended. The compare and
// both write paths run under the owner's lock and land in one array
// replace, so the batch commits entirely or not at all.
func (s *LedgerService) Merge(ctx context.Context, caller, owner string, candidates []domain.Investment) (*ports.MergeResult, error) {
	if err := s.checkWrite(ctx, caller, owner); err != nil {
		return nil, err
	}
	now := s.now()
	for _, c := range candidates {
		if err := c.Validate(now); err != nil {
			return nil, err
		}
	}

	release := s.locks.acquire(owner)
	defer release()

	investments, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	var result ports.MergeResult
	for _, candidate := range candidates {
		matched := false
		for i := range investments {
			if !investments[i].SameHolding(candidate) {
				continue
			}
			matched = true
			if investments[i].CurrentValue != candidate.CurrentValue {
				investments[i].CurrentValue = candidate.CurrentValue
				result.Updated++
			}
			break
		}
		if !matched {
			investments = append(investments, candidate)
			result.Added++
		}
	}

	if result.Added > 0 || result.Updated > 0 {
		if err := s.repo.Replace(ctx, owner, investments); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Str("owner", owner).Int("added", result.Added).Int("updated", result.Updated).Msg("statement merged")
	return &result, nil
}
