package ports

import (
	"context"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
)

// NomineeService manages the at-most-one delegated-read grant per owner.
type NomineeService interface {
	// Add registers a nominee; fails with domain.ErrNomineeExists when
	// one is already registered, to distinguish create from replace.
	Add(ctx context.Context, caller string, nominee domain.Nominee) error

	// Update upserts the nominee row regardless of prior state.
	Update(ctx context.Context, caller string, nominee domain.Nominee) error

	// Remove deletes the grant; the former nominee loses read access on
	// the next resolver check.
	Remove(ctx context.Context, caller string) error

	// Get returns owner's nominee for any caller allowed to read owner.
	Get(ctx context.Context, caller, owner string) (*domain.Nominee, error)

	// GetCallerNominee returns the record where caller is the owner --
	// not where caller is the nominee.
	GetCallerNominee(ctx context.Context, caller string) (*domain.Nominee, error)
}

// NomineeRepository defines persistence for nominee grants, one row per
// owner identity.
type NomineeRepository interface {
	Get(ctx context.Context, owner string) (*domain.Nominee, error)
	Upsert(ctx context.Context, owner string, nominee domain.Nominee) error
	Delete(ctx context.Context, owner string) error
}
