package ports

import (
	"context"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
)

// Summary holds the derived aggregate over one owner's ledger. It is
// always recomputed from a single ledger snapshot, never stored.
type Summary struct {
	TotalInvested     float64 `json:"total_invested"`
	TotalCurrentValue float64 `json:"total_current_value"`
}

// MergeResult describes the outcome of a reconciliation merge.
type MergeResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// LedgerService manages each owner's ordered investment collection.
// Records are addressed by 0-based dense index; deletion shifts all
// subsequent indices down by one, so an index read before another
// mutation must be treated as ephemeral.
type LedgerService interface {
	Add(ctx context.Context, caller, owner string, inv domain.Investment) error
	Update(ctx context.Context, caller, owner string, index int, inv domain.Investment) error
	Delete(ctx context.Context, caller, owner string, index int) error
	List(ctx context.Context, caller, owner string) ([]domain.Investment, error)

	// Summarize recomputes totals from the current ledger snapshot.
	Summarize(ctx context.Context, caller, owner string) (*Summary, error)

	// Merge folds statement candidates into the ledger under the owner's
	// write lock: unseen holdings are appended, matching holdings get
	// their current value refreshed. All or nothing.
	Merge(ctx context.Context, caller, owner string, candidates []domain.Investment) (*MergeResult, error)
}

// LedgerRepository defines persistence for per-owner ledgers. The whole
// ordered sequence is read and replaced as a unit so indices stay dense
// and every mutation is atomic at the ledger level.
type LedgerRepository interface {
	List(ctx context.Context, owner string) ([]domain.Investment, error)
	Replace(ctx context.Context, owner string, investments []domain.Investment) error
}
