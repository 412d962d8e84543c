package ports

import (
	"context"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
)

// KYCRef carries the validated reference numbers used to authenticate
// against the external providers.
type KYCRef struct {
	Aadhaar string
	PAN     string
}

// HoldingsStatement is the parsed, canonical form of an external
// statement of account. Fingerprint identifies the statement content
// after the response transform has stripped volatile metadata, so two
// fetches of the same underlying statement carry the same fingerprint.
type HoldingsStatement struct {
	Fingerprint string
	Holdings    []domain.Investment
}

// HoldingsSource fetches and parses the external statement of account.
// Implementations wrap transport errors and malformed bodies in
// domain.ErrFetchFailed; they never touch the ledger.
type HoldingsSource interface {
	FetchHoldings(ctx context.Context, kyc KYCRef) (*HoldingsStatement, error)
}

// KYCSource looks up identity details from the document locker provider.
// Results are returned to the caller verbatim; the saved profile stays
// authoritative.
type KYCSource interface {
	FetchAadhaarDetails(ctx context.Context, aadhaar string) (string, error)
	FetchPANDetails(ctx context.Context, pan string) (string, error)
}

// StatementCache remembers the fingerprint of the last statement merged
// for each owner, so an unchanged refetch can skip the merge entirely.
// The cached fingerprint is only meaningful while the ledger still
// reflects that merge; any manual mutation must Forget it so the next
// refetch merges against the current ledger.
type StatementCache interface {
	LastFingerprint(ctx context.Context, owner string) (string, error)
	Remember(ctx context.Context, owner, fingerprint string) error
	Forget(ctx context.Context, owner string) error
}

// ReconcileService runs the on-demand statement reconciliation pipeline.
type ReconcileService interface {
	// FetchHoldings fetches, transforms, parses and merges the caller's
	// statement of account. Requires both KYC numbers on the profile.
	FetchHoldings(ctx context.Context, caller string) (*MergeResult, error)

	FetchAadhaarDetails(ctx context.Context, caller string) (string, error)
	FetchPANDetails(ctx context.Context, caller string) (string, error)
}
