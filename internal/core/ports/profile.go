package ports

import (
	"context"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
)

// ProfileService exposes the per-identity profile store.
type ProfileService interface {
	// Get returns owner's profile, or domain.ErrProfileNotFound when it
	// was never saved (distinct from an empty profile).
	Get(ctx context.Context, caller, owner string) (*domain.UserProfile, error)

	// Save validates and upserts the caller's own profile row.
	Save(ctx context.Context, caller string, profile domain.UserProfile) error
}

// ProfileRepository defines persistence for profiles, one row per owner.
type ProfileRepository interface {
	Get(ctx context.Context, owner string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, owner string, profile domain.UserProfile) error
}
