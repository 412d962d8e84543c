package ports

import "context"

// AccessResolver is the single gate for per-identity data. Every service
// consults it before returning or mutating records; no component bypasses
// it. It fails closed: an empty or unknown caller is always denied.
type AccessResolver interface {
	// ResolveRole maps a caller principal to admin, user or guest.
	ResolveRole(ctx context.Context, caller string) (string, error)

	// CanRead reports whether caller may read owner's records: the owner
	// itself, an admin, or the owner's currently registered nominee.
	CanRead(ctx context.Context, caller, owner string) (bool, error)

	// CanWrite reports whether caller may mutate owner's records. Only
	// the owner itself ever may; nominee and admin are read-only.
	CanWrite(ctx context.Context, caller, owner string) (bool, error)

	// AssignRole sets target's role. Only an existing admin may call it.
	AssignRole(ctx context.Context, caller, target, role string) error
}
