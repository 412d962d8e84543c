package service

import (
	"context"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared across the service tests
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byPrincipal map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byPrincipal: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.byPrincipal[u.Principal] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byPrincipal {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	r.byPrincipal[user.Principal] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byPrincipal {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByPrincipal(_ context.Context, principal string) (*domain.User, error) {
	u, ok := r.byPrincipal[principal]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, principal, role string) error {
	u, ok := r.byPrincipal[principal]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

type stubNomineeRepo struct {
	byOwner map[string]domain.Nominee
}

func newStubNomineeRepo() *stubNomineeRepo {
	return &stubNomineeRepo{byOwner: make(map[string]domain.Nominee)}
}

func (r *stubNomineeRepo) Get(_ context.Context, owner string) (*domain.Nominee, error) {
	n, ok := r.byOwner[owner]
	if !ok {
		return nil, domain.ErrNomineeNotFound
	}
	clone := n
	return &clone, nil
}

func (r *stubNomineeRepo) Upsert(_ context.Context, owner string, nominee domain.Nominee) error {
	r.byOwner[owner] = nominee
	return nil
}

func (r *stubNomineeRepo) Delete(_ context.Context, owner string) error {
	delete(r.byOwner, owner)
	return nil
}

type stubProfileRepo struct {
	byOwner map[string]domain.UserProfile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byOwner: make(map[string]domain.UserProfile)}
}

func (r *stubProfileRepo) Get(_ context.Context, owner string) (*domain.UserProfile, error) {
	p, ok := r.byOwner[owner]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := p
	return &clone, nil
}

func (r *stubProfileRepo) Upsert(_ context.Context, owner string, profile domain.UserProfile) error {
	r.byOwner[owner] = profile
	return nil
}

type stubLedgerRepo struct {
	byOwner    map[string][]domain.Investment
	replaceErr error
	replaces   int
}

func newStubLedgerRepo() *stubLedgerRepo {
	return &stubLedgerRepo{byOwner: make(map[string][]domain.Investment)}
}

func (r *stubLedgerRepo) List(_ context.Context, owner string) ([]domain.Investment, error) {
	out := make([]domain.Investment, len(r.byOwner[owner]))
	copy(out, r.byOwner[owner])
	return out, nil
}

func (r *stubLedgerRepo) Replace(_ context.Context, owner string, investments []domain.Investment) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.replaces++
	stored := make([]domain.Investment, len(investments))
	copy(stored, investments)
	r.byOwner[owner] = stored
	return nil
}

// allowAll satisfies ports.AccessResolver for tests that are not about
// authorization.
type allowAll struct{}

func (allowAll) ResolveRole(context.Context, string) (string, error) { return domain.RoleUser, nil }
func (allowAll) CanRead(context.Context, string, string) (bool, error) {
	return true, nil
}
func (allowAll) CanWrite(_ context.Context, caller, owner string) (bool, error) {
	return caller != "" && caller == owner, nil
}
func (allowAll) AssignRole(context.Context, string, string, string) error { return nil }

type stubHoldingsSource struct {
	statement *ports.HoldingsStatement
	err       error
	calls     int
}

func (s *stubHoldingsSource) FetchHoldings(context.Context, ports.KYCRef) (*ports.HoldingsStatement, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	clone := *s.statement
	clone.Holdings = append([]domain.Investment(nil), s.statement.Holdings...)
	return &clone, nil
}

type stubKYCSource struct {
	aadhaarDetails string
	panDetails     string
	err            error
}

func (s *stubKYCSource) FetchAadhaarDetails(context.Context, string) (string, error) {
	return s.aadhaarDetails, s.err
}

func (s *stubKYCSource) FetchPANDetails(context.Context, string) (string, error) {
	return s.panDetails, s.err
}

type stubStatementCache struct {
	byOwner map[string]string
}

func newStubStatementCache() *stubStatementCache {
	return &stubStatementCache{byOwner: make(map[string]string)}
}

func (c *stubStatementCache) LastFingerprint(_ context.Context, owner string) (string, error) {
	return c.byOwner[owner], nil
}

func (c *stubStatementCache) Remember(_ context.Context, owner, fingerprint string) error {
	c.byOwner[owner] = fingerprint
	return nil
}

func (c *stubStatementCache) Forget(_ context.Context, owner string) error {
	delete(c.byOwner, owner)
	return nil
}
