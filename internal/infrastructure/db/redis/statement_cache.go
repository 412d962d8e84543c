package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const statementTTL = 24 * time.Hour

// StatementCache remembers the canonical fingerprint of the last
// statement merged for each owner. A refetch with an unchanged
// fingerprint can skip the merge entirely.
// Key format: soa:fingerprint:<owner>
type StatementCache struct {
	client *redis.Client
}

// NewStatementCache creates a StatementCache wrapping the given client.
func NewStatementCache(client *redis.Client) *StatementCache {
	return &StatementCache{client: client}
}

// LastFingerprint returns the stored fingerprint for owner, or "" when
// none is cached.
func (c *StatementCache) LastFingerprint(ctx context.Context, owner string) (string, error) {
	val, err := c.client.Get(ctx, c.key(owner)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("fingerprint get: %w", err)
	}
	return val, nil
}

// Remember stores the fingerprint of a successfully merged statement
// (expires after statementTTL).
func (c *StatementCache) Remember(ctx context.Context, owner, fingerprint string) error {
	return c.client.Set(ctx, c.key(owner), fingerprint, statementTTL).Err()
}

// Forget drops the owner's cached fingerprint. Called after any manual
// ledger mutation, which invalidates the "ledger reflects the last
// merged statement" premise the short-circuit relies on.
func (c *StatementCache) Forget(ctx context.Context, owner string) error {
	return c.client.Del(ctx, c.key(owner)).Err()
}

func (c *StatementCache) key(owner string) string {
	return fmt.Sprintf("soa:fingerprint:%s", owner)
}
