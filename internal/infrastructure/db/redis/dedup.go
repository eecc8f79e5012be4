package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = time.Hour

// DedupChecker remembers recently recorded metric entries so that client
// retries do not double count.
// Key format: dedup:<user_id>:<kind>:<unix_timestamp>
type DedupChecker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
// A non-positive ttl falls back to one hour.
func NewDedupChecker(client *redis.Client, ttl time.Duration) *DedupChecker {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &DedupChecker{client: client, ttl: ttl}
}

// IsDuplicate reports whether this exact entry has already been recorded.
func (d *DedupChecker) IsDuplicate(ctx context.Context, userID, kind string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(userID, kind, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this entry has been stored (expires after the TTL).
func (d *DedupChecker) Mark(ctx context.Context, userID, kind string, ts time.Time) error {
	return d.client.Set(ctx, d.key(userID, kind, ts), "1", d.ttl).Err()
}

func (d *DedupChecker) key(userID, kind string, ts time.Time) string {
	return fmt.Sprintf("dedup:%s:%s:%d", userID, kind, ts.Unix())
}
