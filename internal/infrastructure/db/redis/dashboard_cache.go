package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wellnest/wellness-api/internal/api/metrics"
	"github.com/wellnest/wellness-api/internal/core/domain"
)

const defaultDashboardTTL = 5 * time.Minute

var errStaleDashboard = errors.New("dashboard invalidated during computation")

// DashboardCache stores computed dashboards as JSON in one hash per user,
// one field per window length, so a single DEL invalidates every window.
// A per-user counter is bumped on every invalidation; Set only writes when the
// counter still matches the version the caller read before computing.
// Key format: dashboard:<user_id>, dashboard:ver:<user_id>
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache creates a DashboardCache. A non-positive ttl falls back to
// five minutes.
func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	if ttl <= 0 {
		ttl = defaultDashboardTTL
	}
	return &DashboardCache{client: client, ttl: ttl}
}

// Get returns the cached stats for a window, if present.
func (c *DashboardCache) Get(ctx context.Context, userID string, days int) ([]domain.Stat, bool, error) {
	raw, err := c.client.HGet(ctx, c.key(userID), strconv.Itoa(days)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.DashboardCacheTotal.WithLabelValues("miss").Inc()
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("dashboard cache get: %w", err)
	}

	var stats []domain.Stat
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("dashboard cache decode: %w", err)
	}
	metrics.DashboardCacheTotal.WithLabelValues("hit").Inc()
	return stats, true, nil
}

// Version returns the user's current invalidation counter.
func (c *DashboardCache) Version(ctx context.Context, userID string) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("dashboard cache version: %w", err)
	}
	return v, nil
}

// Set stores stats for a window and refreshes the hash expiry. The write is
// dropped when the user was invalidated after version was read.
func (c *DashboardCache) Set(ctx context.Context, userID string, days int, version int64, stats []domain.Stat) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("dashboard cache encode: %w", err)
	}

	key, verKey := c.key(userID), c.versionKey(userID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleDashboard
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, strconv.Itoa(days), raw)
			pipe.Expire(ctx, key, c.ttl)
			return nil
		})
		return err
	}, verKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errStaleDashboard), errors.Is(err, redis.TxFailedErr):
		metrics.DashboardCacheTotal.WithLabelValues("stale").Inc()
		return nil
	default:
		return fmt.Errorf("dashboard cache set: %w", err)
	}
}

// Invalidate bumps the user's version and drops every cached window.
func (c *DashboardCache) Invalidate(ctx context.Context, userID string) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, c.versionKey(userID))
	pipe.Del(ctx, c.key(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("dashboard cache invalidate: %w", err)
	}
	return nil
}

func (c *DashboardCache) key(userID string) string {
	return "dashboard:" + userID
}

func (c *DashboardCache) versionKey(userID string) string {
	return "dashboard:ver:" + userID
}
