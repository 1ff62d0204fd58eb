package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vendora/seller-service/internal/domain"
)

const settingsKey = "seller-service:settings-snapshot"

// SettingsCache decorates a domain.SettingsRepository with a Redis cache.
// Cache failures degrade to the inner repository; serving a listing page
// matters more than a fresh settings read.
type SettingsCache struct {
	inner  domain.SettingsRepository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewSettingsCache wraps inner with a Redis cache using the given TTL.
func NewSettingsCache(inner domain.SettingsRepository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *SettingsCache {
	return &SettingsCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Snapshot returns the cached settings snapshot, falling back to the inner
// repository on a miss or any cache error.
func (c *SettingsCache) Snapshot(ctx context.Context) (domain.SettingsSnapshot, error) {
	data, err := c.client.Get(ctx, settingsKey).Bytes()
	if err == nil {
		var snap domain.SettingsSnapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			return snap, nil
		}
		c.logger.WarnContext(ctx, "corrupt settings cache entry, refreshing",
			slog.String("key", settingsKey),
		)
	} else if err != redis.Nil {
		c.logger.WarnContext(ctx, "settings cache read failed",
			slog.String("error", err.Error()),
		)
	}

	snap, err := c.inner.Snapshot(ctx)
	if err != nil {
		return domain.SettingsSnapshot{}, err
	}

	if data, err := json.Marshal(snap); err == nil {
		if err := c.client.Set(ctx, settingsKey, data, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "settings cache write failed",
				slog.String("error", err.Error()),
			)
		}
	}

	return snap, nil
}
