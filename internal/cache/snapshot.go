// Package cache provides the optional Redis-backed snapshot cache.
// Status lookups are the hottest dashboard call; caching the derived
// snapshot for a few seconds keeps the packet window query off the
// database during polling.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fleetsight/insights/internal/config"
	"github.com/fleetsight/insights/internal/models"
)

// SnapshotCache stores derived device snapshots in Redis with a TTL.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache connects to Redis and returns a snapshot cache.
func NewSnapshotCache(ctx context.Context, cfg *config.RedisConfig) (*SnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &SnapshotCache{client: client, ttl: cfg.TTL}, nil
}

// Close closes the Redis connection
func (c *SnapshotCache) Close() error {
	return c.client.Close()
}

func snapshotKey(imei string) string {
	return fmt.Sprintf("device:%s:snapshot", imei)
}

// Get returns the cached snapshot for a device, or nil on a cache miss.
func (c *SnapshotCache) Get(ctx context.Context, imei string) (*models.DeviceSnapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey(imei)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot for %s: %w", imei, err)
	}

	var snap models.DeviceSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// A stale or corrupt entry counts as a miss.
		return nil, nil
	}
	return &snap, nil
}

// Set stores a snapshot for a device with the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, imei string, snap *models.DeviceSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for %s: %w", imei, err)
	}

	if err := c.client.Set(ctx, snapshotKey(imei), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot for %s: %w", imei, err)
	}
	return nil
}
