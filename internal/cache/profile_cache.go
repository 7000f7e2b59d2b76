package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// ProfileCache stores the display identity (name, image) of profiles.
// Counts and follow state are never cached.
type ProfileCache interface {
	Get(ctx context.Context, profileID string) (*models.UserCompact, error)
	Set(ctx context.Context, profile *models.UserCompact) error
	Invalidate(ctx context.Context, profileIDs ...string) error
}

type RedisProfileCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisProfileCache(client redis.Cmdable, prefix string, ttl time.Duration) *RedisProfileCache {
	return &RedisProfileCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisProfileCache) BuildKey(profileID string) string {
	return fmt.Sprintf("%s:profile:%s", c.prefix, profileID)
}

func (c *RedisProfileCache) Get(ctx context.Context, profileID string) (*models.UserCompact, error) {
	data, err := c.client.Get(ctx, c.BuildKey(profileID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var profile models.UserCompact
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &profile, nil
}

func (c *RedisProfileCache) Set(ctx context.Context, profile *models.UserCompact) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}
	if err := c.client.Set(ctx, c.BuildKey(profile.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

func (c *RedisProfileCache) Invalidate(ctx context.Context, profileIDs ...string) error {
	if len(profileIDs) == 0 {
		return nil
	}
	keys := make([]string, len(profileIDs))
	for i, id := range profileIDs {
		keys[i] = c.BuildKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}
