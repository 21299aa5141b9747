package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/simple-twitter/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// TopUsersCache stores the follower ranking without any viewer-specific flags.
type TopUsersCache interface {
	Get(ctx context.Context, limit int) ([]models.TopUser, bool, error)
	Set(ctx context.Context, limit int, users []models.TopUser) error
}

// RedisTopUsersCache implements TopUsersCache on Redis
type RedisTopUsersCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTopUsersCache(client *redis.Client, ttl time.Duration) *RedisTopUsersCache {
	return &RedisTopUsersCache{client: client, ttl: ttl}
}

func topUsersKey(limit int) string {
	return fmt.Sprintf("top_users:%d", limit)
}

// Get reports a miss as (nil, false, nil).
func (c *RedisTopUsersCache) Get(ctx context.Context, limit int) ([]models.TopUser, bool, error) {
	raw, err := c.client.Get(ctx, topUsersKey(limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var users []models.TopUser
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, false, fmt.Errorf("decode cached top users: %w", err)
	}
	return users, true, nil
}

func (c *RedisTopUsersCache) Set(ctx context.Context, limit int, users []models.TopUser) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, topUsersKey(limit), raw, c.ttl).Err()
}
