package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gezana/pkg/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Profile is the canonical contact tuple cached per user for identity
// resolution.
type Profile struct {
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Address  string    `json:"address"`
	Role     string    `json:"role"`
}

// ProfileCache stores resolved profiles. Get returns (nil, nil) on a miss.
type ProfileCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Set(ctx context.Context, profile *Profile) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// ==================== REDIS ====================

type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg utils.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisProfileCache(client *redis.Client, ttl time.Duration) *RedisProfileCache {
	return &RedisProfileCache{
		client: client,
		ttl:    ttl,
	}
}

func profileKey(userID uuid.UUID) string {
	return fmt.Sprintf("profile:%s", userID.String())
}

func (c *RedisProfileCache) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := c.client.Get(ctx, profileKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile from redis: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}

	return &profile, nil
}

func (c *RedisProfileCache) Set(ctx context.Context, profile *Profile) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	if err := c.client.Set(ctx, profileKey(profile.UserID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set profile in redis: %w", err)
	}

	return nil
}

func (c *RedisProfileCache) Clear(ctx context.Context, userID uuid.UUID) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := c.client.Del(ctx, profileKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete profile from redis: %w", err)
	}
	return nil
}
