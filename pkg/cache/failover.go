package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FailoverProfileCache prefers the primary (Redis) cache and degrades to
// the fallback on error, retrying the primary after a cooldown.
type FailoverProfileCache struct {
	primary   ProfileCache
	fallback  ProfileCache
	log       *zap.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos
}

const retryInterval = time.Minute

func NewFailoverProfileCache(primary, fallback ProfileCache, log *zap.Logger) *FailoverProfileCache {
	return &FailoverProfileCache{
		primary:  primary,
		fallback: fallback,
		log:      log.With(zap.String("cache", "profile")),
	}
}

func (c *FailoverProfileCache) markDown() {
	c.isDown.Store(true)
	c.lastCheck.Store(time.Now().UnixNano())
}

func (c *FailoverProfileCache) shouldRetry() bool {
	return time.Since(time.Unix(0, c.lastCheck.Load())) > retryInterval
}

func (c *FailoverProfileCache) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	if !c.isDown.Load() || c.shouldRetry() {
		profile, err := c.primary.Get(ctx, userID)
		if err == nil {
			c.isDown.Store(false)
			return profile, nil
		}
		c.log.Warn("Primary profile cache failed, falling back to memory", zap.Error(err))
		c.markDown()
	}

	return c.fallback.Get(ctx, userID)
}

func (c *FailoverProfileCache) Set(ctx context.Context, profile *Profile) error {
	if !c.isDown.Load() || c.shouldRetry() {
		err := c.primary.Set(ctx, profile)
		if err == nil {
			c.isDown.Store(false)
			return nil
		}
		c.log.Warn("Primary profile cache failed, falling back to memory", zap.Error(err))
		c.markDown()
	}

	return c.fallback.Set(ctx, profile)
}

func (c *FailoverProfileCache) Clear(ctx context.Context, userID uuid.UUID) error {
	// Clear both: a stale entry in either layer would resurrect old contact
	// info after a profile update.
	perr := c.primary.Clear(ctx, userID)
	ferr := c.fallback.Clear(ctx, userID)
	if perr != nil {
		c.log.Warn("Primary profile cache clear failed", zap.Error(perr))
		c.markDown()
		return ferr
	}
	return ferr
}
