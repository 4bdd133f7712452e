package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	profile   *Profile
	expiresAt time.Time
}

// MemoryProfileCache is the in-process fallback used when Redis is
// unavailable.
type MemoryProfileCache struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]memoryEntry
	ttl      time.Duration
}

func NewMemoryProfileCache(ttl time.Duration) *MemoryProfileCache {
	return &MemoryProfileCache{
		profiles: make(map[uuid.UUID]memoryEntry),
		ttl:      ttl,
	}
}

func (c *MemoryProfileCache) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	c.mu.RLock()
	entry, ok := c.profiles[userID]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.profiles, userID)
		c.mu.Unlock()
		return nil, nil
	}

	return entry.profile, nil
}

func (c *MemoryProfileCache) Set(ctx context.Context, profile *Profile) error {
	c.mu.Lock()
	c.profiles[profile.UserID] = memoryEntry{
		profile:   profile,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryProfileCache) Clear(ctx context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	delete(c.profiles, userID)
	c.mu.Unlock()
	return nil
}
