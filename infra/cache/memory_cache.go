package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// MemorySessionCache implements cache.SessionCache using in-memory storage.
type MemorySessionCache struct {
	entries map[uuid.UUID]*cacheEntry
	mu      sync.RWMutex
	now     func() time.Time
}

type cacheEntry struct {
	session   dto.SessionRead
	expiresAt time.Time
}

// NewMemorySessionCache creates a new in-memory cache. Expired entries are
// swept every interval until ctx is done.
func NewMemorySessionCache(ctx context.Context, interval time.Duration) *MemorySessionCache {
	c := &MemorySessionCache{
		entries: make(map[uuid.UUID]*cacheEntry),
		now:     time.Now,
	}
	if interval > 0 {
		go c.cleanup(ctx, interval)
	}
	return c
}

// Get retrieves a session from cache.
func (c *MemorySessionCache) Get(_ context.Context, id uuid.UUID) (*dto.SessionRead, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[id]
	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, nil
	}
	s := entry.session
	return &s, nil
}

// Set stores a session until ttl passes or the session itself expires,
// whichever comes first.
func (c *MemorySessionCache) Set(_ context.Context, session *dto.SessionRead, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)
	if session.ExpiresAt.Before(expiresAt) {
		expiresAt = session.ExpiresAt
	}
	c.entries[session.ID] = &cacheEntry{session: *session, expiresAt: expiresAt}
	return nil
}

// Delete removes sessions from cache.
func (c *MemorySessionCache) Delete(_ context.Context, ids ...uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range ids {
		delete(c.entries, id)
	}
	return nil
}

func (c *MemorySessionCache) cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			now := c.now()
			for id, entry := range c.entries {
				if !now.Before(entry.expiresAt) {
					delete(c.entries, id)
				}
			}
			c.mu.Unlock()
		}
	}
}
