package cache

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySessionCache(ctx, 0)
	s := &dto.SessionRead{ID: uuid.New(), UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}

	got, err := c.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, s, time.Minute))
	got, err = c.Get(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.UserID, got.UserID)

	require.NoError(t, c.Delete(ctx, s.ID))
	got, err = c.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionCache_EntryNeverOutlivesSession(t *testing.T) {
	ctx := context.Background()
	c := NewMemorySessionCache(ctx, 0)
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	s := &dto.SessionRead{ID: uuid.New(), ExpiresAt: base.Add(30 * time.Second)}
	require.NoError(t, c.Set(ctx, s, 5*time.Minute))

	c.now = func() time.Time { return base.Add(31 * time.Second) }
	got, err := c.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionCache_CleanupStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := NewMemorySessionCache(ctx, time.Millisecond)
	s := &dto.SessionRead{ID: uuid.New(), ExpiresAt: time.Now().Add(-time.Second)}
	require.NoError(t, c.Set(ctx, s, time.Minute))

	assert.Eventually(t, func() bool {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return len(c.entries) == 0
	}, time.Second, 5*time.Millisecond)
	cancel()
}
