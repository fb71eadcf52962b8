//go:build integration

package cache

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisCache(tb testing.TB) *RedisSessionCache {
	tb.Helper()
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7.0.5",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(tb, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(tb, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	c, err := NewRedisSessionCache("redis://"+host+":"+port.Port(), "test:session:", logger)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = c.Close() })
	require.NoError(tb, c.Ping(ctx))
	return c
}

func TestRedisSessionCache_RoundTrip(t *testing.T) {
	c := setupRedisCache(t)
	ctx := context.Background()
	s := &dto.SessionRead{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
		UserAgent: "go-test",
	}

	require.NoError(t, c.Set(ctx, s, time.Minute))
	got, err := c.Get(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, s.UserID, got.UserID)
	assert.Equal(t, "go-test", got.UserAgent)

	require.NoError(t, c.Delete(ctx, s.ID))
	got, err = c.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisSessionCache_SkipsExpiredSession(t *testing.T) {
	c := setupRedisCache(t)
	ctx := context.Background()
	s := &dto.SessionRead{ID: uuid.New(), ExpiresAt: time.Now().Add(-time.Minute)}

	require.NoError(t, c.Set(ctx, s, time.Minute))
	got, err := c.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
