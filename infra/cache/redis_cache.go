package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisSessionCache implements cache.SessionCache using Redis.
type RedisSessionCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisSessionCache creates a cache from a redis:// URL.
func NewRedisSessionCache(url, prefix string, logger *slog.Logger) (*RedisSessionCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewRedisSessionCacheWithOptions(opt, prefix, logger), nil
}

// NewRedisSessionCacheWithOptions creates a cache from redis.Options.
func NewRedisSessionCacheWithOptions(
	opt *redis.Options,
	prefix string,
	logger *slog.Logger,
) *RedisSessionCache {
	return &RedisSessionCache{client: redis.NewClient(opt), prefix: prefix, logger: logger}
}

func (r *RedisSessionCache) key(id uuid.UUID) string {
	return r.prefix + id.String()
}

// Ping checks connectivity.
func (r *RedisSessionCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisSessionCache) Get(ctx context.Context, id uuid.UUID) (*dto.SessionRead, error) {
	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis session cache miss", "session_id", id)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Redis session cache get error", "session_id", id, "error", err)
		return nil, err
	}
	var s dto.SessionRead
	if err := json.Unmarshal(val, &s); err != nil {
		r.logger.Error("Redis session cache unmarshal error", "session_id", id, "error", err)
		return nil, err
	}
	return &s, nil
}

func (r *RedisSessionCache) Set(ctx context.Context, session *dto.SessionRead, ttl time.Duration) error {
	if until := time.Until(session.ExpiresAt); until < ttl {
		ttl = until
	}
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(session.ID), data, ttl).Err(); err != nil {
		r.logger.Error("Redis session cache set error", "session_id", session.ID, "error", err)
		return err
	}
	return nil
}

func (r *RedisSessionCache) Delete(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, r.key(id))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Redis session cache delete error", "count", len(ids), "error", err)
		return err
	}
	return nil
}

// Close releases the underlying client.
func (r *RedisSessionCache) Close() error {
	return r.client.Close()
}
