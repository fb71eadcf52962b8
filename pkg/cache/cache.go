package cache

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// SessionCache keeps recently validated sessions so authenticated requests
// skip the sessions table. A miss is reported as (nil, nil).
type SessionCache interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.SessionRead, error)
	Set(ctx context.Context, session *dto.SessionRead, ttl time.Duration) error
	Delete(ctx context.Context, ids ...uuid.UUID) error
}
