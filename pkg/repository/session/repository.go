package session

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// Repository persists sign-in sessions.
type Repository interface {
	Create(ctx context.Context, create *dto.SessionCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.SessionRead, error)
	// ListByUser returns the sessions of a user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.SessionRead, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByUserExcept removes every session of userID except keep and
	// returns the removed IDs.
	DeleteByUserExcept(ctx context.Context, userID, keep uuid.UUID) ([]uuid.UUID, error)
}
