package user

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, create *dto.UserCreate) error

	// Update updates an existing user by its ID. Nil fields are skipped.
	Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error

	// Get retrieves a user by its ID.
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*dto.UserRead, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
