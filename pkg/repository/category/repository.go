package category

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines category data access. Categories are shared by all users.
type Repository interface {
	Create(ctx context.Context, create *dto.CategoryCreate) error
	CreateMany(ctx context.Context, creates []*dto.CategoryCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.CategoryRead, error)
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]*dto.CategoryRead, error)
	Update(ctx context.Context, id uuid.UUID, update *dto.CategoryUpdate) error
	// Delete removes the category and detaches its transactions.
	Delete(ctx context.Context, id uuid.UUID) error
}
