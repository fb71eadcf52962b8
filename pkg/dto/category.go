package dto

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
)

// CategoryCreate represents the data needed to create a category.
type CategoryCreate struct {
	ID    uuid.UUID
	Name  string
	Icon  *string
	Color *string
	Type  domain.TransactionType
}

// CategoryUpdate holds the optional fields of a category update.
type CategoryUpdate struct {
	Name  *string
	Icon  *string
	Color *string
	Type  *domain.TransactionType
}

// CategoryRead is a read-optimized view of a category.
type CategoryRead struct {
	ID        uuid.UUID
	Name      string
	Icon      *string
	Color     *string
	Type      domain.TransactionType
	CreatedAt time.Time
}
