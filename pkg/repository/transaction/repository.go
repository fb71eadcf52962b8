package transaction

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines transaction data access. Every lookup is scoped by owner.
type Repository interface {
	Create(ctx context.Context, create *dto.TransactionCreate) error

	// Update overwrites the mutable columns of a transaction.
	Update(ctx context.Context, id, userID uuid.UUID, update *dto.TransactionUpdate) error

	Delete(ctx context.Context, id, userID uuid.UUID) error

	// Get retrieves a transaction with its wallet and category.
	Get(ctx context.Context, id, userID uuid.UUID) (*dto.TransactionRead, error)

	// List returns one page of matching transactions, newest date first.
	List(ctx context.Context, filter dto.TransactionFilter, page, limit int) ([]*dto.TransactionRead, error)

	// Count returns the number of transactions matching filter.
	Count(ctx context.Context, filter dto.TransactionFilter) (int64, error)

	// Sum totals the amounts of one transaction type within a date range.
	Sum(ctx context.Context, userID uuid.UUID, typ domain.TransactionType, dateRange dto.DateRange) (decimal.Decimal, error)

	// ByCategory totals amounts grouped by category and type.
	ByCategory(ctx context.Context, userID uuid.UUID, dateRange dto.DateRange) ([]*dto.CategoryTotal, error)
}
