package dto

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionCreate represents the data needed to persist a transaction.
type TransactionCreate struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	WalletID    *uuid.UUID
	CategoryID  *uuid.UUID
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
}

// TransactionUpdate is the full set of mutable columns after an update has
// been resolved against the existing row.
type TransactionUpdate struct {
	WalletID    *uuid.UUID
	CategoryID  *uuid.UUID
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
}

// TransactionRead is a transaction with its wallet and category, when set.
type TransactionRead struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	WalletID    *uuid.UUID
	CategoryID  *uuid.UUID
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Wallet      *WalletRead
	Category    *CategoryRead
}

// Effect returns what the transaction contributes to its wallet balance.
func (t *TransactionRead) Effect() *domain.Effect {
	return &domain.Effect{WalletID: t.WalletID, Type: t.Type, Amount: t.Amount}
}

// DateRange bounds a query by transaction date. Nil ends are open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	UserID     uuid.UUID
	Type       *domain.TransactionType
	WalletID   *uuid.UUID
	CategoryID *uuid.UUID
	DateRange
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes the page count for total items split by limit.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// TransactionPage is a page of transactions plus its pagination metadata.
type TransactionPage struct {
	Items      []*TransactionRead
	Pagination Pagination
}

// Summary aggregates income and expense totals.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// CategoryTotal is the sum of amounts for one (category, type) group.
// Category fields are nil when the transactions have no category.
type CategoryTotal struct {
	CategoryID    *uuid.UUID
	CategoryName  *string
	CategoryIcon  *string
	CategoryColor *string
	Type          domain.TransactionType
	Total         decimal.Decimal
}
