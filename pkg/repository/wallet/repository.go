package wallet

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines wallet data access. Every lookup is scoped by owner.
type Repository interface {
	Create(ctx context.Context, create *dto.WalletCreate) error
	CreateMany(ctx context.Context, creates []*dto.WalletCreate) error
	Get(ctx context.Context, id, userID uuid.UUID) (*dto.WalletRead, error)
	// ListByUser returns the wallets of a user ordered by name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.WalletRead, error)
	Update(ctx context.Context, id, userID uuid.UUID, update *dto.WalletUpdate) error
	// Delete removes the wallet and detaches its transactions.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// AdjustBalance adds delta to the balance in a single UPDATE statement,
	// so concurrent adjustments never overwrite each other.
	AdjustBalance(ctx context.Context, id, userID uuid.UUID, delta decimal.Decimal) error

	// TotalBalance sums the balances of every wallet the user owns.
	TotalBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}
