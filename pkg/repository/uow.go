package repository

import (
	"context"

	"github.com/amirasaad/fintrack/pkg/repository/category"
	"github.com/amirasaad/fintrack/pkg/repository/session"
	"github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/amirasaad/fintrack/pkg/repository/user"
	"github.com/amirasaad/fintrack/pkg/repository/wallet"
)

// UnitOfWork defines the contract for transactional work and repository access.
//
// Repositories obtained from the UnitOfWork passed to Do share the same
// database transaction, so a transaction insert and the wallet balance
// adjustments it causes commit or roll back together.
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	// If the function returns an error, the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() user.Repository
	SessionRepository() session.Repository
	WalletRepository() wallet.Repository
	CategoryRepository() category.Repository
	TransactionRepository() transaction.Repository
}
