package repository

import (
	"context"

	"github.com/amirasaad/fintrack/infra/repository/category"
	"github.com/amirasaad/fintrack/infra/repository/session"
	"github.com/amirasaad/fintrack/infra/repository/transaction"
	"github.com/amirasaad/fintrack/infra/repository/user"
	"github.com/amirasaad/fintrack/infra/repository/wallet"
	"github.com/amirasaad/fintrack/pkg/repository"
	categoryrepo "github.com/amirasaad/fintrack/pkg/repository/category"
	sessionrepo "github.com/amirasaad/fintrack/pkg/repository/session"
	transactionrepo "github.com/amirasaad/fintrack/pkg/repository/transaction"
	userrepo "github.com/amirasaad/fintrack/pkg/repository/user"
	walletrepo "github.com/amirasaad/fintrack/pkg/repository/wallet"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
//
// Repositories returned inside Do are bound to the transaction; outside Do
// they run on the plain connection pool.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		// already inside a transaction
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// UserRepository returns a user repository bound to the current session.
func (u *UoW) UserRepository() userrepo.Repository {
	return user.New(u.conn())
}

// SessionRepository returns a session repository bound to the current session.
func (u *UoW) SessionRepository() sessionrepo.Repository {
	return session.New(u.conn())
}

// WalletRepository returns a wallet repository bound to the current session.
func (u *UoW) WalletRepository() walletrepo.Repository {
	return wallet.New(u.conn())
}

// CategoryRepository returns a category repository bound to the current session.
func (u *UoW) CategoryRepository() categoryrepo.Repository {
	return category.New(u.conn())
}

// TransactionRepository returns a transaction repository bound to the current session.
func (u *UoW) TransactionRepository() transactionrepo.Repository {
	return transaction.New(u.conn())
}
