// Package wallet provides wallet management scoped to the owning user.
package wallet

import (
	"context"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides wallet operations for a single owner at a time.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, logger: logger}
}

func strPtr(s string) *string { return &s }

// DefaultWallets are created by SeedDefaults.
var DefaultWallets = []dto.WalletCreate{
	{Name: "Cash", Icon: strPtr("💵"), Color: strPtr("#22c55e")},
	{Name: "Bank", Icon: strPtr("🏦"), Color: strPtr("#3b82f6")},
	{Name: "E-Wallet", Icon: strPtr("📱"), Color: strPtr("#8b5cf6")},
}

// List returns the user's wallets ordered by name.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*dto.WalletRead, error) {
	return s.uow.WalletRepository().ListByUser(ctx, userID)
}

// Get returns one wallet of the user.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*dto.WalletRead, error) {
	return s.uow.WalletRepository().Get(ctx, id, userID)
}

// Create stores a new wallet. ID and UserID of in are assigned here.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in dto.WalletCreate,
) (w *dto.WalletRead, err error) {
	log := s.logger.With("context", "CreateWallet", "userID", userID)
	in.ID = uuid.New()
	in.UserID = userID
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.WalletRepository()
		if err := repo.Create(ctx, &in); err != nil {
			return err
		}
		w, err = repo.Get(ctx, in.ID, userID)
		return err
	})
	if err != nil {
		log.Error("Failed to create wallet", "error", err)
		return nil, err
	}
	log.Info("Wallet created", "walletID", w.ID)
	return w, nil
}

// Update changes the non-nil fields of a wallet. Setting Balance overwrites
// the stored balance without touching transactions.
func (s *Service) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	update dto.WalletUpdate,
) (w *dto.WalletRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.WalletRepository()
		if err := repo.Update(ctx, id, userID, &update); err != nil {
			return err
		}
		w, err = repo.Get(ctx, id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Delete removes a wallet. Its transactions are kept without a wallet.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := s.logger.With("context", "DeleteWallet", "userID", userID, "walletID", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.WalletRepository().Delete(ctx, id, userID)
	})
	if err != nil {
		log.Warn("Failed to delete wallet", "error", err)
		return err
	}
	log.Info("Wallet deleted")
	return nil
}

// TotalBalance sums the balances of all the user's wallets.
func (s *Service) TotalBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	return s.uow.WalletRepository().TotalBalance(ctx, userID)
}

// SeedDefaults creates the default wallets for the user with zero balances.
func (s *Service) SeedDefaults(ctx context.Context, userID uuid.UUID) ([]*dto.WalletRead, error) {
	creates := make([]*dto.WalletCreate, 0, len(DefaultWallets))
	for _, d := range DefaultWallets {
		c := d
		c.ID = uuid.New()
		c.UserID = userID
		c.Balance = decimal.Zero
		creates = append(creates, &c)
	}
	var out []*dto.WalletRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.WalletRepository()
		if err := repo.CreateMany(ctx, creates); err != nil {
			return err
		}
		var err error
		out, err = repo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Seeded default wallets", "userID", userID, "count", len(creates))
	return out, nil
}
