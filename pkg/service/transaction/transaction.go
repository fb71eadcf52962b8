// Package transaction records income and expenses and keeps wallet balances
// reconciled with them.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// CreateInput holds a new transaction. A nil Date means now.
type CreateInput struct {
	WalletID    *uuid.UUID
	CategoryID  *uuid.UUID
	Type        domain.TransactionType
	Amount      decimal.Decimal
	Description *string
	Date        *time.Time
}

// Ref is an optional reference in an update. Set with a nil ID clears it.
type Ref struct {
	Set bool
	ID  *uuid.UUID
}

// UpdateInput holds the fields to change. Nil pointers and unset refs keep
// the stored value.
type UpdateInput struct {
	WalletID    Ref
	CategoryID  Ref
	Type        *domain.TransactionType
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
}

// Service provides transaction operations for a single owner at a time.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func validate(typ domain.TransactionType, amount decimal.Decimal) error {
	if !typ.Valid() {
		return domain.ErrInvalidTransactionType
	}
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	return nil
}

func validateRange(dr dto.DateRange) error {
	if dr.Start != nil && dr.End != nil && dr.Start.After(*dr.End) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// checkRefs verifies that walletID belongs to userID and categoryID exists.
func checkRefs(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	walletID, categoryID *uuid.UUID,
) error {
	if walletID != nil {
		if _, err := uow.WalletRepository().Get(ctx, *walletID, userID); err != nil {
			return err
		}
	}
	if categoryID != nil {
		if _, err := uow.CategoryRepository().Get(ctx, *categoryID); err != nil {
			return err
		}
	}
	return nil
}

// applyAdjustments writes balance deltas inside the caller's unit of work.
func applyAdjustments(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	adjustments []domain.Adjustment,
) error {
	wallets := uow.WalletRepository()
	for _, adj := range adjustments {
		if err := wallets.AdjustBalance(ctx, adj.WalletID, userID, adj.Delta); err != nil {
			return err
		}
	}
	return nil
}

// Create stores a transaction and applies its effect to its wallet.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	in CreateInput,
) (tx *dto.TransactionRead, err error) {
	log := s.logger.With("context", "CreateTransaction", "userID", userID)
	if err := validate(in.Type, in.Amount); err != nil {
		return nil, err
	}
	date := s.now()
	if in.Date != nil {
		date = in.Date.UTC()
	}
	create := &dto.TransactionCreate{
		ID:          uuid.New(),
		UserID:      userID,
		WalletID:    in.WalletID,
		CategoryID:  in.CategoryID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        date,
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := checkRefs(ctx, uow, userID, in.WalletID, in.CategoryID); err != nil {
			return err
		}
		repo := uow.TransactionRepository()
		if err := repo.Create(ctx, create); err != nil {
			return err
		}
		effect := &domain.Effect{WalletID: in.WalletID, Type: in.Type, Amount: in.Amount}
		if err := applyAdjustments(ctx, uow, userID, domain.Reconcile(nil, effect)); err != nil {
			return err
		}
		tx, err = repo.Get(ctx, create.ID, userID)
		return err
	})
	if err != nil {
		log.Warn("Failed to create transaction", "error", err)
		return nil, err
	}
	log.Info("Transaction created", "transactionID", tx.ID, "type", tx.Type, "amount", tx.Amount.StringFixed(2))
	return tx, nil
}

// Update changes a transaction and moves its balance effect so wallets end
// up as if it had been created with the new values.
func (s *Service) Update(
	ctx context.Context,
	id, userID uuid.UUID,
	in UpdateInput,
) (tx *dto.TransactionRead, err error) {
	log := s.logger.With("context", "UpdateTransaction", "userID", userID, "transactionID", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.TransactionRepository()
		existing, err := repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}

		next := dto.TransactionUpdate{
			WalletID:    existing.WalletID,
			CategoryID:  existing.CategoryID,
			Type:        existing.Type,
			Amount:      existing.Amount,
			Description: existing.Description,
			Date:        existing.Date,
		}
		var newWallet, newCategory *uuid.UUID
		if in.WalletID.Set {
			next.WalletID = in.WalletID.ID
			newWallet = in.WalletID.ID
		}
		if in.CategoryID.Set {
			next.CategoryID = in.CategoryID.ID
			newCategory = in.CategoryID.ID
		}
		if in.Type != nil {
			next.Type = *in.Type
		}
		if in.Amount != nil {
			next.Amount = *in.Amount
		}
		if in.Description != nil {
			next.Description = in.Description
		}
		if in.Date != nil {
			next.Date = in.Date.UTC()
		}
		if err := validate(next.Type, next.Amount); err != nil {
			return err
		}
		if err := checkRefs(ctx, uow, userID, newWallet, newCategory); err != nil {
			return err
		}

		if err := repo.Update(ctx, id, userID, &next); err != nil {
			return err
		}
		after := &domain.Effect{WalletID: next.WalletID, Type: next.Type, Amount: next.Amount}
		if err := applyAdjustments(ctx, uow, userID, domain.Reconcile(existing.Effect(), after)); err != nil {
			return err
		}
		tx, err = repo.Get(ctx, id, userID)
		return err
	})
	if err != nil {
		log.Warn("Failed to update transaction", "error", err)
		return nil, err
	}
	log.Info("Transaction updated")
	return tx, nil
}

// Delete removes a transaction and reverses its effect on its wallet.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := s.logger.With("context", "DeleteTransaction", "userID", userID, "transactionID", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.TransactionRepository()
		existing, err := repo.Get(ctx, id, userID)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id, userID); err != nil {
			return err
		}
		return applyAdjustments(ctx, uow, userID, domain.Reconcile(existing.Effect(), nil))
	})
	if err != nil {
		log.Warn("Failed to delete transaction", "error", err)
		return err
	}
	log.Info("Transaction deleted")
	return nil
}

// Get returns one transaction of the user with its wallet and category.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*dto.TransactionRead, error) {
	return s.uow.TransactionRepository().Get(ctx, id, userID)
}

// List returns one page of the user's transactions, newest first. The page
// and the total count are read concurrently.
func (s *Service) List(
	ctx context.Context,
	filter dto.TransactionFilter,
	page, limit int,
) (*dto.TransactionPage, error) {
	if err := validateRange(filter.DateRange); err != nil {
		return nil, err
	}
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	repo := s.uow.TransactionRepository()
	var (
		items []*dto.TransactionRead
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		items, err = repo.List(gctx, filter, page, limit)
		return
	})
	g.Go(func() (err error) {
		total, err = repo.Count(gctx, filter)
		return
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to list transactions", "userID", filter.UserID, "error", err)
		return nil, err
	}
	return &dto.TransactionPage{Items: items, Pagination: dto.NewPagination(page, limit, total)}, nil
}

// Summary totals income and expense in the range. Balance is their difference.
func (s *Service) Summary(
	ctx context.Context,
	userID uuid.UUID,
	dr dto.DateRange,
) (*dto.Summary, error) {
	if err := validateRange(dr); err != nil {
		return nil, err
	}
	repo := s.uow.TransactionRepository()
	var income, expense decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		income, err = repo.Sum(gctx, userID, domain.TransactionTypeIncome, dr)
		return
	})
	g.Go(func() (err error) {
		expense, err = repo.Sum(gctx, userID, domain.TransactionTypeExpense, dr)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}, nil
}

// ByCategory totals amounts per (category, type) in the range.
func (s *Service) ByCategory(
	ctx context.Context,
	userID uuid.UUID,
	dr dto.DateRange,
) ([]*dto.CategoryTotal, error) {
	if err := validateRange(dr); err != nil {
		return nil, err
	}
	return s.uow.TransactionRepository().ByCategory(ctx, userID, dr)
}
