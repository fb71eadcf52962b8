// Package category provides management of the shared category list.
package category

import (
	"context"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/google/uuid"
)

// Service provides category operations. Categories are global.
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

// DefaultCategories are created by SeedDefaults.
var DefaultCategories = []dto.CategoryCreate{
	{Name: "Salary", Icon: strPtr("💰"), Color: strPtr("#22c55e"), Type: domain.TransactionTypeIncome},
	{Name: "Freelance", Icon: strPtr("💻"), Color: strPtr("#3b82f6"), Type: domain.TransactionTypeIncome},
	{Name: "Investment", Icon: strPtr("📈"), Color: strPtr("#8b5cf6"), Type: domain.TransactionTypeIncome},
	{Name: "Food", Icon: strPtr("🍔"), Color: strPtr("#ef4444"), Type: domain.TransactionTypeExpense},
	{Name: "Transportation", Icon: strPtr("🚗"), Color: strPtr("#f97316"), Type: domain.TransactionTypeExpense},
	{Name: "Shopping", Icon: strPtr("🛒"), Color: strPtr("#ec4899"), Type: domain.TransactionTypeExpense},
	{Name: "Bills", Icon: strPtr("📄"), Color: strPtr("#6366f1"), Type: domain.TransactionTypeExpense},
	{Name: "Entertainment", Icon: strPtr("🎮"), Color: strPtr("#14b8a6"), Type: domain.TransactionTypeExpense},
	{Name: "Health", Icon: strPtr("🏥"), Color: strPtr("#f43f5e"), Type: domain.TransactionTypeExpense},
	{Name: "Education", Icon: strPtr("📚"), Color: strPtr("#0ea5e9"), Type: domain.TransactionTypeExpense},
}

// List returns all categories ordered by name.
func (s *Service) List(ctx context.Context) ([]*dto.CategoryRead, error) {
	return s.uow.CategoryRepository().List(ctx)
}

// Get returns one category.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryRead, error) {
	return s.uow.CategoryRepository().Get(ctx, id)
}

// Create stores a new category; an empty type defaults to expense.
func (s *Service) Create(ctx context.Context, in dto.CategoryCreate) (c *dto.CategoryRead, err error) {
	if in.Type == "" {
		in.Type = domain.TransactionTypeExpense
	}
	if !in.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	in.ID = uuid.New()
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.CategoryRepository()
		if err := repo.Create(ctx, &in); err != nil {
			return err
		}
		c, err = repo.Get(ctx, in.ID)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to create category", "error", err)
		return nil, err
	}
	return c, nil
}

// Update changes the non-nil fields of a category.
func (s *Service) Update(
	ctx context.Context,
	id uuid.UUID,
	update dto.CategoryUpdate,
) (c *dto.CategoryRead, err error) {
	if update.Type != nil && !update.Type.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.CategoryRepository()
		if err := repo.Update(ctx, id, &update); err != nil {
			return err
		}
		c, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a category. Transactions using it become uncategorized.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.CategoryRepository().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Category deleted", "categoryID", id)
	return nil
}

// SeedDefaults inserts the default categories.
func (s *Service) SeedDefaults(ctx context.Context) ([]*dto.CategoryRead, error) {
	creates := make([]*dto.CategoryCreate, 0, len(DefaultCategories))
	for _, d := range DefaultCategories {
		c := d
		c.ID = uuid.New()
		creates = append(creates, &c)
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		return uow.CategoryRepository().CreateMany(ctx, creates)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Seeded default categories", "count", len(creates))
	return s.List(ctx)
}
