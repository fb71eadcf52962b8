// Package user provides account administration outside the HTTP sign-in flow.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/google/uuid"
)

// MinPasswordLength is the shortest password accepted for new accounts.
const MinPasswordLength = 6

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(
	uow repository.UnitOfWork,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		logger: logger,
	}
}

// CreateUser creates a new user in a transaction without opening a session.
func (s *Service) CreateUser(
	ctx context.Context,
	email, name, password string,
) (u *dto.UserRead, err error) {
	email = utils.NormalizeEmail(email)
	if !utils.IsEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, MinPasswordLength)
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo := uow.UserRepository()
		exists, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrEmailTaken
		}
		id := uuid.New()
		if err := repo.Create(ctx, &dto.UserCreate{
			ID:             id,
			Email:          email,
			Name:           name,
			HashedPassword: hashed,
		}); err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to create user", "email", email, "error", err)
		return nil, err
	}
	s.logger.Info("User created", "userID", u.ID)
	return u, nil
}

// GetUserByEmail looks a user up by email.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	return s.uow.UserRepository().GetByEmail(ctx, utils.NormalizeEmail(email))
}
