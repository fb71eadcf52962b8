// Package testutils provides database and logger helpers for package tests.
package testutils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/fintrack/infra"
	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory sqlite database with the schema applied.
func NewTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	url := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := infra.NewDBConnection(&config.DB{Driver: "sqlite", Url: url}, "test")
	require.NoError(tb, err)
	require.NoError(tb, infra.AutoMigrate(db))
	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewTestUoW returns a unit of work over a fresh test database.
func NewTestUoW(tb testing.TB) *infrarepo.UoW {
	tb.Helper()
	return infrarepo.NewUoW(NewTestDB(tb))
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// FastPasswords lowers the bcrypt cost for the duration of the test.
func FastPasswords(tb testing.TB) {
	tb.Helper()
	prev := utils.PasswordCost
	utils.PasswordCost = bcrypt.MinCost
	tb.Cleanup(func() { utils.PasswordCost = prev })
}

// CreateUser inserts a user with the given email directly through the repository.
func CreateUser(tb testing.TB, uow *infrarepo.UoW, email string) uuid.UUID {
	tb.Helper()
	hashed, err := utils.HashPassword("password123")
	require.NoError(tb, err)
	id := uuid.New()
	require.NoError(tb, uow.UserRepository().Create(context.Background(), &dto.UserCreate{
		ID:             id,
		Email:          email,
		Name:           "Test User",
		HashedPassword: hashed,
	}))
	return id
}
