package wallet_test

import (
	"context"
	"testing"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/service/wallet"
	"github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletLifecycle(t *testing.T) {
	ctx := context.Background()
	uow := testutils.NewTestUoW(t)
	svc := wallet.New(uow, testutils.DiscardLogger())
	userID := testutils.CreateUser(t, uow, "w@example.com")

	icon := "💳"
	w, err := svc.Create(ctx, userID, dto.WalletCreate{
		Name:    "Card",
		Balance: decimal.RequireFromString("1500.25"),
		Icon:    &icon,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, w.UserID)
	assert.Equal(t, "1500.25", w.Balance.StringFixed(2))

	name := "Credit card"
	balance := decimal.RequireFromString("-200")
	w, err = svc.Update(ctx, w.ID, userID, dto.WalletUpdate{Name: &name, Balance: &balance})
	require.NoError(t, err)
	assert.Equal(t, "Credit card", w.Name)
	assert.Equal(t, "-200.00", w.Balance.StringFixed(2))
	require.NotNil(t, w.Icon)
	assert.Equal(t, icon, *w.Icon)

	require.NoError(t, svc.Delete(ctx, w.ID, userID))
	_, err = svc.Get(ctx, w.ID, userID)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, w.ID, userID), domain.ErrNotFound)
}

func TestWalletsAreScopedByOwner(t *testing.T) {
	ctx := context.Background()
	uow := testutils.NewTestUoW(t)
	svc := wallet.New(uow, testutils.DiscardLogger())
	owner := testutils.CreateUser(t, uow, "owner@example.com")
	other := testutils.CreateUser(t, uow, "other@example.com")

	w, err := svc.Create(ctx, owner, dto.WalletCreate{Name: "Cash"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, w.ID, other)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)

	name := "stolen"
	_, err = svc.Update(ctx, w.ID, other, dto.WalletUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)

	list, err := svc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Update(ctx, uuid.New(), owner, dto.WalletUpdate{})
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestSeedDefaultsAndTotalBalance(t *testing.T) {
	ctx := context.Background()
	uow := testutils.NewTestUoW(t)
	svc := wallet.New(uow, testutils.DiscardLogger())
	userID := testutils.CreateUser(t, uow, "seed@example.com")

	seeded, err := svc.SeedDefaults(ctx, userID)
	require.NoError(t, err)
	require.Len(t, seeded, 3)
	names := []string{seeded[0].Name, seeded[1].Name, seeded[2].Name}
	assert.Equal(t, []string{"Bank", "Cash", "E-Wallet"}, names)

	total, err := svc.TotalBalance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	_, err = svc.Create(ctx, userID, dto.WalletCreate{Name: "Savings", Balance: decimal.RequireFromString("750.50")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, userID, dto.WalletCreate{Name: "Loan", Balance: decimal.RequireFromString("-250")})
	require.NoError(t, err)

	total, err = svc.TotalBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "500.50", total.StringFixed(2))
}
