package transaction_test

import (
	"context"
	"testing"
	"time"

	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/service/transaction"
	"github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceSuite struct {
	suite.Suite
	ctx    context.Context
	uow    *infrarepo.UoW
	svc    *transaction.Service
	userID uuid.UUID
}

func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceSuite))
}

func (s *TransactionServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = testutils.NewTestUoW(s.T())
	s.svc = transaction.New(s.uow, testutils.DiscardLogger())
	s.userID = testutils.CreateUser(s.T(), s.uow, "owner@example.com")
}

func amount(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func day(d int) *time.Time {
	t := time.Date(2025, time.March, d, 12, 0, 0, 0, time.UTC)
	return &t
}

func (s *TransactionServiceSuite) newWallet(userID uuid.UUID, balance string) uuid.UUID {
	id := uuid.New()
	s.Require().NoError(s.uow.WalletRepository().Create(s.ctx, &dto.WalletCreate{
		ID: id, UserID: userID, Name: "Wallet " + id.String()[:4], Balance: amount(balance),
	}))
	return id
}

func (s *TransactionServiceSuite) newCategory(name string, typ domain.TransactionType) uuid.UUID {
	id := uuid.New()
	s.Require().NoError(s.uow.CategoryRepository().Create(s.ctx, &dto.CategoryCreate{
		ID: id, Name: name, Type: typ,
	}))
	return id
}

func (s *TransactionServiceSuite) balance(walletID uuid.UUID) string {
	w, err := s.uow.WalletRepository().Get(s.ctx, walletID, s.userID)
	s.Require().NoError(err)
	return w.Balance.StringFixed(2)
}

func (s *TransactionServiceSuite) TestExpenseThenDeleteRestoresBalance() {
	walletID := s.newWallet(s.userID, "1000000")

	tx, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
		WalletID: &walletID,
		Type:     domain.TransactionTypeExpense,
		Amount:   amount("100000"),
	})
	s.Require().NoError(err)
	s.Equal("900000.00", s.balance(walletID))
	s.Require().NotNil(tx.Wallet)
	s.Equal(walletID, tx.Wallet.ID)

	s.Require().NoError(s.svc.Delete(s.ctx, tx.ID, s.userID))
	s.Equal("1000000.00", s.balance(walletID))

	_, err = s.svc.Get(s.ctx, tx.ID, s.userID)
	s.ErrorIs(err, domain.ErrTransactionNotFound)
}

func (s *TransactionServiceSuite) TestIncomeIncreasesBalance() {
	walletID := s.newWallet(s.userID, "0")
	_, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
		WalletID: &walletID,
		Type:     domain.TransactionTypeIncome,
		Amount:   amount("250.50"),
	})
	s.Require().NoError(err)
	s.Equal("250.50", s.balance(walletID))
}

func (s *TransactionServiceSuite) TestWithoutWalletTouchesNoBalance() {
	walletID := s.newWallet(s.userID, "100")
	tx, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
		Type:   domain.TransactionTypeExpense,
		Amount: amount("40"),
	})
	s.Require().NoError(err)
	s.Nil(tx.WalletID)
	s.Nil(tx.Wallet)
	s.Equal("100.00", s.balance(walletID))
}

func (s *TransactionServiceSuite) TestUpdateMatchesCreateWithNewValues() {
	a := s.newWallet(s.userID, "1000")
	b := s.newWallet(s.userID, "1000")

	tx, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
		WalletID: &a,
		Type:     domain.TransactionTypeExpense,
		Amount:   amount("100"),
	})
	s.Require().NoError(err)
	s.Equal("900.00", s.balance(a))

	// amount only
	newAmount := amount("150")
	_, err = s.svc.Update(s.ctx, tx.ID, s.userID, transaction.UpdateInput{Amount: &newAmount})
	s.Require().NoError(err)
	s.Equal("850.00", s.balance(a))

	// type flip
	income := domain.TransactionTypeIncome
	_, err = s.svc.Update(s.ctx, tx.ID, s.userID, transaction.UpdateInput{Type: &income})
	s.Require().NoError(err)
	s.Equal("1150.00", s.balance(a))

	// move to another wallet
	updated, err := s.svc.Update(s.ctx, tx.ID, s.userID, transaction.UpdateInput{
		WalletID: transaction.Ref{Set: true, ID: &b},
	})
	s.Require().NoError(err)
	s.Equal("1000.00", s.balance(a))
	s.Equal("1150.00", s.balance(b))
	s.Require().NotNil(updated.WalletID)
	s.Equal(b, *updated.WalletID)

	// detach
	_, err = s.svc.Update(s.ctx, tx.ID, s.userID, transaction.UpdateInput{
		WalletID: transaction.Ref{Set: true},
	})
	s.Require().NoError(err)
	s.Equal("1000.00", s.balance(b))
}

func (s *TransactionServiceSuite) TestDescriptionOnlyUpdateKeepsBalance() {
	walletID := s.newWallet(s.userID, "500")
	tx, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
		WalletID: &walletID,
		Type:     domain.TransactionTypeExpense,
		Amount:   amount("20"),
	})
	s.Require().NoError(err)

	desc := "lunch"
	updated, err := s.svc.Update(s.ctx, tx.ID, s.userID, transaction.UpdateInput{Description: &desc})
	s.Require().NoError(err)
	s.Equal("480.00", s.balance(walletID))
	s.Require().NotNil(updated.Description)
	s.Equal("lunch", *updated.Description)
}

func (s *TransactionServiceSuite) TestForeignWalletIsNotFound() {
	otherUser := testutils.CreateUser(s.T(), s.uow, "other@example.com")
	foreign := s.newWallet(otherUser, "100")

	_, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
		WalletID: &foreign,
		Type:     domain.TransactionTypeExpense,
		Amount:   amount("10"),
	})
	s.ErrorIs(err, domain.ErrWalletNotFound)

	w, err := s.uow.WalletRepository().Get(s.ctx, foreign, otherUser)
	s.Require().NoError(err)
	s.Equal("100.00", w.Balance.StringFixed(2))
}

func (s *TransactionServiceSuite) TestMissingCategoryRollsBack() {
	walletID := s.newWallet(s.userID, "100")
	missing := uuid.New()
	_, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
		WalletID:   &walletID,
		CategoryID: &missing,
		Type:       domain.TransactionTypeExpense,
		Amount:     amount("10"),
	})
	s.ErrorIs(err, domain.ErrCategoryNotFound)
	s.Equal("100.00", s.balance(walletID))

	page, err := s.svc.List(s.ctx, dto.TransactionFilter{UserID: s.userID}, 1, 20)
	s.Require().NoError(err)
	s.Empty(page.Items)
}

func (s *TransactionServiceSuite) TestRejectsInvalidInput() {
	_, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
		Type:   domain.TransactionTypeExpense,
		Amount: amount("0"),
	})
	s.ErrorIs(err, domain.ErrInvalidAmount)

	_, err = s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
		Type:   "transfer",
		Amount: amount("1"),
	})
	s.ErrorIs(err, domain.ErrInvalidTransactionType)

	_, err = s.svc.Summary(s.ctx, s.userID, dto.DateRange{Start: day(10), End: day(1)})
	s.ErrorIs(err, domain.ErrInvalidDateRange)
}

func (s *TransactionServiceSuite) TestOtherUsersTransactionIsNotFound() {
	otherUser := testutils.CreateUser(s.T(), s.uow, "intruder@example.com")
	tx, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
		Type:   domain.TransactionTypeIncome,
		Amount: amount("10"),
	})
	s.Require().NoError(err)

	_, err = s.svc.Get(s.ctx, tx.ID, otherUser)
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(s.svc.Delete(s.ctx, tx.ID, otherUser), domain.ErrTransactionNotFound)
}

func (s *TransactionServiceSuite) TestSummary() {
	walletID := s.newWallet(s.userID, "0")
	for _, in := range []transaction.CreateInput{
		{WalletID: &walletID, Type: domain.TransactionTypeIncome, Amount: amount("1000000"), Date: day(1)},
		{WalletID: &walletID, Type: domain.TransactionTypeExpense, Amount: amount("300000"), Date: day(2)},
		{WalletID: &walletID, Type: domain.TransactionTypeExpense, Amount: amount("200000"), Date: day(3)},
	} {
		_, err := s.svc.Create(s.ctx, s.userID, in)
		s.Require().NoError(err)
	}

	sum, err := s.svc.Summary(s.ctx, s.userID, dto.DateRange{})
	s.Require().NoError(err)
	s.Equal("1000000.00", sum.TotalIncome.StringFixed(2))
	s.Equal("500000.00", sum.TotalExpense.StringFixed(2))
	s.Equal("500000.00", sum.Balance.StringFixed(2))
	s.Equal("500000.00", s.balance(walletID))

	empty, err := s.svc.Summary(s.ctx, uuid.New(), dto.DateRange{})
	s.Require().NoError(err)
	s.True(empty.TotalIncome.IsZero())
	s.True(empty.Balance.IsZero())
}

func (s *TransactionServiceSuite) TestListPaginatesNewestFirst() {
	for d := 1; d <= 5; d++ {
		_, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
			Type:   domain.TransactionTypeExpense,
			Amount: amount("1"),
			Date:   day(d),
		})
		s.Require().NoError(err)
	}

	first, err := s.svc.List(s.ctx, dto.TransactionFilter{UserID: s.userID}, 1, 3)
	s.Require().NoError(err)
	s.Len(first.Items, 3)
	s.Equal(dto.Pagination{Page: 1, Limit: 3, Total: 5, TotalPages: 2}, first.Pagination)
	s.Equal(5, first.Items[0].Date.Day())
	s.Equal(3, first.Items[2].Date.Day())

	second, err := s.svc.List(s.ctx, dto.TransactionFilter{UserID: s.userID}, 2, 3)
	s.Require().NoError(err)
	s.Len(second.Items, 2)
	s.Equal(1, second.Items[1].Date.Day())
}

func (s *TransactionServiceSuite) TestListFilters() {
	walletID := s.newWallet(s.userID, "0")
	food := s.newCategory("Food", domain.TransactionTypeExpense)
	inputs := []transaction.CreateInput{
		{WalletID: &walletID, CategoryID: &food, Type: domain.TransactionTypeExpense, Amount: amount("5"), Date: day(2)},
		{Type: domain.TransactionTypeExpense, Amount: amount("6"), Date: day(4)},
		{WalletID: &walletID, Type: domain.TransactionTypeIncome, Amount: amount("7"), Date: day(6)},
	}
	for _, in := range inputs {
		_, err := s.svc.Create(s.ctx, s.userID, in)
		s.Require().NoError(err)
	}

	expense := domain.TransactionTypeExpense
	page, err := s.svc.List(s.ctx, dto.TransactionFilter{UserID: s.userID, Type: &expense}, 1, 20)
	s.Require().NoError(err)
	s.EqualValues(2, page.Pagination.Total)

	page, err = s.svc.List(s.ctx, dto.TransactionFilter{UserID: s.userID, WalletID: &walletID}, 1, 20)
	s.Require().NoError(err)
	s.EqualValues(2, page.Pagination.Total)

	page, err = s.svc.List(s.ctx, dto.TransactionFilter{UserID: s.userID, CategoryID: &food}, 1, 20)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Require().NotNil(page.Items[0].Category)
	s.Equal("Food", page.Items[0].Category.Name)

	page, err = s.svc.List(s.ctx, dto.TransactionFilter{
		UserID:    s.userID,
		DateRange: dto.DateRange{Start: day(3), End: day(5)},
	}, 1, 20)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal("6.00", page.Items[0].Amount.StringFixed(2))
}

func (s *TransactionServiceSuite) TestByCategoryKeepsUncategorizedGroup() {
	food := s.newCategory("Food", domain.TransactionTypeExpense)
	salary := s.newCategory("Salary", domain.TransactionTypeIncome)
	inputs := []transaction.CreateInput{
		{CategoryID: &food, Type: domain.TransactionTypeExpense, Amount: amount("100")},
		{CategoryID: &food, Type: domain.TransactionTypeExpense, Amount: amount("50")},
		{CategoryID: &salary, Type: domain.TransactionTypeIncome, Amount: amount("1000")},
		{Type: domain.TransactionTypeExpense, Amount: amount("20")},
	}
	for _, in := range inputs {
		_, err := s.svc.Create(s.ctx, s.userID, in)
		s.Require().NoError(err)
	}

	totals, err := s.svc.ByCategory(s.ctx, s.userID, dto.DateRange{})
	s.Require().NoError(err)
	s.Require().Len(totals, 3)

	byName := map[string]string{}
	for _, t := range totals {
		name := "<none>"
		if t.CategoryName != nil {
			name = *t.CategoryName
		} else {
			s.Nil(t.CategoryID)
		}
		byName[name] = t.Total.StringFixed(2)
	}
	s.Equal("150.00", byName["Food"])
	s.Equal("1000.00", byName["Salary"])
	s.Equal("20.00", byName["<none>"])
}

func (s *TransactionServiceSuite) TestDeletingWalletDetachesTransactions() {
	walletID := s.newWallet(s.userID, "100")
	tx, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
		WalletID: &walletID,
		Type:     domain.TransactionTypeExpense,
		Amount:   amount("10"),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.uow.WalletRepository().Delete(s.ctx, walletID, s.userID))

	got, err := s.svc.Get(s.ctx, tx.ID, s.userID)
	s.Require().NoError(err)
	s.Nil(got.WalletID)

	// deleting the orphan must not fail on the missing wallet
	s.NoError(s.svc.Delete(s.ctx, tx.ID, s.userID))
}

func (s *TransactionServiceSuite) TestFractionalAmountsKeepExactBalance() {
	walletID := s.newWallet(s.userID, "0")

	for i := 0; i < 10; i++ {
		_, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
			WalletID: &walletID,
			Type:     domain.TransactionTypeIncome,
			Amount:   amount("0.10"),
		})
		s.Require().NoError(err)
	}
	w, err := s.uow.WalletRepository().Get(s.ctx, walletID, s.userID)
	s.Require().NoError(err)
	s.True(w.Balance.Equal(amount("1.00")), "balance is %s", w.Balance)

	for i := 0; i < 3; i++ {
		_, err := s.svc.Create(s.ctx, s.userID, transaction.CreateInput{
			WalletID: &walletID,
			Type:     domain.TransactionTypeExpense,
			Amount:   amount("0.30"),
		})
		s.Require().NoError(err)
	}
	w, err = s.uow.WalletRepository().Get(s.ctx, walletID, s.userID)
	s.Require().NoError(err)
	s.True(w.Balance.Equal(amount("0.10")), "balance is %s", w.Balance)

	summary, err := s.svc.Summary(s.ctx, s.userID, dto.DateRange{})
	s.Require().NoError(err)
	s.True(summary.TotalIncome.Equal(amount("1.00")), "income is %s", summary.TotalIncome)
	s.True(summary.TotalExpense.Equal(amount("0.90")), "expense is %s", summary.TotalExpense)
	s.True(summary.Balance.Equal(amount("0.10")), "balance is %s", summary.Balance)
}
