package transaction

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDb, DriverName: "postgres"}),
		&gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestDelete_ScopedByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	id, userID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "transactions" WHERE id = $1 AND user_id = $2`)).
		WithArgs(id, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id, userID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount_AppliesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	userID, walletID := uuid.New(), uuid.New()
	typ := domain.TransactionTypeExpense

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM "transactions" WHERE user_id = $1 AND type = $2 AND wallet_id = $3`)).
		WithArgs(userID, typ, walletID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.Count(context.Background(), dto.TransactionFilter{
		UserID:   userID,
		Type:     &typ,
		WalletID: &walletID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSum(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COALESCE(SUM(amount), 0) AS total FROM "transactions" WHERE user_id = $1 AND type = $2`)).
		WithArgs(userID, domain.TransactionTypeIncome).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("5000000.00"))

	total, err := repo.Sum(context.Background(), userID, domain.TransactionTypeIncome, dto.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "5000000.00", total.StringFixed(2))
}

func TestByCategory_UncategorizedGroup(t *testing.T) {
	db, mock := newMockDB(t)
	repo := New(db)
	catID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"category_id", "category_name", "category_icon", "category_color", "type", "total",
	}).
		AddRow(catID.String(), "Food", nil, nil, "expense", "150000").
		AddRow(nil, nil, nil, nil, "expense", "20000")
	mock.ExpectQuery(`LEFT JOIN categories AS c ON c.id = t.category_id`).WillReturnRows(rows)

	totals, err := repo.ByCategory(context.Background(), uuid.New(), dto.DateRange{})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.NotNil(t, totals[0].CategoryID)
	assert.Equal(t, catID, *totals[0].CategoryID)
	assert.Equal(t, "Food", *totals[0].CategoryName)
	assert.Nil(t, totals[1].CategoryID)
	assert.Nil(t, totals[1].CategoryName)
	assert.Equal(t, "20000.00", totals[1].Total.StringFixed(2))
}
