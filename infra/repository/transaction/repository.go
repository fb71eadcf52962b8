package transaction

import (
	"context"

	"github.com/amirasaad/fintrack/infra/repository/category"
	"github.com/amirasaad/fintrack/infra/repository/gormerr"
	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/infra/repository/wallet"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/money"
	"github.com/amirasaad/fintrack/pkg/repository/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errs = gormerr.Mapping{NotFound: domain.ErrTransactionNotFound}

type repository struct {
	db *gorm.DB
}

// New creates a transaction repository backed by db.
func New(db *gorm.DB) transaction.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.TransactionCreate) error {
	tx := &model.Transaction{
		ID:          create.ID,
		UserID:      create.UserID,
		WalletID:    create.WalletID,
		CategoryID:  create.CategoryID,
		Type:        create.Type,
		Amount:      create.Amount,
		Description: create.Description,
		Date:        create.Date.UTC(),
	}
	return errs.Map(r.db.WithContext(ctx).Create(tx).Error)
}

func (r *repository) Update(ctx context.Context, id, userID uuid.UUID, update *dto.TransactionUpdate) error {
	// map form so nil references are written as NULL
	res := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"wallet_id":   update.WalletID,
			"category_id": update.CategoryID,
			"type":        update.Type,
			"amount":      update.Amount,
			"description": update.Description,
			"date":        update.Date.UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id, userID uuid.UUID) (*dto.TransactionRead, error) {
	var row model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Wallet").
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if err != nil {
		return nil, errs.Map(err)
	}
	return mapModelToDTO(&row), nil
}

func (r *repository) List(
	ctx context.Context,
	filter dto.TransactionFilter,
	page, limit int,
) ([]*dto.TransactionRead, error) {
	var rows []model.Transaction
	q := applyFilter(r.db.WithContext(ctx).Model(&model.Transaction{}), filter)
	if err := q.
		Preload("Wallet").
		Preload("Category").
		Order("date DESC").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Count(ctx context.Context, filter dto.TransactionFilter) (int64, error) {
	var count int64
	err := applyFilter(r.db.WithContext(ctx).Model(&model.Transaction{}), filter).
		Count(&count).Error
	return count, err
}

func (r *repository) Sum(
	ctx context.Context,
	userID uuid.UUID,
	typ domain.TransactionType,
	dateRange dto.DateRange,
) (decimal.Decimal, error) {
	var out struct {
		Total decimal.Decimal
	}
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ? AND type = ?", userID, typ)
	if err := applyDateRange(q, "date", dateRange).Scan(&out).Error; err != nil {
		return decimal.Zero, err
	}
	return out.Total.Round(money.Scale), nil
}

type categoryTotalRow struct {
	CategoryID    *uuid.UUID
	CategoryName  *string
	CategoryIcon  *string
	CategoryColor *string
	Type          domain.TransactionType
	Total         decimal.Decimal
}

func (r *repository) ByCategory(
	ctx context.Context,
	userID uuid.UUID,
	dateRange dto.DateRange,
) ([]*dto.CategoryTotal, error) {
	var rows []categoryTotalRow
	q := r.db.WithContext(ctx).Table("transactions AS t").
		Select(`t.category_id AS category_id, c.name AS category_name,
			c.icon AS category_icon, c.color AS category_color,
			t.type AS type, COALESCE(SUM(t.amount), 0) AS total`).
		Joins("LEFT JOIN categories AS c ON c.id = t.category_id").
		Where("t.user_id = ?", userID)
	q = applyDateRange(q, "t.date", dateRange)
	if err := q.
		Group("t.category_id, c.name, c.icon, c.color, t.type").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		result = append(result, &dto.CategoryTotal{
			CategoryID:    row.CategoryID,
			CategoryName:  row.CategoryName,
			CategoryIcon:  row.CategoryIcon,
			CategoryColor: row.CategoryColor,
			Type:          row.Type,
			Total:         row.Total.Round(money.Scale),
		})
	}
	return result, nil
}

func applyFilter(q *gorm.DB, filter dto.TransactionFilter) *gorm.DB {
	q = q.Where("user_id = ?", filter.UserID)
	if filter.Type != nil {
		q = q.Where("type = ?", *filter.Type)
	}
	if filter.WalletID != nil {
		q = q.Where("wallet_id = ?", *filter.WalletID)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	return applyDateRange(q, "date", filter.DateRange)
}

func applyDateRange(q *gorm.DB, column string, dr dto.DateRange) *gorm.DB {
	if dr.Start != nil {
		q = q.Where(column+" >= ?", dr.Start.UTC())
	}
	if dr.End != nil {
		q = q.Where(column+" <= ?", dr.End.UTC())
	}
	return q
}

func mapModelToDTO(t *model.Transaction) *dto.TransactionRead {
	out := &dto.TransactionRead{
		ID:          t.ID,
		UserID:      t.UserID,
		WalletID:    t.WalletID,
		CategoryID:  t.CategoryID,
		Type:        t.Type,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Wallet != nil {
		out.Wallet = wallet.ToDTO(t.Wallet)
	}
	if t.Category != nil {
		out.Category = category.ToDTO(t.Category)
	}
	return out
}
