package wallet

import (
	"context"
	"time"

	"github.com/amirasaad/fintrack/infra/repository/gormerr"
	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/money"
	"github.com/amirasaad/fintrack/pkg/repository/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errs = gormerr.Mapping{NotFound: domain.ErrWalletNotFound}

type repository struct {
	db *gorm.DB
}

// New creates a wallet repository backed by db.
func New(db *gorm.DB) wallet.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.WalletCreate) error {
	w := mapCreateDTOToModel(create)
	return errs.Map(r.db.WithContext(ctx).Create(&w).Error)
}

func (r *repository) CreateMany(ctx context.Context, creates []*dto.WalletCreate) error {
	if len(creates) == 0 {
		return nil
	}
	rows := make([]model.Wallet, 0, len(creates))
	for _, c := range creates {
		rows = append(rows, mapCreateDTOToModel(c))
	}
	return errs.Map(r.db.WithContext(ctx).Create(&rows).Error)
}

func (r *repository) Get(ctx context.Context, id, userID uuid.UUID) (*dto.WalletRead, error) {
	var w model.Wallet
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&w).Error
	if err != nil {
		return nil, errs.Map(err)
	}
	return ToDTO(&w), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.WalletRead, error) {
	var rows []model.Wallet
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.WalletRead, 0, len(rows))
	for i := range rows {
		result = append(result, ToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Update(ctx context.Context, id, userID uuid.UUID, update *dto.WalletUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		// still report a missing wallet
		_, err := r.Get(ctx, id, userID)
		return err
	}
	res := r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Transaction{}).
		Where("wallet_id = ? AND user_id = ?", id, userID).
		Update("wallet_id", gorm.Expr("NULL")).Error; err != nil {
		return err
	}
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Wallet{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

// AdjustBalance adds delta to the wallet balance. On postgres this is a
// single `balance + ?` statement. sqlite keeps numeric columns as REAL, so
// there the sum is computed in decimal and written back.
func (r *repository) AdjustBalance(ctx context.Context, id, userID uuid.UUID, delta decimal.Decimal) error {
	if r.db.Dialector.Name() == "sqlite" {
		return r.adjustDecimal(ctx, id, userID, delta)
	}
	res := r.db.WithContext(ctx).Model(&model.Wallet{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrWalletNotFound
	}
	return nil
}

// adjustDecimal reads and rewrites the balance. Callers run it inside a unit
// of work; sqlite allows a single writer at a time.
func (r *repository) adjustDecimal(ctx context.Context, id, userID uuid.UUID, delta decimal.Decimal) error {
	db := r.db.WithContext(ctx)
	var w model.Wallet
	err := db.Select("balance").
		Where("id = ? AND user_id = ?", id, userID).
		First(&w).Error
	if err != nil {
		return errs.Map(err)
	}
	return db.Model(&model.Wallet{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"balance":    w.Balance.Round(money.Scale).Add(delta),
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repository) TotalBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var out struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Wallet{}).
		Select("COALESCE(SUM(balance), 0) AS total").
		Where("user_id = ?", userID).
		Scan(&out).Error
	if err != nil {
		return decimal.Zero, err
	}
	return out.Total.Round(money.Scale), nil
}

func mapCreateDTOToModel(create *dto.WalletCreate) model.Wallet {
	return model.Wallet{
		ID:      create.ID,
		UserID:  create.UserID,
		Name:    create.Name,
		Balance: create.Balance,
		Icon:    create.Icon,
		Color:   create.Color,
	}
}

func mapUpdateDTOToModel(update *dto.WalletUpdate) map[string]any {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Balance != nil {
		updates["balance"] = *update.Balance
	}
	if update.Icon != nil {
		updates["icon"] = *update.Icon
	}
	if update.Color != nil {
		updates["color"] = *update.Color
	}
	return updates
}

// ToDTO maps a wallet model to its read DTO.
func ToDTO(w *model.Wallet) *dto.WalletRead {
	return &dto.WalletRead{
		ID:        w.ID,
		UserID:    w.UserID,
		Name:      w.Name,
		Balance:   w.Balance,
		Icon:      w.Icon,
		Color:     w.Color,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
