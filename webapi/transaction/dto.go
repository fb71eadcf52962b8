package transaction

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/money"
	categoryweb "github.com/amirasaad/fintrack/webapi/category"
	walletweb "github.com/amirasaad/fintrack/webapi/wallet"
	"github.com/google/uuid"
)

// NullableID tells an absent reference apart from an explicit null.
type NullableID struct {
	Set bool
	ID  *uuid.UUID
}

// UnmarshalJSON records that the field was present. null clears the reference.
func (n *NullableID) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.ID = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	n.ID = &id
	return nil
}

// CreateTransactionRequest is the body of POST /transactions.
type CreateTransactionRequest struct {
	WalletID    *uuid.UUID `json:"walletId"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	Type        string     `json:"type" validate:"required,oneof=income expense"`
	Amount      string     `json:"amount" validate:"required,max=20"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Date        *string    `json:"date"`
}

// UpdateTransactionRequest is the body of PUT /transactions/:id. Absent
// fields are kept; a null walletId or categoryId detaches the reference.
type UpdateTransactionRequest struct {
	WalletID    NullableID `json:"walletId"`
	CategoryID  NullableID `json:"categoryId"`
	Type        *string    `json:"type" validate:"omitempty,oneof=income expense"`
	Amount      *string    `json:"amount" validate:"omitempty,max=20"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Date        *string    `json:"date"`
}

// TransactionDTO is the public view of a transaction.
type TransactionDTO struct {
	ID          uuid.UUID                `json:"id"`
	UserID      uuid.UUID                `json:"userId"`
	WalletID    *uuid.UUID               `json:"walletId"`
	CategoryID  *uuid.UUID               `json:"categoryId"`
	Type        domain.TransactionType   `json:"type"`
	Amount      string                   `json:"amount"`
	Description *string                  `json:"description"`
	Date        time.Time                `json:"date"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   time.Time                `json:"updatedAt"`
	Wallet      *walletweb.WalletDTO     `json:"wallet"`
	Category    *categoryweb.CategoryDTO `json:"category"`
}

// SummaryDTO is the response of GET /transactions/summary.
type SummaryDTO struct {
	TotalIncome  string `json:"totalIncome"`
	TotalExpense string `json:"totalExpense"`
	Balance      string `json:"balance"`
}

// CategoryTotalDTO is one row of GET /transactions/by-category.
type CategoryTotalDTO struct {
	CategoryID    *uuid.UUID             `json:"categoryId"`
	CategoryName  *string                `json:"categoryName"`
	CategoryIcon  *string                `json:"categoryIcon"`
	CategoryColor *string                `json:"categoryColor"`
	Type          domain.TransactionType `json:"type"`
	Total         string                 `json:"total"`
}

// ToDTO renders a transaction with its embedded wallet and category.
func ToDTO(t *dto.TransactionRead) TransactionDTO {
	out := TransactionDTO{
		ID:          t.ID,
		UserID:      t.UserID,
		WalletID:    t.WalletID,
		CategoryID:  t.CategoryID,
		Type:        t.Type,
		Amount:      money.Format(t.Amount),
		Description: t.Description,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Wallet != nil {
		w := walletweb.ToDTO(t.Wallet)
		out.Wallet = &w
	}
	if t.Category != nil {
		c := categoryweb.ToDTO(t.Category)
		out.Category = &c
	}
	return out
}

func toDTOs(ts []*dto.TransactionRead) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(ts))
	for _, t := range ts {
		out = append(out, ToDTO(t))
	}
	return out
}

func toSummaryDTO(s *dto.Summary) SummaryDTO {
	return SummaryDTO{
		TotalIncome:  money.Format(s.TotalIncome),
		TotalExpense: money.Format(s.TotalExpense),
		Balance:      money.Format(s.Balance),
	}
}

func toCategoryTotalDTOs(rows []*dto.CategoryTotal) []CategoryTotalDTO {
	out := make([]CategoryTotalDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategoryTotalDTO{
			CategoryID:    r.CategoryID,
			CategoryName:  r.CategoryName,
			CategoryIcon:  r.CategoryIcon,
			CategoryColor: r.CategoryColor,
			Type:          r.Type,
			Total:         money.Format(r.Total),
		})
	}
	return out
}
