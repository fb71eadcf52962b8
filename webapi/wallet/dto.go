package wallet

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/money"
	"github.com/google/uuid"
)

// CreateWalletRequest is the body of POST /wallets. Balance is a decimal
// string and defaults to "0".
type CreateWalletRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Balance string  `json:"balance" validate:"omitempty,max=20"`
	Icon    *string `json:"icon" validate:"omitempty,max=50"`
	Color   *string `json:"color" validate:"omitempty,max=20"`
}

// UpdateWalletRequest is the body of PUT /wallets/:id. Absent fields are kept.
type UpdateWalletRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=100"`
	Balance *string `json:"balance" validate:"omitempty,max=20"`
	Icon    *string `json:"icon" validate:"omitempty,max=50"`
	Color   *string `json:"color" validate:"omitempty,max=20"`
}

// WalletDTO is the public view of a wallet.
type WalletDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Balance   string    `json:"balance"`
	Icon      *string   `json:"icon"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToDTO renders a wallet with its balance as a two-decimal string.
func ToDTO(w *dto.WalletRead) WalletDTO {
	return WalletDTO{
		ID:        w.ID,
		UserID:    w.UserID,
		Name:      w.Name,
		Balance:   money.Format(w.Balance),
		Icon:      w.Icon,
		Color:     w.Color,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toDTOs(ws []*dto.WalletRead) []WalletDTO {
	out := make([]WalletDTO, 0, len(ws))
	for _, w := range ws {
		out = append(out, ToDTO(w))
	}
	return out
}
