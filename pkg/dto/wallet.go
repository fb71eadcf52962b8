package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletCreate represents the data needed to create a wallet.
type WalletCreate struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Name    string
	Balance decimal.Decimal
	Icon    *string
	Color   *string
}

// WalletUpdate holds the optional fields of a wallet update.
type WalletUpdate struct {
	Name    *string
	Balance *decimal.Decimal
	Icon    *string
	Color   *string
}

// WalletRead is a read-optimized view of a wallet.
type WalletRead struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Balance   decimal.Decimal
	Icon      *string
	Color     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
