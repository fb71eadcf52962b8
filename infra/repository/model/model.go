// Package model holds the GORM models shared by the repositories.
package model

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a user record in the database.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"uniqueIndex;not null;size:255"`
	EmailVerified bool      `gorm:"not null;default:false"`
	Name          string    `gorm:"not null;size:255"`
	Image         *string
	Password      string `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Session is a sign-in session referenced by the `sid` claim of a token.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `gorm:"not null"`
	IPAddress string    `gorm:"size:64"`
	UserAgent string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Session model.
func (Session) TableName() string {
	return "sessions"
}

// Wallet represents a balance-holding account owned by a user.
type Wallet struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	User      *User           `gorm:"constraint:OnDelete:CASCADE"`
	Name      string          `gorm:"not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	Icon      *string
	Color     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Wallet model.
func (Wallet) TableName() string {
	return "wallets"
}

// Category is a shared income or expense label.
type Category struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Name      string                 `gorm:"not null"`
	Icon      *string
	Color     *string
	Type      domain.TransactionType `gorm:"type:varchar(16);not null;default:'expense'"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// Transaction represents a persisted income or expense.
type Transaction struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	User        *User                  `gorm:"constraint:OnDelete:CASCADE"`
	WalletID    *uuid.UUID             `gorm:"type:uuid;index"`
	Wallet      *Wallet                `gorm:"constraint:OnDelete:SET NULL"`
	CategoryID  *uuid.UUID             `gorm:"type:uuid;index"`
	Category    *Category              `gorm:"constraint:OnDelete:SET NULL"`
	Type        domain.TransactionType `gorm:"type:varchar(16);not null"`
	Amount      decimal.Decimal        `gorm:"type:numeric(15,2);not null"`
	Description *string
	Date        time.Time `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{&User{}, &Session{}, &Wallet{}, &Category{}, &Transaction{}}
}
