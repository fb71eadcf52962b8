package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate represents the data needed to create a new user.
type UserCreate struct {
	ID             uuid.UUID
	Email          string
	Name           string
	HashedPassword string
}

// UserUpdate represents the data that can be updated for a user.
// Nil fields are left untouched.
type UserUpdate struct {
	Name           *string
	Image          *string
	HashedPassword *string
}

// UserRead represents a read-optimized view of a user.
type UserRead struct {
	ID             uuid.UUID
	Email          string
	Name           string
	Image          *string
	EmailVerified  bool
	HashedPassword string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
