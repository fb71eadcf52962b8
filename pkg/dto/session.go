package dto

import (
	"time"

	"github.com/google/uuid"
)

// SessionCreate holds the data persisted when a user signs in.
type SessionCreate struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
}

// SessionRead is a persisted session.
type SessionRead struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s *SessionRead) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
