package auth

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput represents the request body for user authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput is the body of PUT /auth/profile.
type ProfileInput struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Image *string `json:"image" validate:"omitempty,url"`
}

// ChangePasswordInput is the body of POST /auth/change-password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// UserDTO is the public view of a user.
type UserDTO struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Image         *string   `json:"image"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SessionDTO is the public view of a session.
type SessionDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Current   bool      `json:"current,omitempty"`
}

// AuthDTO is returned by register and login.
type AuthDTO struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

// SessionInfoDTO is returned by GET /auth/session.
type SessionInfoDTO struct {
	Session SessionDTO `json:"session"`
	User    UserDTO    `json:"user"`
}

func toUserDTO(u *dto.UserRead) UserDTO {
	return UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Image:         u.Image,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func toSessionDTO(s *dto.SessionRead, current uuid.UUID) SessionDTO {
	return SessionDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt,
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
		CreatedAt: s.CreatedAt,
		Current:   s.ID == current,
	}
}
