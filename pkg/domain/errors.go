package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
)

// Resource errors. Each wraps ErrNotFound so callers can match either.
var (
	ErrUserNotFound        = wrapNotFound("user not found")
	ErrSessionNotFound     = wrapNotFound("session not found")
	ErrWalletNotFound      = wrapNotFound("wallet not found")
	ErrCategoryNotFound    = wrapNotFound("category not found")
	ErrTransactionNotFound = wrapNotFound("transaction not found")
)

var (
	// ErrInvalidCredentials is returned on a failed login or password change.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidPassword is returned when a password change supplies the wrong current password.
	ErrInvalidPassword = errors.New("current password is incorrect")
	// ErrSessionExpired is returned when a session is past its expiry.
	ErrSessionExpired = errors.New("session expired")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidAmount is returned for amounts that are not positive decimals with at most two places.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidTransactionType is returned for types other than income and expense.
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	// ErrInvalidDateRange is returned when a date filter cannot be parsed or is inverted.
	ErrInvalidDateRange = errors.New("invalid date range")
)

type notFoundError struct{ msg string }

func (e *notFoundError) Error() string        { return e.msg }
func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

func wrapNotFound(msg string) error { return &notFoundError{msg: msg} }
