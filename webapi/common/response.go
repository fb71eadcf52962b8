package common

import (
	"errors"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/gofiber/fiber/v2"
)

// Response is the envelope of every API answer.
type Response struct {
	Success    bool            `json:"success"`
	Data       any             `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Pagination *dto.Pagination `json:"pagination,omitempty"`
}

// SuccessResponseJSON writes a successful envelope with data.
func SuccessResponseJSON(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Response{Success: true, Data: data})
}

// MessageResponseJSON writes a successful envelope carrying only a message.
func MessageResponseJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: true, Message: message})
}

// PaginatedResponseJSON writes a page of items with its pagination block.
func PaginatedResponseJSON(c *fiber.Ctx, data any, p dto.Pagination) error {
	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Data: data, Pagination: &p})
}

// ErrorResponseJSON writes a failed envelope.
func ErrorResponseJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message})
}

// ErrorJSON maps err to a status code and writes it. Internal errors are
// not echoed to the client.
func ErrorJSON(c *fiber.Ctx, err error) error {
	status := ErrorToStatusCode(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "Internal server error"
	}
	return ErrorResponseJSON(c, status, msg)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidTransactionType):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidPassword):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
