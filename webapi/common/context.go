package common

import (
	"github.com/amirasaad/fintrack/pkg/middleware"
	"github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CurrentUser returns the caller stored by middleware.JwtProtected, or a
// 401 fiber error when none is attached.
func CurrentUser(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := c.Locals(middleware.PrincipalKey).(*auth.Principal)
	if !ok || p == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return p, nil
}

// ParseID reads a UUID path parameter. A malformed id yields a 400 fiber error.
func ParseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}
