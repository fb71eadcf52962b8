package middleware

import (
	"context"
	"errors"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/service/auth"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenKey is the Locals key holding the verified *jwt.Token.
	TokenKey = "user"
	// PrincipalKey is the Locals key holding the *auth.Principal of the request.
	PrincipalKey = "principal"
)

// Authenticator resolves a verified token to the caller's session.
type Authenticator interface {
	Authenticate(ctx context.Context, token *jwt.Token) (*auth.Principal, error)
}

// JwtProtected verifies the bearer token signature and then checks that the
// session it names is still alive. Every failure answers 401.
func JwtProtected(cfg *config.Jwt, authn Authenticator) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ContextKey:   TokenKey,
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			return session(c, authn)
		},
	})
}

func session(c *fiber.Ctx, authn Authenticator) error {
	token, ok := c.Locals(TokenKey).(*jwt.Token)
	if !ok {
		return unauthorized(c, "Invalid or expired token")
	}
	p, err := authn.Authenticate(c.UserContext(), token)
	if err != nil {
		return unauthorized(c, "Invalid or expired session")
	}
	c.Locals(PrincipalKey, p)
	return c.Next()
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return unauthorized(c, "Missing or malformed JWT")
	}
	return unauthorized(c, "Invalid or expired token")
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}
