// Package webapi provides the HTTP API of fintrack.
// It is organized into sub-packages per resource:
// - auth: registration, login and session management
// - wallet: wallets and balances
// - category: shared income and expense categories
// - transaction: transactions, summaries and per-category totals
package webapi

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authweb "github.com/amirasaad/fintrack/webapi/auth"
	categoryweb "github.com/amirasaad/fintrack/webapi/category"
	"github.com/amirasaad/fintrack/webapi/common"
	transactionweb "github.com/amirasaad/fintrack/webapi/transaction"
	walletweb "github.com/amirasaad/fintrack/webapi/wallet"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		AppName: "fintrack",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return common.ErrorResponseJSON(c, fe.Code, fe.Message)
			}
			return common.ErrorJSON(c, err)
		},
	})

	fiberApp.Use(recover.New())
	if cfg.Cors != nil {
		fiberApp.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Cors.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}
	if cfg.RateLimit != nil && cfg.RateLimit.MaxRequests > 0 {
		// Uses X-Forwarded-For header when behind a proxy
		fiberApp.Use(limiter.New(limiter.Config{
			Max:          cfg.RateLimit.MaxRequests,
			Expiration:   cfg.RateLimit.Window,
			KeyGenerator: clientKey,
			LimitReached: func(c *fiber.Ctx) error {
				return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too many requests")
			},
		}))
	}
	fiberApp.Use(logger.New())

	api := fiberApp.Group("/api")
	api.Get("/health", Health)

	protected := middleware.JwtProtected(cfg.Auth.Jwt, a.AuthService)
	authweb.Routes(api, a.AuthService, protected)
	walletweb.Routes(api, a.WalletService, protected)
	categoryweb.Routes(api, a.CategoryService, protected)
	transactionweb.Routes(api, a.TransactionService, protected)

	fiberApp.Use(func(c *fiber.Ctx) error {
		return common.ErrorResponseJSON(c, fiber.StatusNotFound, "Route not found")
	})
	return fiberApp
}

// Health reports that the API is up.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// clientKey takes the first X-Forwarded-For hop, then X-Real-IP, then the peer address.
func clientKey(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
