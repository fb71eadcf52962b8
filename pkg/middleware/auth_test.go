package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

type stubAuthenticator struct {
	principal *auth.Principal
	err       error
	calls     int
}

func (s *stubAuthenticator) Authenticate(_ context.Context, _ *jwt.Token) (*auth.Principal, error) {
	s.calls++
	return s.principal, s.err
}

func signToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"sid":     uuid.NewString(),
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newProtectedApp(authn Authenticator) *fiber.App {
	app := fiber.New()
	app.Get("/", JwtProtected(&config.Jwt{Secret: testSecret}, authn), func(c *fiber.Ctx) error {
		p, _ := c.Locals(PrincipalKey).(*auth.Principal)
		if p == nil {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(p.UserID.String())
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestJwtProtected_MissingToken(t *testing.T) {
	authn := &stubAuthenticator{}
	resp := doGet(t, newProtectedApp(authn), "")
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, authn.calls)
}

func TestJwtProtected_BadSignature(t *testing.T) {
	authn := &stubAuthenticator{}
	resp := doGet(t, newProtectedApp(authn), signToken(t, "other-secret", time.Now().Add(time.Hour)))
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, authn.calls)
}

func TestJwtProtected_ExpiredToken(t *testing.T) {
	authn := &stubAuthenticator{}
	resp := doGet(t, newProtectedApp(authn), signToken(t, testSecret, time.Now().Add(-time.Minute)))
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtProtected_RevokedSession(t *testing.T) {
	authn := &stubAuthenticator{err: domain.ErrUnauthorized}
	resp := doGet(t, newProtectedApp(authn), signToken(t, testSecret, time.Now().Add(time.Hour)))
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, authn.calls)
}

func TestJwtProtected_StoresPrincipal(t *testing.T) {
	userID := uuid.New()
	authn := &stubAuthenticator{principal: &auth.Principal{UserID: userID, SessionID: uuid.New()}}
	resp := doGet(t, newProtectedApp(authn), signToken(t, testSecret, time.Now().Add(time.Hour)))
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJwtError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"malformed", errors.New("missing or malformed JWT")},
		{"invalid", errors.New("any other error")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(func(c *fiber.Ctx) error { return jwtError(c, tt.err) })
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close() //nolint:errcheck
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
