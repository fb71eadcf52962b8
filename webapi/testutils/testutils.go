package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/amirasaad/fintrack/infra/cache"
	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	pkgtestutils "github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/amirasaad/fintrack/webapi"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite runs the full HTTP stack against a private in-memory sqlite database.
type E2ETestSuite struct {
	suite.Suite
	App *app.App
	Fbr *fiber.App
	Cfg *config.App
}

// SetupTest gives every test a fresh database and application.
func (s *E2ETestSuite) SetupTest() {
	pkgtestutils.FastPasswords(s.T())
	db := pkgtestutils.NewTestDB(s.T())

	s.Cfg = &config.App{
		Env:  "test",
		Auth: &config.Auth{Jwt: &config.Jwt{Secret: "e2e-secret", Expiry: time.Hour}},
		Redis: &config.Redis{
			SessionTTL: time.Minute,
		},
	}
	// Equivalent of s.T().Context() (Go 1.24+): cancelled when the test finishes.
	ctx, cancel := context.WithCancel(context.Background())
	s.T().Cleanup(cancel)
	s.App = app.New(&app.Deps{
		Uow:          infrarepo.NewUoW(db),
		SessionCache: cache.NewMemorySessionCache(ctx, time.Minute),
		Logger:       pkgtestutils.DiscardLogger(),
	}, s.Cfg)
	s.Fbr = webapi.SetupApp(s.App)
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Fbr.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads the envelope of resp and, when out is non-nil, decodes its data into out.
func (s *E2ETestSuite) Decode(resp *http.Response, out any) common.Response {
	defer resp.Body.Close() //nolint:errcheck
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var env struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(raw, &env), string(raw))
	if len(env.Data) > 0 && string(env.Data) != "null" {
		env.Response.Data = env.Data
		if out != nil {
			s.Require().NoError(json.Unmarshal(env.Data, out), string(env.Data))
		}
	}
	return env.Response
}

// Do sends a request, asserts the status code and decodes data into out.
func (s *E2ETestSuite) Do(method, path, body, token string, wantStatus int, out any) common.Response {
	resp := s.MakeRequest(method, path, body, token)
	s.Require().Equal(wantStatus, resp.StatusCode, "%s %s", method, path)
	return s.Decode(resp, out)
}

// RegisterUser creates a random user through the API and returns its token.
func (s *E2ETestSuite) RegisterUser() (token string, userID uuid.UUID) {
	email := fmt.Sprintf("user_%s@example.com", uuid.NewString()[:8])
	body := fmt.Sprintf(`{"email":%q,"name":"Test User","password":"password123"}`, email)
	var out struct {
		Token string `json:"token"`
		User  struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	s.Do(http.MethodPost, "/api/auth/register", body, "", fiber.StatusCreated, &out)
	s.Require().NotEmpty(out.Token)
	return out.Token, out.User.ID
}

// CreateWallet creates a wallet with the given opening balance and returns its id.
func (s *E2ETestSuite) CreateWallet(token, name, balance string) uuid.UUID {
	var out struct {
		ID uuid.UUID `json:"id"`
	}
	body := fmt.Sprintf(`{"name":%q,"balance":%q}`, name, balance)
	s.Do(http.MethodPost, "/api/wallets", body, token, fiber.StatusCreated, &out)
	return out.ID
}

// WalletBalance returns the rendered balance of a wallet.
func (s *E2ETestSuite) WalletBalance(token string, id uuid.UUID) string {
	var out struct {
		Balance string `json:"balance"`
	}
	s.Do(http.MethodGet, "/api/wallets/"+id.String(), "", token, fiber.StatusOK, &out)
	return out.Balance
}
