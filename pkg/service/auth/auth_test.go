package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/pkg/testutils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-signing"

type mockSessionCache struct {
	mock.Mock
}

func (m *mockSessionCache) Get(ctx context.Context, id uuid.UUID) (*dto.SessionRead, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*dto.SessionRead)
	return s, args.Error(1)
}

func (m *mockSessionCache) Set(ctx context.Context, s *dto.SessionRead, ttl time.Duration) error {
	return m.Called(ctx, s, ttl).Error(0)
}

func (m *mockSessionCache) Delete(ctx context.Context, ids ...uuid.UUID) error {
	return m.Called(ctx, ids).Error(0)
}

func newService(t *testing.T) *authsvc.Service {
	t.Helper()
	testutils.FastPasswords(t)
	uow := testutils.NewTestUoW(t)
	return authsvc.NewWithJWT(uow, &config.Jwt{Secret: testSecret, Expiry: time.Hour}, nil, 0, testutils.DiscardLogger())
}

// parse verifies the token the way the HTTP middleware does.
func parse(t *testing.T, token string) *jwt.Token {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	return parsed
}

func TestRegister_ThenAuthenticate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, " Alice@Example.com ", "Alice", "password123",
		authsvc.SessionMeta{IPAddress: "127.0.0.1", UserAgent: "go-test"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "go-test", res.Session.UserAgent)

	p, err := svc.Authenticate(ctx, parse(t, res.Token))
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, p.UserID)
	assert.Equal(t, res.Session.ID, p.SessionID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob@example.com", "Bob", "password123", authsvc.SessionMeta{})
	require.NoError(t, err)
	_, err = svc.Register(ctx, "BOB@example.com", "Bob", "password123", authsvc.SessionMeta{})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, "carol@example.com", "Carol", "password123", authsvc.SessionMeta{})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := svc.Login(ctx, "carol@example.com", "password123", authsvc.SessionMeta{})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})
	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "carol@example.com", "nope", authsvc.SessionMeta{})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123", authsvc.SessionMeta{})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestSignOut_InvalidatesToken(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	res, err := svc.Register(ctx, "dave@example.com", "Dave", "password123", authsvc.SessionMeta{})
	require.NoError(t, err)
	token := parse(t, res.Token)

	p, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(ctx, p))

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword_RevokesOtherSessions(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	first, err := svc.Register(ctx, "erin@example.com", "Erin", "password123", authsvc.SessionMeta{})
	require.NoError(t, err)
	second, err := svc.Login(ctx, "erin@example.com", "password123", authsvc.SessionMeta{})
	require.NoError(t, err)

	p, err := svc.Authenticate(ctx, parse(t, second.Token))
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, p, "wrong", "newpassword")
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	require.NoError(t, svc.ChangePassword(ctx, p, "password123", "newpassword"))

	_, err = svc.Authenticate(ctx, parse(t, first.Token))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.Authenticate(ctx, parse(t, second.Token))
	assert.NoError(t, err)

	_, err = svc.Login(ctx, "erin@example.com", "password123", authsvc.SessionMeta{})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "erin@example.com", "newpassword", authsvc.SessionMeta{})
	assert.NoError(t, err)
}

func TestListAndRevokeSessions(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	res, err := svc.Register(ctx, "frank@example.com", "Frank", "password123", authsvc.SessionMeta{})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = svc.Login(ctx, "frank@example.com", "password123", authsvc.SessionMeta{})
		require.NoError(t, err)
	}

	sessions, err := svc.ListSessions(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)

	p := &authsvc.Principal{UserID: res.User.ID, SessionID: res.Session.ID}
	n, err := svc.RevokeOtherSessions(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	sessions, err = svc.ListSessions(ctx, res.User.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, res.Session.ID, sessions[0].ID)
}

func TestUpdateProfile(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	res, err := svc.Register(ctx, "gina@example.com", "Gina", "password123", authsvc.SessionMeta{})
	require.NoError(t, err)

	name, image := "Gina B", "https://example.com/g.png"
	u, err := svc.UpdateProfile(ctx, res.User.ID, authsvc.ProfileUpdate{Name: &name, Image: &image})
	require.NoError(t, err)
	assert.Equal(t, name, u.Name)
	require.NotNil(t, u.Image)
	assert.Equal(t, image, *u.Image)
}

func TestAuthenticate_UsesCache(t *testing.T) {
	testutils.FastPasswords(t)
	uow := testutils.NewTestUoW(t)
	sessionCache := &mockSessionCache{}
	svc := authsvc.NewWithJWT(uow, &config.Jwt{Secret: testSecret, Expiry: time.Hour},
		sessionCache, time.Minute, testutils.DiscardLogger())
	ctx := context.Background()

	res, err := svc.Register(ctx, "hal@example.com", "Hal", "password123", authsvc.SessionMeta{})
	require.NoError(t, err)
	token := parse(t, res.Token)

	sessionCache.On("Get", mock.Anything, res.Session.ID).Return(nil, nil).Once()
	sessionCache.On("Set", mock.Anything, mock.AnythingOfType("*dto.SessionRead"), time.Minute).Return(nil).Once()
	_, err = svc.Authenticate(ctx, token)
	require.NoError(t, err)

	sessionCache.On("Get", mock.Anything, res.Session.ID).Return(res.Session, nil).Once()
	_, err = svc.Authenticate(ctx, token)
	require.NoError(t, err)

	sessionCache.On("Delete", mock.Anything, []uuid.UUID{res.Session.ID}).Return(nil).Once()
	require.NoError(t, svc.SignOut(ctx, &authsvc.Principal{UserID: res.User.ID, SessionID: res.Session.ID}))

	sessionCache.AssertExpectations(t)
}

func TestAuthenticate_RejectsForeignClaims(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	res, err := svc.Register(ctx, "ivy@example.com", "Ivy", "password123", authsvc.SessionMeta{})
	require.NoError(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"sid":     res.Session.ID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, parse(t, signed))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	missing := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": res.User.ID.String()})
	signed, err = missing.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, parse(t, signed))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_SignOutDuringCacheFillEvictsEntry(t *testing.T) {
	testutils.FastPasswords(t)
	uow := testutils.NewTestUoW(t)
	sessionCache := &mockSessionCache{}
	svc := authsvc.NewWithJWT(uow, &config.Jwt{Secret: testSecret, Expiry: time.Hour},
		sessionCache, time.Minute, testutils.DiscardLogger())
	ctx := context.Background()

	res, err := svc.Register(ctx, "jan@example.com", "Jan", "password123", authsvc.SessionMeta{})
	require.NoError(t, err)

	sessionCache.On("Get", mock.Anything, res.Session.ID).Return(nil, nil).Once()
	sessionCache.On("Set", mock.Anything, mock.AnythingOfType("*dto.SessionRead"), time.Minute).
		Run(func(mock.Arguments) {
			// the session row disappears after it was read but before it is cached
			require.NoError(t, uow.SessionRepository().Delete(ctx, res.Session.ID))
		}).
		Return(nil).Once()
	sessionCache.On("Delete", mock.Anything, []uuid.UUID{res.Session.ID}).Return(nil).Once()

	_, err = svc.Authenticate(ctx, parse(t, res.Token))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	sessionCache.AssertExpectations(t)
}
