package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/pkg/cache"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository"
	"github.com/amirasaad/fintrack/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// bcrypt hash of a random string, compared when the email is unknown so a
// failed lookup costs the same as a wrong password
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

// SessionMeta describes the client that opens a session.
type SessionMeta struct {
	IPAddress string
	UserAgent string
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
}

// Result is returned by Register and Login.
type Result struct {
	User    *dto.UserRead
	Session *dto.SessionRead
	Token   string
}

// SessionView pairs a session with its user.
type SessionView struct {
	Session *dto.SessionRead
	User    *dto.UserRead
}

// ProfileUpdate holds the optional profile fields a user may change.
type ProfileUpdate struct {
	Name  *string
	Image *string
}

// Options tunes session lifetimes.
type Options struct {
	// SessionTTL is how long a new session stays valid.
	SessionTTL time.Duration
	// CacheTTL bounds how long a validated session is served from cache.
	CacheTTL time.Duration
}

type Service struct {
	uow      repository.UnitOfWork
	strategy Strategy
	cache    cache.SessionCache
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

func New(
	uow repository.UnitOfWork,
	strategy Strategy,
	sessionCache cache.SessionCache,
	opts Options,
	logger *slog.Logger,
) *Service {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 7 * 24 * time.Hour
	}
	return &Service{
		uow:      uow,
		strategy: strategy,
		cache:    sessionCache,
		opts:     opts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func NewWithJWT(
	uow repository.UnitOfWork,
	cfg *config.Jwt,
	sessionCache cache.SessionCache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return New(
		uow,
		NewJWTStrategy(cfg, logger),
		sessionCache,
		Options{SessionTTL: cfg.Expiry, CacheTTL: cacheTTL},
		logger,
	)
}

// Register creates a user and signs them in.
func (s *Service) Register(
	ctx context.Context,
	email, name, password string,
	meta SessionMeta,
) (*Result, error) {
	email = utils.NormalizeEmail(email)
	log := s.logger.With("context", "Register", "email", email)
	if !utils.IsEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", domain.ErrValidation)
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Error("Failed to hash password", "error", err)
		return nil, err
	}

	var result Result
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users := uow.UserRepository()
		exists, err := users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrEmailTaken
		}
		id := uuid.New()
		if err := users.Create(ctx, &dto.UserCreate{
			ID:             id,
			Email:          email,
			Name:           name,
			HashedPassword: hashed,
		}); err != nil {
			return err
		}
		if result.User, err = users.Get(ctx, id); err != nil {
			return err
		}
		result.Session, err = s.openSession(ctx, uow, id, meta)
		return err
	})
	if err != nil {
		log.Error("Register failed", "error", err)
		return nil, err
	}
	if result.Token, err = s.strategy.GenerateToken(ctx, result.User, result.Session); err != nil {
		return nil, err
	}
	log.Info("User registered", "userID", result.User.ID)
	return &result, nil
}

// Login verifies credentials and opens a new session.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
	meta SessionMeta,
) (*Result, error) {
	email = utils.NormalizeEmail(email)
	log := s.logger.With("context", "Login", "email", email)
	log.Debug("Login called")

	var result Result
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err := uow.UserRepository().GetByEmail(ctx, email)
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = utils.CheckPasswordHash(password, dummyHash)
			return domain.ErrInvalidCredentials
		}
		if err != nil {
			return err
		}
		if !utils.CheckPasswordHash(password, u.HashedPassword) {
			return domain.ErrInvalidCredentials
		}
		result.User = u
		result.Session, err = s.openSession(ctx, uow, u.ID, meta)
		return err
	})
	if err != nil {
		log.Warn("Login failed", "error", err)
		return nil, err
	}
	if result.Token, err = s.strategy.GenerateToken(ctx, result.User, result.Session); err != nil {
		return nil, err
	}
	log.Info("Login successful", "userID", result.User.ID)
	return &result, nil
}

func (s *Service) openSession(
	ctx context.Context,
	uow repository.UnitOfWork,
	userID uuid.UUID,
	meta SessionMeta,
) (*dto.SessionRead, error) {
	id := uuid.New()
	sessions := uow.SessionRepository()
	if err := sessions.Create(ctx, &dto.SessionCreate{
		ID:        id,
		UserID:    userID,
		ExpiresAt: s.now().Add(s.opts.SessionTTL),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}); err != nil {
		return nil, err
	}
	return sessions.Get(ctx, id)
}

// Authenticate resolves a verified token to a live session. Revoked, expired
// or foreign sessions yield ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, token *jwt.Token) (*Principal, error) {
	log := s.logger.With("context", "Authenticate")
	claims, err := s.strategy.ParseClaims(token)
	if err != nil {
		return nil, err
	}

	sess, err := s.lookupSession(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthorized
		}
		log.Error("Session lookup failed", "error", err)
		return nil, err
	}
	if sess.UserID != claims.UserID {
		log.Warn("Token user does not own session", "sessionID", sess.ID)
		return nil, domain.ErrUnauthorized
	}
	if sess.Expired(s.now()) {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, domain.ErrSessionExpired)
	}
	return &Principal{UserID: sess.UserID, SessionID: sess.ID}, nil
}

func (s *Service) lookupSession(ctx context.Context, id uuid.UUID) (*dto.SessionRead, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn("Session cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}
	sessions := s.uow.SessionRepository()
	sess, err := sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache == nil || s.opts.CacheTTL <= 0 {
		return sess, nil
	}
	if err := s.cache.Set(ctx, sess, s.opts.CacheTTL); err != nil {
		s.logger.Warn("Session cache write failed", "error", err)
		return sess, nil
	}
	// a sign-out between the read and Set would leave a revoked entry cached
	if _, err := sessions.Get(ctx, id); err != nil {
		s.forget(ctx, id)
		return nil, err
	}
	return sess, nil
}

func (s *Service) forget(ctx context.Context, ids ...uuid.UUID) {
	if s.cache == nil || len(ids) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, ids...); err != nil {
		s.logger.Warn("Session cache delete failed", "error", err)
	}
}

// GetSession returns the caller's session and user.
func (s *Service) GetSession(ctx context.Context, p *Principal) (*SessionView, error) {
	sess, err := s.uow.SessionRepository().Get(ctx, p.SessionID)
	if err != nil {
		return nil, err
	}
	u, err := s.uow.UserRepository().Get(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &SessionView{Session: sess, User: u}, nil
}

// Me returns the caller's user record.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*dto.UserRead, error) {
	return s.uow.UserRepository().Get(ctx, userID)
}

// SignOut revokes the caller's session.
func (s *Service) SignOut(ctx context.Context, p *Principal) error {
	log := s.logger.With("context", "SignOut", "userID", p.UserID)
	if err := s.uow.SessionRepository().Delete(ctx, p.SessionID); err != nil &&
		!errors.Is(err, domain.ErrSessionNotFound) {
		log.Error("Failed to delete session", "error", err)
		return err
	}
	s.forget(ctx, p.SessionID)
	log.Info("Signed out", "sessionID", p.SessionID)
	return nil
}

// ListSessions returns the caller's unexpired sessions, newest first.
func (s *Service) ListSessions(ctx context.Context, userID uuid.UUID) ([]*dto.SessionRead, error) {
	all, err := s.uow.SessionRepository().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	active := make([]*dto.SessionRead, 0, len(all))
	for _, sess := range all {
		if !sess.Expired(now) {
			active = append(active, sess)
		}
	}
	return active, nil
}

// RevokeOtherSessions removes every session of the caller except the current
// one and returns how many were removed.
func (s *Service) RevokeOtherSessions(ctx context.Context, p *Principal) (int, error) {
	var removed []uuid.UUID
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		removed, err = uow.SessionRepository().DeleteByUserExcept(ctx, p.UserID, p.SessionID)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.forget(ctx, removed...)
	s.logger.Info("Revoked other sessions", "userID", p.UserID, "count", len(removed))
	return len(removed), nil
}

// UpdateProfile changes the caller's name or image.
func (s *Service) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	update ProfileUpdate,
) (*dto.UserRead, error) {
	var out *dto.UserRead
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users := uow.UserRepository()
		if err := users.Update(ctx, userID, &dto.UserUpdate{
			Name:  update.Name,
			Image: update.Image,
		}); err != nil {
			return err
		}
		var err error
		out, err = users.Get(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ChangePassword replaces the caller's password after checking the current
// one, then revokes every other session.
func (s *Service) ChangePassword(
	ctx context.Context,
	p *Principal,
	currentPassword, newPassword string,
) error {
	log := s.logger.With("context", "ChangePassword", "userID", p.UserID)
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	var removed []uuid.UUID
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users := uow.UserRepository()
		u, err := users.Get(ctx, p.UserID)
		if err != nil {
			return err
		}
		if !utils.CheckPasswordHash(currentPassword, u.HashedPassword) {
			return domain.ErrInvalidPassword
		}
		if err := users.Update(ctx, p.UserID, &dto.UserUpdate{HashedPassword: &hashed}); err != nil {
			return err
		}
		removed, err = uow.SessionRepository().DeleteByUserExcept(ctx, p.UserID, p.SessionID)
		return err
	})
	if err != nil {
		log.Warn("Change password failed", "error", err)
		return err
	}
	s.forget(ctx, removed...)
	log.Info("Password changed", "revokedSessions", len(removed))
	return nil
}
