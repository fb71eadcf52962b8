package auth

import (
	"context"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the identifiers carried by an access token.
type Claims struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
}

// Strategy issues tokens for sessions and reads them back.
type Strategy interface {
	GenerateToken(ctx context.Context, u *dto.UserRead, s *dto.SessionRead) (string, error)
	ParseClaims(token *jwt.Token) (*Claims, error)
}

// JWTStrategy implements Strategy with HS256-signed JWTs.
type JWTStrategy struct {
	cfg    *config.Jwt
	logger *slog.Logger
}

func NewJWTStrategy(
	cfg *config.Jwt,
	logger *slog.Logger,
) *JWTStrategy {
	return &JWTStrategy{cfg: cfg, logger: logger}
}

// GenerateToken signs a token that expires together with its session.
func (s *JWTStrategy) GenerateToken(
	ctx context.Context,
	u *dto.UserRead,
	sess *dto.SessionRead,
) (string, error) {
	log := s.logger.With("userID", u.ID)
	log.Debug("GenerateToken called", "sessionID", sess.ID)
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["email"] = u.Email
	claims["user_id"] = u.ID.String()
	claims["sid"] = sess.ID.String()
	claims["iat"] = sess.CreatedAt.Unix()
	claims["exp"] = sess.ExpiresAt.Unix()
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	return tokenString, nil
}

// ParseClaims extracts user and session identifiers from a verified token.
func (s *JWTStrategy) ParseClaims(token *jwt.Token) (*Claims, error) {
	if token == nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	userID, err := uuidClaim(claims, "user_id")
	if err != nil {
		return nil, err
	}
	sessionID, err := uuidClaim(claims, "sid")
	if err != nil {
		return nil, err
	}
	return &Claims{UserID: userID, SessionID: sessionID}, nil
}

func uuidClaim(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, ok := claims[key].(string)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}
