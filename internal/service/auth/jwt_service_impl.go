package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/bloglist-api/internal/config"
	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/platform/logger"
)

// minSecretLength matches the config validation rule for auth.jwt_secret.
const minSecretLength = 32

// hmacJWTService is an implementation of JWTService using HMAC-SHA256 signing.
type hmacJWTService struct {
	signingKey []byte
	// zero means tokens carry no exp claim
	tokenLifetime time.Duration
	timeFunc      func() time.Time
	clockSkew     time.Duration
}

// jwtCustomClaims is the wire form of the token payload.
type jwtCustomClaims struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA256 signing.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	return newHMACJWTService(cfg, time.Now)
}

func newHMACJWTService(cfg config.AuthConfig, timeFunc func() time.Time) (*hmacJWTService, error) {
	if len(cfg.JWTSecret) < minSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", minSecretLength)
	}
	if cfg.TokenLifetimeMinutes < 0 {
		return nil, fmt.Errorf("token lifetime cannot be negative")
	}

	return &hmacJWTService{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		timeFunc:      timeFunc,
		clockSkew:     30 * time.Second,
	}, nil
}

// GenerateToken creates a signed JWT with the user's id and username.
func (s *hmacJWTService) GenerateToken(ctx context.Context, user *domain.User) (string, error) {
	log := logger.FromContext(ctx)
	if user == nil {
		return "", fmt.Errorf("cannot issue a token without a user")
	}

	now := s.timeFunc()
	claims := jwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.ID.String(),
			IssuedAt: jwt.NewNumericDate(now),
			ID:       uuid.New().String(),
		},
	}
	if s.tokenLifetime > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.tokenLifetime))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign JWT",
			"error", err,
			"user_id", user.ID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return signedToken, nil
}

// ValidateToken verifies signature and expiry and returns the decoded claims.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuedAt(),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			log.Debug("token validation failed: malformed token", "error", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: invalid signature", "error", err)
		default:
			log.Debug("token validation failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	result := &Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Subject:  claims.Subject,
		ID:       claims.ID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	log.Debug("token validated successfully",
		"user_id", claims.UserID,
		"token_id", claims.ID)

	return result, nil
}
