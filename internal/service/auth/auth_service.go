package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/platform/logger"
	"github.com/phrazzld/bloglist-api/internal/store"
)

// Service issues tokens for valid credentials and resolves tokens back to
// users.
type Service struct {
	users    store.UserStore
	tokens   JWTService
	verifier PasswordVerifier
	logger   *slog.Logger
}

// NewService creates an auth Service. All dependencies except logger are required.
func NewService(
	users store.UserStore,
	tokens JWTService,
	verifier PasswordVerifier,
	logger *slog.Logger,
) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if tokens == nil {
		return nil, fmt.Errorf("jwt service cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("password verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Authenticate checks username and password and returns a signed token for
// the user. Any failure to match returns ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, *domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Result ignored; the compare only evens out response time.
			_ = s.verifier.Compare(unknownUserHash(), password)
			log.Debug("login for unknown username")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", slog.String("user_id", user.ID.String()))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))
	return token, user, nil
}

// VerifyToken decodes a raw token without checking that its user exists.
func (s *Service) VerifyToken(ctx context.Context, raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}
	return s.tokens.ValidateToken(ctx, raw)
}

// ResolveUser verifies raw and loads the user it names.
//
// A missing token or a token for a user that no longer exists yields
// ErrUnauthorized; verification errors (ErrInvalidToken, ErrExpiredToken)
// are returned unchanged.
func (s *Service) ResolveUser(ctx context.Context, raw string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.VerifyToken(ctx, raw)
	if err != nil {
		if errors.Is(err, ErrMissingToken) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn("valid token for unknown user", slog.String("user_id", claims.UserID.String()))
			return nil, fmt.Errorf("%w: %w", ErrUnauthorized, ErrUnknownUser)
		}
		return nil, fmt.Errorf("failed to load token user: %w", err)
	}

	return user, nil
}
