package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/toyfront/storefront-gateway/apperrors"
	"github.com/toyfront/storefront-gateway/auth"
	"github.com/toyfront/storefront-gateway/models"
)

// IdentityClient is the slice of the store client used for authentication.
type IdentityClient interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

// SessionRepository is the persistence boundary for auth sessions.
type SessionRepository interface {
	GetSession(ctx context.Context, userID string) (*models.Session, error)
	SaveSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, userID string) error
}

// AuthService authenticates users against the store and owns the local
// session lifecycle.
type AuthService struct {
	store    IdentityClient
	tokens   *auth.TokenService
	sessions SessionRepository
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(store IdentityClient, tokens *auth.TokenService, sessions SessionRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:    store,
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
	}
}

// Login authenticates against the store, persists the session and issues a
// gateway token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	storeToken, user, err := s.store.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	session := &models.Session{User: *user, StoreToken: storeToken}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		s.logger.Error("Failed to persist session", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID), zap.Strings("roles", user.Roles))
	return &models.LoginResponse{Token: token, User: *user}, nil
}

// Logout destroys the user's session.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.sessions.DeleteSession(ctx, userID)
}

// Me returns the user behind a live session.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	session, err := s.Session(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &session.User, nil
}

// Session returns the full session, including the upstream store token.
// A missing session means the token outlived its session and is invalid.
func (s *AuthService) Session(ctx context.Context, userID string) (*models.Session, error) {
	session, err := s.sessions.GetSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.ErrInvalidToken.Wrap(fmt.Errorf("no session for user %s", userID))
	}
	return session, nil
}
