package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/White-Devil2839/peerflow/internal/auth"
	"github.com/White-Devil2839/peerflow/internal/models"
	"github.com/White-Devil2839/peerflow/internal/storage"
)

// AuthService handles registration, login and current-user lookup.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.JWTManager
	store         storage.Store
	logger        *slog.Logger
}

func NewAuthService(authenticator auth.Authenticator, tokens *auth.JWTManager, store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{authenticator: authenticator, tokens: tokens, store: store, logger: logger}
}

// Register creates an account and returns the user with a signed token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Me returns the account behind an authenticated user ID.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
