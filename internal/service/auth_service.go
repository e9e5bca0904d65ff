package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jdsingh122918/steamboat-sub004/internal/auth"
	"github.com/jdsingh122918/steamboat-sub004/internal/models"
)

// AuthService handles attendee registration and login, issuing JWT session
// tokens.
type AuthService struct {
	authenticator *auth.PasswordAuthenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(authenticator *auth.PasswordAuthenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, jwtManager: jwtManager}
}

// Register creates an attendee account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.Attendee, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" {
		return nil, "", fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	attendee, err := s.authenticator.Register(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) || errors.Is(err, auth.ErrEmailExists) {
			return nil, "", fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(attendee)
	if err != nil {
		return nil, "", err
	}
	slog.Info("attendee registered", "attendee_id", attendee.ID)
	return attendee, token, nil
}

// Login verifies credentials and returns the attendee with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Attendee, string, error) {
	attendee, err := s.authenticator.Authenticate(ctx, strings.TrimSpace(strings.ToLower(email)), password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.jwtManager.Generate(attendee)
	if err != nil {
		return nil, "", err
	}
	return attendee, token, nil
}
