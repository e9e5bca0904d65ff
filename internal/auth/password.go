package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/jdsingh122918/steamboat-sub004/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
)

// AttendeeStorage defines the persistence operations the authenticator
// needs, keeping it independent of the storage implementation.
type AttendeeStorage interface {
	CreateAttendee(ctx context.Context, attendee *models.Attendee) error
	GetAttendeeByEmail(ctx context.Context, email string) (*models.Attendee, error)
}

// PasswordAuthenticator implements password-based authentication using
// bcrypt.
type PasswordAuthenticator struct {
	storage AttendeeStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage AttendeeStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: storage}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new attendee account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, name, email, credential string) (*models.Attendee, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	existing, err := a.storage.GetAttendeeByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	attendee := &models.Attendee{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := a.storage.CreateAttendee(ctx, attendee); err != nil {
		return nil, err
	}
	return attendee, nil
}

// Authenticate verifies the attendee's credentials.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.Attendee, error) {
	attendee, err := a.storage.GetAttendeeByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(attendee.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return attendee, nil
}
