package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jdsingh122918/steamboat-sub004/internal/models"
)

// memStorage is an in-memory AttendeeStorage for authenticator tests.
type memStorage struct {
	byEmail map[string]*models.Attendee
}

func newMemStorage() *memStorage {
	return &memStorage{byEmail: make(map[string]*models.Attendee)}
}

func (m *memStorage) CreateAttendee(_ context.Context, attendee *models.Attendee) error {
	if attendee.ID == "" {
		attendee.ID = "id-" + attendee.Email
	}
	m.byEmail[attendee.Email] = attendee
	return nil
}

func (m *memStorage) GetAttendeeByEmail(_ context.Context, email string) (*models.Attendee, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return a, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := NewPasswordAuthenticator(newMemStorage())
	ctx := context.Background()

	attendee, err := a.Register(ctx, "Alice", "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if attendee.PasswordHash == "correct-horse" {
		t.Error("password stored in plaintext")
	}

	got, err := a.Authenticate(ctx, "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got.ID != attendee.ID {
		t.Errorf("ID = %s, want %s", got.ID, attendee.ID)
	}

	if _, err := a.Authenticate(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Authenticate(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterRejectsWeakPasswordAndDuplicates(t *testing.T) {
	a := NewPasswordAuthenticator(newMemStorage())
	ctx := context.Background()

	if _, err := a.Register(ctx, "Alice", "alice@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("error = %v, want ErrWeakPassword", err)
	}

	if _, err := a.Register(ctx, "Alice", "alice@example.com", "long-enough"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := a.Register(ctx, "Alice2", "alice@example.com", "long-enough"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("error = %v, want ErrEmailExists", err)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	attendee := &models.Attendee{ID: "a1", Email: "alice@example.com"}

	token, err := m.Generate(attendee)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.AttendeeID != "a1" || claims.Email != "alice@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTValidateRejections(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	attendee := &models.Attendee{ID: "a1", Email: "alice@example.com"}

	t.Run("garbage token", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		token, err := other.Generate(attendee)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.Generate(attendee)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})
}
