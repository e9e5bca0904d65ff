package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jdsingh122918/steamboat-sub004/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// AttendeeIDKey is the context key for storing the authenticated
	// attendee ID.
	AttendeeIDKey contextKey = "attendee_id"
	// EmailKey is the context key for storing the authenticated attendee's
	// email.
	EmailKey contextKey = "email"
)

// GetAttendeeID extracts the attendee ID from the context. Returns empty
// string if not found.
func GetAttendeeID(ctx context.Context) string {
	id, _ := ctx.Value(AttendeeIDKey).(string)
	return id
}

// GetEmail extracts the attendee email from the context. Returns empty
// string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// RequireAuth returns a middleware that validates bearer JWT tokens. It
// extracts the token from the Authorization header, validates it, and adds
// the attendee ID and email to the request context. Requests without a
// valid token get a 401 with the standard error envelope.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, auth.ErrMissingToken.Error())
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeUnauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				writeUnauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			ctx := context.WithValue(r.Context(), AttendeeIDKey, claims.AttendeeID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msg,
	})
}
