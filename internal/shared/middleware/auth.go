package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"finman/internal/domain"
	"finman/internal/domain/user"
)

type ContextKey string

const (
	UserIDKey ContextKey = "user_id"
	EmailKey  ContextKey = "email"
	UserKey   ContextKey = "user"
)

// AccessTokenCookie is the HttpOnly cookie set at login.
const AccessTokenCookie = "access_token"

// SessionResolver turns a bearer token into the user it was issued to.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*user.User, error)
}

// Auth rejects requests without a valid session and stores the resolved user
// in the request context.
func Auth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := tokenFromRequest(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			u, err := resolver.ResolveSession(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrNotFound):
					writeAuthError(w, http.StatusNotFound, "user not found")
				case errors.Is(err, domain.ErrUnauthorized):
					writeAuthError(w, http.StatusUnauthorized, err.Error())
				default:
					slog.ErrorContext(r.Context(), "session resolution failed", "error", err)
					writeAuthError(w, http.StatusInternalServerError, "failed to resolve session")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// tokenFromRequest prefers the cookie (browser clients) over the
// Authorization header (API clients).
func tokenFromRequest(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// UserIDFromContext returns the id stored by Auth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

// UserFromContext returns the user record stored by Auth.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(UserKey).(*user.User)
	return u, ok && u != nil
}

// WithUser returns a context carrying u the same way Auth does.
func WithUser(ctx context.Context, u *user.User) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, u.ID)
	ctx = context.WithValue(ctx, EmailKey, u.Email)
	return context.WithValue(ctx, UserKey, u)
}
