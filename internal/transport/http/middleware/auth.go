package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
)

type ctxKey string

const ctxKeyUser ctxKey = "user"

// SessionValidator confirms that the session behind a token is still open.
type SessionValidator interface {
	SessionValid(ctx context.Context, sessionID, accountID string) (bool, error)
}

// Auth attaches the caller from a valid bearer token. Requests without one
// pass through anonymously; routes that need a caller reject them later. A
// well-signed token whose session was revoked or expired is answered with 401.
func Auth(secret string, sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if sessions != nil {
				valid, err := sessions.SessionValid(r.Context(), claims.SessionID, claims.AccountID)
				if err != nil {
					slog.Warn("session lookup failed", "err", err, "sessionId", claims.SessionID)
					api.Fail(w, http.StatusInternalServerError, "session_error", "session check failed", GetRequestID(r.Context()))
					return
				}
				if !valid {
					api.Fail(w, http.StatusUnauthorized, "session_invalid", auth.ErrSessionInvalid.Error(), GetRequestID(r.Context()))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, auth.UserContext{
				AccountID:  claims.AccountID,
				EmployeeID: claims.EmployeeID,
				Role:       claims.Role,
				SessionID:  claims.SessionID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (auth.UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.UserContext)
	return user, ok
}

// WithUser is used by tests and internal callers to attach a caller.
func WithUser(ctx context.Context, user auth.UserContext) context.Context {
	return context.WithValue(ctx, ctxKeyUser, user)
}

// RequireUser rejects anonymous requests.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
