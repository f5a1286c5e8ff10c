package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
)

type stubSessions struct {
	valid bool
	err   error
}

func (s stubSessions) SessionValid(context.Context, string, string) (bool, error) {
	return s.valid, s.err
}

func issue(t *testing.T, secret, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(secret, auth.Claims{AccountID: "acc-1", EmployeeID: "OIJODO20231234", Role: role, SessionID: "sid-1"}, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return token
}

func TestAuthMiddlewareSetsUser(t *testing.T) {
	secret := "test-secret"
	token := issue(t, secret, auth.RoleHR)

	called := false
	handler := Auth(secret, stubSessions{valid: true})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		user, ok := GetUser(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		if user.AccountID != "acc-1" || user.Role != auth.RoleHR || user.SessionID != "sid-1" {
			t.Fatalf("unexpected user: %+v", user)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("expected handler to run")
	}
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	handler := Auth("secret", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); ok {
			t.Fatal("did not expect user in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestAuthMiddlewareRevokedSession(t *testing.T) {
	token := issue(t, "secret", auth.RoleEmployee)
	handler := Auth("secret", stubSessions{valid: false})(noContent())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"session_invalid"`) {
		t.Fatalf("expected session_invalid code, got %s", rec.Body.String())
	}
}

func TestAuthMiddlewareSessionStoreError(t *testing.T) {
	token := issue(t, "secret", auth.RoleEmployee)
	handler := Auth("secret", stubSessions{err: errors.New("db down")})(noContent())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	token := issue(t, "other-secret", auth.RoleHR)
	handler := Auth("secret", nil)(RequireUser(noContent()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name string
		user *auth.UserContext
		want int
	}{
		{name: "anonymous", want: http.StatusUnauthorized},
		{name: "employee", user: &auth.UserContext{AccountID: "a", Role: auth.RoleEmployee}, want: http.StatusForbidden},
		{name: "hr", user: &auth.UserContext{AccountID: "h", Role: auth.RoleHR}, want: http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := RequirePermission(auth.PermLeaveDecide, auth.StaticPermissions{})(noContent())
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.user != nil {
				req = req.WithContext(WithUser(req.Context(), *tc.user))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestRequireSelfOr(t *testing.T) {
	tests := []struct {
		name string
		user auth.UserContext
		path string
		want int
	}{
		{name: "own record", user: auth.UserContext{AccountID: "a", Role: auth.RoleEmployee}, path: "/history/a", want: http.StatusNoContent},
		{name: "other record", user: auth.UserContext{AccountID: "a", Role: auth.RoleEmployee}, path: "/history/b", want: http.StatusForbidden},
		{name: "hr other record", user: auth.UserContext{AccountID: "h", Role: auth.RoleHR}, path: "/history/b", want: http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.With(RequireSelfOr("accountID", auth.PermAttendanceAll, auth.StaticPermissions{})).Get("/history/{accountID}", noContent().ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			req = req.WithContext(WithUser(req.Context(), tc.user))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
