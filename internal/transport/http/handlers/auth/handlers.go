package authhandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service         *auth.Service
	AllowSelfSignup bool
}

func NewHandler(service *auth.Service, allowSelfSignup bool) *Handler {
	return &Handler{Service: service, AllowSelfSignup: allowSelfSignup}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.handleSignup)
		r.Post("/login", h.handleLogin)
		r.With(middleware.RequireUser).Post("/logout", h.handleLogout)
		r.With(middleware.RequireUser).Get("/me", h.handleMe)
	})
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=HR Employee"`
}

type loginRequest struct {
	EmployeeID string `json:"employeeId" validate:"required,employeeid"`
	Password   string `json:"password" validate:"required"`
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	caller, authenticated := middleware.GetUser(r.Context())
	if !h.AllowSelfSignup && !(authenticated && auth.IsHR(caller.Role)) {
		api.Fail(w, http.StatusForbidden, "signup_disabled", "self signup is disabled", reqID)
		return
	}

	var payload signupRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	reg, err := h.Service.Signup(r.Context(), auth.SignupInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
	}, caller.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, reg, reqID)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	result, err := h.Service.Login(r.Context(), payload.EmployeeID, payload.Password, auth.SessionMeta{
		UserAgent: r.UserAgent(),
		IPAddress: shared.ClientIP(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.Logout(r.Context(), user.SessionID); err != nil {
		slog.Warn("logout session revoke failed", "accountId", user.AccountID, "err", err)
	}
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	account, err := h.Service.Me(r.Context(), user.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, account, middleware.GetRequestID(r.Context()))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		api.Fail(w, http.StatusConflict, "email_taken", err.Error(), reqID)
	case errors.Is(err, auth.ErrWeakPassword):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "password", Reason: err.Error()}})
	case errors.Is(err, auth.ErrInvalidRole):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "role", Reason: err.Error()}})
	case errors.Is(err, auth.ErrRoleNotAllowed):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), reqID)
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", reqID)
	case errors.Is(err, auth.ErrAccountNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
	case errors.Is(err, auth.ErrEmployeeIDExhausted):
		api.Fail(w, http.StatusServiceUnavailable, "employee_id_unavailable", err.Error(), reqID)
	default:
		slog.Error("auth request failed", "err", err, "path", r.URL.Path, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
	}
}
