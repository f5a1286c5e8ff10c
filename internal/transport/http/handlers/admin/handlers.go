package adminhandler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/profile"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

// AuditLog is the read and write side of the audit trail.
type AuditLog interface {
	shared.AuditRecorder
	Count(ctx context.Context, filter audit.Filter) (int, error)
	List(ctx context.Context, filter audit.Filter, limit, offset int) ([]audit.Event, error)
}

type Handler struct {
	Accounts *auth.Service
	Profiles *profile.Service
	Perms    middleware.PermissionStore
	Audit    AuditLog
}

func NewHandler(accounts *auth.Service, profiles *profile.Service, perms middleware.PermissionStore, auditLog AuditLog) *Handler {
	return &Handler{Accounts: accounts, Profiles: profiles, Perms: perms, Audit: auditLog}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesManage, h.Perms)).Post("/add-employee", h.handleAddEmployee)
		r.With(middleware.RequirePermission(auth.PermEmployeesManage, h.Perms)).Get("/all-employees", h.handleAllEmployees)
		r.With(middleware.RequirePermission(auth.PermAuditRead, h.Perms)).Get("/audit", h.handleListAudit)
	})
}

type addEmployeeRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password"`
	Role        string `json:"role" validate:"omitempty,oneof=HR Employee"`
	Department  string `json:"department" validate:"max=200"`
	Designation string `json:"designation" validate:"max=200"`
	Salary      any    `json:"salary"`
}

func (h *Handler) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload addEmployeeRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	salary, err := salaryText(payload.Salary)
	if err != nil {
		v.Add("salary", err.Error())
	}
	if v.Reject(w, reqID) {
		return
	}

	reg, err := h.Accounts.AddEmployee(r.Context(), auth.EmployeeInput{
		Name:        payload.Name,
		Email:       payload.Email,
		Password:    payload.Password,
		Role:        payload.Role,
		Department:  payload.Department,
		Designation: payload.Designation,
		Salary:      salary,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		ActorID:    user.AccountID,
		Action:     audit.ActionEmployeeCreated,
		EntityType: audit.EntityAccount,
		EntityID:   reg.User.ID,
		Details: map[string]any{
			"employeeId":        reg.EmployeeID,
			"role":              reg.User.Role,
			"temporaryPassword": reg.TemporaryPassword != "",
		},
	})
	api.Created(w, reg, reqID)
}

func (h *Handler) handleAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Profiles.ListEmployees(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if employees == nil {
		employees = []profile.Employee{}
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 100, 500)
	filter := audit.Filter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		ActorID:    r.URL.Query().Get("actorId"),
	}

	total, err := h.Audit.Count(r.Context(), filter)
	if err != nil {
		slog.Warn("audit count failed", "err", err)
	}
	events, err := h.Audit.List(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to list audit events", reqID)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, events, reqID)
}

// salaryText keeps the display form of a salary; numbers are formatted without exponent.
func salaryText(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	case float64:
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return "", errors.New("must not be negative")
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", errors.New("must be a number or a string")
	}
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
	case errors.Is(err, auth.ErrEmployeeIDExhausted):
		api.Fail(w, http.StatusServiceUnavailable, "employee_id_unavailable", err.Error(), reqID)
	default:
		slog.Error("admin request failed", "err", err, "path", r.URL.Path, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
	}
}
