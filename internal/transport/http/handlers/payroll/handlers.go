package payrollhandler

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/payroll"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	Service *payroll.Service
	Perms   middleware.PermissionStore
	Audit   shared.AuditRecorder
}

func NewHandler(service *payroll.Service, perms middleware.PermissionStore, auditSvc shared.AuditRecorder) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollManage, h.Perms)).Post("/generate", h.handleGenerate)
		r.With(middleware.RequirePermission(auth.PermPayrollManage, h.Perms), middleware.ValidUUIDParams("payrollID")).Patch("/{payrollID}/pay", h.handleMarkPaid)
		r.With(middleware.RequireSelfOr("accountID", auth.PermPayrollManage, h.Perms), middleware.ValidUUIDParams("accountID")).Get("/my-payroll/{accountID}", h.handleListMine)
		r.With(middleware.RequirePermission(auth.PermPayrollManage, h.Perms)).Get("/all", h.handleListAll)
		r.With(middleware.RequirePermission(auth.PermPayrollManage, h.Perms)).Get("/export", h.handleExport)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms), middleware.ValidUUIDParams("payrollID")).Get("/{payrollID}/payslip", h.handlePayslip)
	})
}

// Month, year and the amounts arrive as numbers or strings depending on the client.
type generateRequest struct {
	AccountID  string `json:"accountId" validate:"required,uuid"`
	Month      any    `json:"month" validate:"required"`
	Year       any    `json:"year"`
	Bonus      any    `json:"bonus"`
	Deductions any    `json:"deductions"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload generateRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	year, err := parseYear(payload.Year)
	if err != nil {
		v.Add("year", err.Error())
	}
	if v.Reject(w, reqID) {
		return
	}

	record, err := h.Service.Generate(r.Context(), payroll.GenerateInput{
		AccountID:  payload.AccountID,
		Month:      payload.Month,
		Year:       year,
		Bonus:      payload.Bonus,
		Deductions: payload.Deductions,
		CreatedBy:  user.AccountID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		ActorID:    user.AccountID,
		Action:     audit.ActionPayrollGenerated,
		EntityType: audit.EntityPayroll,
		EntityID:   record.ID,
		Details: map[string]any{
			"accountId": record.AccountID,
			"month":     record.Month,
			"year":      record.Year,
			"netSalary": record.NetSalary,
		},
	})
	api.Created(w, record, reqID)
}

func (h *Handler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	record, err := h.Service.MarkPaid(r.Context(), chi.URLParam(r, "payrollID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		ActorID:    user.AccountID,
		Action:     audit.ActionPayrollPaid,
		EntityType: audit.EntityPayroll,
		EntityID:   record.ID,
		Details:    map[string]any{"accountId": record.AccountID, "paymentDate": record.PaymentDate},
	})
	api.Success(w, record, reqID)
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListMine(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records == nil {
		records = []payroll.Record{}
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []payroll.Entry{}
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		parsed, err := parseYear(raw)
		if err != nil {
			shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "year", Reason: err.Error()}})
			return
		}
		year = parsed
	}

	body, err := h.Service.Export(r.Context(), year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filename := "payroll-register.xlsx"
	if year != 0 {
		filename = fmt.Sprintf("payroll-register-%d.xlsx", year)
	}
	api.Attachment(w, xlsxContentType, filename, body)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	entry, body, err := h.Service.Payslip(r.Context(), chi.URLParam(r, "payrollID"), func(e payroll.Entry) bool {
		return e.AccountID == user.AccountID || auth.IsHR(user.Role)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	filename := fmt.Sprintf("payslip-%s-%s-%d.pdf", entry.EmployeeID, strings.ToLower(entry.Month), entry.Year)
	api.Attachment(w, "application/pdf", filename, body)
}

func parseYear(raw any) (int, error) {
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, payroll.ErrInvalidYear
		}
		return int(v), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, payroll.ErrInvalidYear
		}
		return n, nil
	default:
		return 0, payroll.ErrInvalidYear
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payroll.ErrInvalidMonth):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "month", Reason: err.Error()}})
	case errors.Is(err, payroll.ErrInvalidYear):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "year", Reason: err.Error()}})
	case errors.Is(err, payroll.ErrInvalidAmount):
		field, _, _ := strings.Cut(err.Error(), ":")
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: field, Reason: payroll.ErrInvalidAmount.Error()}})
	case errors.Is(err, payroll.ErrSalaryMissing):
		api.Fail(w, http.StatusBadRequest, "salary_missing", err.Error(), reqID)
	case errors.Is(err, payroll.ErrPeriodExists):
		api.Fail(w, http.StatusConflict, "period_exists", err.Error(), reqID)
	case errors.Is(err, payroll.ErrPayrollNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
	default:
		slog.Error("payroll request failed", "err", err, "path", r.URL.Path, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
	}
}
