package leavehandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/leave"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Perms   middleware.PermissionStore
	Audit   shared.AuditRecorder
}

func NewHandler(service *leave.Service, perms middleware.PermissionStore, auditSvc shared.AuditRecorder) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaveApply, h.Perms)).Post("/apply", h.handleApply)
		r.With(middleware.RequireSelfOr("accountID", auth.PermLeaveDecide, h.Perms), middleware.ValidUUIDParams("accountID")).Get("/my-leaves/{accountID}", h.handleListMine)
		r.With(middleware.RequirePermission(auth.PermLeaveDecide, h.Perms)).Get("/all", h.handleListAll)
		r.With(middleware.RequirePermission(auth.PermLeaveDecide, h.Perms), middleware.ValidUUIDParams("leaveID")).Patch("/{leaveID}/status", h.handleSetStatus)
	})
}

type applyRequest struct {
	LeaveType string `json:"leaveType" validate:"required,oneof=Paid Sick Unpaid"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Reason    string `json:"reason" validate:"required,max=2000"`
}

type statusRequest struct {
	Status        string `json:"status" validate:"required,oneof=Approved Rejected"`
	AdminComments string `json:"adminComments" validate:"max=2000"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload applyRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	start, okStart := v.Date("startDate", payload.StartDate)
	end, okEnd := v.Date("endDate", payload.EndDate)
	if okStart && okEnd {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, reqID) {
		return
	}

	req, err := h.Service.Apply(r.Context(), leave.ApplyInput{
		AccountID: user.AccountID,
		LeaveType: payload.LeaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    payload.Reason,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Created(w, req, reqID)
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListMine(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if requests == nil {
		requests = []leave.Request{}
	}
	api.Success(w, requests, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []leave.Entry{}
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	leaveID := chi.URLParam(r, "leaveID")

	var payload statusRequest
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	if v.Reject(w, reqID) {
		return
	}

	decided, err := h.Service.SetStatus(r.Context(), leaveID, payload.Status, payload.AdminComments, user.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, audit.Entry{
		ActorID:    user.AccountID,
		Action:     audit.ActionLeaveDecided,
		EntityType: audit.EntityLeave,
		EntityID:   decided.ID,
		Details:    map[string]string{"status": decided.Status, "accountId": decided.AccountID},
	})
	api.Success(w, decided, reqID)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, leave.ErrInvalidType):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "leaveType", Reason: err.Error()}})
	case errors.Is(err, leave.ErrInvalidRange):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "endDate", Reason: err.Error()}})
	case errors.Is(err, leave.ErrReasonRequired):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "reason", Reason: err.Error()}})
	case errors.Is(err, leave.ErrInvalidDecision):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "status", Reason: err.Error()}})
	case errors.Is(err, leave.ErrOverlap):
		api.Fail(w, http.StatusConflict, "leave_overlap", err.Error(), reqID)
	case errors.Is(err, leave.ErrAlreadyDecided):
		api.Fail(w, http.StatusConflict, "already_decided", err.Error(), reqID)
	case errors.Is(err, leave.ErrDuplicateSubmit):
		api.Fail(w, http.StatusConflict, "duplicate_submit", err.Error(), reqID)
	case errors.Is(err, leave.ErrSelfDecision):
		api.Fail(w, http.StatusForbidden, "forbidden", err.Error(), reqID)
	case errors.Is(err, leave.ErrLeaveNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
	default:
		slog.Error("leave request failed", "err", err, "path", r.URL.Path, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
	}
}
