package attendancehandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Service *attendance.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *attendance.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAttendanceSelf, h.Perms)).Post("/check-in", h.handleCheckIn)
		r.With(middleware.RequirePermission(auth.PermAttendanceSelf, h.Perms)).Post("/check-out", h.handleCheckOut)
		r.With(middleware.RequireSelfOr("accountID", auth.PermAttendanceAll, h.Perms), middleware.ValidUUIDParams("accountID")).Get("/today/{accountID}", h.handleToday)
		r.With(middleware.RequireSelfOr("accountID", auth.PermAttendanceAll, h.Perms), middleware.ValidUUIDParams("accountID")).Get("/history/{accountID}", h.handleHistory)
		r.With(middleware.RequirePermission(auth.PermAttendanceAll, h.Perms)).Get("/all-yesterday-today", h.handleAllForDay)
	})
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	rec, err := h.Service.CheckIn(r.Context(), user.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	rec, err := h.Service.CheckOut(r.Context(), user.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, rec, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	today, err := h.Service.Today(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, today, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.History(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records == nil {
		records = []attendance.Record{}
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}

// handleAllForDay lists every employee for today, or yesterday with ?day=yesterday.
func (h *Handler) handleAllForDay(w http.ResponseWriter, r *http.Request) {
	offset := 0
	switch r.URL.Query().Get("day") {
	case "", "today":
	case "yesterday":
		offset = -1
	default:
		api.Fail(w, http.StatusBadRequest, "validation_error", "day must be today or yesterday", middleware.GetRequestID(r.Context()))
		return
	}

	day := h.Service.Day(offset)
	entries, err := h.Service.AllForDay(r.Context(), day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []attendance.DailyEntry{}
	}
	api.Success(w, map[string]any{"date": day, "records": entries}, middleware.GetRequestID(r.Context()))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		api.Fail(w, http.StatusConflict, "already_checked_in", err.Error(), reqID)
	case errors.Is(err, attendance.ErrCheckOutBusy):
		api.Fail(w, http.StatusConflict, "check_out_in_progress", err.Error(), reqID)
	case errors.Is(err, attendance.ErrNoCheckIn):
		api.Fail(w, http.StatusNotFound, "no_check_in", err.Error(), reqID)
	default:
		slog.Error("attendance request failed", "err", err, "path", r.URL.Path, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
	}
}
