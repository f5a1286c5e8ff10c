package profilehandler

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/profile"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *profile.Service
	Perms   middleware.PermissionStore
	Audit   shared.AuditRecorder
}

func NewHandler(service *profile.Service, perms middleware.PermissionStore, auditSvc shared.AuditRecorder) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/profile", func(r chi.Router) {
		r.With(middleware.RequireSelfOr("accountID", auth.PermProfileManage, h.Perms), middleware.ValidUUIDParams("accountID")).Get("/{accountID}", h.handleGet)
		r.With(middleware.RequireSelfOr("accountID", auth.PermProfileManage, h.Perms), middleware.ValidUUIDParams("accountID")).Patch("/{accountID}", h.handleUpdate)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.Get(r.Context(), chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.Success(w, p, middleware.GetRequestID(r.Context()))
}

// handleUpdate accepts {"updates": {...}} keyed by dotted field paths, or the
// update map itself. Any role in the body is ignored in favour of the token.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	accountID := chi.URLParam(r, "accountID")

	var payload map[string]any
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	updates, ok := payload["updates"].(map[string]any)
	if !ok {
		if _, present := payload["updates"]; present {
			shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "updates", Reason: "must be an object"}})
			return
		}
		delete(payload, "role")
		updates = payload
	}

	p, written, err := h.Service.Update(r.Context(), accountID, user.Role, updates)
	var fieldErr *profile.FieldError
	if errors.As(err, &fieldErr) {
		reason := fieldErr.Reason
		if allowed := profile.AllowedFields(user.Role); !slices.Contains(allowed, fieldErr.Field) {
			reason += "; allowed fields: " + strings.Join(allowed, ", ")
		}
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: fieldErr.Field, Reason: reason}})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(written) > 0 && auth.IsHR(user.Role) {
		shared.RecordAudit(r, h.Audit, audit.Entry{
			ActorID:    user.AccountID,
			Action:     audit.ActionProfileUpdated,
			EntityType: audit.EntityProfile,
			EntityID:   accountID,
			Details:    map[string]any{"fields": written},
		})
	}
	api.Success(w, p, reqID)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", err.Error(), reqID)
	default:
		slog.Error("profile request failed", "err", err, "path", r.URL.Path, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", reqID)
	}
}
