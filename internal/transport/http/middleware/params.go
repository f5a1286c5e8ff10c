package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrms/internal/transport/http/api"
)

// ValidUUIDParams answers 404 when any named URL parameter is not a UUID, so
// malformed ids never reach the database. Mount it with r.With so the route
// parameters are already resolved.
func ValidUUIDParams(params ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, param := range params {
				if err := uuid.Validate(chi.URLParam(r, param)); err != nil {
					api.Fail(w, http.StatusNotFound, "not_found", param+" does not name an existing record", GetRequestID(r.Context()))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
