package shared

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"hrms/internal/domain/audit"
	"hrms/internal/platform/requestctx"
)

// AuditRecorder is satisfied by *audit.Service.
type AuditRecorder interface {
	Record(ctx context.Context, e audit.Entry) error
}

// RecordAudit stamps e with the request id and client ip and stores it.
// Failures are logged; they never fail the request.
func RecordAudit(r *http.Request, recorder AuditRecorder, e audit.Entry) {
	if recorder == nil {
		return
	}
	e.RequestID = requestctx.GetRequestID(r.Context())
	e.IP = ClientIP(r)
	if err := recorder.Record(r.Context(), e); err != nil {
		slog.Warn("audit "+e.Action+" failed", "err", err, "entityId", e.EntityID)
	}
}

// ClientIP is the peer host of r. Behind a trusted proxy the router's RealIP
// middleware has already replaced RemoteAddr with the forwarded address.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
