package shared

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrms/internal/domain/audit"
	"hrms/internal/platform/requestctx"
)

type loginPayload struct {
	EmployeeID string `json:"employeeId" validate:"required,employeeid"`
	Password   string `json:"password" validate:"required"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Note       string `json:"note" validate:"max=5"`
}

func TestValidatorStructUsesJSONNames(t *testing.T) {
	v := NewValidator()
	v.Struct(loginPayload{EmployeeID: "nope", Email: "bad", Note: "too long"})

	issues := v.Issues()
	got := map[string]string{}
	for _, issue := range issues {
		got[issue.Field] = issue.Reason
	}
	want := map[string]string{
		"email":      "must be a valid email address",
		"employeeId": "must be a valid employee id",
		"note":       "must be at most 5 characters",
		"password":   "is required",
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected issues %+v", issues)
	}
	for field, reason := range want {
		if got[field] != reason {
			t.Fatalf("field %s: expected %q, got %q", field, reason, got[field])
		}
	}
}

func TestValidatorStructAcceptsLowercaseEmployeeID(t *testing.T) {
	v := NewValidator()
	v.Struct(loginPayload{EmployeeID: "oijodo20231234", Password: "x"})
	if v.HasIssues() {
		t.Fatalf("unexpected issues %+v", v.Issues())
	}
}

func TestValidatorDateOrder(t *testing.T) {
	v := NewValidator()
	start, _ := v.Date("startDate", "2024-05-10")
	end, _ := v.Date("endDate", "2024-05-01")
	v.DateOrder("startDate", start, "endDate", end)
	if len(v.Issues()) != 2 {
		t.Fatalf("expected two issues, got %+v", v.Issues())
	}
}

func TestRejectWritesValidationEnvelope(t *testing.T) {
	v := NewValidator()
	v.Add("reason", "is required")
	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req") {
		t.Fatal("expected reject")
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"validation_error"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst map[string]any
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	if DecodeJSON(rec, req, &dst, "") {
		t.Fatal("expected decode failure")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 3)
	if DecodeJSON(rec, req, &dst, "") {
		t.Fatal("expected size failure")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29T18:30:00Z")
	if err != nil || got.Format("2006-01-02") != "2024-02-29" || got.Hour() != 0 {
		t.Fatalf("unexpected %v %v", got, err)
	}
	if _, err := ParseDate("29/02/2024"); err == nil {
		t.Fatal("expected error")
	}
}

type captureAudit struct {
	entries []audit.Entry
	err     error
}

func (c *captureAudit) Record(_ context.Context, e audit.Entry) error {
	c.entries = append(c.entries, e)
	return c.err
}

func TestRecordAuditStampsRequest(t *testing.T) {
	rec := &captureAudit{err: errors.New("ignored")}
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "192.0.2.1:5000"
	req = req.WithContext(requestctx.WithRequestID(req.Context(), "req-9"))

	RecordAudit(req, rec, audit.Entry{Action: audit.ActionPayrollPaid, EntityID: "p1"})
	RecordAudit(req, nil, audit.Entry{})

	if len(rec.entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(rec.entries))
	}
	if rec.entries[0].RequestID != "req-9" || rec.entries[0].IP != "192.0.2.1" {
		t.Fatalf("unexpected entry %+v", rec.entries[0])
	}
}

func TestClientIPIgnoresForwardedHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:5150"
	req.Header.Set("X-Forwarded-For", "203.0.113.99")
	if got := ClientIP(req); got != "198.51.100.4" {
		t.Fatalf("expected peer address, got %q", got)
	}

	req.RemoteAddr = "203.0.113.50"
	if got := ClientIP(req); got != "203.0.113.50" {
		t.Fatalf("expected bare address, got %q", got)
	}
}
