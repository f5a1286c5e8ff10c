package leavehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/leave"
	"hrms/internal/transport/http/middleware"
)

type memLeaves struct {
	mu       sync.Mutex
	requests []leave.Request
}

func (m *memLeaves) HasOverlap(_ context.Context, accountID string, start, end time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.AccountID == accountID && r.Status != leave.StatusRejected && leave.Overlaps(r.StartDate, r.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memLeaves) Create(_ context.Context, in leave.ApplyInput) (leave.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	days, _ := leave.CalculateDays(in.StartDate, in.EndDate)
	r := leave.Request{
		ID:        uuid.NewString(),
		AccountID: in.AccountID,
		LeaveType: in.LeaveType,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Days:      days,
		Reason:    in.Reason,
		Status:    leave.StatusPending,
		AppliedAt: time.Now(),
	}
	m.requests = append(m.requests, r)
	return r, nil
}

func (m *memLeaves) Get(_ context.Context, id string) (leave.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return leave.Request{}, leave.ErrLeaveNotFound
}

func (m *memLeaves) Decide(_ context.Context, id, status, comments, deciderID string) (leave.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.requests {
		if r.ID == id {
			r.Status = status
			r.AdminComments = comments
			r.DecidedBy = &deciderID
			m.requests[i] = r
			return r, nil
		}
	}
	return leave.Request{}, leave.ErrLeaveNotFound
}

func (m *memLeaves) ListByAccount(_ context.Context, accountID string) ([]leave.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []leave.Request
	for _, r := range m.requests {
		if r.AccountID == accountID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memLeaves) ListAll(context.Context) ([]leave.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]leave.Entry, 0, len(m.requests))
	for _, r := range m.requests {
		out = append(out, leave.Entry{Request: r})
	}
	return out, nil
}

type captureAudit struct {
	entries []audit.Entry
}

func (c *captureAudit) Record(_ context.Context, e audit.Entry) error {
	c.entries = append(c.entries, e)
	return nil
}

var (
	employee = auth.UserContext{AccountID: "6f1c2c1e-0a51-4f5a-9c39-6d2d7f0b1a01", Role: auth.RoleEmployee}
	hr       = auth.UserContext{AccountID: "6f1c2c1e-0a51-4f5a-9c39-6d2d7f0b1aff", Role: auth.RoleHR}
)

func newRouter() (http.Handler, *captureAudit) {
	rec := &captureAudit{}
	r := chi.NewRouter()
	NewHandler(leave.NewService(&memLeaves{}, nil), auth.StaticPermissions{}, rec).RegisterRoutes(r)
	return r, rec
}

func call(t *testing.T, h http.Handler, method, path string, user auth.UserContext, body any) (int, json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(middleware.WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec.Code, env.Data
}

func TestApplyAndDecide(t *testing.T) {
	h, audits := newRouter()

	code, data := call(t, h, http.MethodPost, "/leave/apply", employee, map[string]string{
		"leaveType": "Sick", "startDate": "2024-05-01", "endDate": "2024-05-03", "reason": "<b>flu</b>",
	})
	if code != http.StatusCreated {
		t.Fatalf("apply: expected 201, got %d", code)
	}
	var created leave.Request
	_ = json.Unmarshal(data, &created)
	if created.Status != leave.StatusPending || created.Reason != "flu" || created.AccountID != "6f1c2c1e-0a51-4f5a-9c39-6d2d7f0b1a01" {
		t.Fatalf("unexpected request %+v", created)
	}

	code, _ = call(t, h, http.MethodPost, "/leave/apply", employee, map[string]string{
		"leaveType": "Paid", "startDate": "2024-05-03", "endDate": "2024-05-04", "reason": "trip",
	})
	if code != http.StatusConflict {
		t.Fatalf("overlap: expected 409, got %d", code)
	}

	code, _ = call(t, h, http.MethodPatch, "/leave/"+created.ID+"/status", employee, map[string]string{"status": "Approved"})
	if code != http.StatusForbidden {
		t.Fatalf("employee decide: expected 403, got %d", code)
	}

	code, data = call(t, h, http.MethodPatch, "/leave/"+created.ID+"/status", hr, map[string]string{"status": "Approved", "adminComments": "get well"})
	if code != http.StatusOK {
		t.Fatalf("decide: expected 200, got %d", code)
	}
	var decided leave.Request
	_ = json.Unmarshal(data, &decided)
	if decided.Status != leave.StatusApproved || decided.AdminComments != "get well" {
		t.Fatalf("unexpected decision %+v", decided)
	}
	if len(audits.entries) != 1 || audits.entries[0].Action != audit.ActionLeaveDecided {
		t.Fatalf("expected one audit entry, got %+v", audits.entries)
	}

	code, _ = call(t, h, http.MethodPatch, "/leave/"+created.ID+"/status", hr, map[string]string{"status": "Rejected"})
	if code != http.StatusConflict {
		t.Fatalf("re-decide: expected 409, got %d", code)
	}
}

func TestApplyValidation(t *testing.T) {
	h, _ := newRouter()
	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "unknown type", body: map[string]string{"leaveType": "Vacation", "startDate": "2024-05-01", "endDate": "2024-05-01", "reason": "x"}},
		{name: "reversed range", body: map[string]string{"leaveType": "Sick", "startDate": "2024-05-05", "endDate": "2024-05-01", "reason": "x"}},
		{name: "bad date", body: map[string]string{"leaveType": "Sick", "startDate": "05/01/2024", "endDate": "2024-05-01", "reason": "x"}},
		{name: "missing reason", body: map[string]string{"leaveType": "Sick", "startDate": "2024-05-01", "endDate": "2024-05-01"}},
		{name: "markup only reason", body: map[string]string{"leaveType": "Sick", "startDate": "2024-05-01", "endDate": "2024-05-01", "reason": "<script>x</script>"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if code, _ := call(t, h, http.MethodPost, "/leave/apply", employee, tc.body); code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", code)
			}
		})
	}
}

func TestDecideUnknownAndSelf(t *testing.T) {
	h, _ := newRouter()
	for _, id := range []string{"missing", "12", uuid.NewString()} {
		if code, _ := call(t, h, http.MethodPatch, "/leave/"+id+"/status", hr, map[string]string{"status": "Approved"}); code != http.StatusNotFound {
			t.Fatalf("decide %q: expected 404, got %d", id, code)
		}
	}

	_, data := call(t, h, http.MethodPost, "/leave/apply", hr, map[string]string{
		"leaveType": "Paid", "startDate": "2024-06-01", "endDate": "2024-06-02", "reason": "rest",
	})
	var own leave.Request
	_ = json.Unmarshal(data, &own)
	if code, _ := call(t, h, http.MethodPatch, "/leave/"+own.ID+"/status", hr, map[string]string{"status": "Approved"}); code != http.StatusForbidden {
		t.Fatalf("self decision: expected 403, got %d", code)
	}
}

func TestListMineOwnership(t *testing.T) {
	h, _ := newRouter()
	other := auth.UserContext{AccountID: "6f1c2c1e-0a51-4f5a-9c39-6d2d7f0b1a02", Role: auth.RoleEmployee}
	if code, _ := call(t, h, http.MethodGet, "/leave/my-leaves/6f1c2c1e-0a51-4f5a-9c39-6d2d7f0b1a01", other, nil); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	code, data := call(t, h, http.MethodGet, "/leave/my-leaves/6f1c2c1e-0a51-4f5a-9c39-6d2d7f0b1a01", employee, nil)
	if code != http.StatusOK || string(data) != "[]" {
		t.Fatalf("expected empty list, got %d %s", code, data)
	}
}
