package profile

import (
	"errors"
	"testing"

	"hrms/internal/domain/auth"
)

func TestParseUpdateEmployeeDropsRestrictedFields(t *testing.T) {
	upd, err := ParseUpdate(auth.RoleEmployee, map[string]any{
		FieldPhone:                 "555-0100",
		FieldDesignation:           "CEO",
		FieldBaseSalary:            "$1,000,000",
		"arbitrary.injected.field": true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upd.Phone == nil || *upd.Phone != "555-0100" {
		t.Fatalf("expected phone to be applied, got %v", upd.Phone)
	}
	if upd.Designation != nil || upd.BaseSalary != nil {
		t.Fatal("employee must not change job or salary fields")
	}
}

func TestParseUpdateEmployeeOnlyRestricted(t *testing.T) {
	upd, err := ParseUpdate(auth.RoleEmployee, map[string]any{FieldDepartment: "Finance"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !upd.Empty() {
		t.Fatal("expected empty update")
	}
}

func TestParseUpdateHRWhitelist(t *testing.T) {
	upd, err := ParseUpdate(auth.RoleHR, map[string]any{
		FieldDesignation: "Lead Engineer",
		FieldJoiningDate: "2023-01-15",
		FieldBaseSalary:  float64(65000),
		FieldDocuments:   []any{"offer.pdf", "<b>id.png</b>"},
		"personalDetails": map[string]any{
			"firstName": "Ada",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upd.Designation == nil || *upd.Designation != "Lead Engineer" {
		t.Fatal("expected designation")
	}
	if upd.JoiningDate == nil || upd.JoiningDate.Format("2006-01-02") != "2023-01-15" {
		t.Fatal("expected joining date")
	}
	if upd.BaseSalary == nil || *upd.BaseSalary != "65000" {
		t.Fatalf("expected numeric salary to be stored as text, got %v", upd.BaseSalary)
	}
	if upd.Documents == nil || len(*upd.Documents) != 2 || (*upd.Documents)[1] != "id.png" {
		t.Fatalf("unexpected documents %v", upd.Documents)
	}
	if upd.FirstName == nil || *upd.FirstName != "Ada" {
		t.Fatal("expected nested first name to be flattened")
	}
}

func TestParseUpdateHRRejectsUnknownField(t *testing.T) {
	_, err := ParseUpdate(auth.RoleHR, map[string]any{"role": "HR"})
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "role" {
		t.Fatalf("expected field error for role, got %v", err)
	}
}

func TestParseUpdateTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		role string
		raw  map[string]any
	}{
		{name: "phone number type", role: auth.RoleEmployee, raw: map[string]any{FieldPhone: 5550100}},
		{name: "bad date", role: auth.RoleHR, raw: map[string]any{FieldJoiningDate: "15/01/2023"}},
		{name: "documents not array", role: auth.RoleHR, raw: map[string]any{FieldDocuments: "a.pdf"}},
		{name: "document not string", role: auth.RoleHR, raw: map[string]any{FieldDocuments: []any{1}}},
		{name: "negative salary", role: auth.RoleHR, raw: map[string]any{FieldBaseSalary: float64(-1)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseUpdate(tc.role, tc.raw)
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected field error, got %v", err)
			}
		})
	}
}

func TestAllowedFields(t *testing.T) {
	if got := len(AllowedFields(auth.RoleEmployee)); got != 3 {
		t.Fatalf("expected 3 employee fields, got %d", got)
	}
	if got := len(AllowedFields(auth.RoleHR)); got != 10 {
		t.Fatalf("expected 10 HR fields, got %d", got)
	}
}
