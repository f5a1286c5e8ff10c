package auth

import (
	"context"
	"testing"
)

func TestRolePermissions(t *testing.T) {
	known := map[string]struct{}{
		PermAttendanceSelf: {}, PermAttendanceAll: {}, PermLeaveApply: {}, PermLeaveDecide: {},
		PermPayrollRead: {}, PermPayrollManage: {}, PermProfileRead: {}, PermProfileManage: {},
		PermEmployeesManage: {}, PermAuditRead: {},
	}
	for role, perms := range RolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
		seen := map[string]struct{}{}
		for _, perm := range perms {
			if _, ok := known[perm]; !ok {
				t.Fatalf("role %s has unknown permission %s", role, perm)
			}
			if _, dup := seen[perm]; dup {
				t.Fatalf("role %s lists %s twice", role, perm)
			}
			seen[perm] = struct{}{}
		}
	}
	if len(RolePermissions[RoleHR]) != len(known) {
		t.Fatalf("HR should hold every permission, has %d of %d", len(RolePermissions[RoleHR]), len(known))
	}
}

func TestStaticPermissions(t *testing.T) {
	store := StaticPermissions{}
	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{RoleHR, PermLeaveDecide, true},
		{RoleHR, PermAuditRead, true},
		{RoleEmployee, PermLeaveApply, true},
		{RoleEmployee, PermLeaveDecide, false},
		{RoleEmployee, PermPayrollManage, false},
		{"Intern", PermLeaveApply, false},
	}
	for _, tc := range tests {
		got, err := store.HasPermission(context.Background(), tc.role, tc.permission)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tc.want {
			t.Fatalf("HasPermission(%s, %s) = %v, want %v", tc.role, tc.permission, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole(RoleHR) || !ValidRole(RoleEmployee) {
		t.Fatal("expected known roles to be valid")
	}
	if ValidRole("Admin") || ValidRole("hr") {
		t.Fatal("expected unknown roles to be invalid")
	}
}
