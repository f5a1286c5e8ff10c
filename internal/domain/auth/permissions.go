package auth

import "context"

const (
	RoleHR       = "HR"
	RoleEmployee = "Employee"
)

const (
	PermAttendanceSelf  = "attendance.self"
	PermAttendanceAll   = "attendance.all"
	PermLeaveApply      = "leave.apply"
	PermLeaveDecide     = "leave.decide"
	PermPayrollRead     = "payroll.read"
	PermPayrollManage   = "payroll.manage"
	PermProfileRead     = "profile.read"
	PermProfileManage   = "profile.manage"
	PermEmployeesManage = "employees.manage"
	PermAuditRead       = "audit.read"
)

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermAttendanceSelf,
		PermLeaveApply,
		PermPayrollRead,
		PermProfileRead,
	},
	RoleHR: {
		PermAttendanceSelf,
		PermAttendanceAll,
		PermLeaveApply,
		PermLeaveDecide,
		PermPayrollRead,
		PermPayrollManage,
		PermProfileRead,
		PermProfileManage,
		PermEmployeesManage,
		PermAuditRead,
	},
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

func IsHR(role string) bool {
	return role == RoleHR
}

// StaticPermissions answers permission checks from RolePermissions.
type StaticPermissions struct{}

func (StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	for _, perm := range RolePermissions[role] {
		if perm == permission {
			return true, nil
		}
	}
	return false, nil
}
