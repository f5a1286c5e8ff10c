package payroll

import "errors"

var (
	ErrSalaryMissing   = errors.New("user profile or salary structure missing")
	ErrPeriodExists    = errors.New("payroll already generated for this period")
	ErrPayrollNotFound = errors.New("payroll record not found")
	ErrInvalidMonth    = errors.New("month must be a month name or a number from 1 to 12")
	ErrInvalidYear     = errors.New("year must be between 1900 and 9999")
	ErrInvalidAmount   = errors.New("amount must be a non-negative number")
)
