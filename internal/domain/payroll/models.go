package payroll

import "time"

type Record struct {
	ID          string     `json:"id"`
	AccountID   string     `json:"accountId"`
	Month       string     `json:"month"`
	MonthNumber int        `json:"monthNumber"`
	Year        int        `json:"year"`
	Salary      float64    `json:"salary"`
	Bonus       float64    `json:"bonus"`
	Deductions  float64    `json:"deductions"`
	NetSalary   float64    `json:"netSalary"`
	Status      string     `json:"status"`
	PaymentDate *time.Time `json:"paymentDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Entry is a record joined with its employee.
type Entry struct {
	Record
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

// GenerateInput carries the raw request values; month and amounts are normalised by the service.
type GenerateInput struct {
	AccountID  string
	Month      any
	Year       int
	Bonus      any
	Deductions any
	CreatedBy  string
}

type NewRecord struct {
	AccountID   string
	Month       string
	MonthNumber int
	Year        int
	Salary      float64
	Bonus       float64
	Deductions  float64
	NetSalary   float64
	Status      string
	CreatedBy   string
}
