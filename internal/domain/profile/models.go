package profile

import "time"

type PersonalDetails struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type JobDetails struct {
	Designation string     `json:"designation"`
	Department  string     `json:"department"`
	JoiningDate *time.Time `json:"joiningDate"`
}

type SalaryStructure struct {
	BaseSalary string `json:"baseSalary"`
}

type Profile struct {
	AccountID       string          `json:"accountId"`
	PersonalDetails PersonalDetails `json:"personalDetails"`
	JobDetails      JobDetails      `json:"jobDetails"`
	SalaryStructure SalaryStructure `json:"salaryStructure"`
	ProfilePicture  string          `json:"profilePicture"`
	Documents       []string        `json:"documents"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Employee is a profile joined with its account, as listed for HR.
type Employee struct {
	Profile
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}
