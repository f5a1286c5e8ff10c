package leave

import "time"

const (
	TypePaid   = "Paid"
	TypeSick   = "Sick"
	TypeUnpaid = "Unpaid"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type Request struct {
	ID            string     `json:"id"`
	AccountID     string     `json:"accountId"`
	LeaveType     string     `json:"leaveType"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       time.Time  `json:"endDate"`
	Days          float64    `json:"days"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	AdminComments string     `json:"adminComments"`
	DecidedBy     *string    `json:"decidedBy,omitempty"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
	AppliedAt     time.Time  `json:"appliedAt"`
}

// Entry is a request joined with its applicant, as listed for HR.
type Entry struct {
	Request
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

type ApplyInput struct {
	AccountID string
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}
