package attendance

import "time"

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusHalfDay = "Half-day"
	StatusLeave   = "Leave"
)

const (
	dayLayout  = "2006-01-02"
	timeLayout = "03:04 PM"
)

type Record struct {
	ID         string     `json:"id"`
	AccountID  string     `json:"accountId"`
	Date       string     `json:"date"`
	CheckIn    *string    `json:"checkIn"`
	CheckOut   *string    `json:"checkOut"`
	Status     string     `json:"status"`
	CheckInAt  *time.Time `json:"checkInAt,omitempty"`
	CheckOutAt *time.Time `json:"checkOutAt,omitempty"`
}

// Today is the dashboard view of the current day.
type Today struct {
	Status   string  `json:"status"`
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut,omitempty"`
}

// DailyEntry is one account's attendance for a day, as shown to HR.
type DailyEntry struct {
	AccountID  string  `json:"accountId"`
	EmployeeID string  `json:"employeeId"`
	Name       string  `json:"name"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"checkIn"`
	CheckOut   *string `json:"checkOut"`
	Status     string  `json:"status"`
}
