package leave

import (
	"errors"
	"time"
)

// CalculateDays returns inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}

func ValidType(leaveType string) bool {
	switch leaveType {
	case TypePaid, TypeSick, TypeUnpaid:
		return true
	}
	return false
}

// ValidDecision reports whether status is a terminal state HR may set.
func ValidDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}
