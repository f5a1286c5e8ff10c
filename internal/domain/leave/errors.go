package leave

import "errors"

var (
	ErrInvalidType     = errors.New("leave type must be Paid, Sick or Unpaid")
	ErrInvalidRange    = errors.New("end date must not be before start date")
	ErrReasonRequired  = errors.New("reason is required")
	ErrOverlap         = errors.New("leave overlaps an existing pending or approved request")
	ErrInvalidDecision = errors.New("status must be Approved or Rejected")
	ErrLeaveNotFound   = errors.New("leave request not found")
	ErrAlreadyDecided  = errors.New("leave request already decided")
	ErrSelfDecision    = errors.New("cannot decide your own leave request")
	ErrDuplicateSubmit = errors.New("a leave request is already being submitted")
)
