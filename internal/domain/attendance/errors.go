package attendance

import "errors"

var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNoCheckIn        = errors.New("no check-in record found today")
	ErrCheckOutBusy     = errors.New("check-out already in progress")
)
