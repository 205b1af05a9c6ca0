package attendance

import "errors"

var (
	ErrNoAttendanceData   = errors.New("No data")
	ErrCheckInNotFound    = errors.New("Check-in record not found")
	ErrAlreadyCheckedIn   = errors.New("Already checked in today")
	ErrNotCheckedIn       = errors.New("No check-in found for today")
	ErrAlreadyCheckedOut  = errors.New("Already checked out today")
	ErrInvalidTime        = errors.New("invalid time of day")
	ErrInvalidLeaveOption = errors.New("invalid leave option")
)
