package attendance

import "errors"

var (
	ErrMutationInFlight = errors.New("attendance is still being submitted")
	ErrToggleInFlight   = errors.New("this date is already being updated")
	ErrNoToggleTarget   = errors.New("no attendance record selected for update")
	ErrInvalidDateRange = errors.New("start date must be before or equal to end date")
	ErrInvalidDate      = errors.New("date must use the YYYY-MM-DD format")
	ErrRecordNotFound   = errors.New("attendance record not found")
)
