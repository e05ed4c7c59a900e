package attendance

import (
	"context"
)

// AttendanceController owns the view state of the attendance screen.
type AttendanceController interface {
	// Snapshot returns a copy of the current state
	Snapshot() Snapshot

	// FetchEmployees reloads the employee picker
	FetchEmployees(ctx context.Context) error

	// SetFilter replaces the filter tuple and re-runs the attendance query
	SetFilter(ctx context.Context, filter Filter) error

	// SelectEmployee changes only the employee of the filter
	SelectEmployee(ctx context.Context, employeeID string) error

	// SetDateRange changes only the dates of the filter
	SetDateRange(ctx context.Context, startDate, endDate string) error

	// FetchAttendance re-runs the query for the current filter
	FetchAttendance(ctx context.Context) error

	// OpenMarkModal opens the mark form prefilled for the selected employee and today
	OpenMarkModal()

	// CloseMarkModal discards the mark form
	CloseMarkModal()

	// MarkAttendance records a new attendance entry
	MarkAttendance(ctx context.Context, form MarkAttendanceRequest) error

	// RequestToggle asks the operator to confirm flipping a record's status
	RequestToggle(record Record) error

	// CancelToggle closes the confirmation without updating
	CancelToggle()

	// ConfirmToggle flips the pending record's status
	ConfirmToggle(ctx context.Context) error

	// DismissNotification clears the success notification
	DismissNotification()

	// Escape closes the topmost modal, reporting whether one was open
	Escape() bool

	// Close releases every modal and drops in-flight queries
	Close()
}
