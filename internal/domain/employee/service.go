package employee

import (
	"context"
)

// EmployeeController owns the view state of the employees screen.
type EmployeeController interface {
	// Snapshot returns a copy of the current state
	Snapshot() Snapshot

	// FetchEmployees reloads the roster
	FetchEmployees(ctx context.Context) error

	// OpenAddModal opens the add form with empty fields
	OpenAddModal()

	// CloseAddModal discards the add form
	CloseAddModal()

	// SubmitAdd creates an employee and resynchronizes the roster
	SubmitAdd(ctx context.Context, form CreateEmployeeRequest) error

	// RequestDelete asks the operator to confirm deleting target
	RequestDelete(employeeID string) error

	// CancelDelete closes the confirmation without deleting
	CancelDelete()

	// ConfirmDelete deletes the pending target and resynchronizes the roster
	ConfirmDelete(ctx context.Context) error

	// DismissNotification clears the success notification
	DismissNotification()

	// Escape closes the topmost modal, reporting whether one was open
	Escape() bool

	// Close releases every modal; the controller may be mounted again
	Close()
}
