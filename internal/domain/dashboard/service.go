package dashboard

import "context"

// DashboardController defines the view state operations of the dashboard
type DashboardController interface {
	// Snapshot returns a copy of the current state
	Snapshot() Snapshot

	// FetchAll loads summary and today details concurrently; both must succeed
	FetchAll(ctx context.Context) error

	// OpenDetail shows the employees of one bucket in a modal
	OpenDetail(bucket Bucket) error

	// CloseDetail closes the detail modal
	CloseDetail()

	// Escape closes the topmost modal, reporting whether one was open
	Escape() bool

	// Close releases every modal and drops in-flight fetches
	Close()
}
