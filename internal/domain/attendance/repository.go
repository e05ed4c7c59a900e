package attendance

import "context"

// AttendanceRepository is the remote attendance resource of the HR API.
type AttendanceRepository interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (Record, error)
	UpdateStatus(ctx context.Context, employeeID, date string, status Status) (Record, error)
	ListByEmployee(ctx context.Context, employeeID, startDate, endDate string) ([]Record, error)
}
