package restapi

import (
	"context"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/apiclient"
)

type attendanceRepositoryImpl struct {
	client *apiclient.Client
}

func NewAttendanceRepository(client *apiclient.Client) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{client: client}
}

// Mark implements attendance.AttendanceRepository
func (r *attendanceRepositoryImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Record, error) {
	var created attendance.Record
	if err := r.client.Post(ctx, "/api/attendance", req, &created); err != nil {
		return attendance.Record{}, err
	}
	return created, nil
}

// UpdateStatus implements attendance.AttendanceRepository
func (r *attendanceRepositoryImpl) UpdateStatus(ctx context.Context, employeeID, date string, status attendance.Status) (attendance.Record, error) {
	path := "/api/attendance/" + url.PathEscape(employeeID) + "/" + url.PathEscape(date)

	var updated attendance.Record
	if err := r.client.Put(ctx, path, attendance.UpdateStatusRequest{Status: status}, &updated); err != nil {
		return attendance.Record{}, err
	}
	return updated, nil
}

// ListByEmployee implements attendance.AttendanceRepository
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID, startDate, endDate string) ([]attendance.Record, error) {
	query := url.Values{}
	if startDate != "" {
		query.Set("start_date", startDate)
	}
	if endDate != "" {
		query.Set("end_date", endDate)
	}

	var records []attendance.Record
	if err := r.client.Get(ctx, "/api/attendance/"+url.PathEscape(employeeID), query, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return records, nil
}
