package attendance

import (
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/viewstate"
)

const (
	MessageInvalidRange   = "Start date must be before or equal to end date."
	MessageInvalidDate    = "Dates must use the YYYY-MM-DD format."
	MessageAlreadyMarked  = "Attendance already marked for this employee on this date."
	MessageSelectEmployee = "Please select an employee."
	MessageSelectDate     = "Please select a date."
	MessageSelectStatus   = "Please select a status."
	MessageLoadFailed     = "Failed to load attendance records."
	MessageMarkFailed     = "Failed to mark attendance. Please try again."
	MessageUpdateFailed   = "Failed to update attendance."
	MessageMarked         = "Attendance marked successfully!"
)

// MessageUpdated is the notification after a status change.
func MessageUpdated(status Status) string {
	return "Attendance updated to " + string(status)
}

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     Status `json:"status"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: MessageSelectEmployee,
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: MessageSelectDate,
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: MessageInvalidDate,
		})
	}

	if validator.IsEmpty(string(r.Status)) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: MessageSelectStatus,
		})
	} else if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be Present or Absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// ValidateRange checks the date side of a filter. Open ends are allowed.
func (f Filter) ValidateRange() error {
	var start, end validator.Date
	var err error

	if f.StartDate != "" {
		if start, err = validator.ParseDate(f.StartDate); err != nil {
			return ErrInvalidDate
		}
	}
	if f.EndDate != "" {
		if end, err = validator.ParseDate(f.EndDate); err != nil {
			return ErrInvalidDate
		}
	}
	if f.StartDate != "" && f.EndDate != "" && start.After(end) {
		return ErrInvalidDateRange
	}
	return nil
}

// Snapshot is everything the attendance screen renders.
type Snapshot struct {
	Employees      []employee.Employee   `json:"employees"`
	EmployeesFetch viewstate.Fetch       `json:"employees_fetch"`
	Filter         Filter                `json:"filter"`
	Records        []Record              `json:"records"`
	RecordsFetch   viewstate.Fetch       `json:"records_fetch"`
	PageError      string                `json:"page_error,omitempty"`
	MarkModalOpen  bool                  `json:"mark_modal_open"`
	MarkForm       MarkAttendanceRequest `json:"mark_form"`
	MarkError      string                `json:"mark_error,omitempty"`
	Submitting     bool                  `json:"submitting"`
	ToggleTarget   *Record               `json:"toggle_target,omitempty"`
	Toggling       []RowKey              `json:"toggling"`
	Notification   string                `json:"notification,omitempty"`
	Modals         []string              `json:"modals"`
	Focus          string                `json:"focus,omitempty"`
	ScrollLocked   bool                  `json:"scroll_locked"`
}

func (s Snapshot) Counts() Counts {
	return CountRecords(s.Records)
}

// IsToggling reports whether the row of the filtered employee on date has an
// update in flight.
func (s Snapshot) IsToggling(date string) bool {
	for _, k := range s.Toggling {
		if k.EmployeeID == s.Filter.EmployeeID && k.Date == date {
			return true
		}
	}
	return false
}

// SelectedEmployee returns the employee picked in the filter, if loaded.
func (s Snapshot) SelectedEmployee() (employee.Employee, bool) {
	for _, e := range s.Employees {
		if e.EmployeeID == s.Filter.EmployeeID {
			return e, true
		}
	}
	return employee.Employee{}, false
}

// TogglePrompt is the confirmation text for the pending status change.
func (s Snapshot) TogglePrompt() string {
	if s.ToggleTarget == nil {
		return ""
	}
	t := s.ToggleTarget
	return "Change " + t.Date + " from " + string(t.Status) + " to " + string(t.Status.Flip()) + "?"
}
