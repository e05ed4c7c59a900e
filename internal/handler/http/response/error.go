package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/export"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

// guards are the errors a controller returns when it refuses an operation
// outright, leaving its state unchanged.
var guards = []error{
	employee.ErrMutationInFlight,
	employee.ErrNoDeleteTarget,
	employee.ErrEmployeeNotFound,
	attendance.ErrMutationInFlight,
	attendance.ErrToggleInFlight,
	attendance.ErrNoToggleTarget,
	attendance.ErrRecordNotFound,
	dashboard.ErrInvalidBucket,
	dashboard.ErrSummaryNotReady,
	export.ErrNoEmployeeSelected,
}

// IsGuard reports whether err is a refused operation rather than an outcome
// already recorded in the screen's snapshot.
func IsGuard(err error) bool {
	for _, guard := range guards {
		if errors.Is(err, guard) {
			return true
		}
	}
	return false
}

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee screen errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrMutationInFlight):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrNoDeleteTarget):
		BadRequest(w, err.Error(), nil)

	// Attendance screen errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrMutationInFlight),
		errors.Is(err, attendance.ErrToggleInFlight):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNoToggleTarget),
		errors.Is(err, attendance.ErrInvalidDateRange),
		errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)

	// Dashboard errors
	case errors.Is(err, dashboard.ErrInvalidBucket):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, dashboard.ErrSummaryNotReady):
		Conflict(w, err.Error())

	case errors.Is(err, export.ErrNoEmployeeSelected):
		BadRequest(w, err.Error(), nil)

	// HR API errors
	case apiclient.IsKind(err, apiclient.KindTimeout):
		GatewayTimeout(w, apiclient.MessageTimeout)
	case apiclient.IsKind(err, apiclient.KindNetwork):
		BadGateway(w, apiclient.MessageNetwork)
	case apiclient.IsConflict(err):
		Conflict(w, apiclient.Message(err, "Conflict"))
	case apiclient.IsKind(err, apiclient.KindValidation):
		BadRequest(w, apiclient.Message(err, "Request rejected by the HR API"), nil)
	case apiclient.IsKind(err, apiclient.KindServer):
		BadGateway(w, apiclient.Message(err, "The HR API returned an error"))

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
