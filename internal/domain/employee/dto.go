package employee

import (
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/viewstate"
)

const (
	MessageLoadFailed   = "Failed to load employees."
	MessageAddFailed    = "Failed to add employee. Please try again."
	MessageDeleteFailed = "Failed to delete employee."
	MessageAdded        = "Employee added successfully!"
	MessageDeleted      = "Employee deleted successfully!"
)

// CreateEmployeeRequest is the add-employee form. Only presence is checked
// on the client; the API owns format and uniqueness rules.
type CreateEmployeeRequest struct {
	EmployeeID string     `json:"employee_id" validate:"required"`
	FullName   string     `json:"full_name" validate:"required"`
	Email      string     `json:"email" validate:"required"`
	Department Department `json:"department" validate:"required"`
}

func (r CreateEmployeeRequest) Validate() error {
	return validator.Struct(r)
}

type View string

const (
	ViewLoading View = "loading"
	ViewError   View = "error"
	ViewEmpty   View = "empty"
	ViewList    View = "list"
)

// Snapshot is everything the employees screen renders.
type Snapshot struct {
	Employees    []Employee            `json:"employees"`
	Fetch        viewstate.Fetch       `json:"fetch"`
	PageError    string                `json:"page_error,omitempty"`
	AddModalOpen bool                  `json:"add_modal_open"`
	AddForm      CreateEmployeeRequest `json:"add_form"`
	FormError    string                `json:"form_error,omitempty"`
	Submitting   bool                  `json:"submitting"`
	DeleteTarget *Employee             `json:"delete_target,omitempty"`
	Notification string                `json:"notification,omitempty"`
	Modals       []string              `json:"modals"`
	Focus        string                `json:"focus,omitempty"`
	ScrollLocked bool                  `json:"scroll_locked"`
}

// View picks the page branch. A failed fetch only takes over the page when
// there is nothing to show; otherwise the list stays with a banner.
func (s Snapshot) View() View {
	switch {
	case s.Fetch.Loading():
		return ViewLoading
	case s.Fetch.Failed() && len(s.Employees) == 0:
		return ViewError
	case len(s.Employees) == 0:
		return ViewEmpty
	default:
		return ViewList
	}
}

// Banner is the inline error shown above a visible list.
func (s Snapshot) Banner() string {
	if s.PageError != "" {
		return s.PageError
	}
	if s.Fetch.Failed() && len(s.Employees) > 0 {
		return s.Fetch.Error
	}
	return ""
}

// DeletePrompt is the confirmation text for the pending delete.
func (s Snapshot) DeletePrompt() string {
	if s.DeleteTarget == nil {
		return ""
	}
	return "Are you sure you want to delete " + s.DeleteTarget.FullName + " (" + s.DeleteTarget.EmployeeID + ")? This action cannot be undone."
}
