package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
)

type EmployeeHandler interface {
	Snapshot(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	OpenAdd(w http.ResponseWriter, r *http.Request)
	CloseAdd(w http.ResponseWriter, r *http.Request)
	SubmitAdd(w http.ResponseWriter, r *http.Request)
	RequestDelete(w http.ResponseWriter, r *http.Request)
	ConfirmDelete(w http.ResponseWriter, r *http.Request)
	CancelDelete(w http.ResponseWriter, r *http.Request)
	DismissNotification(w http.ResponseWriter, r *http.Request)
	Escape(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	controller employee.EmployeeController
}

func NewEmployeeHandler(controller employee.EmployeeController) EmployeeHandler {
	return &employeeHandlerImpl{controller: controller}
}

func (h *employeeHandlerImpl) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeOutcome(w, nil, h.controller.Snapshot())
}

func (h *employeeHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.controller.FetchEmployees(operationContext(r))
	writeOutcome(w, err, h.controller.Snapshot())
}

func (h *employeeHandlerImpl) OpenAdd(w http.ResponseWriter, r *http.Request) {
	h.controller.OpenAddModal()
	writeOutcome(w, nil, h.controller.Snapshot())
}

func (h *employeeHandlerImpl) CloseAdd(w http.ResponseWriter, r *http.Request) {
	h.controller.CloseAddModal()
	writeOutcome(w, nil, h.controller.Snapshot())
}

// SubmitAdd handles POST /views/employees/add
func (h *employeeHandlerImpl) SubmitAdd(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.controller.SubmitAdd(operationContext(r), req)
	writeOutcome(w, err, h.controller.Snapshot())
}

// RequestDelete handles POST /views/employees/delete/{employeeID}
func (h *employeeHandlerImpl) RequestDelete(w http.ResponseWriter, r *http.Request) {
	err := h.controller.RequestDelete(chi.URLParam(r, "employeeID"))
	writeOutcome(w, err, h.controller.Snapshot())
}

func (h *employeeHandlerImpl) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	err := h.controller.ConfirmDelete(operationContext(r))
	writeOutcome(w, err, h.controller.Snapshot())
}

func (h *employeeHandlerImpl) CancelDelete(w http.ResponseWriter, r *http.Request) {
	h.controller.CancelDelete()
	writeOutcome(w, nil, h.controller.Snapshot())
}

func (h *employeeHandlerImpl) DismissNotification(w http.ResponseWriter, r *http.Request) {
	h.controller.DismissNotification()
	writeOutcome(w, nil, h.controller.Snapshot())
}

func (h *employeeHandlerImpl) Escape(w http.ResponseWriter, r *http.Request) {
	h.controller.Escape()
	writeOutcome(w, nil, h.controller.Snapshot())
}
