package http

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/export"
)

type AttendanceHandler interface {
	Snapshot(w http.ResponseWriter, r *http.Request)
	// Refresh re-runs the records query for the current filter
	Refresh(w http.ResponseWriter, r *http.Request)
	// RefreshEmployees reloads the employee picker
	RefreshEmployees(w http.ResponseWriter, r *http.Request)
	SetFilter(w http.ResponseWriter, r *http.Request)
	OpenMark(w http.ResponseWriter, r *http.Request)
	CloseMark(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	RequestToggle(w http.ResponseWriter, r *http.Request)
	ConfirmToggle(w http.ResponseWriter, r *http.Request)
	CancelToggle(w http.ResponseWriter, r *http.Request)
	DismissNotification(w http.ResponseWriter, r *http.Request)
	Escape(w http.ResponseWriter, r *http.Request)
	// Export streams the records on screen as an XLSX workbook
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	controller attendance.AttendanceController
}

func NewAttendanceHandler(controller attendance.AttendanceController) AttendanceHandler {
	return &attendanceHandlerImpl{controller: controller}
}

func (h *attendanceHandlerImpl) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeOutcome(w, nil, h.controller.Snapshot())
}

func (h *attendanceHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.controller.FetchAttendance(operationContext(r))
	writeOutcome(w, err, h.controller.Snapshot())
}

func (h *attendanceHandlerImpl) RefreshEmployees(w http.ResponseWriter, r *http.Request) {
	err := h.controller.FetchEmployees(operationContext(r))
	writeOutcome(w, err, h.controller.Snapshot())
}

// SetFilter handles PUT /views/attendance/filter
func (h *attendanceHandlerImpl) SetFilter(w http.ResponseWriter, r *http.Request) {
	var filter attendance.Filter
	if !decodeJSON(w, r, &filter) {
		return
	}

	err := h.controller.SetFilter(operationContext(r), filter)
	writeOutcome(w, err, h.controller.Snapshot())
}

func (h *attendanceHandlerImpl) OpenMark(w http.ResponseWriter, r *http.Request) {
	h.controller.OpenMarkModal()
	writeOutcome(w, nil, h.controller.Snapshot())
}

func (h *attendanceHandlerImpl) CloseMark(w http.ResponseWriter, r *http.Request) {
	h.controller.CloseMarkModal()
	writeOutcome(w, nil, h.controller.Snapshot())
}

// Mark handles POST /views/attendance/mark
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.controller.MarkAttendance(operationContext(r), req)
	writeOutcome(w, err, h.controller.Snapshot())
}

// RequestToggle handles POST /views/attendance/toggle with {employee_id, date}
func (h *attendanceHandlerImpl) RequestToggle(w http.ResponseWriter, r *http.Request) {
	var rec attendance.Record
	if !decodeJSON(w, r, &rec) {
		return
	}

	err := h.controller.RequestToggle(rec)
	writeOutcome(w, err, h.controller.Snapshot())
}

func (h *attendanceHandlerImpl) ConfirmToggle(w http.ResponseWriter, r *http.Request) {
	err := h.controller.ConfirmToggle(operationContext(r))
	writeOutcome(w, err, h.controller.Snapshot())
}

func (h *attendanceHandlerImpl) CancelToggle(w http.ResponseWriter, r *http.Request) {
	h.controller.CancelToggle()
	writeOutcome(w, nil, h.controller.Snapshot())
}

func (h *attendanceHandlerImpl) DismissNotification(w http.ResponseWriter, r *http.Request) {
	h.controller.DismissNotification()
	writeOutcome(w, nil, h.controller.Snapshot())
}

func (h *attendanceHandlerImpl) Escape(w http.ResponseWriter, r *http.Request) {
	h.controller.Escape()
	writeOutcome(w, nil, h.controller.Snapshot())
}

// Export handles GET /views/attendance/export
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	snap := h.controller.Snapshot()

	var buf bytes.Buffer
	if err := export.WriteAttendance(&buf, snap); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(snap.Filter)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
