package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
)

type DashboardHandler interface {
	// Snapshot returns the current dashboard state
	Snapshot(w http.ResponseWriter, r *http.Request)
	// Refresh reloads summary and today details
	Refresh(w http.ResponseWriter, r *http.Request)
	// OpenDetail opens the employee list of one bucket
	OpenDetail(w http.ResponseWriter, r *http.Request)
	// CloseDetail closes the bucket list
	CloseDetail(w http.ResponseWriter, r *http.Request)
	// Escape closes the topmost modal
	Escape(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	controller dashboard.DashboardController
}

func NewDashboardHandler(controller dashboard.DashboardController) DashboardHandler {
	return &dashboardHandlerImpl{controller: controller}
}

// Snapshot handles GET /views/dashboard
func (h *dashboardHandlerImpl) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeOutcome(w, nil, h.controller.Snapshot())
}

// Refresh handles POST /views/dashboard/refresh
func (h *dashboardHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.controller.FetchAll(operationContext(r))
	writeOutcome(w, err, h.controller.Snapshot())
}

// OpenDetail handles POST /views/dashboard/detail/{bucket}
func (h *dashboardHandlerImpl) OpenDetail(w http.ResponseWriter, r *http.Request) {
	bucket := dashboard.Bucket(chi.URLParam(r, "bucket"))
	err := h.controller.OpenDetail(bucket)
	writeOutcome(w, err, h.controller.Snapshot())
}

// CloseDetail handles DELETE /views/dashboard/detail
func (h *dashboardHandlerImpl) CloseDetail(w http.ResponseWriter, r *http.Request) {
	h.controller.CloseDetail()
	writeOutcome(w, nil, h.controller.Snapshot())
}

// Escape handles POST /views/dashboard/escape
func (h *dashboardHandlerImpl) Escape(w http.ResponseWriter, r *http.Request) {
	h.controller.Escape()
	writeOutcome(w, nil, h.controller.Snapshot())
}
