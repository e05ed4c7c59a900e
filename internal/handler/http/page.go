package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/theme"
	"github.com/cmlabs-hris/hrms-lite-go/internal/presentation"
)

// PageHandler serves the HTML screens. Loading a page mounts the screen:
// open modals are released and its data is fetched. With ?view=screen only
// the screen body is rendered from the current snapshot, without a fetch.
type PageHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	Employees(w http.ResponseWriter, r *http.Request)
	Attendance(w http.ResponseWriter, r *http.Request)
}

type pageHandlerImpl struct {
	renderer   *presentation.Renderer
	theme      *theme.Store
	dashboard  dashboard.DashboardController
	employees  employee.EmployeeController
	attendance attendance.AttendanceController
}

func NewPageHandler(
	renderer *presentation.Renderer,
	themeStore *theme.Store,
	dashboardController dashboard.DashboardController,
	employeeController employee.EmployeeController,
	attendanceController attendance.AttendanceController,
) PageHandler {
	return &pageHandlerImpl{
		renderer:   renderer,
		theme:      themeStore,
		dashboard:  dashboardController,
		employees:  employeeController,
		attendance: attendanceController,
	}
}

func screenOnly(r *http.Request) bool {
	return r.URL.Query().Get("view") == "screen"
}

func (h *pageHandlerImpl) write(w http.ResponseWriter, r *http.Request, page presentation.Page) {
	page.Dark = h.theme.Dark()

	render := h.renderer.Render
	if screenOnly(r) {
		render = h.renderer.RenderScreen
	}

	var buf bytes.Buffer
	if err := render(&buf, page); err != nil {
		slog.Error("Failed to render page", "screen", page.Screen, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Dashboard handles GET /
func (h *pageHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	if !screenOnly(r) {
		h.dashboard.Close()
		_ = h.dashboard.FetchAll(operationContext(r))
	}
	h.write(w, r, presentation.Page{
		Title:     "Dashboard",
		Screen:    presentation.ScreenDashboard,
		Dashboard: h.dashboard.Snapshot(),
	})
}

// Employees handles GET /employees
func (h *pageHandlerImpl) Employees(w http.ResponseWriter, r *http.Request) {
	if !screenOnly(r) {
		h.employees.Close()
		_ = h.employees.FetchEmployees(operationContext(r))
	}
	h.write(w, r, presentation.Page{
		Title:     "Employees",
		Screen:    presentation.ScreenEmployees,
		Employees: h.employees.Snapshot(),
	})
}

// Attendance handles GET /attendance?employee=
func (h *pageHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	if !screenOnly(r) {
		h.mountAttendance(operationContext(r), r.URL.Query().Get("employee"))
	}
	h.write(w, r, presentation.Page{
		Title:      "Attendance",
		Screen:     presentation.ScreenAttendance,
		Attendance: h.attendance.Snapshot(),
	})
}

// mountAttendance loads the picker and the records side by side. Failures
// are part of the snapshot.
func (h *pageHandlerImpl) mountAttendance(ctx context.Context, preselect string) {
	h.attendance.Close()

	var g errgroup.Group
	g.Go(func() error {
		return h.attendance.FetchEmployees(ctx)
	})
	// a fresh mount starts from the preselected employee with open dates
	g.Go(func() error {
		return h.attendance.SetFilter(ctx, attendance.Filter{EmployeeID: preselect})
	})
	_ = g.Wait()
}
