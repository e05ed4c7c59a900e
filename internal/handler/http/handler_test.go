package http

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/export"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/theme"
	"github.com/cmlabs-hris/hrms-lite-go/internal/presentation"
	"github.com/cmlabs-hris/hrms-lite-go/internal/repository/restapi"
	"github.com/cmlabs-hris/hrms-lite-go/internal/repository/restapi/fakeapi"
	attendanceService "github.com/cmlabs-hris/hrms-lite-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-lite-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite-go/internal/service/employee"
)

const handlerTestToday = "2025-03-10"

type envelope[T any] struct {
	Success bool                  `json:"success"`
	Data    T                     `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
}

type console struct {
	api    *fakeapi.Server
	server *httptest.Server
	hub    *sse.Hub
	theme  *theme.Store
}

func newConsole(t *testing.T) *console {
	t.Helper()

	api := fakeapi.New(handlerTestToday)
	t.Cleanup(api.Close)

	client := apiclient.New(api.URL, 2*time.Second)
	employeeRepo := restapi.NewEmployeeRepository(client)
	attendanceRepo := restapi.NewAttendanceRepository(client)

	hub := sse.NewHub()
	clock := func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

	dashboardController := dashboardService.NewDashboardController(restapi.NewDashboardRepository(client), hub)
	employeeController := employeeService.NewEmployeeController(employeeRepo, hub)
	attendanceController := attendanceService.NewAttendanceController(employeeRepo, attendanceRepo, hub, attendanceService.WithClock(clock))

	themeStore := theme.NewStore(nil, false)
	t.Cleanup(PublishThemeChanges(themeStore, hub))

	renderer, err := presentation.NewRenderer()
	require.NoError(t, err)

	router := NewRouter(
		RouterConfig{Env: "test", Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))},
		Handlers{
			Pages:      NewPageHandler(renderer, themeStore, dashboardController, employeeController, attendanceController),
			Dashboard:  NewDashboardHandler(dashboardController),
			Employee:   NewEmployeeHandler(employeeController),
			Attendance: NewAttendanceHandler(attendanceController),
			Theme:      NewThemeHandler(themeStore),
			Events:     NewEventHandler(hub),
		},
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &console{api: api, server: server, hub: hub, theme: themeStore}
}

func (c *console) do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return env
}

func seedEmployees(api *fakeapi.Server) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	api.Seed(
		employee.Employee{EmployeeID: "E001", FullName: "Ada Lovelace", Email: "ada@example.com", Department: employee.DepartmentEngineering, CreatedAt: &older},
		employee.Employee{EmployeeID: "E002", FullName: "Alan Turing", Email: "alan@example.com", Department: employee.DepartmentDesign, CreatedAt: &newer},
	)
}

func TestEmployeeHandler_AddAndDeleteFlow(t *testing.T) {
	c := newConsole(t)
	seedEmployees(c.api)

	resp, raw := c.do(t, http.MethodPost, "/api/v1/views/employees/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[employee.Snapshot](t, raw).Data
	require.Len(t, snap.Employees, 2)
	assert.Equal(t, "E002", snap.Employees[0].EmployeeID)

	resp, raw = c.do(t, http.MethodPost, "/api/v1/views/employees/add/open", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[employee.Snapshot](t, raw).Data.AddModalOpen)

	resp, raw = c.do(t, http.MethodPost, "/api/v1/views/employees/add", employee.CreateEmployeeRequest{
		EmployeeID: "E003",
		FullName:   "Grace Hopper",
		Email:      "grace@example.com",
		Department: employee.DepartmentOperations,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[employee.Snapshot](t, raw).Data
	assert.False(t, snap.AddModalOpen)
	assert.Equal(t, employee.MessageAdded, snap.Notification)
	require.Len(t, snap.Employees, 3)
	assert.Equal(t, "E003", snap.Employees[0].EmployeeID)

	resp, raw = c.do(t, http.MethodPost, "/api/v1/views/employees/delete/E001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[employee.Snapshot](t, raw).Data
	require.NotNil(t, snap.DeleteTarget)
	assert.Equal(t, "E001", snap.DeleteTarget.EmployeeID)

	resp, raw = c.do(t, http.MethodPost, "/api/v1/views/employees/delete/confirm", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[employee.Snapshot](t, raw).Data
	assert.Nil(t, snap.DeleteTarget)
	assert.Equal(t, employee.MessageDeleted, snap.Notification)

	ids := make([]string, 0, len(snap.Employees))
	for _, e := range snap.Employees {
		ids = append(ids, e.EmployeeID)
	}
	assert.Equal(t, []string{"E003", "E002"}, ids)
	assert.Equal(t, 1, c.api.Calls("DELETE /api/employees/E001"))
}

func TestEmployeeHandler_AddFormErrorsStayInSnapshot(t *testing.T) {
	c := newConsole(t)
	seedEmployees(c.api)

	resp, raw := c.do(t, http.MethodPost, "/api/v1/views/employees/add", employee.CreateEmployeeRequest{
		EmployeeID: "E001",
		FullName:   "Someone Else",
		Email:      "else@example.com",
		Department: employee.DepartmentSales,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[employee.Snapshot](t, raw).Data
	assert.True(t, snap.AddModalOpen)
	assert.Equal(t, "Employee with this ID already exists", snap.FormError)
	assert.False(t, snap.Submitting)
}

func TestEmployeeHandler_Guards(t *testing.T) {
	cases := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"confirm without target", http.MethodPost, "/api/v1/views/employees/delete/confirm", http.StatusBadRequest},
		{"delete unknown employee", http.MethodPost, "/api/v1/views/employees/delete/NOPE", http.StatusNotFound},
		{"dashboard bucket unknown", http.MethodPost, "/api/v1/views/dashboard/detail/late", http.StatusBadRequest},
		{"dashboard detail before load", http.MethodPost, "/api/v1/views/dashboard/detail/present", http.StatusConflict},
		{"toggle confirm without target", http.MethodPost, "/api/v1/views/attendance/toggle/confirm", http.StatusBadRequest},
		{"export without employee", http.MethodGet, "/api/v1/views/attendance/export", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newConsole(t)
			resp, raw := c.do(t, tc.method, tc.path, nil)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			env := decode[interface{}](t, raw)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.NotEmpty(t, env.Error.Message)
		})
	}
}

func TestEmployeeHandler_InvalidBody(t *testing.T) {
	c := newConsole(t)

	req, err := http.NewRequest(http.MethodPost, c.server.URL+"/api/v1/views/employees/add", strings.NewReader("{"))
	require.NoError(t, err)
	resp, err := c.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, c.api.Calls("POST /api/employees"))
}

func TestDashboardHandler_RefreshAndDetail(t *testing.T) {
	c := newConsole(t)
	seedEmployees(c.api)
	c.api.SeedAttendance(attendance.Record{EmployeeID: "E001", Date: handlerTestToday, Status: attendance.StatusPresent})

	resp, raw := c.do(t, http.MethodPost, "/api/v1/views/dashboard/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[dashboard.Snapshot](t, raw).Data
	require.NotNil(t, snap.Summary)
	assert.Equal(t, int64(2), snap.Summary.TotalEmployees)
	assert.Equal(t, int64(1), snap.Summary.PresentToday)
	assert.Equal(t, int64(1), snap.Summary.UnmarkedToday)

	resp, raw = c.do(t, http.MethodPost, "/api/v1/views/dashboard/detail/present", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[dashboard.Snapshot](t, raw).Data
	assert.Equal(t, dashboard.BucketPresent, snap.Detail)
	require.Len(t, snap.DetailEmployees(), 1)
	assert.Equal(t, "E001", snap.DetailEmployees()[0].EmployeeID)

	resp, raw = c.do(t, http.MethodPost, "/api/v1/views/dashboard/escape", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dashboard.Snapshot](t, raw).Data.Detail)
}

func TestDashboardHandler_FailureIsSnapshotOutcome(t *testing.T) {
	c := newConsole(t)
	c.api.FailNext("GET /api/dashboard/today-details", http.StatusInternalServerError, "boom")

	resp, raw := c.do(t, http.MethodPost, "/api/v1/views/dashboard/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[dashboard.Snapshot](t, raw).Data
	assert.True(t, snap.Fetch.Failed())
	assert.Equal(t, dashboard.MessageLoadFailed, snap.Fetch.Error)
}

func TestAttendanceHandler_InvalidRangeMakesNoRequest(t *testing.T) {
	c := newConsole(t)
	seedEmployees(c.api)

	resp, raw := c.do(t, http.MethodPut, "/api/v1/views/attendance/filter", attendance.Filter{
		EmployeeID: "E001",
		StartDate:  "2025-03-31",
		EndDate:    "2025-03-01",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[attendance.Snapshot](t, raw).Data
	assert.True(t, snap.RecordsFetch.Failed())
	assert.Equal(t, attendance.MessageInvalidRange, snap.RecordsFetch.Error)
	assert.Empty(t, snap.Records)
	assert.Equal(t, 0, c.api.Calls("GET /api/attendance/E001"))
}

func TestAttendanceHandler_MarkToggleAndExport(t *testing.T) {
	c := newConsole(t)
	seedEmployees(c.api)

	resp, _ := c.do(t, http.MethodPut, "/api/v1/views/attendance/filter", attendance.Filter{EmployeeID: "E001"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := c.do(t, http.MethodPost, "/api/v1/views/attendance/mark/open", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[attendance.Snapshot](t, raw).Data
	assert.Equal(t, "E001", snap.MarkForm.EmployeeID)
	assert.Equal(t, handlerTestToday, snap.MarkForm.Date)

	resp, raw = c.do(t, http.MethodPost, "/api/v1/views/attendance/mark", snap.MarkForm)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[attendance.Snapshot](t, raw).Data
	assert.False(t, snap.MarkModalOpen)
	assert.Equal(t, attendance.MessageMarked, snap.Notification)
	require.Len(t, snap.Records, 1)
	assert.Equal(t, attendance.StatusPresent, snap.Records[0].Status)

	resp, _ = c.do(t, http.MethodPost, "/api/v1/views/attendance/toggle", snap.Records[0])
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = c.do(t, http.MethodPost, "/api/v1/views/attendance/toggle/confirm", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap = decode[attendance.Snapshot](t, raw).Data
	require.Len(t, snap.Records, 1)
	assert.Equal(t, attendance.StatusAbsent, snap.Records[0].Status)
	assert.Equal(t, attendance.MessageUpdated(attendance.StatusAbsent), snap.Notification)
	assert.Empty(t, snap.Toggling)

	resp, raw = c.do(t, http.MethodGet, "/api/v1/views/attendance/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, export.ContentTypeXLSX, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attendance_E001")
	assert.NotEmpty(t, raw)
}

func TestThemeHandler(t *testing.T) {
	c := newConsole(t)

	resp, raw := c.do(t, http.MethodPost, "/api/v1/theme/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ThemeState{Mode: theme.ModeDark, Dark: true}, decode[ThemeState](t, raw).Data)

	resp, raw = c.do(t, http.MethodPut, "/api/v1/theme", map[string]bool{"dark": false})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, ThemeState{Mode: theme.ModeLight, Dark: false}, decode[ThemeState](t, raw).Data)

	resp, _ = c.do(t, http.MethodPut, "/api/v1/theme", map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, c.theme.Dark())
}

func TestEventHandler_UnknownTopic(t *testing.T) {
	c := newConsole(t)
	resp, _ := c.do(t, http.MethodGet, "/api/v1/events?topic=payroll", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEventHandler_StreamsSnapshots(t *testing.T) {
	c := newConsole(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server.URL+"/api/v1/events?topic=theme", nil)
	require.NoError(t, err)
	resp, err := c.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: connected\n", line)

	// skip the connected payload and its blank line
	_, err = reader.ReadString('\n')
	require.NoError(t, err)
	_, err = reader.ReadString('\n')
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return c.hub.SubscriberCount(sse.TopicTheme) == 1
	}, time.Second, 10*time.Millisecond)
	c.theme.Toggle()

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: snapshot\n", line)

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"dark","dark":true}`, strings.TrimPrefix(strings.TrimSpace(line), "data: "))
}

func TestPageHandler(t *testing.T) {
	c := newConsole(t)
	seedEmployees(c.api)

	resp, raw := c.do(t, http.MethodGet, "/employees", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	body := string(raw)
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "Alan Turing")

	calls := c.api.Calls("GET /api/employees")
	resp, raw = c.do(t, http.MethodGet, "/employees?view=screen", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(raw), "<html")
	assert.Contains(t, string(raw), "Ada Lovelace")
	assert.Equal(t, calls, c.api.Calls("GET /api/employees"))

	resp, raw = c.do(t, http.MethodGet, "/attendance?employee=E002", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, c.api.Calls("GET /api/attendance/E002"))
	assert.Contains(t, string(raw), "Alan Turing")

	resp, _ = c.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, c.api.Calls("GET /api/dashboard/summary"))
}

func TestPageHandler_AttendanceMountResetsFilter(t *testing.T) {
	c := newConsole(t)
	seedEmployees(c.api)

	resp, _ := c.do(t, http.MethodPut, "/api/v1/views/attendance/filter", attendance.Filter{
		EmployeeID: "E001",
		StartDate:  "2025-03-01",
		EndDate:    "2025-03-05",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = c.do(t, http.MethodGet, "/attendance?employee=E002", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, raw := c.do(t, http.MethodGet, "/api/v1/views/attendance", nil)
	snap := decode[attendance.Snapshot](t, raw).Data
	assert.Equal(t, attendance.Filter{EmployeeID: "E002"}, snap.Filter)

	resp, _ = c.do(t, http.MethodGet, "/attendance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, raw = c.do(t, http.MethodGet, "/api/v1/views/attendance", nil)
	snap = decode[attendance.Snapshot](t, raw).Data
	assert.Equal(t, attendance.Filter{}, snap.Filter)
	assert.Empty(t, snap.Records)
	assert.Equal(t, 1, c.api.Calls("GET /api/attendance/E002"))
}

func TestRouter_Healthz(t *testing.T) {
	c := newConsole(t)
	resp, _ := c.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
