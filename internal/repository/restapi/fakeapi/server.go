// Package fakeapi serves an in-memory HR API with the same routes and error
// bodies as the real service. It backs the console's tests.
package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

type failure struct {
	status int
	detail any
}

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	employees  []employee.Employee
	attendance map[string]attendance.Record
	failures   map[string]failure
	calls      map[string]int
	today      string
}

// New starts a server whose "today" is the given YYYY-MM-DD date.
func New(today string) *Server {
	s := &Server{
		attendance: make(map[string]attendance.Record),
		failures:   make(map[string]failure),
		calls:      make(map[string]int),
		today:      today,
	}

	r := chi.NewRouter()
	r.Use(s.track)
	r.Route("/api", func(r chi.Router) {
		r.Get("/employees", s.listEmployees)
		r.Post("/employees", s.createEmployee)
		r.Delete("/employees/{id}", s.deleteEmployee)

		r.Post("/attendance", s.markAttendance)
		r.Put("/attendance/{employeeID}/{date}", s.updateAttendance)
		r.Get("/attendance/{employeeID}", s.listAttendance)

		r.Get("/dashboard/summary", s.summary)
		r.Get("/dashboard/today-details", s.todayDetails)
	})

	s.Server = httptest.NewServer(r)
	return s
}

func key(employeeID, date string) string {
	return employeeID + "|" + date
}

// Seed inserts employees directly, bypassing validation.
func (s *Server) Seed(employees ...employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range employees {
		if e.CreatedAt == nil {
			now := time.Now().UTC()
			e.CreatedAt = &now
		}
		s.employees = append(s.employees, e)
	}
}

// SeedAttendance inserts records directly.
func (s *Server) SeedAttendance(records ...attendance.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.attendance[key(rec.EmployeeID, rec.Date)] = rec
	}
}

// FailNext makes the next request matching "METHOD /path" answer with
// status and {"detail": detail}.
func (s *Server) FailNext(route string, status int, detail any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, detail: detail}
}

// Calls returns how many requests hit "METHOD /path".
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path

		s.mu.Lock()
		s.calls[route]++
		f, failing := s.failures[route]
		delete(s.failures, route)
		s.mu.Unlock()

		if failing {
			writeJSON(w, f.status, map[string]any{"detail": f.detail})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]employee.Employee, len(s.employees))
	copy(out, s.employees)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(*out[j].CreatedAt)
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	var msgs []map[string]string
	if !validator.IsValidEmployeeID(req.EmployeeID) {
		msgs = append(msgs, map[string]string{"msg": "String should match pattern '^[A-Za-z0-9-]+$'"})
	}
	if validator.IsEmpty(req.FullName) {
		msgs = append(msgs, map[string]string{"msg": "String should have at least 1 character"})
	}
	if !validator.IsValidEmail(req.Email) {
		msgs = append(msgs, map[string]string{"msg": "value is not a valid email address"})
	}
	if !req.Department.IsValid() {
		msgs = append(msgs, map[string]string{"msg": "Input should be a valid department"})
	}
	if len(msgs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": msgs})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.employees {
		if e.EmployeeID == req.EmployeeID {
			detail(w, http.StatusConflict, "Employee with this ID already exists")
			return
		}
		if strings.EqualFold(e.Email, req.Email) {
			detail(w, http.StatusConflict, "Employee with this email already exists")
			return
		}
	}

	now := time.Now().UTC()
	created := employee.Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		CreatedAt:  &now,
	}
	s.employees = append(s.employees, created)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.employees {
		if e.EmployeeID == id {
			s.employees = append(s.employees[:i], s.employees[i+1:]...)
			for k, rec := range s.attendance {
				if rec.EmployeeID == id {
					delete(s.attendance, k)
				}
			}
			writeJSON(w, http.StatusOK, map[string]string{"message": "Employee " + id + " and their attendance records deleted"})
			return
		}
	}
	detail(w, http.StatusNotFound, "Employee not found")
}

// findEmployee must be called with s.mu held.
func (s *Server) findEmployee(id string) (employee.Employee, bool) {
	for _, e := range s.employees {
		if e.EmployeeID == id {
			return e, true
		}
	}
	return employee.Employee{}, false
}

func (s *Server) markAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if _, ok := validator.IsValidDate(req.Date); !ok || !req.Status.IsValid() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": "Invalid date or status"}},
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findEmployee(req.EmployeeID); !ok {
		detail(w, http.StatusNotFound, "Employee not found")
		return
	}
	k := key(req.EmployeeID, req.Date)
	if _, exists := s.attendance[k]; exists {
		detail(w, http.StatusConflict, "Attendance already marked for "+req.EmployeeID+" on "+req.Date)
		return
	}

	now := time.Now().UTC()
	rec := attendance.Record{EmployeeID: req.EmployeeID, Date: req.Date, Status: req.Status, CreatedAt: &now}
	s.attendance[k] = rec
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) updateAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	var req attendance.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Status.IsValid() {
		detail(w, http.StatusUnprocessableEntity, "Invalid status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(employeeID, date)
	rec, ok := s.attendance[k]
	if !ok {
		detail(w, http.StatusNotFound, "Attendance record not found")
		return
	}
	rec.Status = req.Status
	s.attendance[k] = rec
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) listAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	start := r.URL.Query().Get("start_date")
	end := r.URL.Query().Get("end_date")

	s.mu.Lock()
	if _, ok := s.findEmployee(employeeID); !ok {
		s.mu.Unlock()
		detail(w, http.StatusNotFound, "Employee not found")
		return
	}
	out := []attendance.Record{}
	for _, rec := range s.attendance {
		if rec.EmployeeID != employeeID {
			continue
		}
		if start != "" && rec.Date < start {
			continue
		}
		if end != "" && rec.Date > end {
			continue
		}
		out = append(out, rec)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	writeJSON(w, http.StatusOK, out)
}

// todayBuckets must be called with s.mu held.
func (s *Server) todayBuckets() dashboard.TodayDetailsResponse {
	d := dashboard.TodayDetailsResponse{
		Present:  []employee.Employee{},
		Absent:   []employee.Employee{},
		Unmarked: []employee.Employee{},
	}
	for _, e := range s.employees {
		rec, ok := s.attendance[key(e.EmployeeID, s.today)]
		switch {
		case !ok:
			d.Unmarked = append(d.Unmarked, e)
		case rec.Status == attendance.StatusPresent:
			d.Present = append(d.Present, e)
		default:
			d.Absent = append(d.Absent, e)
		}
	}
	return d
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	d := s.todayBuckets()
	counts := map[string]int64{}
	var order []string
	for _, e := range s.employees {
		dep := string(e.Department)
		if _, seen := counts[dep]; !seen {
			order = append(order, dep)
		}
		counts[dep]++
	}
	total := int64(len(s.employees))
	s.mu.Unlock()

	departments := make([]dashboard.DepartmentCount, 0, len(order))
	for _, dep := range order {
		departments = append(departments, dashboard.DepartmentCount{Department: dep, Count: counts[dep]})
	}

	writeJSON(w, http.StatusOK, dashboard.SummaryResponse{
		TotalEmployees: total,
		PresentToday:   int64(len(d.Present)),
		AbsentToday:    int64(len(d.Absent)),
		UnmarkedToday:  int64(len(d.Unmarked)),
		Departments:    departments,
	})
}

func (s *Server) todayDetails(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	d := s.todayBuckets()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, d)
}
