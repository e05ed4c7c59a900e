// Package presentation renders the console's screens from controller
// snapshots.
package presentation

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	ScreenDashboard  = "dashboard"
	ScreenEmployees  = "employees"
	ScreenAttendance = "attendance"
)

var screens = []string{ScreenDashboard, ScreenEmployees, ScreenAttendance}

// Page is the data of one rendered screen. Only the snapshot matching Screen
// is read.
type Page struct {
	Title       string
	Screen      string
	Dark        bool
	Departments []employee.Department
	Buckets     []dashboard.Bucket
	Statuses    []attendance.Status
	Dashboard   dashboard.Snapshot
	Employees   employee.Snapshot
	Attendance  attendance.Snapshot
}

// ScrollLocked reports whether the screen has a modal open.
func (p Page) ScrollLocked() bool {
	switch p.Screen {
	case ScreenDashboard:
		return p.Dashboard.ScrollLocked
	case ScreenEmployees:
		return p.Employees.ScrollLocked
	case ScreenAttendance:
		return p.Attendance.ScrollLocked
	}
	return false
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(screens))}
	for _, screen := range screens {
		tmpl, err := template.New("layout.html").ParseFS(templatesFS, "templates/layout.html", "templates/"+screen+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", screen, err)
		}
		r.pages[screen] = tmpl
	}
	return r, nil
}

func (r *Renderer) lookup(p *Page) (*template.Template, error) {
	tmpl, ok := r.pages[p.Screen]
	if !ok {
		return nil, fmt.Errorf("unknown screen %q", p.Screen)
	}
	if p.Departments == nil {
		p.Departments = employee.Departments
	}
	if p.Buckets == nil {
		p.Buckets = []dashboard.Bucket{dashboard.BucketPresent, dashboard.BucketAbsent, dashboard.BucketUnmarked}
	}
	if p.Statuses == nil {
		p.Statuses = []attendance.Status{attendance.StatusPresent, attendance.StatusAbsent}
	}
	return tmpl, nil
}

// Render writes the full document for p.
func (r *Renderer) Render(w io.Writer, p Page) error {
	tmpl, err := r.lookup(&p)
	if err != nil {
		return err
	}
	return tmpl.ExecuteTemplate(w, "layout.html", p)
}

// RenderScreen writes only the screen body, for in-place refresh.
func (r *Renderer) RenderScreen(w io.Writer, p Page) error {
	tmpl, err := r.lookup(&p)
	if err != nil {
		return err
	}
	return tmpl.ExecuteTemplate(w, "screen", p)
}
