package dashboard

import (
	"sort"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/viewstate"
)

const MessageLoadFailed = "Failed to load dashboard"

// ========== SUMMARY ==========

// SummaryResponse is the aggregate served by GET /api/dashboard/summary
type SummaryResponse struct {
	TotalEmployees int64             `json:"total_employees"`
	PresentToday   int64             `json:"present_today"`
	AbsentToday    int64             `json:"absent_today"`
	UnmarkedToday  int64             `json:"unmarked_today"`
	Departments    []DepartmentCount `json:"departments"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// ========== TODAY DETAILS ==========

// TodayDetailsResponse lists today's employees per attendance bucket
type TodayDetailsResponse struct {
	Present  []employee.Employee `json:"present"`
	Absent   []employee.Employee `json:"absent"`
	Unmarked []employee.Employee `json:"unmarked"`
}

type Bucket string

const (
	BucketPresent  Bucket = "present"
	BucketAbsent   Bucket = "absent"
	BucketUnmarked Bucket = "unmarked"
)

func (b Bucket) IsValid() bool {
	return b == BucketPresent || b == BucketAbsent || b == BucketUnmarked
}

func (b Bucket) Title() string {
	switch b {
	case BucketPresent:
		return "Present Today"
	case BucketAbsent:
		return "Absent Today"
	case BucketUnmarked:
		return "Unmarked Today"
	default:
		return ""
	}
}

func (d TodayDetailsResponse) Bucket(b Bucket) []employee.Employee {
	switch b {
	case BucketPresent:
		return d.Present
	case BucketAbsent:
		return d.Absent
	case BucketUnmarked:
		return d.Unmarked
	default:
		return nil
	}
}

// ========== VIEW STATE ==========

type View string

const (
	ViewLoading View = "loading"
	ViewError   View = "error"
	ViewEmpty   View = "empty"
	ViewStats   View = "stats"
)

// Snapshot is everything the dashboard renders.
type Snapshot struct {
	Summary      *SummaryResponse      `json:"summary,omitempty"`
	Today        *TodayDetailsResponse `json:"today,omitempty"`
	Fetch        viewstate.Fetch       `json:"fetch"`
	Detail       Bucket                `json:"detail,omitempty"`
	Modals       []string              `json:"modals"`
	Focus        string                `json:"focus,omitempty"`
	ScrollLocked bool                  `json:"scroll_locked"`
}

// View picks the page branch; a roster of zero employees gets its own
// empty state instead of zeroed stat cards.
func (s Snapshot) View() View {
	switch {
	case s.Fetch.Loading() || s.Fetch.Idle():
		return ViewLoading
	case s.Fetch.Failed():
		return ViewError
	case s.Summary == nil || s.Summary.TotalEmployees == 0:
		return ViewEmpty
	default:
		return ViewStats
	}
}

// Departments returns the department counts, largest first.
func (s Snapshot) Departments() []DepartmentCount {
	if s.Summary == nil {
		return nil
	}
	out := make([]DepartmentCount, len(s.Summary.Departments))
	copy(out, s.Summary.Departments)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// DetailEmployees lists the employees of the open detail bucket.
func (s Snapshot) DetailEmployees() []employee.Employee {
	if s.Today == nil || s.Detail == "" {
		return nil
	}
	return s.Today.Bucket(s.Detail)
}
