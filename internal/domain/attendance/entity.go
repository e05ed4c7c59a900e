package attendance

import "time"

// Record is keyed by (EmployeeID, Date); Date is a "YYYY-MM-DD" UTC day.
type Record struct {
	EmployeeID string     `json:"employee_id"`
	Date       string     `json:"date"`
	Status     Status     `json:"status"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// RowKey identifies one record row.
type RowKey struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r Record) Key() RowKey {
	return RowKey{EmployeeID: r.EmployeeID, Date: r.Date}
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Flip returns the opposite status.
func (s Status) Flip() Status {
	if s == StatusPresent {
		return StatusAbsent
	}
	return StatusPresent
}

// Filter is the tuple identifying the attendance query on screen. Empty
// dates leave that side of the range open.
type Filter struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type Counts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Total   int `json:"total"`
}

func CountRecords(records []Record) Counts {
	c := Counts{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case StatusPresent:
			c.Present++
		case StatusAbsent:
			c.Absent++
		}
	}
	return c
}
