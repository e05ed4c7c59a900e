package employee

import "time"

type Employee struct {
	EmployeeID string     `json:"employee_id"`
	FullName   string     `json:"full_name"`
	Email      string     `json:"email"`
	Department Department `json:"department"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// Label is the picker text, e.g. "Jane Doe (E001)".
func (e Employee) Label() string {
	return e.FullName + " (" + e.EmployeeID + ")"
}

type Department string

const (
	DepartmentEngineering    Department = "Engineering"
	DepartmentMarketing      Department = "Marketing"
	DepartmentSales          Department = "Sales"
	DepartmentHumanResources Department = "Human Resources"
	DepartmentFinance        Department = "Finance"
	DepartmentOperations     Department = "Operations"
	DepartmentDesign         Department = "Design"
	DepartmentOther          Department = "Other"
)

// Departments is the closed list offered by the add form, in display order.
var Departments = []Department{
	DepartmentEngineering,
	DepartmentMarketing,
	DepartmentSales,
	DepartmentHumanResources,
	DepartmentFinance,
	DepartmentOperations,
	DepartmentDesign,
	DepartmentOther,
}

func (d Department) IsValid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}
