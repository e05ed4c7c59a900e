package employee

import "context"

// EmployeeRepository is the remote roster exposed by the HR API.
type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, employeeID string) error
}
