package restapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/apiclient"
)

type employeeRepositoryImpl struct {
	client *apiclient.Client
}

func NewEmployeeRepository(client *apiclient.Client) employee.EmployeeRepository {
	return &employeeRepositoryImpl{client: client}
}

// List implements employee.EmployeeRepository
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	var employees []employee.Employee
	if err := r.client.Get(ctx, "/api/employees", nil, &employees); err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	return employees, nil
}

// Create implements employee.EmployeeRepository
func (r *employeeRepositoryImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	var created employee.Employee
	if err := r.client.Post(ctx, "/api/employees", req, &created); err != nil {
		return employee.Employee{}, err
	}
	return created, nil
}

// Delete implements employee.EmployeeRepository
func (r *employeeRepositoryImpl) Delete(ctx context.Context, employeeID string) error {
	if employeeID == "" {
		return fmt.Errorf("delete employee: %w", employee.ErrNoDeleteTarget)
	}
	return r.client.Delete(ctx, "/api/employees/"+url.PathEscape(employeeID))
}
