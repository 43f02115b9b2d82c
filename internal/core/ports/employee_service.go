package ports

import (
	"context"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

// CreateEmployeeInput carries the data for a new employee. Actor is the
// subject of the authenticated identity, recorded in the audit trail.
type CreateEmployeeInput struct {
	Name  string
	Email string
	Role  string
	Phone string
	Actor string
}

// UpdateEmployeeInput updates only the fields that are non-nil.
type UpdateEmployeeInput struct {
	Name  *string
	Email *string
	Role  *string
	Phone *string
	Actor string
}

// ListEmployeesResult is the paginated list response.
type ListEmployeesResult struct {
	Total int64
	Skip  int
	Limit int
	Items []domain.Employee
}

// EmployeeService defines use-case operations for employees.
type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error)
	List(ctx context.Context, filter ListEmployeesFilter) (*ListEmployeesResult, error)
	// Get returns the employee together with its assigned tasks.
	Get(ctx context.Context, id string) (*domain.Employee, []domain.Task, error)
	Update(ctx context.Context, id string, input UpdateEmployeeInput) (*domain.Employee, error)
	// Delete removes the employee and all tasks assigned to it.
	Delete(ctx context.Context, id, actor string) error
}
