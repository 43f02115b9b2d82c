package ports

import (
	"context"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

// ListEmployeesFilter carries all query parameters for listing employees.
type ListEmployeesFilter struct {
	Role   string // optional: case-insensitive partial match on role
	Search string // optional: case-insensitive partial match on name or email
	Skip   int
	Limit  int
}

// EmployeeRepository defines persistence operations for employees.
type EmployeeRepository interface {
	// Create inserts a new employee; a duplicate email maps to
	// domain.ErrEmployeeEmailTaken.
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	// List returns a page of employees matching filter and the total count
	// before pagination.
	List(ctx context.Context, filter ListEmployeesFilter) ([]domain.Employee, int64, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
}
