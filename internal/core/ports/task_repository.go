package ports

import (
	"context"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

// ListTasksFilter carries all query parameters for listing tasks.
type ListTasksFilter struct {
	Status     string // optional: exact task status
	EmployeeID string // optional: filter by assigned employee
	Search     string // optional: case-insensitive partial match on title or description
	Skip       int
	Limit      int
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter ListTasksFilter) ([]domain.Task, int64, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	// DeleteByEmployee removes every task assigned to the employee; used by
	// the employee cascade delete.
	DeleteByEmployee(ctx context.Context, employeeID string) error
}
