package ports

import (
	"context"

	"github.com/taskdeck/employee-task-api/internal/core/domain"
)

// CreateTaskInput carries the data for a new task. EmployeeID is optional;
// when set, the employee must exist.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	EmployeeID  string
	Actor       string
}

// UpdateTaskInput updates only the fields that are non-nil. Setting
// EmployeeID to the empty string clears the assignment.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	EmployeeID  *string
	Actor       string
}

// TaskWithEmployee pairs a task with its assigned employee, when any.
type TaskWithEmployee struct {
	Task     domain.Task
	Employee *domain.Employee
}

// ListTasksResult is the paginated list response.
type ListTasksResult struct {
	Total int64
	Skip  int
	Limit int
	Items []TaskWithEmployee
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, filter ListTasksFilter) (*ListTasksResult, error)
	Get(ctx context.Context, id string) (*TaskWithEmployee, error)
	Update(ctx context.Context, id string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id, actor string) error
	Assign(ctx context.Context, taskID, employeeID, actor string) (*domain.Task, error)
}
